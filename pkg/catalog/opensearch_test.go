package catalog_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/catalog"
)

// fakeCluster answers the handful of OpenSearch endpoints the catalog uses.
type fakeCluster struct {
	mu       sync.Mutex
	bodies   map[string][]string
	search   map[string]string
	docs     map[string]string
	indices  map[string]bool
	bulkResp string
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		bodies:   map[string][]string{},
		search:   map[string]string{},
		docs:     map[string]string{},
		indices:  map[string]bool{},
		bulkResp: `{"took":1,"errors":false,"items":[]}`,
	}
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[r.URL.Path] = append(f.bodies[r.URL.Path], string(body))

	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case path == "":
		_, _ = io.WriteString(w, `{"version":{"number":"2.11.0","distribution":"opensearch"},"tagline":"The OpenSearch Project: https://opensearch.org/"}`)
	case path == "_bulk":
		_, _ = io.WriteString(w, f.bulkResp)
	case strings.HasSuffix(path, "/_search"):
		index := strings.TrimSuffix(path, "/_search")
		resp, ok := f.search[index]
		if !ok {
			resp = `{"hits":{"hits":[]}}`
		}
		_, _ = io.WriteString(w, resp)
	case strings.Contains(path, "/_doc/"):
		if doc, ok := f.docs[path]; ok {
			_, _ = io.WriteString(w, doc)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"found":false}`)
	case r.Method == http.MethodHead:
		if !f.indices[path] {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut:
		f.indices[path] = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func (f *fakeCluster) requests(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies[path]...)
}

func newOpenSearch(t *testing.T, cluster *fakeCluster) *catalog.OpenSearch {
	t.Helper()
	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{srv.URL}, DisableRetry: true})
	require.NoError(t, err)
	return catalog.NewOpenSearch(client, catalog.OpenSearchConfig{})
}

func decodeQuery(t *testing.T, body string) map[string]any {
	t.Helper()
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	return q
}

func TestOpenSearch_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("filters by fitment", func(t *testing.T) {
		t.Parallel()
		cluster := newFakeCluster()
		cluster.search["copilot-parts"] = `{"hits":{"hits":[
			{"_source":{"part_number":"68211987AA","title":"Brake Pad Set - Front","oem":"Mopar","price":64.5,"eta_days":1}},
			{"_source":{"part_number":"04861756AA","title":"Air Filter","oem":"Mopar","price":24.95,"eta_days":0}}
		]}}`
		c := newOpenSearch(t, cluster)

		parts, err := c.Search(ctx, catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2018})
		require.NoError(t, err)
		assert.Equal(t, []string{"68211987AA", "04861756AA"}, partNumbers(parts))
		assert.Equal(t, []string{"2018 Jeep Wrangler"}, parts[0].Fits)
		assert.InDelta(t, 64.5, parts[0].Price, 0.001)

		reqs := cluster.requests("/copilot-parts/_search")
		require.Len(t, reqs, 1)
		q := decodeQuery(t, reqs[0])
		assert.EqualValues(t, 100, q["size"])
		filters := q["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
		assert.Len(t, filters, 5, "upsell, make, model and two year bounds")
		assert.Contains(t, reqs[0], `"fit_make":"jeep"`)
		assert.Contains(t, reqs[0], `"upsell":false`)
		assert.Empty(t, cluster.requests("/copilot-vehicles/_search"))
	})

	t.Run("resolves wildcard vin", func(t *testing.T) {
		t.Parallel()
		cluster := newFakeCluster()
		cluster.search["copilot-vehicles"] = `{"hits":{"hits":[{"_source":{"vin":"1C4HJXDG9MW123456","make":"Jeep","model":"Wrangler","year":2021}}]}}`
		cluster.search["copilot-parts"] = `{"hits":{"hits":[{"_source":{"part_number":"04861756AA","title":"Air Filter"}}]}}`
		c := newOpenSearch(t, cluster)

		parts, err := c.Search(ctx, catalog.Vehicle{VIN: "1c4hjxdg9mw*****"})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, []string{"2021 Jeep Wrangler"}, parts[0].Fits)

		reqs := cluster.requests("/copilot-vehicles/_search")
		require.Len(t, reqs, 1)
		assert.Contains(t, reqs[0], `"value":"1C4HJXDG9MW*****"`)
	})

	t.Run("unknown vin finds nothing", func(t *testing.T) {
		t.Parallel()
		cluster := newFakeCluster()
		c := newOpenSearch(t, cluster)

		parts, err := c.Search(ctx, catalog.Vehicle{VIN: "2T1BURHE*"})
		require.NoError(t, err)
		assert.Empty(t, parts)
		assert.Len(t, cluster.requests("/copilot-vehicles/_search"), 1)
		assert.Empty(t, cluster.requests("/copilot-parts/_search"))
	})

	t.Run("upsell flag", func(t *testing.T) {
		t.Parallel()
		cluster := newFakeCluster()
		c := newOpenSearch(t, cluster)

		parts, err := c.Upsell(ctx, catalog.Vehicle{})
		require.NoError(t, err)
		assert.Empty(t, parts)
		reqs := cluster.requests("/copilot-parts/_search")
		require.Len(t, reqs, 1)
		assert.Contains(t, reqs[0], `"upsell":true`)
	})

	t.Run("cluster error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"}}`)
		}))
		t.Cleanup(srv.Close)
		client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{srv.URL}, DisableRetry: true})
		require.NoError(t, err)
		c := catalog.NewOpenSearch(client, catalog.OpenSearchConfig{IndexPrefix: "x"})

		_, err = c.Search(ctx, catalog.Vehicle{Make: "Jeep", Model: "Wrangler"})
		require.ErrorIs(t, err, catalog.ErrBackend)
		assert.Contains(t, err.Error(), "index_not_found_exception")
	})
}

func TestOpenSearch_SupersessionChain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cluster := newFakeCluster()
	cluster.search["copilot-supersessions"] = `{"hits":{"hits":[{"_source":{"root":"68212345","chain":["68212345AA","68212345AB","68212345AC"],"current":"68212345AC"}}]}}`
	c := newOpenSearch(t, cluster)

	chain, err := c.SupersessionChain(ctx, "68212345ab")
	require.NoError(t, err)
	assert.Equal(t, "68212345AC", chain.Current)
	assert.Len(t, chain.Chain, 3)
	assert.Contains(t, cluster.requests("/copilot-supersessions/_search")[0], `"chain":"68212345AB"`)

	empty := newOpenSearch(t, newFakeCluster())
	_, err = empty.SupersessionChain(ctx, "82215274")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = empty.SupersessionChain(ctx, "")
	assert.ErrorIs(t, err, catalog.ErrEmptyPartNumber)
}

func TestOpenSearch_CrossReferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cluster := newFakeCluster()
	cluster.docs["/copilot-crossrefs/_doc/68212345AB"] = `{"found":true,"_source":{"refs":[{"partNumber":"DORMAN-12345","type":"aftermarket","note":"Aftermarket equivalent"}]}}`
	c := newOpenSearch(t, cluster)

	refs, err := c.CrossReferences(ctx, "68212345ab")
	require.NoError(t, err)
	assert.Equal(t, []catalog.CrossRef{{PartNumber: "DORMAN-12345", Type: "aftermarket", Note: "Aftermarket equivalent"}}, refs)

	refs, err = c.CrossReferences(ctx, "04861756AA")
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestOpenSearch_Import(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cluster := newFakeCluster()
	cluster.indices["copilot-parts"] = true
	c := newOpenSearch(t, cluster)

	require.NoError(t, c.Import(ctx, catalog.DemoSeed()))

	created := cluster.requests("/copilot-vehicles")
	assert.NotEmpty(t, created, "missing indices are created")
	assert.Empty(t, cluster.requests("/copilot-parts")[1:], "existing index only checked")

	bulk := cluster.requests("/_bulk")
	require.Len(t, bulk, 1)

	lines := 0
	scanner := bufio.NewScanner(strings.NewReader(bulk[0]))
	for scanner.Scan() {
		lines++
	}
	seed := catalog.DemoSeed()
	docs := len(seed.Vehicles) + len(seed.Parts) + len(seed.Upsell) + len(seed.Chains) + len(seed.CrossReferences)
	assert.Equal(t, docs*2, lines)
	assert.Contains(t, bulk[0], `"_index":"copilot-crossrefs"`)

	cluster.mu.Lock()
	cluster.bulkResp = `{"errors":true,"items":[]}`
	cluster.mu.Unlock()
	err := c.Import(ctx, catalog.DemoSeed())
	assert.ErrorIs(t, err, catalog.ErrBackend)
}
