package copilot_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/handler"
	copilotmod "github.com/quirkauto/advisorcopilot/modules/copilot"
	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/history"
	"github.com/quirkauto/advisorcopilot/pkg/httpserver"
	"github.com/quirkauto/advisorcopilot/pkg/ratelimiter"
	"github.com/quirkauto/advisorcopilot/pkg/session"
	"github.com/quirkauto/advisorcopilot/pkg/vin"
	"github.com/quirkauto/advisorcopilot/svc/copilot"
)

const sessionA = "3f2c8f56-9a4e-4d5b-8c1a-2b7e6f0d9a11"

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Meta  map[string]any      `json:"meta"`
	Error *handler.ErrorDetail `json:"error"`
}

// brokenCatalog fails every call.
type brokenCatalog struct{}

var errDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func (brokenCatalog) Search(context.Context, catalog.Vehicle) ([]catalog.Part, error) {
	return nil, errors.Join(catalog.ErrBackend, errDown)
}

func (brokenCatalog) SupersessionChain(context.Context, string) (catalog.Chain, error) {
	return catalog.Chain{}, errors.Join(catalog.ErrBackend, errDown)
}

func (brokenCatalog) CrossReferences(context.Context, string) ([]catalog.CrossRef, error) {
	return nil, errors.Join(catalog.ErrBackend, errDown)
}

func (brokenCatalog) Upsell(context.Context, catalog.Vehicle) ([]catalog.Part, error) {
	return nil, errors.Join(catalog.ErrBackend, errDown)
}

func newServer(t *testing.T, cat catalog.Catalog, probes ...httpserver.Probe) *httptest.Server {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	svc := copilot.New(cat, history.NewMemoryStore(), copilot.WithLogger(log))
	srv := httptest.NewServer(copilotmod.Router(copilotmod.RouterOptions{
		API:      copilotmod.NewAPI(svc, handler.NewErrorHandler(log)),
		Sessions: session.NewFromConfig(session.DefaultConfig()),
		Logger:   log,
		Probes:   probes,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, target, contentType, body string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, target, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Session-ID", sessionA)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func TestLookup(t *testing.T) {
	t.Parallel()
	srv := newServer(t, catalog.NewDemo())

	t.Run("json body", func(t *testing.T) {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json",
			`{"make":"Jeep","model":"Wrangler","year":2018,"query":"clip for trunk latch"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, sessionA, resp.Header.Get("X-Session-ID"))
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

		var res copilot.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		require.NotNil(t, res.TopPart)
		assert.Equal(t, "68212345AB", res.TopPart.PartNumber)
		assert.Equal(t, "68212345AC", res.Supersession.Current)
		assert.Len(t, res.Upsell, 2)
		assert.False(t, res.GeneratedAt.IsZero())
	})

	t.Run("form body", func(t *testing.T) {
		form := url.Values{"vin": {"1C4HJXDG9MW123456"}, "query": {"brake pads"}}
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/x-www-form-urlencoded", form.Encode())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res copilot.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "68211987AA", res.Parts[0].PartNumber)
		assert.Equal(t, []string{"2021 Jeep Wrangler"}, res.Parts[0].Fits)
	})

	t.Run("query string", func(t *testing.T) {
		resp, env := do(t, http.MethodGet, srv.URL+"/api/lookup?make=jeep&model=wrangler&q=mats", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res copilot.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.False(t, res.Matched)
		assert.Equal(t, "Jeep", res.Vehicle.Make)
	})

	t.Run("insufficient input", func(t *testing.T) {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json", `{"query":"brake pads"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Contains(t, env.Error.Details, "vehicle")
	})

	t.Run("invalid vin", func(t *testing.T) {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json",
			`{"vin":"1C4HJXDG0JW1O3456","make":"Jeep","model":"Wrangler"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, []string{"VIN cannot contain letters I, O, or Q"}, env.Error.Details["vin"])
	})

	t.Run("control character in vin", func(t *testing.T) {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json",
			`{"vin":"1C4HJXDG9MW12345\u00007","make":"Jeep","model":"Wrangler"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, []string{vin.ReasonInvalidCharacter}, env.Error.Details["vin"])
	})

	t.Run("bad character past the code length", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{
			"vin":   "*" + strings.Repeat("A", 31) + "#",
			"make":  "Jeep",
			"model": "Wrangler",
		})
		require.NoError(t, err)
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json", string(body))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, []string{vin.ReasonInvalidCharacter}, env.Error.Details["vin"])
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json", `{"make":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "bad_request", env.Error.Code)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/api/lookup", "text/plain", `make=Jeep`)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func TestLookup_CatalogDown(t *testing.T) {
	t.Parallel()
	srv := newServer(t, brokenCatalog{})

	resp, env := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json", `{"make":"Jeep","model":"Wrangler"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "service_unavailable", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "10.0.0.5")
}

func TestValidateVIN(t *testing.T) {
	t.Parallel()
	srv := newServer(t, catalog.NewDemo())

	tests := []struct {
		vin    string
		valid  bool
		reason string
	}{
		{vin: "1C4HJXDG9MW123456", valid: true},
		{vin: "1C4HJXDG*", valid: true},
		{vin: "1C4HJXDG0JW1", valid: false, reason: "Partial VIN detected (12 chars). Use * for unknown characters or enter full 17-character VIN"},
		{vin: "1C4HJXDG0JW1Q3456", valid: false, reason: "VIN cannot contain letters I, O, or Q"},
		{vin: "1C4HJXDG9MW*" + strings.Repeat("1", 20) + "Q", valid: false, reason: vin.ReasonForbiddenLetter},
		{vin: "*" + strings.Repeat("A", 31) + "#", valid: false, reason: vin.ReasonInvalidCharacter},
	}
	for _, tt := range tests {
		resp, env := do(t, http.MethodGet, srv.URL+"/api/vin/"+url.PathEscape(tt.vin)+"/validate", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.vin)

		var res struct {
			Valid  bool   `json:"valid"`
			Reason string `json:"reason"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, tt.valid, res.Valid, tt.vin)
		assert.Equal(t, tt.reason, res.Reason, tt.vin)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	srv := newServer(t, catalog.NewDemo())

	for _, q := range []string{"latch", "brake", "mats"} {
		resp, _ := do(t, http.MethodPost, srv.URL+"/api/lookup", "application/json",
			`{"make":"Jeep","model":"Wrangler","query":"`+q+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, env := do(t, http.MethodGet, srv.URL+"/api/history", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "mats", entries[0].Query)
	assert.InDelta(t, 3, env.Meta["count"], 0)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/history", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, env = do(t, http.MethodGet, srv.URL+"/api/history", "", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestParts(t *testing.T) {
	t.Parallel()
	srv := newServer(t, catalog.NewDemo())

	resp, env := do(t, http.MethodGet, srv.URL+"/api/parts/68212345AA/supersession", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chain catalog.Chain
	require.NoError(t, json.Unmarshal(env.Data, &chain))
	assert.Equal(t, "68212345AC", chain.Current)
	assert.Equal(t, []string{"68212345AA", "68212345AB", "68212345AC"}, chain.Chain)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/parts/UNKNOWN/supersession", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", env.Error.Code)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/parts/68212345AB/crossrefs", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refs []catalog.CrossRef
	require.NoError(t, json.Unmarshal(env.Data, &refs))
	require.Len(t, refs, 2)
	assert.Equal(t, "DORMAN-12345", refs[0].PartNumber)
	assert.Equal(t, "68212345AB", env.Meta["partNumber"])
}

func TestHealth(t *testing.T) {
	t.Parallel()

	healthy := newServer(t, catalog.NewDemo(), httpserver.Probe{Name: "catalog", Check: func(context.Context) error { return nil }})
	resp, err := http.Get(healthy.URL + "/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(healthy.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := newServer(t, catalog.NewDemo(), httpserver.Probe{Name: "postgres", Check: func(context.Context) error { return errDown }})
	resp, err = http.Get(down.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSessionIssued(t *testing.T) {
	t.Parallel()
	srv := newServer(t, catalog.NewDemo())

	resp, err := http.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, session.Valid(resp.Header.Get("X-Session-ID")))
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, "copilot_session", resp.Cookies()[0].Name)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	log := slog.New(slog.DiscardHandler)
	limiter, err := ratelimiter.New(ratelimiter.NewMemoryStore(),
		ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	svc := copilot.New(catalog.NewDemo(), history.NewMemoryStore(), copilot.WithLogger(log))
	srv := httptest.NewServer(copilotmod.Router(copilotmod.RouterOptions{
		API:         copilotmod.NewAPI(svc, handler.NewErrorHandler(log)),
		Sessions:    session.NewFromConfig(session.DefaultConfig()),
		Logger:      log,
		RateLimiter: limiter,
	}))
	t.Cleanup(srv.Close)

	for range 2 {
		resp, _ := do(t, http.MethodGet, srv.URL+"/api/vin/1C4HJXDG9MW123456/validate", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, env := do(t, http.MethodGet, srv.URL+"/api/vin/1C4HJXDG9MW123456/validate", "", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.NotNil(t, env.Error)
	assert.Equal(t, "too_many_requests", env.Error.Code)

	live, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	live.Body.Close()
	assert.Equal(t, http.StatusOK, live.StatusCode, "health checks are not limited")
}
