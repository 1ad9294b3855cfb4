package opensearch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/opensearch"
)

func cluster(t *testing.T, status int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"version":{"number":"2.11.0","distribution":"opensearch"}}`)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("healthy cluster", func(t *testing.T) {
		t.Parallel()
		client, err := opensearch.New(ctx, opensearch.Config{Addresses: []string{cluster(t, http.StatusOK)}, DisableRetry: true})
		require.NoError(t, err)
		assert.NoError(t, opensearch.Healthcheck(client)(ctx))
	})

	t.Run("unhealthy cluster", func(t *testing.T) {
		t.Parallel()
		_, err := opensearch.New(ctx, opensearch.Config{Addresses: []string{cluster(t, http.StatusUnauthorized)}, DisableRetry: true})
		assert.ErrorIs(t, err, opensearch.ErrConnectionFailed)
		assert.ErrorIs(t, err, opensearch.ErrHealthcheckFailed)
	})

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()
		_, err := opensearch.New(ctx, opensearch.Config{Addresses: []string{"://bad"}})
		assert.ErrorIs(t, err, opensearch.ErrConnectionFailed)
	})
}
