package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/binder"
)

type lookupRequest struct {
	VIN      string   `json:"vin" form:"vin" query:"vin"`
	Make     string   `json:"make" form:"make" query:"make"`
	Year     int      `json:"year" form:"year" query:"year"`
	Query    string   `json:"query" form:"query" query:"q"`
	Upsell   bool     `json:"upsell" form:"upsell" query:"upsell"`
	Tags     []string `json:"-" query:"tag"`
	Limit    *int     `json:"-" query:"limit"`
	internal string
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		err := binder.JSON()(jsonRequest(`{"vin":"1C4HJXDG0JW1*","year":2018,"query":"latch clip"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "1C4HJXDG0JW1*", req.VIN)
		assert.Equal(t, 2018, req.Year)
		assert.Equal(t, "latch clip", req.Query)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(`{}`))
		var req lookupRequest
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")
		var req lookupRequest
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		assert.ErrorIs(t, binder.JSON()(jsonRequest(`{"color":"red"}`), &req), binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		assert.ErrorIs(t, binder.JSON()(jsonRequest(``), &req), binder.ErrFailedToParseJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		assert.ErrorIs(t, binder.JSON()(jsonRequest(`{"vin":"A"}{"vin":"B"}`), &req), binder.ErrFailedToParseJSON)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		body := `{"query":"` + strings.Repeat("a", 200) + `"}`
		err := binder.JSON(binder.WithMaxSize(64))(jsonRequest(body), &req)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "too large")
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	form := url.Values{"vin": {"1C4HJXDG0JW123456"}, "year": {"2018"}, "upsell": {"on"}}
	r := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req lookupRequest
	require.NoError(t, binder.Form()(r, &req))
	assert.Equal(t, "1C4HJXDG0JW123456", req.VIN)
	assert.Equal(t, 2018, req.Year)
	assert.True(t, req.Upsell)

	bad := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(`{}`))
	bad.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, binder.Form()(bad, &req), binder.ErrUnsupportedMediaType)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup?vin=1C4*&make=Jeep&year=2018&q=brake+pads&tag=a,b&tag=c&limit=5&internal=x", nil)
		var req lookupRequest
		require.NoError(t, binder.Query()(r, &req))
		assert.Equal(t, "1C4*", req.VIN)
		assert.Equal(t, "Jeep", req.Make)
		assert.Equal(t, 2018, req.Year)
		assert.Equal(t, "brake pads", req.Query)
		assert.Equal(t, []string{"a", "b", "c"}, req.Tags)
		require.NotNil(t, req.Limit)
		assert.Equal(t, 5, *req.Limit)
		assert.Empty(t, req.internal)
	})

	t.Run("empty year is ignored", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup?year=", nil)
		var req lookupRequest
		require.NoError(t, binder.Query()(r, &req))
		assert.Zero(t, req.Year)
	})

	t.Run("invalid integer", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup?year=twenty", nil)
		var req lookupRequest
		err := binder.Query()(r, &req)
		require.ErrorIs(t, err, binder.ErrFailedToParseQuery)
		assert.Contains(t, err.Error(), "year")
	})

	t.Run("invalid boolean", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup?upsell=maybe", nil)
		var req lookupRequest
		assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrFailedToParseQuery)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup", nil)
		assert.ErrorIs(t, binder.Query()(r, lookupRequest{}), binder.ErrFailedToParseQuery)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type partRequest struct {
		PartNumber string `path:"partNumber"`
	}

	r := httptest.NewRequest(http.MethodGet, "/parts/68212345AB/supersession", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("partNumber", "68212345AB")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	var req partRequest
	require.NoError(t, binder.Path()(r, &req))
	assert.Equal(t, "68212345AB", req.PartNumber)

	custom := binder.PathWith(func(_ *http.Request, name string) string {
		if name == "partNumber" {
			return "82215274"
		}
		return ""
	})
	require.NoError(t, custom(r, &req))
	assert.Equal(t, "82215274", req.PartNumber)
}

func TestBody(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var req lookupRequest
		require.NoError(t, binder.Body()(jsonRequest(`{"make":"Jeep"}`), &req))
		assert.Equal(t, "Jeep", req.Make)
	})

	t.Run("form", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader("make=Jeep"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var req lookupRequest
		require.NoError(t, binder.Body()(r, &req))
		assert.Equal(t, "Jeep", req.Make)
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/lookup", nil)
		var req lookupRequest
		require.NoError(t, binder.Body()(r, &req))
		assert.Empty(t, req.Make)
	})
}
