package guardrail_test

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

	"github.com/dmitrymomot/guardrail"
	"github.com/dmitrymomot/guardrail/engine"
)

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	t.Run("decodes a JSON body", func(t *testing.T) {
		req, err := guardrail.FromHTTP(postJSON("/", `{"title": "Hello", "count": 2, "tags": ["a", "b"]}`))
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"title": "Hello",
			"count": float64(2),
			"tags":  []any{"a", "b"},
		}, req.Body)
	})

	t.Run("decodes a form-encoded body", func(t *testing.T) {
		form := url.Values{"title": {"Hello"}, "tags": {"a", "b"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		req, err := guardrail.FromHTTP(r)
		require.NoError(t, err)

		assert.Equal(t, "Hello", req.Body["title"])
		assert.Equal(t, []any{"a", "b"}, req.Body["tags"])
	})

	t.Run("empty body stays nil", func(t *testing.T) {
		req, err := guardrail.FromHTTP(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, req.Body)
	})

	t.Run("malformed JSON reports ErrMalformedBody", func(t *testing.T) {
		_, err := guardrail.FromHTTP(postJSON("/", `{"broken"`))
		assert.ErrorIs(t, err, guardrail.ErrMalformedBody)
	})

	t.Run("flattens query parameters", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?page=2&tag=go&tag=web", nil)

		req, err := guardrail.FromHTTP(r)
		require.NoError(t, err)

		assert.Equal(t, "2", req.Query["page"])
		assert.ElementsMatch(t, []any{"go", "web"}, req.Query["tag"].([]any))
	})

	t.Run("no query means a nil section", func(t *testing.T) {
		req, err := guardrail.FromHTTP(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, req.Query)
	})

	t.Run("extracts chi route parameters", func(t *testing.T) {
		var got guardrail.Request

		r := chi.NewRouter()
		r.Get("/posts/{id}/comments/{cid}", func(w http.ResponseWriter, r *http.Request) {
			var err error
			got, err = guardrail.FromHTTP(r)
			require.NoError(t, err)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/42/comments/7", nil))

		assert.Equal(t, map[string]any{"id": "42", "cid": "7"}, got.Params)
	})

	t.Run("no route context means nil params", func(t *testing.T) {
		req, err := guardrail.FromHTTP(httptest.NewRequest(http.MethodGet, "/posts/42", nil))
		require.NoError(t, err)
		assert.Nil(t, req.Params)
	})
}

func TestResultContext(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through the context", func(t *testing.T) {
		want := engine.Result{Validated: engine.Validated{Body: map[string]any{"title": "x"}}}

		ctx := guardrail.WithResult(context.Background(), want)
		got, ok := guardrail.ResultFrom(ctx)

		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("missing result reports false", func(t *testing.T) {
		_, ok := guardrail.ResultFrom(context.Background())
		assert.False(t, ok)
	})
}
