package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := func(t *testing.T, url string) *http.Response {
		t.Helper()
		resp, err := http.Get(url)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	t.Run("allows burst then rejects", func(t *testing.T) {
		const perMinute = 3

		srv := httptest.NewServer(RateLimitMiddleware(perMinute)(okHandler))
		defer srv.Close()

		for i := 0; i < perMinute; i++ {
			resp := get(t, srv.URL)
			require.Equalf(t, http.StatusOK, resp.StatusCode, "request %d should pass", i+1)
		}

		resp := get(t, srv.URL)
		require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `
			{
				"error": "Rate limit exceeded",
				"message": "Too many requests"
			}`, string(body))
	})

	t.Run("zero limit disables limiter", func(t *testing.T) {
		srv := httptest.NewServer(RateLimitMiddleware(0)(okHandler))
		defer srv.Close()

		for i := 0; i < 50; i++ {
			resp := get(t, srv.URL)
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})
}
