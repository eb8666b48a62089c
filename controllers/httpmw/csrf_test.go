package httpmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func csrfProtected() http.Handler {
	return CSRFDoubleSubmit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCSRFDoubleSubmit(t *testing.T) {
	t.Run("GET passes without tokens", func(t *testing.T) {
		rec := httptest.NewRecorder()
		csrfProtected().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("POST without csrf cookie passes", func(t *testing.T) {
		// чистые API-клиенты с bearer-токеном cookie не шлют
		rec := httptest.NewRecorder()
		csrfProtected().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("POST with cookie and matching header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok-123"})
		req.Header.Set("X-CSRF-Token", "tok-123")

		rec := httptest.NewRecorder()
		csrfProtected().ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("POST with cookie and wrong header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok-123"})
		req.Header.Set("X-CSRF-Token", "tok-456")

		rec := httptest.NewRecorder()
		csrfProtected().ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("POST with cookie and missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok-123"})

		rec := httptest.NewRecorder()
		csrfProtected().ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
