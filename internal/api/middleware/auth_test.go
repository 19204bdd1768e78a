package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(next http.HandlerFunc) *mux.Router {
	router := mux.NewRouter()
	router.Use(Auth)
	router.HandleFunc("/api/v1/courses/{courseId}/slots", next).Methods(http.MethodGet)
	return router
}

func TestAuth(t *testing.T) {
	t.Run("missing header rejects the request", func(t *testing.T) {
		called := false
		router := protectedRouter(func(http.ResponseWriter, *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/42/slots", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("malformed header rejects the request", func(t *testing.T) {
		router := protectedRouter(func(http.ResponseWriter, *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/42/slots", nil)
		req.Header.Set("X-User-ID", "abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non positive user id rejects the request", func(t *testing.T) {
		router := protectedRouter(func(http.ResponseWriter, *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/42/slots", nil)
		req.Header.Set("X-User-ID", "0")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid header passes user id through the context", func(t *testing.T) {
		var gotUserID int64
		router := protectedRouter(func(_ http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			require.True(t, ok)
			gotUserID = userID
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/42/slots", nil)
		req.Header.Set("X-User-ID", "10")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(10), gotUserID)
	})
}
