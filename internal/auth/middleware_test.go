package auth

import (
	"GoLinks-Backend/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware(t *testing.T) (*Middleware, *JWTService) {
	t.Helper()
	jwtService := newTestJWTService(time.Hour)
	return NewMiddleware(jwtService, zap.NewNop()), jwtService
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	mw, jwtService := newTestMiddleware(t)

	token, err := jwtService.Issue("alice", domain.RoleAdmin)
	require.NoError(t, err)

	var got *Principal
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.True(t, got.IsAdmin())
}

func TestAuthenticatePassesThroughAnonymous(t *testing.T) {
	mw, _ := newTestMiddleware(t)

	for name, header := range map[string]string{
		"no header":       "",
		"not bearer":      "Basic abc",
		"malformed token": "Bearer not-a-token",
		"empty bearer":    "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
				called = true
				_, ok := PrincipalFromContext(r.Context())
				assert.False(t, ok)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	mw, jwtService := newTestMiddleware(t)

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects anonymous with 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/links", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		token, err := jwtService.Issue("alice", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	mw, jwtService := newTestMiddleware(t)

	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects anonymous with 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a plain user with 403", func(t *testing.T) {
		token, err := jwtService.Issue("bob", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("accepts an admin", func(t *testing.T) {
		token, err := jwtService.Issue("alice", domain.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
