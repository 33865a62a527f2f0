package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/auth"
	"inkwell/app/models"
	"inkwell/app/repositories/mock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func echoIdentity(t *testing.T, got **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func setupVerifier(t *testing.T) (*auth.Verifier, *auth.TokenService, *models.User) {
	t.Helper()
	users := mock.NewUserRepository()
	user := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleAdmin}
	require.NoError(t, user.SetPassword("hunter22"))
	user.BeforeCreate()
	require.NoError(t, users.Create(user))
	tokens := auth.NewTokenService("secret", time.Hour)
	return auth.NewVerifier(tokens, users), tokens, user
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	verifier, _, _ := setupVerifier(t)
	var got *auth.Identity = &auth.Identity{ID: -1}

	handler := Authenticate(verifier)(echoIdentity(t, &got))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got)
}

func TestAuthenticateResolvesBearer(t *testing.T) {
	verifier, tokens, user := setupVerifier(t)
	credential, err := tokens.Issue(user)
	require.NoError(t, err)

	var got *auth.Identity
	handler := Authenticate(verifier)(echoIdentity(t, &got))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+credential)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsAdmin())
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	verifier, _, _ := setupVerifier(t)

	handler := Authenticate(verifier)(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsNonBearer(t *testing.T) {
	verifier, _, _ := setupVerifier(t)

	handler := Authenticate(verifier)(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser(t *testing.T) {
	w := httptest.NewRecorder()
	RequireUser(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &auth.Identity{ID: 1, Role: models.RoleUser}))
	w = httptest.NewRecorder()
	RequireUser(okHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	// Anonymous gets 401, an ordinary user 403, an admin through.
	w := httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &auth.Identity{ID: 1, Role: models.RoleUser}))
	w = httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), &auth.Identity{ID: 2, Role: models.RoleAdmin}))
	w = httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovererConvertsPanic(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
