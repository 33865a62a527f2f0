package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"inkwell/app/auth"
	"inkwell/app/errs"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFrom returns the resolved actor for the request, or nil for
// an anonymous caller.
func IdentityFrom(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return ident
}

// WithIdentity attaches an identity to the context. Exposed for tests.
func WithIdentity(ctx context.Context, ident *auth.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, ident)
}

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic: %v", err)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves an optional bearer credential into an identity
// stored on the request context. Requests without an Authorization
// header continue as anonymous; a credential that fails verification
// ends the request here.
func Authenticate(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			ident, err := verifier.Verify(strings.TrimSpace(header[7:]))
			if err != nil {
				writeError(w, errs.HTTPStatus(err), err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose actor lacks the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFrom(r.Context())
		if ident == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !ident.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
