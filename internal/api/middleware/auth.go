package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"keyrelay/internal/identity"
	identityModels "keyrelay/internal/identity/model"
)

type contextKey string

const identityContextKey contextKey = "identity"

// identityHeader carries the username resolved by the external
// authentication layer fronting this service. The core trusts it; it never
// authenticates credentials itself.
const identityHeader = "X-Authenticated-User"

// Auth resolves the authenticated caller into an Identity and stores it on
// the request context. Identities are provisioned on first sight.
type Auth struct {
	identities identity.IdentityRepository
}

func NewAuth(identities identity.IdentityRepository) *Auth {
	return &Auth{identities: identities}
}

func (a *Auth) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(identityHeader)
		if username == "" {
			jsonError(w, http.StatusUnauthorized, "missing authenticated user")
			return
		}

		ident, err := a.identities.GetOrCreateByUsername(r.Context(), username)
		if err != nil {
			jsonError(w, http.StatusServiceUnavailable, "identity resolution failed")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext retrieves the authenticated identity from the request
// context, or nil outside an authenticated route.
func IdentityFromContext(ctx context.Context) *identityModels.Identity {
	ident, ok := ctx.Value(identityContextKey).(*identityModels.Identity)
	if !ok {
		return nil
	}
	return ident
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
