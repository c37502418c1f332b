package middleware

import (
	"context"
	"net/http"

	"blogforge/internal/common"
	"blogforge/internal/common/security"
	"blogforge/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// ResolveIdentity extracts the caller's identity from a verified token, if
// one is present. jwtauth.Verifier has already parsed the Authorization
// header; a missing, invalid or claim-incomplete token resolves to nothing.
func ResolveIdentity(ctx context.Context) (model.Identity, bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return model.Identity{}, false
	}

	accountID, err := security.GetAccountIDFromClaims(claims)
	if err != nil {
		return model.Identity{}, false
	}
	email, err := security.GetEmailFromClaims(claims)
	if err != nil {
		return model.Identity{}, false
	}
	username, err := security.GetUsernameFromClaims(claims)
	if err != nil {
		return model.Identity{}, false
	}

	return model.Identity{ID: accountID, Username: username, Email: email}, true
}

// Authenticator gates every ownership-checked route: without a resolvable
// identity the request ends here with the 401 envelope the clients expect.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := ResolveIdentity(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(model.Identity)
	return identity, ok
}
