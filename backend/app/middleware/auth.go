package middleware

import (
	"net/http"
	"strings"

	"feedgate/backend/app/cache"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/global"
)

const DefaultTokenHeader = "authToken"

// Auth guards routes with scoped tokens. Revoked may be nil, in which case
// deleted accounts keep working until their tokens expire.
type Auth struct {
	Signer  *jwtutil.Signer
	Revoked cache.Store
	Header  string
}

func (a *Auth) TokenHeader() string {
	if a.Header == "" {
		return DefaultTokenHeader
	}
	return a.Header
}

func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return a.require(jwtutil.ScopeUser, next)
}

func (a *Auth) RequireModerator(next http.Handler) http.Handler {
	return a.require(jwtutil.ScopeModerator, next)
}

func (a *Auth) token(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(a.TokenHeader())); t != "" {
		return t
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}

func (a *Auth) require(scope jwtutil.Scope, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.token(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "access denied, no token provided")
			return
		}
		claims, err := a.Signer.ParseScoped(token, scope)
		if err != nil {
			global.Logger.Debug().Err(err).Str("scope", string(scope)).Msg("token rejected")
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if a.Revoked != nil {
			revoked, err := a.Revoked.IsRevoked(r.Context(), cache.RevokedKey(string(scope), claims.PrincipalID()))
			if err != nil {
				global.Logger.Error().Err(err).Msg("revocation lookup failed")
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if revoked {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
