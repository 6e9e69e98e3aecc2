package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

// authenticate gates protected routes. It reads the x-auth header, resolves
// the session through the account service, and attaches the identity and the
// presented token to the request context. Failures answer 401 with an empty
// body, identical for missing, forged, and revoked tokens; the downstream
// handler is never invoked.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := r.Header.Get(common.SessionTokenHeaderName)
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, err := s.accounts.ResolveSession(r.Context(), token)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFromContext returns the user and token attached by authenticate.
func identityFromContext(ctx context.Context) (*models.User, string, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil, "", false
	}
	token, ok := ctx.Value(tokenKey).(string)
	if !ok {
		return nil, "", false
	}
	return user, token, true
}
