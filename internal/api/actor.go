package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/taskhub/internal/auth/authz"
	"github.com/louisbranch/taskhub/internal/auth/token"
	"github.com/louisbranch/taskhub/internal/platform/httpx"
)

type actorContextKey struct{}

// withActor resolves the bearer credential on every request and stores the
// resulting actor on the context. Resolution never fails the request: a
// missing, malformed, expired, or wrong-typed token simply leaves the caller
// anonymous, and the authorization engine decides what anonymous may do.
func withActor(tokens token.Config) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := authz.Anonymous()
			if raw := bearerToken(r); raw != "" {
				if claims, err := token.Validate(raw, tokens); err == nil {
					actor = authz.Actor{
						UserID:        claims.UserID,
						Role:          claims.Role,
						Authenticated: true,
					}
				}
			}
			ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFromRequest returns the resolved actor, or anonymous when the
// middleware did not run.
func actorFromRequest(r *http.Request) authz.Actor {
	if r == nil {
		return authz.Anonymous()
	}
	actor, ok := r.Context().Value(actorContextKey{}).(authz.Actor)
	if !ok {
		return authz.Anonymous()
	}
	return actor
}

func bearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
