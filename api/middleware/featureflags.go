// ABOUTME: Feature flag middleware that exposes the deployment's flag manager
// ABOUTME: Makes flag state visible to handlers and services via request context

package middleware

import (
	"net/http"

	"link-extractor-api/pkg/featureflags"
)

// FeatureFlagMiddleware injects the flag manager into each request's
// context so downstream services honor the deployment's kill switches.
func FeatureFlagMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := featureflags.WithManager(r.Context(), manager)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
