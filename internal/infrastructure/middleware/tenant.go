package middleware

import (
	"net/http"
	"strings"

	"commerce-adapter-layer/internal/domain"
)

// publicPrefixes are served without tenant identification: health and docs
// for monitoring, OAuth callbacks and webhooks because the platform calling
// them cannot send our headers (those routes carry the tenant in the URL or
// in a stored session instead).
var publicPrefixes = []string{
	"/health",
	"/metrics",
	"/swagger/",
	"/auth/",
	"/webhooks/",
}

// TenantMiddleware extracts the project ID and environment from the
// X-Project-ID and X-Environment headers and stores them in the request
// context. Requests to non-public routes without a project ID are rejected.
func TenantMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPrefixes {
				if r.URL.Path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			projectID := r.Header.Get("X-Project-ID")
			if projectID == "" {
				http.Error(w, "X-Project-ID header is required", http.StatusBadRequest)
				return
			}
			environment := r.Header.Get("X-Environment")
			if environment == "" {
				environment = domain.DefaultEnvironment
			}

			ctx := domain.WithProjectID(r.Context(), projectID)
			ctx = domain.WithEnvironment(ctx, environment)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
