package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AuthMiddleware guards the administrative routes with a static shared
// token. A full user system is out of scope; respondent routes carry no
// authentication at all.
type AuthMiddleware struct {
	adminToken string
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(adminToken string) *AuthMiddleware {
	return &AuthMiddleware{adminToken: adminToken}
}

// RequireAdmin validates the bearer token from the Authorization header
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if m.adminToken == "" {
			http.Error(w, `{"error":"admin access not configured"}`, http.StatusServiceUnavailable)
			return
		}
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
