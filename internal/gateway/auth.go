package gateway

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

// bearerAuth rejects requests that do not carry token as a Bearer
// credential. Comparison is constant-time. Rejections are counted under the
// "unauthorized" failure reason.
func bearerAuth(token string, metrics *Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || !constantTimeEqual(got, token) {
				logger.Warn("rejected unauthenticated request",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
				)
				metrics.RecordFailure("unauthorized")
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
