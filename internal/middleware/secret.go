package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// CronSecretHeader carries the shared secret the cron caller must present.
const CronSecretHeader = "X-Cron-Secret"

// RequireCronSecret gates a handler behind a shared-secret header check. The
// comparison is constant-time. With no secret configured every caller is
// refused: the gate fails closed.
func RequireCronSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				unauthorized(w, "cron secret not configured")
				return
			}

			got := r.Header.Get(CronSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				unauthorized(w, "invalid cron secret")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": detail})
}
