package middleware

import (
	"net"
	"net/http"
	"strings"
)

// RealIP extracts the client address for a request that crossed the hosting
// platform's reverse proxy. The first entry in X-Forwarded-For is the
// original client; without the header RemoteAddr is the client itself.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
