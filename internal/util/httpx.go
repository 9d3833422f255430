package util

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP prefers the trusted header (when configured and set by
// a fronting proxy) over the socket address.
func RealClientIP(r *http.Request, trustedHeader string) string {
	if trustedHeader != "" {
		if ip := strings.TrimSpace(r.Header.Get(trustedHeader)); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
