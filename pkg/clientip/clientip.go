// Package clientip resolves the address a request came from. Proxy headers such as
// X-Forwarded-For are ignored: the API is reached directly, so they are client-controlled.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the canonical IP of r.RemoteAddr, so that "::1" and "[::1]:443"
// map to the same limiter key. Unparseable addresses are returned trimmed as-is.
func FromRequest(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return host
}
