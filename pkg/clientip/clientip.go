package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers consulted before RemoteAddr, in order.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// FromRequest returns the client address of r. Proxy headers win over
// RemoteAddr; for X-Forwarded-For the first valid entry is used. Only
// deploy behind a proxy that overwrites these headers. Returns "" when no
// valid address is found.
func FromRequest(r *http.Request) string {
	for _, name := range proxyHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// normalize returns the canonical form of s, or "" if s is not an IP.
func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
