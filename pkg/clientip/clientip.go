package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP for logging. X-Forwarded-For is only
// consulted when the service sits behind a proxy that sets it (TRUST_PROXY);
// otherwise a client could forge the logged address.
func FromRequest(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if ip := firstForwarded(r.Header.Get("X-Forwarded-For")); ip != "" {
			return ip
		}
	}
	return remoteIP(r.RemoteAddr)
}

func firstForwarded(header string) string {
	if header == "" {
		return ""
	}
	first := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	if ip := net.ParseIP(first); ip != nil {
		return ip.String()
	}
	return ""
}

func remoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return strings.TrimSpace(host)
}
