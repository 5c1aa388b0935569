package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the client address, preferring proxy headers over the remote address.
// Loopback and docker bridge gateway addresses are reported as "localhost".
func ClientIP(r *http.Request) (string, error) {
	addr := r.Header.Get("X-Real-Ip")
	if addr == "" {
		// first hop is the client
		addr, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		addr = strings.TrimSpace(addr)
	}
	if addr == "" {
		addr = r.RemoteAddr
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	ip := net.ParseIP(addr)
	if ip == nil {
		return "", fmt.Errorf("invalid client ip [%s]", addr)
	}
	if isLocalIP(ip) {
		return "localhost", nil
	}
	return ip.String(), nil
}

// docker bridge gateways look like 172.x.0.1
func isLocalIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}
	v4 := ip.To4()
	return v4 != nil && v4[0] == 172 && v4[2] == 0 && v4[3] == 1
}
