package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

type clientIPKey struct{}

// ProxyTrust decides whether forwarding headers on a request can be believed.
// With no prefixes every peer is trusted.
type ProxyTrust struct {
	prefixes []netip.Prefix
}

// NewProxyTrust accepts CIDR ranges or bare addresses.
func NewProxyTrust(entries []string) (*ProxyTrust, error) {
	t := &ProxyTrust{}
	for _, raw := range entries {
		p, err := ParseProxyEntry(raw)
		if err != nil {
			return nil, err
		}
		t.prefixes = append(t.prefixes, p)
	}
	return t, nil
}

func ParseProxyEntry(raw string) (netip.Prefix, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		p, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("trusted proxy %q: %w", raw, err)
	}
	return netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()), nil
}

func (t *ProxyTrust) trusts(peer string) bool {
	if len(t.prefixes) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve stores the client address on the request context so that the
// limiter, the request log and the handlers agree on one value.
func (t *ProxyTrust) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		peer := remoteHost(r)
		ip := peer
		if t.trusts(peer) {
			ip = forwardedClient(r, peer)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIPKey{}, ip)))
	})
}

// ClientIP returns the address resolved by ProxyTrust.Resolve. Without it the
// first X-Forwarded-For entry wins, then X-Real-IP, then the host part of the
// remote address.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok {
		return ip
	}
	return forwardedClient(r, remoteHost(r))
}

func forwardedClient(r *http.Request, peer string) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return peer
}

func remoteHost(r *http.Request) string {
	if r.RemoteAddr == "" {
		return unknownClient
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if host == "" {
		return unknownClient
	}
	return host
}
