package metadata

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"estatehub/pkg/requestcontext"
)

// MaxXFFHeaderLength bounds X-Forwarded-For / X-Real-IP values we are willing to parse.
const MaxXFFHeaderLength = 500

// Config holds configuration for the metadata middleware.
type Config struct {
	// TrustedProxies may set X-Forwarded-For. Empty means XFF is never trusted.
	TrustedProxies []netip.Prefix
}

// ParseTrustedProxies parses CIDR strings from configuration. Bare addresses
// are accepted as single-host prefixes.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		out = append(out, prefix)
	}
	return out, nil
}

// Middleware resolves client metadata with configurable trusted proxies.
type Middleware struct {
	config Config
}

func NewMiddleware(cfg Config) *Middleware {
	return &Middleware{config: cfg}
}

// Handler stores the client IP, raw User-Agent and the parsed device class and
// browser name in the request context. Property view tracking reads them.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		device, browser := DescribeUserAgent(ua)

		ctx := requestcontext.WithClientMetadata(r.Context(), m.clientIP(r), ua)
		ctx = requestcontext.WithDevice(ctx, device, browser)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DescribeUserAgent classifies a User-Agent into a device class
// (desktop, mobile, bot, unknown) and a browser name.
func DescribeUserAgent(raw string) (device, browser string) {
	if strings.TrimSpace(raw) == "" {
		return "unknown", "unknown"
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	if name == "" {
		name = "unknown"
	}
	switch {
	case ua.Bot():
		return "bot", name
	case ua.Mobile():
		return "mobile", name
	default:
		return "desktop", name
	}
}

func (m *Middleware) clientIP(r *http.Request) string {
	remoteIP := parseRemoteAddr(r.RemoteAddr)
	if remoteIP == "" {
		return "unknown"
	}
	if !m.isTrustedProxy(remoteIP) {
		return remoteIP
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && len(xri) <= MaxXFFHeaderLength {
			if _, err := netip.ParseAddr(xri); err == nil {
				return xri
			}
		}
		return remoteIP
	}
	if len(xff) > MaxXFFHeaderLength {
		return remoteIP
	}

	// First hop in the chain is the original client.
	first, _, _ := strings.Cut(xff, ",")
	first = strings.TrimSpace(first)
	if _, err := netip.ParseAddr(first); err != nil {
		return remoteIP
	}
	return first
}

func (m *Middleware) isTrustedProxy(ip string) bool {
	if len(m.config.TrustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range m.config.TrustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseRemoteAddr strips the port from RemoteAddr, handling bracketed IPv6.
func parseRemoteAddr(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		return ap.Addr().String()
	}
	if addr, err := netip.ParseAddr(strings.Trim(remoteAddr, "[]")); err == nil {
		return addr.String()
	}
	return ""
}
