// Package privacy keeps personal data out of logs.
package privacy

import (
	"net/netip"
	"strings"
)

// AnonymizeIP zeroes the host portion of an address: IPv4 keeps its /24,
// IPv6 keeps its /48. It returns "unknown" for empty input and "invalid"
// when the value does not parse.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap().WithZone("")

	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

// MaskPhone keeps the last three digits.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 3 {
		return "***"
	}
	return "***" + phone[len(phone)-3:]
}

// MaskIdentifier masks an email or a phone number, whichever it looks like.
func MaskIdentifier(identifier string) string {
	if strings.Contains(identifier, "@") {
		return MaskEmail(identifier)
	}
	return MaskPhone(identifier)
}
