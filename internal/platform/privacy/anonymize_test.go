package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4 keeps /24", "192.168.1.47", "192.168.1.0"},
		{"ipv4 mapped ipv6", "::ffff:10.0.0.9", "10.0.0.0"},
		{"ipv6 keeps /48", "2001:db8:85a3::8a2e:370:7334", "2001:db8:85a3::"},
		{"empty", "", "unknown"},
		{"literal unknown", "unknown", "unknown"},
		{"garbage", "not-an-ip", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnonymizeIP(tt.in))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***789", MaskPhone("+2348012345789"))
	assert.Equal(t, "***", MaskPhone("12"))
}

func TestMaskIdentifier(t *testing.T) {
	assert.Equal(t, "a***@b.io", MaskIdentifier("ab@b.io"))
	assert.Equal(t, "***456", MaskIdentifier("0800123456"))
}
