package domain

import "testing"

func TestIdentityNormalize(t *testing.T) {
	a := Identity("0xAbCdEf")
	b := Identity("0xabcdef")
	if a.Normalize() != b.Normalize() {
		t.Fatalf("Normalize() mismatch: %q vs %q", a.Normalize(), b.Normalize())
	}
	if !a.Equal(b) {
		t.Fatalf("Equal() = false for case variants")
	}
}

func TestIdentityShort(t *testing.T) {
	long := Identity("0x1234567890abcdef1234567890abcdef12345678")
	if got := long.Short(); got != "0x123456...5678" {
		t.Fatalf("Short() = %q", got)
	}
	short := Identity("0xabc")
	if got := short.Short(); got != "0xabc" {
		t.Fatalf("Short() = %q, want unchanged", got)
	}
}
