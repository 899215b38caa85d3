package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Amounts are integers in a fixed smallest unit, wei-style. ParseUnits and
// FormatUnits convert between that scale and the decimal display unit shown
// to consumers.

// ErrAmountInvalid reports a malformed or out-of-scale amount string.
var ErrAmountInvalid = errors.New("invalid amount")

// ParseUnits converts a decimal display string ("1.5") into smallest units
// at the given scale. Negative values and fractions finer than the scale are
// rejected.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, fmt.Errorf("%w: %q", ErrAmountInvalid, s)
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q exceeds %d decimals", ErrAmountInvalid, s, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAmountInvalid, s)
	}
	return v, nil
}

// ParseRawUnits converts a base-10 smallest-unit string into an amount.
func ParseRawUnits(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrAmountInvalid, s)
	}
	return v, nil
}

// FormatUnits renders smallest units as a decimal display string. Trailing
// fractional zeros are trimmed but one fractional digit is always kept, so
// 10^18 units at scale 18 render as "1.0".
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		v = new(big.Int)
	}
	if decimals <= 0 {
		return v.String()
	}

	sign := ""
	abs := new(big.Int).Abs(v)
	if v.Sign() < 0 {
		sign = "-"
	}

	digits := abs.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	split := len(digits) - decimals
	whole, frac := digits[:split], digits[split:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	return sign + whole + "." + frac
}
