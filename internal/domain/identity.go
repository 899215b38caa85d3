package domain

import "golang.org/x/text/cases"

// Identity is an opaque caller identity, typically a wallet address.
// Comparisons are case-insensitive: the same address may arrive checksummed
// from one client and lowercased from another.
type Identity string

// Normalize returns the canonical, case-folded form of the identity.
func (i Identity) Normalize() Identity {
	return Identity(cases.Fold().String(string(i)))
}

// IsZero reports whether the identity is empty.
func (i Identity) IsZero() bool { return i == "" }

// Equal compares two identities after normalization.
func (i Identity) Equal(other Identity) bool {
	return i.Normalize() == other.Normalize()
}

// Short returns an abbreviated identity for logs and ledger displays,
// e.g. 0xabc123...89ab.
func (i Identity) Short() string {
	s := string(i)
	if len(s) <= 12 {
		return s
	}
	return s[:8] + "..." + s[len(s)-4:]
}
