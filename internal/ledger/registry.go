package ledger

import (
	"context"
	"fmt"

	"fundledger/internal/domain"
)

// The admin registry is the identity-to-privilege table every other
// operation authorizes through. The deploying identity is an implicit admin
// from genesis; flags are mutable by existing admins only.

// IsAdmin reports whether the identity currently holds the admin flag.
// Pure read, never fails.
func (l *Ledger) IsAdmin(identity domain.Identity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.admins[identity.Normalize()]
}

// SetAdmin grants or revokes the admin flag for an identity. The caller must
// be an admin. Nothing stops an admin revoking itself; the last admin can
// lock everyone out, so operators should grant before revoking.
func (l *Ledger) SetAdmin(ctx context.Context, caller, identity domain.Identity, enabled bool) error {
	l.mu.Lock()
	if err := l.checkMutable(ctx); err != nil {
		l.mu.Unlock()
		return err
	}
	if !l.admins[caller.Normalize()] {
		l.mu.Unlock()
		return fmt.Errorf("set admin: %w", domain.ErrUnauthorized)
	}
	if identity.IsZero() {
		l.mu.Unlock()
		return fmt.Errorf("set admin: %w", domain.ErrIdentityInvalid)
	}
	l.admins[identity.Normalize()] = enabled
	now := l.clock.Now()
	l.mu.Unlock()

	ev := newEvent(EventAdminUpdated, caller, now)
	ev.Recipient = identity
	ev.Enabled = enabled
	l.emit(ctx, ev)
	return nil
}
