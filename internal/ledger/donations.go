package ledger

import (
	"context"
	"fmt"
	"math/big"

	"fundledger/internal/domain"
)

// Donate appends a donation and transfers the amount to the campaign owner.
//
// Ordering follows checks-effects-interactions with the effect deferred:
// inputs are validated, the reentrancy guard is taken, the external transfer
// runs, and only after it succeeds is the staged donation applied under the
// lock. Reads therefore never observe a donation whose transfer has not
// committed. The guard blocks every mutating entry point for the duration of
// the transfer (each fails with ErrReentrancy), so the validated campaign
// cannot be deleted or otherwise invalidated before the commit.
func (l *Ledger) Donate(ctx context.Context, donor domain.Identity, id int64, amount *big.Int) error {
	l.mu.Lock()
	if err := l.checkMutable(ctx); err != nil {
		l.mu.Unlock()
		return err
	}
	if donor.IsZero() {
		l.mu.Unlock()
		return fmt.Errorf("donate to campaign %d: %w", id, domain.ErrIdentityInvalid)
	}
	if amount == nil || amount.Sign() <= 0 {
		l.mu.Unlock()
		return fmt.Errorf("donate to campaign %d: %w", id, domain.ErrZeroAmount)
	}
	c := l.lookup(id)
	if c == nil {
		l.mu.Unlock()
		return fmt.Errorf("donate to campaign %d: %w", id, domain.ErrNotFound)
	}
	if c.Deleted {
		l.mu.Unlock()
		return fmt.Errorf("donate to campaign %d: %w", id, domain.ErrCampaignDeleted)
	}

	now := l.clock.Now()
	d := domain.Donation{
		CampaignID: id,
		Donor:      donor,
		Amount:     new(big.Int).Set(amount),
		Timestamp:  now,
	}
	owner := c.Owner
	l.transferring = true
	l.mu.Unlock()

	transferErr := l.transfer.Transfer(ctx, donor, owner, new(big.Int).Set(amount))

	l.mu.Lock()
	l.transferring = false
	if transferErr != nil {
		l.mu.Unlock()
		return fmt.Errorf("donate to campaign %d: %w: %v", id, domain.ErrTransferFailed, transferErr)
	}
	l.donations[id] = append(l.donations[id], d)
	c.AmountCollected.Add(c.AmountCollected, d.Amount)
	l.mu.Unlock()

	received := newEvent(EventDonationReceived, donor, now)
	received.CampaignID = id
	received.Donor = donor
	received.Amount = new(big.Int).Set(amount)
	l.emit(ctx, received)

	transferred := newEvent(EventDonationTransferred, donor, now)
	transferred.CampaignID = id
	transferred.Donor = donor
	transferred.Recipient = owner
	transferred.Amount = new(big.Int).Set(amount)
	l.emit(ctx, transferred)
	return nil
}

// Donators returns all donations recorded against the campaign in insertion
// order, including those made before the campaign was deleted. Unknown ids
// yield an empty slice. No auth.
func (l *Ledger) Donators(id int64) []domain.Donation {
	l.mu.Lock()
	defer l.mu.Unlock()

	ds := l.donations[id]
	out := make([]domain.Donation, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Clone())
	}
	return out
}
