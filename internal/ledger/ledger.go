// Package ledger holds the authoritative record of campaigns and donations.
//
// Mutations run under a serialized model: one mutex guards all writes, and a
// reentrancy flag blocks any mutating entry point invoked while a donation's
// external value transfer is in flight. Reads return deep copies of
// committed state and may run concurrently with mutations.
package ledger

import (
	"context"
	"math/big"
	"sync"

	"fundledger/internal/domain"
)

// Ledger combines the admin registry, the campaign book and the donation
// book behind one serialized mutation surface.
type Ledger struct {
	mu sync.Mutex

	clock    Clock
	transfer Transferer
	sinks    []Sink

	admins    map[domain.Identity]bool
	campaigns []*domain.Campaign
	donations map[int64][]domain.Donation

	// transferring is the reentrancy guard: set for the duration of the
	// external transfer inside Donate, checked at every mutating entry.
	transferring bool
}

// New builds an empty ledger. The genesis identity is an implicit admin.
func New(genesis domain.Identity, clock Clock, transfer Transferer) *Ledger {
	if clock == nil {
		clock = SystemClock{}
	}
	if transfer == nil {
		transfer = TransferFunc(func(context.Context, domain.Identity, domain.Identity, *big.Int) error {
			return nil
		})
	}
	l := &Ledger{
		clock:     clock,
		transfer:  transfer,
		admins:    make(map[domain.Identity]bool),
		donations: make(map[int64][]domain.Donation),
	}
	if !genesis.IsZero() {
		l.admins[genesis.Normalize()] = true
	}
	return l
}

// AddSink registers an event sink. Not safe to call once the ledger is
// serving requests.
func (l *Ledger) AddSink(s Sink) {
	if s != nil {
		l.sinks = append(l.sinks, s)
	}
}

// Restore seeds ledger state from the archive. It bypasses authorization and
// is intended for boot-time replay only: campaigns are placed by their
// original ids, donations appended in the given order.
func (l *Ledger) Restore(campaigns []domain.Campaign, donations []domain.Donation, admins map[domain.Identity]bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range campaigns {
		cc := c.Clone()
		for int64(len(l.campaigns)) <= cc.ID {
			l.campaigns = append(l.campaigns, nil)
		}
		l.campaigns[cc.ID] = &cc
	}
	for _, d := range donations {
		l.donations[d.CampaignID] = append(l.donations[d.CampaignID], d.Clone())
	}
	for id, enabled := range admins {
		l.admins[id.Normalize()] = enabled
	}
}

// checkMutable gates every mutating entry point: a cancelled context aborts
// before any state change, and a call arriving while a transfer holds the
// guard is rejected rather than interleaved. Callers hold l.mu.
func (l *Ledger) checkMutable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.transferring {
		return domain.ErrReentrancy
	}
	return nil
}

// lookup returns the live campaign record for id, or nil. Callers hold l.mu.
func (l *Ledger) lookup(id int64) *domain.Campaign {
	if id < 0 || id >= int64(len(l.campaigns)) {
		return nil
	}
	return l.campaigns[id]
}
