package ledger

import (
	"context"
	"fmt"
	"math/big"

	"fundledger/internal/domain"
)

// CreateCampaign records a new campaign owned by the caller and returns its
// id. Admin only; the deadline must be strictly in the future and the target
// positive. The campaign is visible to reads as soon as this returns.
func (l *Ledger) CreateCampaign(ctx context.Context, caller domain.Identity, draft domain.CampaignDraft) (int64, error) {
	l.mu.Lock()
	if err := l.checkMutable(ctx); err != nil {
		l.mu.Unlock()
		return 0, err
	}
	if !l.admins[caller.Normalize()] {
		l.mu.Unlock()
		return 0, fmt.Errorf("create campaign: %w", domain.ErrUnauthorized)
	}
	if draft.Target == nil || draft.Target.Sign() <= 0 {
		l.mu.Unlock()
		return 0, fmt.Errorf("create campaign: %w", domain.ErrTargetInvalid)
	}
	now := l.clock.Now()
	if !draft.Deadline.After(now) {
		l.mu.Unlock()
		return 0, fmt.Errorf("create campaign: %w", domain.ErrDeadlineInvalid)
	}

	c := &domain.Campaign{
		ID:              int64(len(l.campaigns)),
		Owner:           caller,
		Title:           draft.Title,
		Description:     draft.Description,
		Target:          new(big.Int).Set(draft.Target),
		Deadline:        draft.Deadline,
		AmountCollected: new(big.Int),
	}
	l.campaigns = append(l.campaigns, c)
	snap := c.Clone()
	l.mu.Unlock()

	ev := newEvent(EventCampaignCreated, caller, now)
	ev.CampaignID = snap.ID
	ev.Campaign = &snap
	l.emit(ctx, ev)
	return snap.ID, nil
}

// UpdateCampaign mutates title, description and target in place. Admin only;
// any current admin may edit any campaign, deleted ones included. Deadline,
// collected amount and deletion state are never touched.
func (l *Ledger) UpdateCampaign(ctx context.Context, caller domain.Identity, id int64, title, description string, target *big.Int) error {
	l.mu.Lock()
	if err := l.checkMutable(ctx); err != nil {
		l.mu.Unlock()
		return err
	}
	if !l.admins[caller.Normalize()] {
		l.mu.Unlock()
		return fmt.Errorf("update campaign %d: %w", id, domain.ErrUnauthorized)
	}
	c := l.lookup(id)
	if c == nil {
		l.mu.Unlock()
		return fmt.Errorf("update campaign %d: %w", id, domain.ErrNotFound)
	}
	if target == nil || target.Sign() <= 0 {
		l.mu.Unlock()
		return fmt.Errorf("update campaign %d: %w", id, domain.ErrTargetInvalid)
	}
	c.Title = title
	c.Description = description
	c.Target = new(big.Int).Set(target)
	now := l.clock.Now()
	snap := c.Clone()
	l.mu.Unlock()

	ev := newEvent(EventCampaignUpdated, caller, now)
	ev.CampaignID = id
	ev.Campaign = &snap
	l.emit(ctx, ev)
	return nil
}

// DeleteCampaign soft-deletes a campaign. Admin only. Deleting an already
// deleted campaign fails with ErrAlreadyDeleted rather than no-opping, so a
// stale dashboard double-submit is surfaced instead of swallowed.
func (l *Ledger) DeleteCampaign(ctx context.Context, caller domain.Identity, id int64) error {
	l.mu.Lock()
	if err := l.checkMutable(ctx); err != nil {
		l.mu.Unlock()
		return err
	}
	if !l.admins[caller.Normalize()] {
		l.mu.Unlock()
		return fmt.Errorf("delete campaign %d: %w", id, domain.ErrUnauthorized)
	}
	c := l.lookup(id)
	if c == nil {
		l.mu.Unlock()
		return fmt.Errorf("delete campaign %d: %w", id, domain.ErrNotFound)
	}
	if c.Deleted {
		l.mu.Unlock()
		return fmt.Errorf("delete campaign %d: %w", id, domain.ErrAlreadyDeleted)
	}
	c.Deleted = true
	now := l.clock.Now()
	snap := c.Clone()
	l.mu.Unlock()

	ev := newEvent(EventCampaignDeleted, caller, now)
	ev.CampaignID = id
	ev.Campaign = &snap
	l.emit(ctx, ev)
	return nil
}

// Campaigns returns the non-deleted campaigns with their original ids, so
// gaps appear where deleted entries are skipped. No auth.
func (l *Ledger) Campaigns() []domain.Campaign {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Campaign, 0, len(l.campaigns))
	for _, c := range l.campaigns {
		if c == nil || c.Deleted {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// AllCampaigns returns every campaign ever created, deleted or not. This is
// the canonical source for audit and analytics views.
func (l *Ledger) AllCampaigns() []domain.Campaign {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Campaign, 0, len(l.campaigns))
	for _, c := range l.campaigns {
		if c == nil {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}
