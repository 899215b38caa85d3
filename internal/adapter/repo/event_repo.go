package repo

import (
	"context"
	"fmt"

	"fundledger/internal/ledger"
	"fundledger/internal/sqlinline"
)

// EventRepositoryPG appends ledger events to the audit table.
type EventRepositoryPG struct {
	db DBTX
}

// NewEventRepository creates a new event audit repo.
func NewEventRepository(db DBTX) *EventRepositoryPG {
	return &EventRepositoryPG{db: db}
}

// Insert appends the event row.
func (r *EventRepositoryPG) Insert(ctx context.Context, ev ledger.Event) error {
	amount := ""
	if ev.Amount != nil {
		amount = ev.Amount.String()
	}
	_, err := r.db.Exec(ctx, sqlinline.QInsertLedgerEvent,
		ev.ID, string(ev.Kind), string(ev.Actor), ev.CampaignID,
		string(ev.Donor), string(ev.Recipient), amount, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("insert ledger event %s: %w", ev.Kind, err)
	}
	return nil
}
