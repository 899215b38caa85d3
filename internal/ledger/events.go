package ledger

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fundledger/internal/domain"
)

// EventKind labels a committed ledger mutation.
type EventKind string

const (
	EventCampaignCreated     EventKind = "campaign.created"
	EventCampaignUpdated     EventKind = "campaign.updated"
	EventCampaignDeleted     EventKind = "campaign.deleted"
	EventDonationReceived    EventKind = "donation.received"
	EventDonationTransferred EventKind = "donation.transferred"
	EventAdminUpdated        EventKind = "admin.updated"
)

// Event describes a committed mutation for observers and aggregators.
// Events are emitted after the mutation is final; a rolled-back donation
// never produces one.
type Event struct {
	ID         string
	Kind       EventKind
	Actor      domain.Identity
	CampaignID int64
	Donor      domain.Identity
	Recipient  domain.Identity
	Amount     *big.Int
	Enabled    bool // admin.updated only
	Timestamp  time.Time

	// Campaign carries a snapshot of the affected campaign for campaign.*
	// events so sinks can persist it without reading back into the ledger.
	Campaign *domain.Campaign
}

// Sink receives committed ledger events. Sinks must not call back into
// mutating ledger operations.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

func newEvent(kind EventKind, actor domain.Identity, at time.Time) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Actor: actor, Timestamp: at}
}

func (l *Ledger) emit(ctx context.Context, ev Event) {
	for _, sink := range l.sinks {
		sink.Record(ctx, ev)
	}
}

// LogSink writes every ledger event to a zerolog logger.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink returns a Sink logging events at info level.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Record logs the event.
func (s *LogSink) Record(_ context.Context, ev Event) {
	e := s.log.Info().
		Str("event_id", ev.ID).
		Str("kind", string(ev.Kind)).
		Str("actor", ev.Actor.Short()).
		Int64("campaign_id", ev.CampaignID)
	if ev.Amount != nil {
		e = e.Str("amount", ev.Amount.String())
	}
	if !ev.Donor.IsZero() {
		e = e.Str("donor", ev.Donor.Short())
	}
	if !ev.Recipient.IsZero() {
		e = e.Str("recipient", ev.Recipient.Short())
	}
	e.Time("at", ev.Timestamp).Msg("ledger event")
}
