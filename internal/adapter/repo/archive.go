package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fundledger/internal/domain"
	"fundledger/internal/ledger"
	"fundledger/internal/sqlinline"
)

// Archive projects committed ledger events into PostgreSQL and replays them
// at boot. The in-memory ledger stays authoritative: archive write failures
// are logged, never propagated back into the mutating call.
type Archive struct {
	campaigns *CampaignRepositoryPG
	donations *DonationRepositoryPG
	admins    *AdminRepositoryPG
	events    *EventRepositoryPG
	db        DBTX
	log       zerolog.Logger
}

// NewArchive wires the archive repositories over one connection source.
func NewArchive(db DBTX, log zerolog.Logger) *Archive {
	return &Archive{
		campaigns: NewCampaignRepository(db),
		donations: NewDonationRepository(db),
		admins:    NewAdminRepository(db),
		events:    NewEventRepository(db),
		db:        db,
		log:       log,
	}
}

// EnsureSchema creates the archive tables when missing.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, sqlinline.QSchema); err != nil {
		return fmt.Errorf("ensure archive schema: %w", err)
	}
	return nil
}

// Load returns the archived state for ledger replay.
func (a *Archive) Load(ctx context.Context) ([]domain.Campaign, []domain.Donation, map[domain.Identity]bool, error) {
	campaigns, err := a.campaigns.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	donations, err := a.donations.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	admins, err := a.admins.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return campaigns, donations, admins, nil
}

// ListRecentDonations backs the public recent-donations endpoint.
func (a *Archive) ListRecentDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	return a.donations.ListRecent(ctx, limit)
}

// Record implements ledger.Sink. Every event lands in the audit table;
// campaign and donation events additionally refresh their projection rows.
func (a *Archive) Record(ctx context.Context, ev ledger.Event) {
	if err := a.events.Insert(ctx, ev); err != nil {
		a.log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("archive: event insert failed")
	}

	var err error
	switch ev.Kind {
	case ledger.EventCampaignCreated, ledger.EventCampaignUpdated, ledger.EventCampaignDeleted:
		if ev.Campaign != nil {
			err = a.campaigns.Upsert(ctx, *ev.Campaign)
		}
	case ledger.EventDonationReceived:
		err = a.donations.Insert(ctx, domain.Donation{
			CampaignID: ev.CampaignID,
			Donor:      ev.Donor,
			Amount:     ev.Amount,
			Timestamp:  ev.Timestamp,
		})
	case ledger.EventDonationTransferred:
		// The received event already updated the donation projection; the
		// campaign row needs its collected amount refreshed.
		err = a.refreshCampaignAmount(ctx, ev)
	case ledger.EventAdminUpdated:
		err = a.admins.SetFlag(ctx, ev.Recipient, ev.Enabled)
	}
	if err != nil {
		a.log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("archive: projection update failed")
	}
}

const qBumpCampaignAmount = `--sql 0a7f3d2e-6c15-48b9-9e42-d1b2c3a4f560
update campaigns
set amount_collected = amount_collected + $2::numeric, updated_at = now()
where id = $1::bigint;
`

func (a *Archive) refreshCampaignAmount(ctx context.Context, ev ledger.Event) error {
	if ev.Amount == nil {
		return nil
	}
	if _, err := a.db.Exec(ctx, qBumpCampaignAmount, ev.CampaignID, ev.Amount.String()); err != nil {
		return fmt.Errorf("bump campaign %d amount: %w", ev.CampaignID, err)
	}
	return nil
}
