package repo

import (
	"context"
	"fmt"

	"fundledger/internal/domain"
	"fundledger/internal/sqlinline"
)

// DonationRepositoryPG archives donation records in PostgreSQL. Donations
// are append-only; there is no update or delete path.
type DonationRepositoryPG struct {
	db DBTX
}

// NewDonationRepository creates a new donation archive repo.
func NewDonationRepository(db DBTX) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Insert appends a donation row.
func (r *DonationRepositoryPG) Insert(ctx context.Context, d domain.Donation) error {
	_, err := r.db.Exec(ctx, sqlinline.QInsertDonation,
		d.CampaignID, string(d.Donor), d.Amount.String(), d.Timestamp)
	if err != nil {
		return fmt.Errorf("insert donation for campaign %d: %w", d.CampaignID, err)
	}
	return nil
}

// List returns every archived donation in insertion order, for boot replay.
func (r *DonationRepositoryPG) List(ctx context.Context) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonations)
}

// ListRecent returns the newest donations limited by the input value.
func (r *DonationRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListRecentDonations, limit)
}

func (r *DonationRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var (
			d      domain.Donation
			donor  string
			amount string
		)
		if err := rows.Scan(&d.CampaignID, &donor, &amount, &d.Timestamp); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		d.Donor = domain.Identity(donor)
		if d.Amount, err = domain.ParseRawUnits(amount); err != nil {
			return nil, fmt.Errorf("donation amount: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return items, nil
}
