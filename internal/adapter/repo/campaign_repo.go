package repo

import (
	"context"
	"fmt"

	"fundledger/internal/domain"
	"fundledger/internal/sqlinline"
)

// CampaignRepositoryPG archives campaign records in PostgreSQL.
type CampaignRepositoryPG struct {
	db DBTX
}

// NewCampaignRepository creates a new campaign archive repo.
func NewCampaignRepository(db DBTX) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{db: db}
}

// Upsert writes the campaign snapshot, inserting or refreshing the row.
func (r *CampaignRepositoryPG) Upsert(ctx context.Context, c domain.Campaign) error {
	_, err := r.db.Exec(ctx, sqlinline.QUpsertCampaign,
		c.ID, string(c.Owner), c.Title, c.Description,
		c.Target.String(), c.Deadline, c.AmountCollected.String(), c.Deleted)
	if err != nil {
		return fmt.Errorf("upsert campaign %d: %w", c.ID, err)
	}
	return nil
}

// List returns every archived campaign in id order, for boot replay.
func (r *CampaignRepositoryPG) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		var (
			c              domain.Campaign
			owner          string
			target, amount string
		)
		if err := rows.Scan(&c.ID, &owner, &c.Title, &c.Description, &target, &c.Deadline, &amount, &c.Deleted); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c.Owner = domain.Identity(owner)
		if c.Target, err = domain.ParseRawUnits(target); err != nil {
			return nil, fmt.Errorf("campaign %d target: %w", c.ID, err)
		}
		if c.AmountCollected, err = domain.ParseRawUnits(amount); err != nil {
			return nil, fmt.Errorf("campaign %d amount: %w", c.ID, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return items, nil
}
