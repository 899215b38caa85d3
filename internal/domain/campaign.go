package domain

import (
	"math/big"
	"time"
)

// Campaign is a funding goal record. IDs are sequential and assigned at
// creation; Deleted only ever transitions false to true.
type Campaign struct {
	ID              int64
	Owner           Identity
	Title           string
	Description     string
	Target          *big.Int
	Deadline        time.Time
	AmountCollected *big.Int
	Deleted         bool
}

// Clone returns a deep copy so callers cannot mutate ledger-owned state
// through shared big.Int pointers.
func (c Campaign) Clone() Campaign {
	out := c
	out.Target = new(big.Int).Set(c.Target)
	out.AmountCollected = new(big.Int).Set(c.AmountCollected)
	return out
}

// Donation is an immutable transfer record against a campaign. Donations are
// append-only and outlive the deletion of their campaign.
type Donation struct {
	CampaignID int64
	Donor      Identity
	Amount     *big.Int
	Timestamp  time.Time
}

// Clone returns a deep copy of the donation.
func (d Donation) Clone() Donation {
	out := d
	out.Amount = new(big.Int).Set(d.Amount)
	return out
}

// CampaignDraft carries the caller-supplied fields of createCampaign.
type CampaignDraft struct {
	Title       string
	Description string
	Target      *big.Int
	Deadline    time.Time
}
