// Package aggregate derives dashboard views from ledger reads: totals,
// per-campaign progress, time-bucketed timelines and the paginated merged
// ledger view.
//
// The engine holds no state and no locks; every view is recomputed from the
// current ledger on each call. Because it issues multiple independent reads
// (all campaigns, then donations per campaign), a mutation landing between
// reads can produce a view that matches no single ledger state. That is an
// accepted, bounded inconsistency window, not a correctness bug.
package aggregate

import (
	"fmt"
	"math/big"
	"time"

	"fundledger/internal/domain"
)

// CampaignSource exposes the campaign read contract the engine depends on.
type CampaignSource interface {
	AllCampaigns() []domain.Campaign
}

// DonationSource exposes per-campaign donation reads.
type DonationSource interface {
	Donators(id int64) []domain.Donation
}

// AdminSource answers live admin lookups for ledger-view tagging. Tags
// reflect admin status at query time, not at donation time, so old rows can
// be relabelled when flags change.
type AdminSource interface {
	IsAdmin(identity domain.Identity) bool
}

// Clock supplies the reference time for deadline and window comparisons.
type Clock interface {
	Now() time.Time
}

// Engine computes read-side views. It has no authority and performs no
// mutations.
type Engine struct {
	campaigns CampaignSource
	donations DonationSource
	admins    AdminSource
	clock     Clock
}

// New wires an engine over the ledger's read interfaces.
func New(campaigns CampaignSource, donations DonationSource, admins AdminSource, clock Clock) *Engine {
	return &Engine{campaigns: campaigns, donations: donations, admins: admins, clock: clock}
}

// ChartRow is one bar of the per-campaign raised chart. Deleted campaigns
// stay in the chart with a tagged label.
type ChartRow struct {
	CampaignID int64
	Label      string
	Raised     *big.Int
	Deleted    bool
}

// Totals are the dashboard headline numbers. They are computed over every
// campaign ever created, so deleted campaigns still contribute to history.
type Totals struct {
	TotalRaised        *big.Int
	UniqueDonors       int
	ActiveCampaigns    int
	CompletedCampaigns int
	Chart              []ChartRow
}

// Totals sums raised amounts, counts unique donors across all campaigns
// (identities normalized), and splits campaigns into active and completed
// by deadline.
func (e *Engine) Totals() Totals {
	now := e.clock.Now()
	out := Totals{TotalRaised: new(big.Int)}
	donors := make(map[domain.Identity]struct{})

	for _, c := range e.campaigns.AllCampaigns() {
		out.TotalRaised.Add(out.TotalRaised, c.AmountCollected)

		label := c.Title
		if c.Deleted {
			label += " (Deleted)"
		}
		out.Chart = append(out.Chart, ChartRow{
			CampaignID: c.ID,
			Label:      label,
			Raised:     new(big.Int).Set(c.AmountCollected),
			Deleted:    c.Deleted,
		})

		if c.Deadline.After(now) {
			out.ActiveCampaigns++
		} else {
			out.CompletedCampaigns++
		}

		for _, d := range e.donations.Donators(c.ID) {
			donors[d.Donor.Normalize()] = struct{}{}
		}
	}
	out.UniqueDonors = len(donors)
	return out
}

// Progress is the funding state of one campaign.
type Progress struct {
	CampaignID int64
	Target     *big.Int
	Raised     *big.Int
	Remaining  *big.Int
	Deleted    bool
}

// Progress reports raised and remaining amounts for a campaign, deleted or
// not. Remaining is clamped at zero once a campaign overshoots its target.
func (e *Engine) Progress(id int64) (Progress, error) {
	for _, c := range e.campaigns.AllCampaigns() {
		if c.ID != id {
			continue
		}
		remaining := new(big.Int).Sub(c.Target, c.AmountCollected)
		if remaining.Sign() < 0 {
			remaining.SetInt64(0)
		}
		return Progress{
			CampaignID: id,
			Target:     c.Target,
			Raised:     c.AmountCollected,
			Remaining:  remaining,
			Deleted:    c.Deleted,
		}, nil
	}
	return Progress{}, fmt.Errorf("progress for campaign %d: %w", id, domain.ErrNotFound)
}
