package aggregate

import (
	"math/big"
	"sort"
	"time"

	"fundledger/internal/domain"
)

// LedgerRow is one donation merged with its campaign's title, owner and
// deletion flag. Admin tags are live lookups at query time.
type LedgerRow struct {
	CampaignID      int64
	CampaignTitle   string
	CampaignDeleted bool
	Donor           domain.Identity
	DonorIsAdmin    bool
	Owner           domain.Identity
	OwnerIsAdmin    bool
	Amount          *big.Int
	Timestamp       time.Time
}

// LedgerPage is a fixed-size page over the merged, time-sorted ledger.
type LedgerPage struct {
	Rows       []LedgerRow
	Number     Page
	Size       PerPage
	TotalRows  int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p LedgerPage) HasNext() bool { return int(p.Number) < p.TotalPages }

// HasPrevious reports whether an earlier page exists.
func (p LedgerPage) HasPrevious() bool { return p.Number > 1 }

// Ledger merges every donation with its campaign, sorts rows newest first
// and returns the requested page. Pages past the end come back empty with
// the same totals.
func (e *Engine) Ledger(page Page, perPage PerPage) LedgerPage {
	var rows []LedgerRow
	for _, c := range e.campaigns.AllCampaigns() {
		ownerIsAdmin := e.admins.IsAdmin(c.Owner)
		for _, d := range e.donations.Donators(c.ID) {
			rows = append(rows, LedgerRow{
				CampaignID:      c.ID,
				CampaignTitle:   c.Title,
				CampaignDeleted: c.Deleted,
				Donor:           d.Donor,
				DonorIsAdmin:    e.admins.IsAdmin(d.Donor),
				Owner:           c.Owner,
				OwnerIsAdmin:    ownerIsAdmin,
				Amount:          new(big.Int).Set(d.Amount),
				Timestamp:       d.Timestamp,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})

	out := LedgerPage{
		Number:    page,
		Size:      perPage,
		TotalRows: len(rows),
	}
	if perPage > 0 {
		out.TotalPages = (len(rows) + int(perPage) - 1) / int(perPage)
	}

	start := (int(page) - 1) * int(perPage)
	if start >= len(rows) || start < 0 {
		return out
	}
	end := start + int(perPage)
	if end > len(rows) {
		end = len(rows)
	}
	out.Rows = rows[start:end]
	return out
}
