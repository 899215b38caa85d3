package handlers

import (
	"net/http"
	"strconv"
	"time"

	"fundledger/internal/domain"
)

type donationPayload struct {
	CampaignID int64         `json:"campaign_id"`
	Donor      string        `json:"donor"`
	Amount     amountPayload `json:"amount"`
	Timestamp  time.Time     `json:"timestamp"`
}

func (a *App) donationPayload(d domain.Donation) donationPayload {
	return donationPayload{
		CampaignID: d.CampaignID,
		Donor:      string(d.Donor),
		Amount:     a.amount(d.Amount),
		Timestamp:  d.Timestamp,
	}
}

type donateRequest struct {
	Amount      string `json:"amount"`
	AmountUnits string `json:"amount_units"`
}

func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	donor, err := a.signer(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.error(w, r, err)
		return
	}

	var req donateRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, r, err)
		return
	}
	amount, err := a.parseAmount(req.AmountUnits, req.Amount)
	if err != nil {
		a.error(w, r, err)
		return
	}

	if err := a.Ledger.Donate(r.Context(), donor, id, amount); err != nil {
		a.error(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"campaign_id": id, "amount": a.amount(amount)})
}

func (a *App) ListDonations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	if _, err := a.Engine.Progress(id); err != nil {
		a.error(w, r, err)
		return
	}

	donations := a.Ledger.Donators(id)
	out := make([]donationPayload, 0, len(donations))
	for _, d := range donations {
		out = append(out, a.donationPayload(d))
	}
	a.json(w, http.StatusOK, map[string]any{"donations": out})
}

const defaultRecentLimit = 10

// RecentDonations serves the newest donations across every campaign. It
// prefers the archive projection and falls back to the in-memory view when
// the service runs without one.
func (a *App) RecentDonations(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			a.error(w, r, errBadRequest)
			return
		}
		limit = n
	}

	var donations []domain.Donation
	if a.Recent != nil {
		rows, err := a.Recent.ListRecentDonations(r.Context(), limit)
		if err == nil {
			donations = rows
		} else {
			a.Log.Warn().Err(err).Msg("recent donations archive read failed, using memory view")
		}
	}
	if donations == nil {
		donations = a.recentFromMemory(limit)
	}

	out := make([]donationPayload, 0, len(donations))
	for _, d := range donations {
		out = append(out, a.donationPayload(d))
	}
	a.json(w, http.StatusOK, map[string]any{"donations": out})
}

func (a *App) recentFromMemory(limit int) []domain.Donation {
	page := a.Engine.Ledger(1, 100)
	if limit > len(page.Rows) {
		limit = len(page.Rows)
	}
	out := make([]domain.Donation, 0, limit)
	for _, row := range page.Rows[:limit] {
		out = append(out, domain.Donation{
			CampaignID: row.CampaignID,
			Donor:      row.Donor,
			Amount:     row.Amount,
			Timestamp:  row.Timestamp,
		})
	}
	return out
}
