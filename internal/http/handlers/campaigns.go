package handlers

import (
	"net/http"
	"time"

	"fundledger/internal/domain"
)

type campaignPayload struct {
	ID          int64         `json:"id"`
	Owner       string        `json:"owner"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Target      amountPayload `json:"target"`
	Deadline    time.Time     `json:"deadline"`
	Collected   amountPayload `json:"amount_collected"`
	Deleted     bool          `json:"deleted"`
}

func (a *App) campaignPayload(c domain.Campaign) campaignPayload {
	return campaignPayload{
		ID:          c.ID,
		Owner:       string(c.Owner),
		Title:       c.Title,
		Description: c.Description,
		Target:      a.amount(c.Target),
		Deadline:    c.Deadline,
		Collected:   a.amount(c.AmountCollected),
		Deleted:     c.Deleted,
	}
}

type createCampaignRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      string    `json:"target"`
	TargetUnits string    `json:"target_units"`
	Deadline    time.Time `json:"deadline"`
}

func (a *App) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, err := a.signer(r)
	if err != nil {
		a.error(w, r, err)
		return
	}

	var req createCampaignRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, r, err)
		return
	}
	target, err := a.parseAmount(req.TargetUnits, req.Target)
	if err != nil {
		a.error(w, r, err)
		return
	}

	id, err := a.Ledger.CreateCampaign(r.Context(), caller, domain.CampaignDraft{
		Title:       req.Title,
		Description: req.Description,
		Target:      target,
		Deadline:    req.Deadline,
	})
	if err != nil {
		a.error(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]int64{"id": id})
}

type updateCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      string `json:"target"`
	TargetUnits string `json:"target_units"`
}

func (a *App) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	caller, err := a.signer(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.error(w, r, err)
		return
	}

	var req updateCampaignRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, r, err)
		return
	}
	target, err := a.parseAmount(req.TargetUnits, req.Target)
	if err != nil {
		a.error(w, r, err)
		return
	}

	if err := a.Ledger.UpdateCampaign(r.Context(), caller, id, req.Title, req.Description, target); err != nil {
		a.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	caller, err := a.signer(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		a.error(w, r, err)
		return
	}

	if err := a.Ledger.DeleteCampaign(r.Context(), caller, id); err != nil {
		a.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns := a.Ledger.Campaigns()
	out := make([]campaignPayload, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, a.campaignPayload(c))
	}
	a.json(w, http.StatusOK, map[string]any{"campaigns": out})
}

func (a *App) ListAllCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns := a.Ledger.AllCampaigns()
	out := make([]campaignPayload, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, a.campaignPayload(c))
	}
	a.json(w, http.StatusOK, map[string]any{"campaigns": out})
}

func (a *App) CampaignProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	p, err := a.Engine.Progress(id)
	if err != nil {
		a.error(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign_id": p.CampaignID,
		"target":      a.amount(p.Target),
		"raised":      a.amount(p.Raised),
		"remaining":   a.amount(p.Remaining),
		"deleted":     p.Deleted,
	})
}
