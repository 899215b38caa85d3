package handlers

import (
	"net/http"

	"fundledger/internal/aggregate"
)

func (a *App) Stats(w http.ResponseWriter, r *http.Request) {
	totals := a.Engine.Totals()

	chart := make([]map[string]any, 0, len(totals.Chart))
	for _, row := range totals.Chart {
		chart = append(chart, map[string]any{
			"campaign_id": row.CampaignID,
			"label":       row.Label,
			"raised":      a.amount(row.Raised),
			"deleted":     row.Deleted,
		})
	}

	a.json(w, http.StatusOK, map[string]any{
		"total_raised":        a.amount(totals.TotalRaised),
		"unique_donors":       totals.UniqueDonors,
		"active_campaigns":    totals.ActiveCampaigns,
		"completed_campaigns": totals.CompletedCampaigns,
		"chart":               chart,
	})
}

func (a *App) Timeline(w http.ResponseWriter, r *http.Request) {
	window, err := aggregate.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		a.error(w, r, err)
		return
	}
	points, err := a.Engine.Timeline(window)
	if err != nil {
		a.error(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{
			"label":  p.Label,
			"at":     p.At,
			"amount": a.amount(p.Amount),
		})
	}
	a.json(w, http.StatusOK, map[string]any{
		"window": string(window),
		"points": out,
	})
}
