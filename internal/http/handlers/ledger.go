package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fundledger/internal/aggregate"
	"fundledger/pkg/zip"
)

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadRequest
	}
	return n, nil
}

func (a *App) LedgerView(w http.ResponseWriter, r *http.Request) {
	rawPage, err := queryInt(r, "page", 0)
	if err != nil {
		a.error(w, r, err)
		return
	}
	rawPerPage, err := queryInt(r, "per_page", 0)
	if err != nil {
		a.error(w, r, err)
		return
	}

	page, err := aggregate.ParsePage(rawPage)
	if err != nil {
		a.error(w, r, err)
		return
	}
	perPage, err := aggregate.ParsePerPage(rawPerPage)
	if err != nil {
		a.error(w, r, err)
		return
	}

	view := a.Engine.Ledger(page, perPage)

	rows := make([]map[string]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, map[string]any{
			"campaign_id":      row.CampaignID,
			"campaign_title":   row.CampaignTitle,
			"campaign_deleted": row.CampaignDeleted,
			"donor":            string(row.Donor),
			"donor_is_admin":   row.DonorIsAdmin,
			"owner":            string(row.Owner),
			"owner_is_admin":   row.OwnerIsAdmin,
			"amount":           a.amount(row.Amount),
			"timestamp":        row.Timestamp,
		})
	}

	a.json(w, http.StatusOK, map[string]any{
		"rows":         rows,
		"page":         int(view.Number),
		"per_page":     int(view.Size),
		"total_rows":   view.TotalRows,
		"total_pages":  view.TotalPages,
		"has_next":     view.HasNext(),
		"has_previous": view.HasPrevious(),
	})
}

// LedgerExport streams the full ledger and campaign catalogue as CSV files
// inside a zip attachment.
func (a *App) LedgerExport(w http.ResponseWriter, r *http.Request) {
	ledgerCSV, err := a.ledgerCSV()
	if err != nil {
		a.error(w, r, err)
		return
	}
	campaignsCSV, err := a.campaignsCSV()
	if err != nil {
		a.error(w, r, err)
		return
	}

	blob, err := zip.Archive([]zip.File{
		{Name: "ledger.csv", Data: ledgerCSV},
		{Name: "campaigns.csv", Data: campaignsCSV},
	})
	if err != nil {
		a.error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger-export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (a *App) ledgerCSV() ([]byte, error) {
	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	if err := cw.Write([]string{"campaign_id", "campaign_title", "donor", "owner", "amount_units", "amount", "timestamp"}); err != nil {
		return nil, err
	}

	page := aggregate.Page(1)
	for {
		view := a.Engine.Ledger(page, aggregate.MaxPerPage)
		for _, row := range view.Rows {
			record := []string{
				strconv.FormatInt(row.CampaignID, 10),
				row.CampaignTitle,
				string(row.Donor),
				string(row.Owner),
				row.Amount.String(),
				a.amount(row.Amount).Display,
				row.Timestamp.Format(time.RFC3339),
			}
			if err := cw.Write(record); err != nil {
				return nil, err
			}
		}
		if !view.HasNext() {
			break
		}
		page++
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func (a *App) campaignsCSV() ([]byte, error) {
	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	if err := cw.Write([]string{"id", "owner", "title", "target_units", "collected_units", "deadline", "deleted"}); err != nil {
		return nil, err
	}

	for _, c := range a.Ledger.AllCampaigns() {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			string(c.Owner),
			c.Title,
			c.Target.String(),
			c.AmountCollected.String(),
			c.Deadline.Format(time.RFC3339),
			fmt.Sprintf("%t", c.Deleted),
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}
