package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fundledger/internal/domain"
)

func pathIdentity(r *http.Request) (domain.Identity, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "identity"))
	if raw == "" {
		return "", errBadRequest
	}
	return domain.Identity(raw), nil
}

func (a *App) GetAdmin(w http.ResponseWriter, r *http.Request) {
	identity, err := pathIdentity(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"identity": string(identity),
		"is_admin": a.Ledger.IsAdmin(identity),
	})
}

type setAdminRequest struct {
	Enabled bool `json:"enabled"`
}

func (a *App) SetAdmin(w http.ResponseWriter, r *http.Request) {
	caller, err := a.signer(r)
	if err != nil {
		a.error(w, r, err)
		return
	}
	identity, err := pathIdentity(r)
	if err != nil {
		a.error(w, r, err)
		return
	}

	var req setAdminRequest
	if err := a.decode(r, &req); err != nil {
		a.error(w, r, err)
		return
	}

	if err := a.Ledger.SetAdmin(r.Context(), caller, identity, req.Enabled); err != nil {
		a.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
