package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fundledger/internal/aggregate"
	"fundledger/internal/domain"
	"fundledger/internal/ledger"
	"fundledger/internal/middleware"
)

// RecentLister serves the recent-donations feed from the archive. It is
// optional: without it the feed falls back to the in-memory ledger view.
type RecentLister interface {
	ListRecentDonations(ctx context.Context, limit int) ([]domain.Donation, error)
}

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Ledger   *ledger.Ledger
	Engine   *aggregate.Engine
	Recent   RecentLister
	Decimals int
	Log      zerolog.Logger
}

func NewApp(l *ledger.Ledger, engine *aggregate.Engine, recent RecentLister, decimals int, log zerolog.Logger) *App {
	return &App{
		Ledger:   l,
		Engine:   engine,
		Recent:   recent,
		Decimals: decimals,
		Log:      log,
	}
}

func (a *App) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (a *App) error(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	a.json(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCampaignDeleted),
		errors.Is(err, domain.ErrAlreadyDeleted),
		errors.Is(err, domain.ErrReentrancy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrDeadlineInvalid),
		errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrTargetInvalid),
		errors.Is(err, domain.ErrAmountInvalid),
		errors.Is(err, domain.ErrIdentityInvalid),
		errors.Is(err, aggregate.ErrWindowInvalid),
		errors.Is(err, aggregate.ErrPageNotPositive),
		errors.Is(err, aggregate.ErrPerPageNotPositive),
		errors.Is(err, aggregate.ErrPerPageTooLarge),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("invalid request body")

func (a *App) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}

// signer resolves the caller identity from the request context. Mutating
// endpoints require one; the zero identity is rejected by the ledger's admin
// checks, but failing early gives a clearer message.
func (a *App) signer(r *http.Request) (domain.Identity, error) {
	id := middleware.SignerFromContext(r.Context())
	if id.IsZero() {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		return 0, errBadRequest
	}
	return id, nil
}

type amountPayload struct {
	Units   string `json:"units"`
	Display string `json:"display"`
}

func (a *App) amount(v *big.Int) amountPayload {
	if v == nil {
		v = new(big.Int)
	}
	return amountPayload{
		Units:   v.String(),
		Display: domain.FormatUnits(v, a.Decimals),
	}
}

// parseAmount accepts either a raw smallest-unit string or a display-unit
// string. Raw wins when both are present.
func (a *App) parseAmount(units, display string) (*big.Int, error) {
	if units != "" {
		return domain.ParseRawUnits(units)
	}
	if display != "" {
		return domain.ParseUnits(display, a.Decimals)
	}
	return nil, domain.ErrAmountInvalid
}
