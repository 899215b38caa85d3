package payout

import (
	"context"
	"math/big"

	"github.com/rs/zerolog"

	"fundledger/internal/domain"
)

// LogTransferer records transfers to the log and always succeeds. It is the
// default boundary when no payout endpoint is configured.
type LogTransferer struct {
	log zerolog.Logger
}

func NewLogTransferer(log zerolog.Logger) *LogTransferer {
	return &LogTransferer{log: log}
}

func (t *LogTransferer) Transfer(_ context.Context, from, to domain.Identity, amount *big.Int) error {
	t.log.Info().
		Str("from", from.Short()).
		Str("to", to.Short()).
		Str("amount", amount.String()).
		Msg("transfer recorded")
	return nil
}
