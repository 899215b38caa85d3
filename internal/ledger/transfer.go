package ledger

import (
	"context"
	"math/big"

	"fundledger/internal/domain"
)

// Transferer moves value from a donor to a campaign owner. Implementations
// run external code (a payout provider, a chain client) and may fail; the
// ledger treats any error as a signal to roll back the donation.
type Transferer interface {
	Transfer(ctx context.Context, from, to domain.Identity, amount *big.Int) error
}

// TransferFunc adapts a function to the Transferer interface.
type TransferFunc func(ctx context.Context, from, to domain.Identity, amount *big.Int) error

// Transfer calls f.
func (f TransferFunc) Transfer(ctx context.Context, from, to domain.Identity, amount *big.Int) error {
	return f(ctx, from, to, amount)
}
