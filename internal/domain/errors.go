package domain

import "errors"

// Failure kinds of the ledger. Every one of these aborts the whole mutating
// call: callers must not assume any side effect occurred on failure.
var (
	ErrUnauthorized    = errors.New("only admin allowed")
	ErrNotFound        = errors.New("campaign not found")
	ErrDeadlineInvalid = errors.New("deadline must be in the future")
	ErrZeroAmount      = errors.New("donation must be greater than 0")
	ErrCampaignDeleted = errors.New("campaign is deleted")
	ErrAlreadyDeleted  = errors.New("campaign already deleted")
	ErrTransferFailed  = errors.New("transfer failed")
	ErrReentrancy      = errors.New("reentrant call blocked")
	ErrTargetInvalid   = errors.New("target must be greater than 0")
	ErrIdentityInvalid = errors.New("identity required")
)
