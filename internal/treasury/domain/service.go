package domain

import (
	"context"
	"errors"

	"github.com/aquametric/aquatrack/internal/principal"
)

// Service moves value between principal accounts. Transfers are all-or-nothing:
// a failed transfer leaves both accounts and the journal untouched.
type Service interface {
	// Transfer debits from and credits to in one transaction. A zero amount
	// succeeds without touching any account.
	Transfer(ctx context.Context, from, to principal.Principal, amount uint64, memo string) error
	// Deposit credits an account, creating it when absent.
	Deposit(ctx context.Context, to principal.Principal, amount uint64) (*Account, error)
	// Balance reports the spendable balance of a principal.
	Balance(ctx context.Context, p principal.Principal) (*Account, error)
}

var (
	ErrInvalidPrincipal  = errors.New("invalid_principal")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrAccountNotFound   = errors.New("account_not_found")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)
