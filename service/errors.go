package service

import (
	"errors"
)

// Business-rule violations. Each leaves storage untouched: the operation
// that produced it rolled back before committing anything.
var (
	// ErrInvalidAmount means the caller passed a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds means a debit exceeds the available sub-account
	// or total balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLimitExceeded means a credit would push a sub-account past the
	// guild's max balance.
	ErrLimitExceeded = errors.New("balance limit exceeded")

	// ErrAccountNotFound means the operation expected an existing balance
	// row and found none.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccount means the caller passed an account outside the
	// fixed wallet/bank/all enum, or "all" where it is not accepted.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrInvalidScope means the caller passed a scope or sort key outside
	// its fixed enum.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrSelfTransfer means a give named the sender as its own recipient.
	ErrSelfTransfer = errors.New("cannot give to yourself")
)

// IsBusinessError reports whether err is a recoverable business-rule
// violation rather than a storage failure. Bulk operations continue past
// business errors and abort on everything else.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrLimitExceeded) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrInvalidAccount) ||
		errors.Is(err, ErrInvalidScope) ||
		errors.Is(err, ErrSelfTransfer)
}
