package models

import (
	"time"
)

// Balance is a user's ledger row within a guild: a spendable wallet and a
// capped bank. Rows are created lazily on first read or credit, seeded with
// the guild's starting balance in the wallet.
type Balance struct {
	GuildID       int64      `db:"guild_id"`
	UserID        int64      `db:"user_id"`
	WalletBalance int64      `db:"wallet_balance"`
	BankBalance   int64      `db:"bank_balance"`
	LastDaily     *time.Time `db:"last_daily"`
	LastWork      *time.Time `db:"last_work"`
	LastRob       *time.Time `db:"last_rob"`
	LastInterest  *time.Time `db:"last_interest"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Total returns wallet plus bank.
func (b *Balance) Total() int64 {
	return b.WalletBalance + b.BankBalance
}

// Account selects a sub-account of a balance row for credit/debit operations.
type Account string

const (
	AccountWallet Account = "wallet"
	AccountBank   Account = "bank"
	// AccountAll addresses both sub-accounts; valid for debits and resets,
	// never for credits.
	AccountAll Account = "all"
)

// TransferDirection selects which way a wallet<->bank transfer moves funds.
type TransferDirection string

const (
	TransferToBank   TransferDirection = "to_bank"
	TransferToWallet TransferDirection = "to_wallet"
)
