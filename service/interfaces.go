package service

import (
	"context"

	"coffer/events"
	"coffer/models"
)

// GuildConfigRepository defines the interface for guild config data access
type GuildConfigRepository interface {
	// GetOrCreate retrieves a guild's config, inserting the default row if absent
	GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// UpdateFields applies an allowlisted field map to a guild's config.
	// Returns false without writing when nothing survives the filter.
	UpdateFields(ctx context.Context, guildID int64, fields map[string]any) (bool, error)
}

// BalanceRepository defines the interface for balance data access
type BalanceRepository interface {
	// Get retrieves a balance row, or nil if absent
	Get(ctx context.Context, guildID, userID int64) (*models.Balance, error)

	// GetForUpdate retrieves a balance row under an exclusive row lock, or nil if absent
	GetForUpdate(ctx context.Context, guildID, userID int64) (*models.Balance, error)

	// GetOrCreate retrieves a balance row, lazily seeding new rows with
	// startingBalance in the wallet
	GetOrCreate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error)

	// GetOrCreateForUpdate is GetOrCreate under an exclusive row lock
	GetOrCreateForUpdate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error)

	// SetBalances writes both sub-accounts of an existing row
	SetBalances(ctx context.Context, guildID, userID, wallet, bank int64) error

	// ListByRank returns one page of rows ranked descending by sortKey,
	// ties broken by ascending user ID
	ListByRank(ctx context.Context, guildID int64, sortKey models.SortKey, limit, offset int) ([]*models.LeaderboardEntry, error)

	// CountByGuild returns the number of balance rows in a guild
	CountByGuild(ctx context.Context, guildID int64) (int, error)

	// RankOf returns 1 plus the count of rows strictly greater by sortKey
	RankOf(ctx context.Context, guildID, userID int64, sortKey models.SortKey) (int, error)
}

// DailyClaimRepository defines the interface for daily claim data access
type DailyClaimRepository interface {
	// GetOrCreate retrieves a claim row, lazily creating a zero row
	GetOrCreate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error)

	// GetOrCreateForUpdate is GetOrCreate under an exclusive row lock
	GetOrCreateForUpdate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error)

	// SetLastClaim records a successful claim at the given epoch second
	SetLastClaim(ctx context.Context, guildID, userID, epochSeconds int64) error
}

// GuildConfigService defines the interface for guild config operations
type GuildConfigService interface {
	// GetConfig retrieves a guild's config, creating the default row if absent
	GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// UpdateConfig applies a pre-parsed field map to a guild's config.
	// Unknown keys are dropped; returns false when nothing was updated.
	UpdateConfig(ctx context.Context, guildID int64, fields map[string]any) (bool, error)
}

// LedgerService defines the interface for single-user balance mutations.
// Every method runs in one transaction holding an exclusive lock on the
// target row(s); on any failure nothing is persisted.
type LedgerService interface {
	// GetBalance retrieves a user's balance, lazily creating the row seeded
	// with the guild's starting balance
	GetBalance(ctx context.Context, guildID, userID int64) (*models.Balance, error)

	// Credit adds amount to the wallet or bank, enforcing the guild's max balance
	Credit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error)

	// Debit removes amount from the wallet, bank, or both. Account "all"
	// drains the bank first, then the wallet.
	Debit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error)

	// Transfer moves amount between a user's own wallet and bank atomically
	Transfer(ctx context.Context, guildID, userID, amount int64, direction models.TransferDirection) (*models.Balance, error)

	// Reset zeroes the selected sub-account(s) of an existing row
	Reset(ctx context.Context, guildID, userID int64, scope models.Account) (*models.Balance, error)

	// Give moves amount from one user's wallet into another user's bank,
	// rejecting before the debit when the recipient lacks headroom
	Give(ctx context.Context, guildID, fromUserID, toUserID, amount int64) (*models.Balance, error)
}

// BulkService defines the interface for role-targeted batch adjustments
type BulkService interface {
	// BulkCredit credits each member independently; business-rule failures
	// are counted and skipped, never aborting the batch
	BulkCredit(ctx context.Context, guildID int64, memberIDs []int64, amount int64, account models.Account) (*models.BulkResult, error)

	// BulkDebit debits each member independently with the same best-effort
	// accounting
	BulkDebit(ctx context.Context, guildID int64, memberIDs []int64, amount int64, account models.Account) (*models.BulkResult, error)
}

// RankingService defines the interface for leaderboard queries
type RankingService interface {
	// Leaderboard returns one 1-based page of ranked entries with totals
	Leaderboard(ctx context.Context, guildID int64, sortKey models.SortKey, page int) (*models.LeaderboardPage, error)

	// UserPosition returns a user's 1-based rank by sortKey. Callers ensure
	// the balance row exists first.
	UserPosition(ctx context.Context, guildID, userID int64, sortKey models.SortKey) (int, error)
}

// DailyService defines the interface for the daily-claim cooldown gate
type DailyService interface {
	// LastClaim returns the epoch second of the user's last claim, 0 if never
	LastClaim(ctx context.Context, guildID, userID int64) (int64, error)

	// TryClaim atomically claims the daily reward if the cooldown has
	// elapsed, otherwise reports the remaining wait without writing
	TryClaim(ctx context.Context, guildID, userID, cooldownSeconds int64) (*models.ClaimResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	GuildConfigRepository() GuildConfigRepository
	BalanceRepository() BalanceRepository
	DailyClaimRepository() DailyClaimRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh, unstarted UnitOfWork
	Create() UnitOfWork
}
