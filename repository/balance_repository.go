package repository

import (
	"context"
	"fmt"

	"coffer/database"
	"coffer/models"
	"github.com/jackc/pgx/v5"
)

// BalanceRepository owns all reads and writes of user balance rows
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a new balance repository with a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

const balanceColumns = `
	guild_id, user_id, wallet_balance, bank_balance,
	last_daily, last_work, last_rob, last_interest,
	created_at, updated_at`

func scanBalance(row pgxRow) (*models.Balance, error) {
	var b models.Balance
	err := row.Scan(
		&b.GuildID,
		&b.UserID,
		&b.WalletBalance,
		&b.BankBalance,
		&b.LastDaily,
		&b.LastWork,
		&b.LastRob,
		&b.LastInterest,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get retrieves a balance row, or nil if the user has no row in this guild
func (r *BalanceRepository) Get(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	query := `SELECT` + balanceColumns + `
		FROM user_balances
		WHERE guild_id = $1 AND user_id = $2
	`
	balance, err := scanBalance(r.q.QueryRow(ctx, query, guildID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d in guild %d: %w", userID, guildID, err)
	}
	return balance, nil
}

// GetForUpdate retrieves a balance row under an exclusive row lock, or nil if
// absent. Must be called inside a transaction; the lock is held until the
// transaction commits or rolls back.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	query := `SELECT` + balanceColumns + `
		FROM user_balances
		WHERE guild_id = $1 AND user_id = $2
		FOR UPDATE
	`
	balance, err := scanBalance(r.q.QueryRow(ctx, query, guildID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance for user %d in guild %d: %w", userID, guildID, err)
	}
	return balance, nil
}

// GetOrCreate retrieves a balance row, lazily creating it seeded with
// startingBalance in the wallet. The conditional insert makes first access
// race-free.
func (r *BalanceRepository) GetOrCreate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error) {
	if err := r.ensureRow(ctx, guildID, userID, startingBalance); err != nil {
		return nil, err
	}
	balance, err := r.Get(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("balance row for user %d in guild %d missing after insert", userID, guildID)
	}
	return balance, nil
}

// GetOrCreateForUpdate is GetOrCreate with the final read taken under an
// exclusive row lock, for use inside mutating transactions.
func (r *BalanceRepository) GetOrCreateForUpdate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error) {
	if err := r.ensureRow(ctx, guildID, userID, startingBalance); err != nil {
		return nil, err
	}
	balance, err := r.GetForUpdate(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("balance row for user %d in guild %d missing after insert", userID, guildID)
	}
	return balance, nil
}

func (r *BalanceRepository) ensureRow(ctx context.Context, guildID, userID, startingBalance int64) error {
	query := `
		INSERT INTO user_balances (guild_id, user_id, wallet_balance, bank_balance)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (guild_id, user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, query, guildID, userID, startingBalance); err != nil {
		return fmt.Errorf("failed to ensure balance row for user %d in guild %d: %w", userID, guildID, err)
	}
	return nil
}

// SetBalances writes both sub-accounts of a balance row. This is the only
// mutation path for balance columns; callers compute the new values under a
// row lock first.
func (r *BalanceRepository) SetBalances(ctx context.Context, guildID, userID, wallet, bank int64) error {
	query := `
		UPDATE user_balances
		SET wallet_balance = $3, bank_balance = $4, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2
	`
	result, err := r.q.Exec(ctx, query, guildID, userID, wallet, bank)
	if err != nil {
		return fmt.Errorf("failed to set balances for user %d in guild %d: %w", userID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance row for user %d in guild %d not found", userID, guildID)
	}
	return nil
}

// sortExpressions maps a sort key to the ranked SQL expression. Fixed map,
// never built from user input.
var sortExpressions = map[models.SortKey]string{
	models.SortKeyWallet: "wallet_balance",
	models.SortKeyBank:   "bank_balance",
	models.SortKeyTotal:  "(wallet_balance + bank_balance)",
}

// ListByRank returns one page of balance rows ranked descending by the sort
// key. Ties break by ascending user ID so pagination is deterministic.
func (r *BalanceRepository) ListByRank(ctx context.Context, guildID int64, sortKey models.SortKey, limit, offset int) ([]*models.LeaderboardEntry, error) {
	expr, ok := sortExpressions[sortKey]
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q", sortKey)
	}

	query := fmt.Sprintf(`
		SELECT user_id, %s AS value
		FROM user_balances
		WHERE guild_id = $1
		ORDER BY value DESC, user_id ASC
		LIMIT $2 OFFSET $3
	`, expr)

	rows, err := r.q.Query(ctx, query, guildID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.Position = offset + len(entries) + 1
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard entries: %w", err)
	}

	return entries, nil
}

// CountByGuild returns the number of balance rows in a guild
func (r *BalanceRepository) CountByGuild(ctx context.Context, guildID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM user_balances WHERE guild_id = $1`, guildID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count balances for guild %d: %w", guildID, err)
	}
	return count, nil
}

// RankOf returns a user's 1-based leaderboard position: one plus the number
// of rows with a strictly greater sort value.
func (r *BalanceRepository) RankOf(ctx context.Context, guildID, userID int64, sortKey models.SortKey) (int, error) {
	expr, ok := sortExpressions[sortKey]
	if !ok {
		return 0, fmt.Errorf("unknown sort key %q", sortKey)
	}

	query := fmt.Sprintf(`
		SELECT 1 + COUNT(*)
		FROM user_balances
		WHERE guild_id = $1
		  AND %s > (
			SELECT %s FROM user_balances WHERE guild_id = $1 AND user_id = $2
		  )
	`, expr, expr)

	var rank int
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("failed to get rank for user %d in guild %d: %w", userID, guildID, err)
	}
	return rank, nil
}
