package repository

import (
	"context"
	"fmt"

	"coffer/database"
	"coffer/models"
)

// DailyClaimRepository tracks last-claim timestamps for the daily reward
type DailyClaimRepository struct {
	q queryable
}

// NewDailyClaimRepository creates a new daily claim repository
func NewDailyClaimRepository(db *database.DB) *DailyClaimRepository {
	return &DailyClaimRepository{q: db.Pool}
}

// newDailyClaimRepositoryWithTx creates a new daily claim repository with a transaction
func newDailyClaimRepositoryWithTx(tx queryable) *DailyClaimRepository {
	return &DailyClaimRepository{q: tx}
}

func (r *DailyClaimRepository) ensureRow(ctx context.Context, guildID, userID int64) error {
	query := `
		INSERT INTO user_daily (guild_id, user_id, last_claim)
		VALUES ($1, $2, 0)
		ON CONFLICT (guild_id, user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return fmt.Errorf("failed to ensure daily claim row for user %d in guild %d: %w", userID, guildID, err)
	}
	return nil
}

// GetOrCreate retrieves a user's claim row, lazily creating a zero row
func (r *DailyClaimRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error) {
	if err := r.ensureRow(ctx, guildID, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT guild_id, user_id, last_claim
		FROM user_daily
		WHERE guild_id = $1 AND user_id = $2
	`
	var claim models.DailyClaim
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(&claim.GuildID, &claim.UserID, &claim.LastClaim)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily claim for user %d in guild %d: %w", userID, guildID, err)
	}
	return &claim, nil
}

// GetOrCreateForUpdate is GetOrCreate with the final read taken under an
// exclusive row lock, so a claim's check-and-set cannot race with itself.
func (r *DailyClaimRepository) GetOrCreateForUpdate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error) {
	if err := r.ensureRow(ctx, guildID, userID); err != nil {
		return nil, err
	}

	query := `
		SELECT guild_id, user_id, last_claim
		FROM user_daily
		WHERE guild_id = $1 AND user_id = $2
		FOR UPDATE
	`
	var claim models.DailyClaim
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(&claim.GuildID, &claim.UserID, &claim.LastClaim)
	if err != nil {
		return nil, fmt.Errorf("failed to lock daily claim for user %d in guild %d: %w", userID, guildID, err)
	}
	return &claim, nil
}

// SetLastClaim records a successful claim at the given epoch second
func (r *DailyClaimRepository) SetLastClaim(ctx context.Context, guildID, userID, epochSeconds int64) error {
	query := `
		UPDATE user_daily
		SET last_claim = $3
		WHERE guild_id = $1 AND user_id = $2
	`
	result, err := r.q.Exec(ctx, query, guildID, userID, epochSeconds)
	if err != nil {
		return fmt.Errorf("failed to set daily claim for user %d in guild %d: %w", userID, guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("daily claim row for user %d in guild %d not found", userID, guildID)
	}
	return nil
}
