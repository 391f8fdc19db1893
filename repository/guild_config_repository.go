package repository

import (
	"context"
	"fmt"
	"strings"

	"coffer/database"
	"coffer/models"
)

// GuildConfigRepository provides access to per-guild economy configuration
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// newGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func newGuildConfigRepositoryWithTx(tx queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

const guildConfigColumns = `
	guild_id, currency_name, currency_emoji,
	command_cooldown, daily_cooldown, work_cooldown, interest_cooldown, rob_cooldown,
	work_min_amount, work_max_amount, daily_amount, rob_min_amount, rob_max_amount,
	starting_balance, max_balance, interest_rate, rob_chance,
	shop_enabled, gambling_enabled, rob_enabled, work_enabled, daily_enabled, interest_enabled,
	created_at, updated_at`

func scanGuildConfig(row pgxRow) (*models.GuildConfig, error) {
	var cfg models.GuildConfig
	err := row.Scan(
		&cfg.GuildID,
		&cfg.CurrencyName,
		&cfg.CurrencyEmoji,
		&cfg.CommandCooldown,
		&cfg.DailyCooldown,
		&cfg.WorkCooldown,
		&cfg.InterestCooldown,
		&cfg.RobCooldown,
		&cfg.WorkMinAmount,
		&cfg.WorkMaxAmount,
		&cfg.DailyAmount,
		&cfg.RobMinAmount,
		&cfg.RobMaxAmount,
		&cfg.StartingBalance,
		&cfg.MaxBalance,
		&cfg.InterestRate,
		&cfg.RobChance,
		&cfg.ShopEnabled,
		&cfg.GamblingEnabled,
		&cfg.RobEnabled,
		&cfg.WorkEnabled,
		&cfg.DailyEnabled,
		&cfg.InterestEnabled,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// pgxRow matches the Scan method shared by pgx.Row and pgx.Rows
type pgxRow interface {
	Scan(dest ...any) error
}

// GetOrCreate retrieves a guild's config, inserting the default row if the
// guild has never been seen. The conditional insert avoids the
// check-then-insert race on first access.
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	insertQuery := `
		INSERT INTO guild_configs (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insertQuery, guildID); err != nil {
		return nil, fmt.Errorf("failed to ensure guild config for guild %d: %w", guildID, err)
	}

	query := `SELECT` + guildConfigColumns + `
		FROM guild_configs
		WHERE guild_id = $1
	`
	cfg, err := scanGuildConfig(r.q.QueryRow(ctx, query, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", guildID, err)
	}
	return cfg, nil
}

// mutableConfigColumns is the fixed allowlist of columns UpdateFields may
// touch. Keys outside this set are silently dropped.
var mutableConfigColumns = map[string]bool{
	"currency_name":     true,
	"currency_emoji":    true,
	"command_cooldown":  true,
	"daily_cooldown":    true,
	"work_cooldown":     true,
	"interest_cooldown": true,
	"rob_cooldown":      true,
	"work_min_amount":   true,
	"work_max_amount":   true,
	"daily_amount":      true,
	"rob_min_amount":    true,
	"rob_max_amount":    true,
	"starting_balance":  true,
	"max_balance":       true,
	"interest_rate":     true,
	"rob_chance":        true,
	"shop_enabled":      true,
	"gambling_enabled":  true,
	"rob_enabled":       true,
	"work_enabled":      true,
	"daily_enabled":     true,
	"interest_enabled":  true,
}

// MutableConfigColumn reports whether a config field may be updated through
// UpdateFields.
func MutableConfigColumn(name string) bool {
	return mutableConfigColumns[name]
}

// UpdateFields applies the allowlisted subset of fields to a guild's config.
// Returns false without touching storage when nothing survives the filter.
// Values are stored as given; parsing and validation happen in the caller.
func (r *GuildConfigRepository) UpdateFields(ctx context.Context, guildID int64, fields map[string]any) (bool, error) {
	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, guildID)

	for column, value := range fields {
		if !mutableConfigColumns[column] {
			continue
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if len(setClauses) == 0 {
		return false, nil
	}

	query := fmt.Sprintf(`
		UPDATE guild_configs
		SET %s, updated_at = NOW()
		WHERE guild_id = $1
	`, strings.Join(setClauses, ", "))

	result, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update guild config for guild %d: %w", guildID, err)
	}
	if result.RowsAffected() == 0 {
		return false, fmt.Errorf("guild config for guild %d not found", guildID)
	}

	return true, nil
}
