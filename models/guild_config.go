package models

import (
	"time"
)

// GuildConfig holds the per-guild economy parameters. One row per guild,
// created lazily on first reference and never deleted while the guild still
// has balance rows (the schema cascades the other way).
type GuildConfig struct {
	GuildID          int64   `db:"guild_id"`
	CurrencyName     string  `db:"currency_name"`
	CurrencyEmoji    string  `db:"currency_emoji"`
	CommandCooldown  int64   `db:"command_cooldown"`  // seconds
	DailyCooldown    int64   `db:"daily_cooldown"`    // seconds
	WorkCooldown     int64   `db:"work_cooldown"`     // seconds
	InterestCooldown int64   `db:"interest_cooldown"` // seconds
	RobCooldown      int64   `db:"rob_cooldown"`      // seconds
	WorkMinAmount    int64   `db:"work_min_amount"`
	WorkMaxAmount    int64   `db:"work_max_amount"`
	DailyAmount      int64   `db:"daily_amount"`
	RobMinAmount     int64   `db:"rob_min_amount"`
	RobMaxAmount     int64   `db:"rob_max_amount"`
	StartingBalance  int64   `db:"starting_balance"`
	MaxBalance       int64   `db:"max_balance"`
	InterestRate     float64 `db:"interest_rate"`
	RobChance        float64 `db:"rob_chance"`
	ShopEnabled      bool    `db:"shop_enabled"`
	GamblingEnabled  bool    `db:"gambling_enabled"`
	RobEnabled       bool    `db:"rob_enabled"`
	WorkEnabled      bool    `db:"work_enabled"`
	DailyEnabled     bool    `db:"daily_enabled"`
	InterestEnabled  bool    `db:"interest_enabled"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DefaultGuildConfig returns the config a guild starts with before any admin
// has touched it. These values also back the column defaults in the schema.
func DefaultGuildConfig(guildID int64) *GuildConfig {
	return &GuildConfig{
		GuildID:          guildID,
		CurrencyName:     "coins",
		CurrencyEmoji:    "🪙",
		CommandCooldown:  3,
		DailyCooldown:    86400,
		WorkCooldown:     3600,
		InterestCooldown: 86400,
		RobCooldown:      21600,
		WorkMinAmount:    100,
		WorkMaxAmount:    500,
		DailyAmount:      1000,
		RobMinAmount:     100,
		RobMaxAmount:     1000,
		StartingBalance:  1000,
		MaxBalance:       1000000,
		InterestRate:     1.0,
		RobChance:        50.0,
		ShopEnabled:      true,
		GamblingEnabled:  true,
		RobEnabled:       true,
		WorkEnabled:      true,
		DailyEnabled:     true,
		InterestEnabled:  true,
	}
}
