package models

// DailyClaim tracks a user's last successful daily reward claim within a
// guild. LastClaim is epoch seconds; zero means never claimed.
type DailyClaim struct {
	GuildID   int64 `db:"guild_id"`
	UserID    int64 `db:"user_id"`
	LastClaim int64 `db:"last_claim"`
}

// ClaimResult is the outcome of an attempted daily claim.
type ClaimResult struct {
	Allowed bool
	// RetryAfterSeconds is the remaining wait when the claim was rejected.
	RetryAfterSeconds int64
}
