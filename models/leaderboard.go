package models

// SortKey selects which value a leaderboard is ranked by.
type SortKey string

const (
	SortKeyWallet SortKey = "wallet"
	SortKeyBank   SortKey = "bank"
	SortKeyTotal  SortKey = "total"
)

// LeaderboardEntry is one ranked row. Value is the wallet, bank, or total
// amount depending on the requested sort key.
type LeaderboardEntry struct {
	UserID   int64
	Value    int64
	Position int
}

// LeaderboardPage is a single page of ranked entries. Pages are 1-based;
// an out-of-range page has an empty Entries slice with the totals intact.
type LeaderboardPage struct {
	Entries    []*LeaderboardEntry
	Page       int
	TotalCount int
	TotalPages int
}

// BulkResult accumulates per-member outcomes of a bulk credit or debit.
// Failures are business-rule rejections; they never abort the batch.
type BulkResult struct {
	Succeeded int
	Failed    int
}
