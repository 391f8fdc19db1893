package service

import (
	"context"
	"fmt"

	"coffer/models"
)

// LeaderboardPageSize is the number of entries per leaderboard page.
const LeaderboardPageSize = 10

// rankingService implements the RankingService interface
type rankingService struct {
	balanceRepo BalanceRepository
}

// NewRankingService creates a new ranking service. Leaderboard queries are
// read-only and run outside any unit of work.
func NewRankingService(balanceRepo BalanceRepository) RankingService {
	return &rankingService{
		balanceRepo: balanceRepo,
	}
}

func validSortKey(sortKey models.SortKey) bool {
	switch sortKey {
	case models.SortKeyWallet, models.SortKeyBank, models.SortKeyTotal:
		return true
	default:
		return false
	}
}

// Leaderboard returns the requested 1-based page, descending by sortKey with
// ascending user ID as the tiebreak. Out-of-range pages come back empty with
// the totals intact.
func (s *rankingService) Leaderboard(ctx context.Context, guildID int64, sortKey models.SortKey, page int) (*models.LeaderboardPage, error) {
	if !validSortKey(sortKey) {
		return nil, fmt.Errorf("%w: sort key %q", ErrInvalidScope, sortKey)
	}
	if page < 1 {
		page = 1
	}

	totalCount, err := s.balanceRepo.CountByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to count leaderboard rows: %w", err)
	}

	totalPages := (totalCount + LeaderboardPageSize - 1) / LeaderboardPageSize

	offset := (page - 1) * LeaderboardPageSize
	var entries []*models.LeaderboardEntry
	if offset < totalCount {
		entries, err = s.balanceRepo.ListByRank(ctx, guildID, sortKey, LeaderboardPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list leaderboard page: %w", err)
		}
	}

	return &models.LeaderboardPage{
		Entries:    entries,
		Page:       page,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// UserPosition returns a user's 1-based rank: one plus the count of rows with
// a strictly greater sort value. The rank of a user without a balance row is
// undefined; callers create the row first.
func (s *rankingService) UserPosition(ctx context.Context, guildID, userID int64, sortKey models.SortKey) (int, error) {
	if !validSortKey(sortKey) {
		return 0, fmt.Errorf("%w: sort key %q", ErrInvalidScope, sortKey)
	}

	rank, err := s.balanceRepo.RankOf(ctx, guildID, userID, sortKey)
	if err != nil {
		return 0, fmt.Errorf("failed to get user position: %w", err)
	}
	return rank, nil
}
