package service

import (
	"context"
	"testing"

	"coffer/models"

	"github.com/stretchr/testify/assert"
)

func TestRankingService_Leaderboard_FirstPage(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	entries := []*models.LeaderboardEntry{
		{UserID: 7, Value: 1500, Position: 1},
		{UserID: 3, Value: 1000, Position: 2},
		{UserID: 9, Value: 500, Position: 3},
	}
	mockBalanceRepo.On("CountByGuild", ctx, int64(1)).Return(3, nil)
	mockBalanceRepo.On("ListByRank", ctx, int64(1), models.SortKeyTotal, LeaderboardPageSize, 0).
		Return(entries, nil)

	page, err := service.Leaderboard(ctx, 1, models.SortKeyTotal, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Entries, 3)
	assert.Equal(t, int64(7), page.Entries[0].UserID)
	assert.Equal(t, int64(1500), page.Entries[0].Value)
}

func TestRankingService_Leaderboard_SecondPageOffset(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	mockBalanceRepo.On("CountByGuild", ctx, int64(1)).Return(25, nil)
	mockBalanceRepo.On("ListByRank", ctx, int64(1), models.SortKeyWallet, LeaderboardPageSize, 10).
		Return([]*models.LeaderboardEntry{{UserID: 4, Value: 200, Position: 11}}, nil)

	page, err := service.Leaderboard(ctx, 1, models.SortKeyWallet, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestRankingService_Leaderboard_OutOfRangePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	mockBalanceRepo.On("CountByGuild", ctx, int64(1)).Return(3, nil)

	page, err := service.Leaderboard(ctx, 1, models.SortKeyBank, 5)

	assert.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.Equal(t, 5, page.Page)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	mockBalanceRepo.AssertNotCalled(t, "ListByRank")
}

func TestRankingService_Leaderboard_PageBelowOneClampsToOne(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	mockBalanceRepo.On("CountByGuild", ctx, int64(1)).Return(1, nil)
	mockBalanceRepo.On("ListByRank", ctx, int64(1), models.SortKeyTotal, LeaderboardPageSize, 0).
		Return([]*models.LeaderboardEntry{{UserID: 1, Value: 100, Position: 1}}, nil)

	page, err := service.Leaderboard(ctx, 1, models.SortKeyTotal, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestRankingService_Leaderboard_InvalidSortKey(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	_, err := service.Leaderboard(ctx, 1, models.SortKey("interest"), 1)

	assert.ErrorIs(t, err, ErrInvalidScope)
	mockBalanceRepo.AssertNotCalled(t, "CountByGuild")
}

func TestRankingService_UserPosition(t *testing.T) {
	ctx := context.Background()
	mockBalanceRepo := new(MockBalanceRepository)
	service := NewRankingService(mockBalanceRepo)

	mockBalanceRepo.On("RankOf", ctx, int64(1), int64(42), models.SortKeyTotal).Return(4, nil)

	rank, err := service.UserPosition(ctx, 1, 42, models.SortKeyTotal)

	assert.NoError(t, err)
	assert.Equal(t, 4, rank)
}
