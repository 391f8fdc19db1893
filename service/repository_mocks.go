package service

import (
	"context"

	"coffer/events"
	"coffer/models"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) UpdateFields(ctx context.Context, guildID int64, fields map[string]any) (bool, error) {
	args := m.Called(ctx, guildID, fields)
	return args.Bool(0), args.Error(1)
}

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Get(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetOrCreate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetOrCreateForUpdate(ctx context.Context, guildID, userID, startingBalance int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) SetBalances(ctx context.Context, guildID, userID, wallet, bank int64) error {
	args := m.Called(ctx, guildID, userID, wallet, bank)
	return args.Error(0)
}

func (m *MockBalanceRepository) ListByRank(ctx context.Context, guildID int64, sortKey models.SortKey, limit, offset int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, guildID, sortKey, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockBalanceRepository) CountByGuild(ctx context.Context, guildID int64) (int, error) {
	args := m.Called(ctx, guildID)
	return args.Int(0), args.Error(1)
}

func (m *MockBalanceRepository) RankOf(ctx context.Context, guildID, userID int64, sortKey models.SortKey) (int, error) {
	args := m.Called(ctx, guildID, userID, sortKey)
	return args.Int(0), args.Error(1)
}

// MockDailyClaimRepository is a mock implementation of DailyClaimRepository
type MockDailyClaimRepository struct {
	mock.Mock
}

func (m *MockDailyClaimRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyClaim), args.Error(1)
}

func (m *MockDailyClaimRepository) GetOrCreateForUpdate(ctx context.Context, guildID, userID int64) (*models.DailyClaim, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyClaim), args.Error(1)
}

func (m *MockDailyClaimRepository) SetLastClaim(ctx context.Context, guildID, userID, epochSeconds int64) error {
	args := m.Called(ctx, guildID, userID, epochSeconds)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// nopEventPublisher swallows events; for tests that don't assert on them
type nopEventPublisher struct{}

func (nopEventPublisher) Publish(event events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// attached with SetRepositories rather than mocked per call.
type MockUnitOfWork struct {
	mock.Mock
	guildConfigRepo GuildConfigRepository
	balanceRepo     BalanceRepository
	dailyClaimRepo  DailyClaimRepository
	eventPublisher  EventPublisher
}

// SetRepositories attaches the repositories this unit of work hands out.
// A nil eventPublisher defaults to a no-op publisher.
func (m *MockUnitOfWork) SetRepositories(guildConfigRepo GuildConfigRepository, balanceRepo BalanceRepository, dailyClaimRepo DailyClaimRepository, eventPublisher EventPublisher) {
	m.guildConfigRepo = guildConfigRepo
	m.balanceRepo = balanceRepo
	m.dailyClaimRepo = dailyClaimRepo
	if eventPublisher == nil {
		eventPublisher = nopEventPublisher{}
	}
	m.eventPublisher = eventPublisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GuildConfigRepository() GuildConfigRepository {
	return m.guildConfigRepo
}

func (m *MockUnitOfWork) BalanceRepository() BalanceRepository {
	return m.balanceRepo
}

func (m *MockUnitOfWork) DailyClaimRepository() DailyClaimRepository {
	return m.dailyClaimRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventPublisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
