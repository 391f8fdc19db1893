package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"coffer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, amount, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, amount, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, guildID, userID, amount int64, direction models.TransferDirection) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, amount, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockLedgerService) Reset(ctx context.Context, guildID, userID int64, scope models.Account) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockLedgerService) Give(ctx context.Context, guildID, fromUserID, toUserID, amount int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, fromUserID, toUserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func TestBulkService_BulkCredit_CountsCappedMembersAsFailures(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerService)
	service := NewBulkService(mockLedger)

	members := []int64{1, 2, 3, 4, 5}
	for _, id := range members {
		if id == 3 {
			mockLedger.On("Credit", ctx, int64(100), id, int64(500), models.AccountWallet).
				Return(nil, fmt.Errorf("%w: wallet would reach 1000500, cap is 1000000", ErrLimitExceeded))
			continue
		}
		mockLedger.On("Credit", ctx, int64(100), id, int64(500), models.AccountWallet).
			Return(&models.Balance{GuildID: 100, UserID: id}, nil)
	}

	result, err := service.BulkCredit(ctx, 100, members, 500, models.AccountWallet)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	mockLedger.AssertExpectations(t)
}

func TestBulkService_BulkDebit_CountsBrokeMembersAsFailures(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerService)
	service := NewBulkService(mockLedger)

	mockLedger.On("Debit", ctx, int64(100), int64(1), int64(200), models.AccountAll).
		Return(&models.Balance{GuildID: 100, UserID: 1}, nil)
	mockLedger.On("Debit", ctx, int64(100), int64(2), int64(200), models.AccountAll).
		Return(nil, fmt.Errorf("%w: total is 50, need 200", ErrInsufficientFunds))

	result, err := service.BulkDebit(ctx, 100, []int64{1, 2}, 200, models.AccountAll)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
}

func TestBulkService_StorageErrorAborts(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerService)
	service := NewBulkService(mockLedger)

	storageErr := errors.New("connection reset")
	mockLedger.On("Credit", ctx, int64(100), int64(1), int64(500), models.AccountWallet).
		Return(&models.Balance{GuildID: 100, UserID: 1}, nil)
	mockLedger.On("Credit", ctx, int64(100), int64(2), int64(500), models.AccountWallet).
		Return(nil, storageErr)

	result, err := service.BulkCredit(ctx, 100, []int64{1, 2, 3}, 500, models.AccountWallet)

	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, result)
	// The third member is never touched once the batch aborts.
	mockLedger.AssertNotCalled(t, "Credit", ctx, int64(100), int64(3), int64(500), models.AccountWallet)
}

func TestBulkService_EmptyMemberList(t *testing.T) {
	ctx := context.Background()
	mockLedger := new(MockLedgerService)
	service := NewBulkService(mockLedger)

	result, err := service.BulkCredit(ctx, 100, nil, 500, models.AccountWallet)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
}
