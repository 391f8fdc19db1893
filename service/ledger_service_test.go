package service

import (
	"context"
	"errors"
	"testing"

	"coffer/models"

	"github.com/stretchr/testify/assert"
)

func newLedgerTestFixture() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockGuildConfigRepository, *MockBalanceRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockConfigRepo := new(MockGuildConfigRepository)
	mockBalanceRepo := new(MockBalanceRepository)

	mockUoW.SetRepositories(mockConfigRepo, mockBalanceRepo, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo
}

func testConfig(guildID int64) *models.GuildConfig {
	cfg := models.DefaultGuildConfig(guildID)
	cfg.StartingBalance = 1000
	cfg.MaxBalance = 5000
	return cfg
}

func TestLedgerService_Credit_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 0}, nil)
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(1500), int64(0)).Return(nil)

	balance, err := service.Credit(ctx, 1, 42, 500, models.AccountWallet)

	assert.NoError(t, err)
	assert.Equal(t, int64(1500), balance.WalletBalance)
	assert.Equal(t, int64(0), balance.BankBalance)
	mockBalanceRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestLedgerService_Credit_LimitExceeded(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit expected: the credit must not write anything.

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 0, BankBalance: 4800}, nil)

	balance, err := service.Credit(ctx, 1, 42, 300, models.AccountBank)

	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Nil(t, balance)
	mockBalanceRepo.AssertNotCalled(t, "SetBalances")
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertExpectations(t)
}

func TestLedgerService_Credit_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	for _, amount := range []int64{0, -50} {
		_, err := service.Credit(ctx, 1, 42, amount, models.AccountWallet)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	// Validation fails before any transaction starts.
	mockFactory.AssertNotCalled(t, "Create")
}

func TestLedgerService_Credit_AllAccountRejected(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	_, err := service.Credit(ctx, 1, 42, 100, models.AccountAll)
	assert.ErrorIs(t, err, ErrInvalidAccount)
}

func TestLedgerService_Debit_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 0}, nil)

	_, err := service.Debit(ctx, 1, 42, 1200, models.AccountWallet)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	mockBalanceRepo.AssertNotCalled(t, "SetBalances")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLedgerService_Debit_WalletToZero(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 0}, nil)
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(0), int64(0)).Return(nil)

	balance, err := service.Debit(ctx, 1, 42, 1000, models.AccountWallet)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance.WalletBalance)
	mockBalanceRepo.AssertExpectations(t)
}

func TestLedgerService_Debit_AllDrainsBankFirst(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 500, BankBalance: 300}, nil)
	// Debit of 400: bank's 300 go first, the remaining 100 come from the wallet.
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(400), int64(0)).Return(nil)

	balance, err := service.Debit(ctx, 1, 42, 400, models.AccountAll)

	assert.NoError(t, err)
	assert.Equal(t, int64(400), balance.WalletBalance)
	assert.Equal(t, int64(0), balance.BankBalance)
	mockBalanceRepo.AssertExpectations(t)
}

func TestLedgerService_Debit_AccountNotFound(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).Return(nil, nil)

	_, err := service.Debit(ctx, 1, 42, 100, models.AccountBank)

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLedgerService_Transfer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)

	// First leg: 400 wallet -> bank.
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 200}, nil).Once()
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(600), int64(600)).Return(nil).Once()

	balance, err := service.Transfer(ctx, 1, 42, 400, models.TransferToBank)
	assert.NoError(t, err)
	assert.Equal(t, int64(600), balance.WalletBalance)
	assert.Equal(t, int64(600), balance.BankBalance)

	// Second leg restores the original split.
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 600, BankBalance: 600}, nil).Once()
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(1000), int64(200)).Return(nil).Once()

	balance, err = service.Transfer(ctx, 1, 42, 400, models.TransferToWallet)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), balance.WalletBalance)
	assert.Equal(t, int64(200), balance.BankBalance)
	mockBalanceRepo.AssertExpectations(t)
}

func TestLedgerService_Transfer_LimitExceededLeavesBothUnchanged(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 4900}, nil)

	_, err := service.Transfer(ctx, 1, 42, 500, models.TransferToBank)

	assert.ErrorIs(t, err, ErrLimitExceeded)
	mockBalanceRepo.AssertNotCalled(t, "SetBalances")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLedgerService_Reset_All(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 700, BankBalance: 300}, nil)
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(42), int64(0), int64(0)).Return(nil)

	balance, err := service.Reset(ctx, 1, 42, models.AccountAll)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance.WalletBalance)
	assert.Equal(t, int64(0), balance.BankBalance)
}

func TestLedgerService_Reset_MissingRow(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(1), int64(42)).Return(nil, nil)

	_, err := service.Reset(ctx, 1, 42, models.AccountWallet)

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLedgerService_Give_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(10), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 10, WalletBalance: 800, BankBalance: 100}, nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(20), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 20, WalletBalance: 50, BankBalance: 200}, nil)

	// Sender's wallet shrinks; the amount lands in the recipient's bank.
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(10), int64(500), int64(100)).Return(nil)
	mockBalanceRepo.On("SetBalances", ctx, int64(1), int64(20), int64(50), int64(500)).Return(nil)

	sender, err := service.Give(ctx, 1, 10, 20, 300)

	assert.NoError(t, err)
	assert.Equal(t, int64(500), sender.WalletBalance)
	mockBalanceRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestLedgerService_Give_RecipientAtCapLeavesSenderUnchanged(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(10), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 10, WalletBalance: 800, BankBalance: 0}, nil)
	mockBalanceRepo.On("GetOrCreateForUpdate", ctx, int64(1), int64(20), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 20, WalletBalance: 0, BankBalance: 4900}, nil)

	_, err := service.Give(ctx, 1, 10, 20, 300)

	assert.ErrorIs(t, err, ErrLimitExceeded)
	// The headroom check happens before any debit: no writes at all.
	mockBalanceRepo.AssertNotCalled(t, "SetBalances")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestLedgerService_Give_ToSelf(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	_, err := service.Give(ctx, 1, 10, 10, 300)

	assert.ErrorIs(t, err, ErrSelfTransfer)
	assert.True(t, IsBusinessError(err))
	mockFactory.AssertNotCalled(t, "Create")
}

func TestLedgerService_GetBalance_SeedsNewRow(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, mockBalanceRepo := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(testConfig(1), nil)
	mockBalanceRepo.On("GetOrCreate", ctx, int64(1), int64(42), int64(1000)).
		Return(&models.Balance{GuildID: 1, UserID: 42, WalletBalance: 1000, BankBalance: 0}, nil)

	balance, err := service.GetBalance(ctx, 1, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(1000), balance.WalletBalance)
	assert.Equal(t, int64(0), balance.BankBalance)
}

func TestLedgerService_StorageErrorPropagates(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockConfigRepo, _ := newLedgerTestFixture()
	service := NewLedgerService(mockFactory)

	storageErr := errors.New("connection refused")
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockConfigRepo.On("GetOrCreate", ctx, int64(1)).Return(nil, storageErr)

	_, err := service.Credit(ctx, 1, 42, 100, models.AccountWallet)

	assert.ErrorIs(t, err, storageErr)
	assert.False(t, IsBusinessError(err))
}
