package service

import (
	"context"
	"fmt"

	"coffer/events"
	"coffer/models"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

func validAccount(account models.Account, allowAll bool) bool {
	switch account {
	case models.AccountWallet, models.AccountBank:
		return true
	case models.AccountAll:
		return allowAll
	default:
		return false
	}
}

// GetBalance retrieves a user's balance, lazily creating the row seeded with
// the guild's starting balance in the wallet.
func (s *ledgerService) GetBalance(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cfg, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	balance, err := uow.BalanceRepository().GetOrCreate(ctx, guildID, userID, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balance, nil
}

// Credit adds amount to the given sub-account, enforcing the guild's max
// balance. The row is locked (and lazily created) for the read-modify-write.
func (s *ledgerService) Credit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	if !validAccount(account, false) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cfg, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	balance, err := uow.BalanceRepository().GetOrCreateForUpdate(ctx, guildID, userID, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}

	wallet, bank := balance.WalletBalance, balance.BankBalance
	switch account {
	case models.AccountWallet:
		wallet += amount
		if wallet > cfg.MaxBalance {
			return nil, fmt.Errorf("%w: wallet would reach %d, cap is %d", ErrLimitExceeded, wallet, cfg.MaxBalance)
		}
	case models.AccountBank:
		bank += amount
		if bank > cfg.MaxBalance {
			return nil, fmt.Errorf("%w: bank would reach %d, cap is %d", ErrLimitExceeded, bank, cfg.MaxBalance)
		}
	}

	if err := uow.BalanceRepository().SetBalances(ctx, guildID, userID, wallet, bank); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    userID,
		Operation: events.OperationCredit,
		OldWallet: balance.WalletBalance,
		OldBank:   balance.BankBalance,
		NewWallet: wallet,
		NewBank:   bank,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	balance.WalletBalance, balance.BankBalance = wallet, bank
	return balance, nil
}

// Debit removes amount from the given sub-account, or from both when the
// account is "all": the bank drains first, the wallet covers the rest.
func (s *ledgerService) Debit(ctx context.Context, guildID, userID, amount int64, account models.Account) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	if !validAccount(account, true) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := uow.BalanceRepository().GetForUpdate(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}
	if balance == nil {
		return nil, fmt.Errorf("%w: user %d in guild %d", ErrAccountNotFound, userID, guildID)
	}

	wallet, bank := balance.WalletBalance, balance.BankBalance
	switch account {
	case models.AccountWallet:
		if wallet < amount {
			return nil, fmt.Errorf("%w: wallet has %d, need %d", ErrInsufficientFunds, wallet, amount)
		}
		wallet -= amount
	case models.AccountBank:
		if bank < amount {
			return nil, fmt.Errorf("%w: bank has %d, need %d", ErrInsufficientFunds, bank, amount)
		}
		bank -= amount
	case models.AccountAll:
		if wallet+bank < amount {
			return nil, fmt.Errorf("%w: total is %d, need %d", ErrInsufficientFunds, wallet+bank, amount)
		}
		// Bank drains first; the remainder comes out of the wallet.
		fromBank := amount
		if fromBank > bank {
			fromBank = bank
		}
		bank -= fromBank
		wallet -= amount - fromBank
	}

	if err := uow.BalanceRepository().SetBalances(ctx, guildID, userID, wallet, bank); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    userID,
		Operation: events.OperationDebit,
		OldWallet: balance.WalletBalance,
		OldBank:   balance.BankBalance,
		NewWallet: wallet,
		NewBank:   bank,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	balance.WalletBalance, balance.BankBalance = wallet, bank
	return balance, nil
}

// Transfer moves amount between a user's own wallet and bank inside one lock
// scope. Nothing commits unless both sides of the move are valid.
func (s *ledgerService) Transfer(ctx context.Context, guildID, userID, amount int64, direction models.TransferDirection) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	if direction != models.TransferToBank && direction != models.TransferToWallet {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, direction)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cfg, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	balance, err := uow.BalanceRepository().GetOrCreateForUpdate(ctx, guildID, userID, cfg.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}

	wallet, bank := balance.WalletBalance, balance.BankBalance
	switch direction {
	case models.TransferToBank:
		if wallet < amount {
			return nil, fmt.Errorf("%w: wallet has %d, need %d", ErrInsufficientFunds, wallet, amount)
		}
		if bank+amount > cfg.MaxBalance {
			return nil, fmt.Errorf("%w: bank would reach %d, cap is %d", ErrLimitExceeded, bank+amount, cfg.MaxBalance)
		}
		wallet -= amount
		bank += amount
	case models.TransferToWallet:
		if bank < amount {
			return nil, fmt.Errorf("%w: bank has %d, need %d", ErrInsufficientFunds, bank, amount)
		}
		if wallet+amount > cfg.MaxBalance {
			return nil, fmt.Errorf("%w: wallet would reach %d, cap is %d", ErrLimitExceeded, wallet+amount, cfg.MaxBalance)
		}
		bank -= amount
		wallet += amount
	}

	if err := uow.BalanceRepository().SetBalances(ctx, guildID, userID, wallet, bank); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    userID,
		Operation: events.OperationTransfer,
		OldWallet: balance.WalletBalance,
		OldBank:   balance.BankBalance,
		NewWallet: wallet,
		NewBank:   bank,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	balance.WalletBalance, balance.BankBalance = wallet, bank
	return balance, nil
}

// Reset zeroes the selected sub-account(s) of an existing row. The row is
// kept; only its values change.
func (s *ledgerService) Reset(ctx context.Context, guildID, userID int64, scope models.Account) (*models.Balance, error) {
	if !validAccount(scope, true) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := uow.BalanceRepository().GetForUpdate(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}
	if balance == nil {
		return nil, fmt.Errorf("%w: user %d in guild %d", ErrAccountNotFound, userID, guildID)
	}

	wallet, bank := balance.WalletBalance, balance.BankBalance
	switch scope {
	case models.AccountWallet:
		wallet = 0
	case models.AccountBank:
		bank = 0
	case models.AccountAll:
		wallet, bank = 0, 0
	}

	if err := uow.BalanceRepository().SetBalances(ctx, guildID, userID, wallet, bank); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    userID,
		Operation: events.OperationReset,
		OldWallet: balance.WalletBalance,
		OldBank:   balance.BankBalance,
		NewWallet: wallet,
		NewBank:   bank,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	balance.WalletBalance, balance.BankBalance = wallet, bank
	return balance, nil
}

// Give moves amount from the sender's wallet into the recipient's bank.
// Both rows are locked in one transaction and the recipient's headroom is
// checked before the sender is debited, so a cap rejection never costs the
// sender anything.
func (s *ledgerService) Give(ctx context.Context, guildID, fromUserID, toUserID, amount int64) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	if fromUserID == toUserID {
		return nil, ErrSelfTransfer
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	cfg, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	// Lock rows in ascending user-ID order so two opposite-direction gives
	// cannot deadlock.
	first, second := fromUserID, toUserID
	if second < first {
		first, second = second, first
	}
	locked := make(map[int64]*models.Balance, 2)
	for _, id := range []int64{first, second} {
		b, err := uow.BalanceRepository().GetOrCreateForUpdate(ctx, guildID, id, cfg.StartingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to lock balance for user %d: %w", id, err)
		}
		locked[id] = b
	}
	sender, recipient := locked[fromUserID], locked[toUserID]

	if sender.WalletBalance < amount {
		return nil, fmt.Errorf("%w: wallet has %d, need %d", ErrInsufficientFunds, sender.WalletBalance, amount)
	}
	if recipient.BankBalance+amount > cfg.MaxBalance {
		return nil, fmt.Errorf("%w: recipient bank would reach %d, cap is %d", ErrLimitExceeded, recipient.BankBalance+amount, cfg.MaxBalance)
	}

	newSenderWallet := sender.WalletBalance - amount
	newRecipientBank := recipient.BankBalance + amount

	if err := uow.BalanceRepository().SetBalances(ctx, guildID, fromUserID, newSenderWallet, sender.BankBalance); err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}
	if err := uow.BalanceRepository().SetBalances(ctx, guildID, toUserID, recipient.WalletBalance, newRecipientBank); err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    fromUserID,
		Operation: events.OperationGive,
		OldWallet: sender.WalletBalance,
		OldBank:   sender.BankBalance,
		NewWallet: newSenderWallet,
		NewBank:   sender.BankBalance,
	})
	uow.EventBus().Publish(events.BalanceChangeEvent{
		GuildID:   guildID,
		UserID:    toUserID,
		Operation: events.OperationGive,
		OldWallet: recipient.WalletBalance,
		OldBank:   recipient.BankBalance,
		NewWallet: recipient.WalletBalance,
		NewBank:   newRecipientBank,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	sender.WalletBalance = newSenderWallet
	return sender, nil
}
