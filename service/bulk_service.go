package service

import (
	"context"
	"fmt"

	"coffer/models"
	log "github.com/sirupsen/logrus"
)

// bulkService implements the BulkService interface
type bulkService struct {
	ledger LedgerService
}

// NewBulkService creates a new bulk service
func NewBulkService(ledger LedgerService) BulkService {
	return &bulkService{
		ledger: ledger,
	}
}

// BulkCredit credits each member in its own transaction. A member at the cap
// counts as a failure and the batch moves on; only storage errors abort.
func (s *bulkService) BulkCredit(ctx context.Context, guildID int64, memberIDs []int64, amount int64, account models.Account) (*models.BulkResult, error) {
	return s.apply(ctx, guildID, memberIDs, func(userID int64) error {
		_, err := s.ledger.Credit(ctx, guildID, userID, amount, account)
		return err
	})
}

// BulkDebit debits each member in its own transaction with the same
// best-effort accounting. Account "all" keeps the bank-first drain policy.
func (s *bulkService) BulkDebit(ctx context.Context, guildID int64, memberIDs []int64, amount int64, account models.Account) (*models.BulkResult, error) {
	return s.apply(ctx, guildID, memberIDs, func(userID int64) error {
		_, err := s.ledger.Debit(ctx, guildID, userID, amount, account)
		return err
	})
}

func (s *bulkService) apply(ctx context.Context, guildID int64, memberIDs []int64, op func(userID int64) error) (*models.BulkResult, error) {
	result := &models.BulkResult{}

	for _, userID := range memberIDs {
		err := op(userID)
		if err == nil {
			result.Succeeded++
			continue
		}
		if IsBusinessError(err) {
			log.WithFields(log.Fields{
				"guild_id": guildID,
				"user_id":  userID,
				"error":    err.Error(),
			}).Debug("Skipping member in bulk operation")
			result.Failed++
			continue
		}
		return nil, fmt.Errorf("bulk operation aborted at user %d: %w", userID, err)
	}

	return result, nil
}
