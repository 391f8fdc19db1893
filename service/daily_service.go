package service

import (
	"context"
	"fmt"
	"time"

	"coffer/models"
)

// dailyService implements the DailyService interface
type dailyService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewDailyService creates a new daily claim service
func NewDailyService(uowFactory UnitOfWorkFactory) DailyService {
	return &dailyService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// LastClaim returns the epoch second of the user's last successful claim,
// lazily creating the zero row for users never seen before.
func (s *dailyService) LastClaim(ctx context.Context, guildID, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// The claim row references the guild config row; make sure it exists.
	if _, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID); err != nil {
		return 0, fmt.Errorf("failed to get guild config: %w", err)
	}

	claim, err := uow.DailyClaimRepository().GetOrCreate(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily claim: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return claim.LastClaim, nil
}

// TryClaim atomically claims the daily reward. The claim row is locked for
// the check-and-set, so two concurrent attempts can never both succeed.
// A rejected claim writes nothing.
func (s *dailyService) TryClaim(ctx context.Context, guildID, userID, cooldownSeconds int64) (*models.ClaimResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID); err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	claim, err := uow.DailyClaimRepository().GetOrCreateForUpdate(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock daily claim: %w", err)
	}

	now := s.now().Unix()
	elapsed := now - claim.LastClaim
	if elapsed < cooldownSeconds {
		// Commit anyway: the lazily created zero row should stick around
		// even though the claim itself was rejected.
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &models.ClaimResult{
			Allowed:           false,
			RetryAfterSeconds: cooldownSeconds - elapsed,
		}, nil
	}

	if err := uow.DailyClaimRepository().SetLastClaim(ctx, guildID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to record claim: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ClaimResult{Allowed: true}, nil
}
