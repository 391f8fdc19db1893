package service

import (
	"context"
	"fmt"

	"coffer/models"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	guildConfigRepo GuildConfigRepository
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(guildConfigRepo GuildConfigRepository) GuildConfigService {
	return &guildConfigService{
		guildConfigRepo: guildConfigRepo,
	}
}

// GetConfig retrieves a guild's config, creating the default row on first
// reference. Idempotent.
func (s *guildConfigService) GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	cfg, err := s.guildConfigRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	return cfg, nil
}

// UpdateConfig applies a pre-parsed field map. Keys outside the allowlist are
// silently dropped; returns false when the filtered set is empty. Values are
// stored as given; numeric and boolean parsing belongs to the caller.
func (s *guildConfigService) UpdateConfig(ctx context.Context, guildID int64, fields map[string]any) (bool, error) {
	// Ensure the row exists so an update on a fresh guild is not a miss.
	if _, err := s.guildConfigRepo.GetOrCreate(ctx, guildID); err != nil {
		return false, fmt.Errorf("failed to ensure guild config: %w", err)
	}

	updated, err := s.guildConfigRepo.UpdateFields(ctx, guildID, fields)
	if err != nil {
		return false, fmt.Errorf("failed to update guild config: %w", err)
	}
	return updated, nil
}
