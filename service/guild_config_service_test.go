package service

import (
	"context"
	"errors"
	"testing"

	"coffer/models"

	"github.com/stretchr/testify/assert"
)

func TestGuildConfigService_GetConfig(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGuildConfigRepository)
	service := NewGuildConfigService(mockRepo)

	mockRepo.On("GetOrCreate", ctx, int64(1)).Return(models.DefaultGuildConfig(1), nil)

	cfg, err := service.GetConfig(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), cfg.GuildID)
	assert.Equal(t, int64(1000), cfg.StartingBalance)
}

func TestGuildConfigService_UpdateConfig(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGuildConfigRepository)
	service := NewGuildConfigService(mockRepo)

	fields := map[string]any{"currency_name": "doubloons", "daily_amount": int64(250)}
	mockRepo.On("GetOrCreate", ctx, int64(1)).Return(models.DefaultGuildConfig(1), nil)
	mockRepo.On("UpdateFields", ctx, int64(1), fields).Return(true, nil)

	updated, err := service.UpdateConfig(ctx, 1, fields)

	assert.NoError(t, err)
	assert.True(t, updated)
	mockRepo.AssertExpectations(t)
}

func TestGuildConfigService_UpdateConfig_NoRecognizedFields(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGuildConfigRepository)
	service := NewGuildConfigService(mockRepo)

	fields := map[string]any{"bogus_column": 1}
	mockRepo.On("GetOrCreate", ctx, int64(1)).Return(models.DefaultGuildConfig(1), nil)
	mockRepo.On("UpdateFields", ctx, int64(1), fields).Return(false, nil)

	updated, err := service.UpdateConfig(ctx, 1, fields)

	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestGuildConfigService_UpdateConfig_EnsureFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockGuildConfigRepository)
	service := NewGuildConfigService(mockRepo)

	storageErr := errors.New("connection refused")
	mockRepo.On("GetOrCreate", ctx, int64(1)).Return(nil, storageErr)

	updated, err := service.UpdateConfig(ctx, 1, map[string]any{"daily_amount": int64(1)})

	assert.ErrorIs(t, err, storageErr)
	assert.False(t, updated)
	mockRepo.AssertNotCalled(t, "UpdateFields")
}
