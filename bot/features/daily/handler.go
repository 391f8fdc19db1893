package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffer/bot/common"
	"coffer/events"
	"coffer/models"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}
	userID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse user ID")
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	if !cfg.DailyEnabled {
		return common.NewUserError(
			"The daily reward is disabled on this server.",
			"daily claim rejected: feature disabled")
	}

	result, err := f.dailyService.TryClaim(ctx, guildID, userID, cfg.DailyCooldown)
	if err != nil {
		return common.NewSystemError(err, "failed to claim daily reward")
	}

	if !result.Allowed {
		nextClaim := time.Now().Add(time.Duration(result.RetryAfterSeconds) * time.Second)
		return common.NewUserError(
			fmt.Sprintf("You already claimed your daily reward. Come back %s.",
				common.FormatDiscordTimestamp(nextClaim, "R")),
			"daily claim rejected: cooldown active")
	}

	balance, err := f.ledgerService.Credit(ctx, guildID, userID, cfg.DailyAmount, models.AccountWallet)
	if err != nil {
		if errors.Is(err, service.ErrLimitExceeded) {
			return common.NewUserError(
				"Your wallet is full; the reward could not be paid out.",
				"daily payout rejected: balance limit exceeded")
		}
		return common.NewSystemError(err, "failed to credit daily reward")
	}

	f.eventBus.Emit(ctx, events.DailyClaimedEvent{
		GuildID: guildID,
		UserID:  userID,
		Amount:  cfg.DailyAmount,
		Account: models.AccountWallet,
	})

	message := fmt.Sprintf("You claimed %s! Wallet: **%s**",
		common.FormatCurrency(cfg.DailyAmount, cfg), common.FormatAmount(balance.WalletBalance))
	if err := common.RespondWithContent(s, i, message, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
	return nil
}
