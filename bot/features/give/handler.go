package give

import (
	"context"
	"errors"
	"fmt"

	"coffer/bot/common"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}
	if recipient == nil {
		return common.NewUserError("Invalid recipient user.", "give rejected: missing recipient")
	}
	if recipient.Bot {
		return common.NewUserError("Bots don't need money.", "give rejected: bot recipient")
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}
	fromUserID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse sender ID")
	}
	toUserID, err := common.ParseSnowflake(recipient.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse recipient ID")
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	balance, err := f.ledgerService.Give(ctx, guildID, fromUserID, toUserID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return common.NewUserError("Amount must be positive.", "give rejected: invalid amount")
		case errors.Is(err, service.ErrSelfTransfer):
			return common.NewUserError("You cannot give to yourself.", "give rejected: self transfer")
		case errors.Is(err, service.ErrInsufficientFunds):
			return common.NewUserError("Your wallet doesn't cover that.", "give rejected: insufficient funds")
		case errors.Is(err, service.ErrLimitExceeded):
			return common.NewUserError("The recipient's bank can't hold that much.", "give rejected: recipient at balance cap")
		default:
			return common.NewSystemError(err, "failed to give currency")
		}
	}

	senderName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	message := fmt.Sprintf("✅ **%s** gave %s to %s. Your wallet: **%s**",
		senderName, common.FormatCurrency(amount, cfg), common.GetUserMention(toUserID),
		common.FormatAmount(balance.WalletBalance))
	if err := common.RespondWithContent(s, i, message, false); err != nil {
		log.Errorf("Error responding to give command: %v", err)
	}
	return nil
}
