package balance

import (
	"context"
	"fmt"

	"coffer/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	// Default to the caller; an explicit user option overrides
	targetUser := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetUser = opt.UserValue(s)
		}
	}

	userID, err := common.ParseSnowflake(targetUser.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse target user ID")
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	balance, err := f.ledgerService.GetBalance(ctx, guildID, userID)
	if err != nil {
		return common.NewSystemError(err, "failed to get balance")
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetUser.ID)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s's %s", cfg.CurrencyEmoji, displayName, cfg.CurrencyName),
		Color: 0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wallet", Value: common.FormatAmount(balance.WalletBalance), Inline: true},
			{Name: "Bank", Value: common.FormatAmount(balance.BankBalance), Inline: true},
			{Name: "Total", Value: common.FormatAmount(balance.Total()), Inline: true},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
	return nil
}
