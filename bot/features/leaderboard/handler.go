package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coffer/bot/common"
	"coffer/models"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}
	userID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse user ID")
	}

	sortKey := models.SortKeyTotal
	page := 1
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "type":
			sortKey = models.SortKey(opt.StringValue())
		case "page":
			page = int(opt.IntValue())
		}
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	board, err := f.rankingService.Leaderboard(ctx, guildID, sortKey, page)
	if err != nil {
		if errors.Is(err, service.ErrInvalidScope) {
			return common.NewUserError("Leaderboard type must be total, wallet, or bank.", "leaderboard rejected: invalid sort key")
		}
		return common.NewSystemError(err, "failed to get leaderboard")
	}

	if board.TotalCount == 0 {
		return common.NewUserError("Nobody has a balance here yet.", "leaderboard rejected: empty guild")
	}

	var lines []string
	for _, entry := range board.Entries {
		lines = append(lines, fmt.Sprintf("**%d.** %s — %s",
			entry.Position, common.GetUserMention(entry.UserID), common.FormatAmount(entry.Value)))
	}
	if len(lines) == 0 {
		lines = append(lines, "*This page is empty.*")
	}

	// Ensure the caller has a row, then show where they stand
	if _, err := f.ledgerService.GetBalance(ctx, guildID, userID); err != nil {
		log.Errorf("Error ensuring balance for user %d in guild %d: %v", userID, guildID, err)
	} else if position, err := f.rankingService.UserPosition(ctx, guildID, userID, sortKey); err == nil {
		lines = append(lines, "", fmt.Sprintf("Your position: **#%d**", position))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s leaderboard (%s)", cfg.CurrencyEmoji, cfg.CurrencyName, sortKey),
		Description: strings.Join(lines, "\n"),
		Color:       0xF1C40F,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d • %d members", board.Page, board.TotalPages, board.TotalCount),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
	return nil
}
