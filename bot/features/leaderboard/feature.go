package leaderboard

import (
	"coffer/bot/common"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	rankingService     service.RankingService
	ledgerService      service.LedgerService
	guildConfigService service.GuildConfigService
}

func New(rankingService service.RankingService, ledgerService service.LedgerService, guildConfigService service.GuildConfigService) *Feature {
	return &Feature{
		rankingService:     rankingService,
		ledgerService:      ledgerService,
		guildConfigService: guildConfigService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleLeaderboard(s, i); err != nil {
		common.HandleError(s, i, err, false)
	}
}
