package give

import (
	"coffer/bot/common"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	ledgerService      service.LedgerService
	guildConfigService service.GuildConfigService
}

func New(ledgerService service.LedgerService, guildConfigService service.GuildConfigService) *Feature {
	return &Feature{
		ledgerService:      ledgerService,
		guildConfigService: guildConfigService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleGive(s, i); err != nil {
		common.HandleError(s, i, err, false)
	}
}
