package transfer

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
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	var err error
	switch options[0].Name {
	case "deposit":
		err = f.handleTransfer(s, i, true)
	case "withdraw":
		err = f.handleTransfer(s, i, false)
	}
	if err != nil {
		common.HandleError(s, i, err, false)
	}
}
