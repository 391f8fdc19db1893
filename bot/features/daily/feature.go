package daily

import (
	"coffer/bot/common"
	"coffer/events"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	dailyService       service.DailyService
	ledgerService      service.LedgerService
	guildConfigService service.GuildConfigService
	eventBus           *events.Bus
}

func New(dailyService service.DailyService, ledgerService service.LedgerService, guildConfigService service.GuildConfigService, eventBus *events.Bus) *Feature {
	return &Feature{
		dailyService:       dailyService,
		ledgerService:      ledgerService,
		guildConfigService: guildConfigService,
		eventBus:           eventBus,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleDaily(s, i); err != nil {
		common.HandleError(s, i, err, false)
	}
}
