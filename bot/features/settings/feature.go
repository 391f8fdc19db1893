package settings

import (
	"coffer/bot/common"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild economy configuration
type Feature struct {
	guildConfigService service.GuildConfigService
}

func New(guildConfigService service.GuildConfigService) *Feature {
	return &Feature{
		guildConfigService: guildConfigService,
	}
}

// HandleCommand routes config subcommands to the appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	var err error
	switch options[0].Name {
	case "view":
		err = f.handleView(s, i)
	case "set":
		err = f.handleSet(s, i)
	}
	if err != nil {
		common.HandleError(s, i, err, false)
	}
}
