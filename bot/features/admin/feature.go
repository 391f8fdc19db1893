package admin

import (
	"coffer/bot/common"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the admin commands: addmoney, removemoney, their
// role-targeted bulk variants, and reset.
type Feature struct {
	ledgerService service.LedgerService
	bulkService   service.BulkService
}

func New(ledgerService service.LedgerService, bulkService service.BulkService) *Feature {
	return &Feature{
		ledgerService: ledgerService,
		bulkService:   bulkService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var err error
	switch i.ApplicationCommandData().Name {
	case "addmoney":
		err = f.handleAdjust(s, i, true)
	case "removemoney":
		err = f.handleAdjust(s, i, false)
	case "addmoneyrole":
		err = f.handleBulkAdjust(s, i, true)
	case "removemoneyrole":
		err = f.handleBulkAdjust(s, i, false)
	case "reset":
		err = f.handleReset(s, i)
	}
	if err != nil {
		common.HandleError(s, i, err, false)
	}
}
