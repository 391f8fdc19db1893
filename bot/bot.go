package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"coffer/bot/features/admin"
	"coffer/bot/features/balance"
	"coffer/bot/features/daily"
	"coffer/bot/features/give"
	"coffer/bot/features/leaderboard"
	"coffer/bot/features/settings"
	"coffer/bot/features/transfer"
	"coffer/events"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	eventBus *events.Bus

	balanceFeature     *balance.Feature
	dailyFeature       *daily.Feature
	transferFeature    *transfer.Feature
	giveFeature        *give.Feature
	leaderboardFeature *leaderboard.Feature
	adminFeature       *admin.Feature
	settingsFeature    *settings.Feature
}

func New(
	config Config,
	guildConfigService service.GuildConfigService,
	ledgerService service.LedgerService,
	bulkService service.BulkService,
	rankingService service.RankingService,
	dailyService service.DailyService,
	eventBus *events.Bus,
) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:   config,
		session:  dg,
		eventBus: eventBus,

		balanceFeature:     balance.New(ledgerService, guildConfigService),
		dailyFeature:       daily.New(dailyService, ledgerService, guildConfigService, eventBus),
		transferFeature:    transfer.New(ledgerService, guildConfigService),
		giveFeature:        give.New(ledgerService, guildConfigService),
		leaderboardFeature: leaderboard.New(rankingService, ledgerService, guildConfigService),
		adminFeature:       admin.New(ledgerService, bulkService),
		settingsFeature:    settings.New(guildConfigService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Committed ledger mutations and claims are logged from the event bus,
	// so every code path that moves money shows up the same way.
	eventBus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"guild_id":   e.GuildID,
				"user_id":    e.UserID,
				"operation":  e.Operation,
				"old_wallet": e.OldWallet,
				"old_bank":   e.OldBank,
				"new_wallet": e.NewWallet,
				"new_bank":   e.NewBank,
			}).Info("Balance changed")
		}
	})
	eventBus.Subscribe(events.EventTypeDailyClaimed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.DailyClaimedEvent); ok {
			log.WithFields(log.Fields{
				"guild_id": e.GuildID,
				"user_id":  e.UserID,
				"amount":   e.Amount,
				"account":  e.Account,
			}).Info("Daily reward claimed")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	// All commands are guild-scoped
	if i.Member == nil || i.Member.User == nil {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "daily":
		b.dailyFeature.HandleCommand(s, i)
	case "transfer":
		b.transferFeature.HandleCommand(s, i)
	case "give":
		b.giveFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	case "addmoney", "removemoney", "addmoneyrole", "removemoneyrole", "reset":
		b.adminFeature.HandleCommand(s, i)
	case "config":
		b.settingsFeature.HandleCommand(s, i)
	}
}
