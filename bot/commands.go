package bot

import (
	"fmt"

	"coffer/bot/features/settings"

	"github.com/bwmarrin/discordgo"
)

var (
	manageGuild = int64(discordgo.PermissionManageGuild)

	accountChoices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "wallet", Value: "wallet"},
		{Name: "bank", Value: "bank"},
	}
	accountAllChoices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "wallet", Value: "wallet"},
		{Name: "bank", Value: "bank"},
		{Name: "all", Value: "all"},
	}
	sortKeyChoices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "total", Value: "total"},
		{Name: "wallet", Value: "wallet"},
		{Name: "bank", Value: "bank"},
	}
)

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check a wallet and bank balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily reward",
		},
		{
			Name:        "transfer",
			Description: "Move money between your wallet and bank",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deposit",
					Description: "Move money from your wallet into your bank",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "amount",
							Description: "Amount to deposit, or 'all'",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "withdraw",
					Description: "Move money from your bank into your wallet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "amount",
							Description: "Amount to withdraw, or 'all'",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "give",
			Description: "Give money from your wallet to another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to give to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to give",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest members",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Ranking type (defaults to total)",
					Required:    false,
					Choices:     sortKeyChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "page",
					Description: "Page number (defaults to 1)",
					Required:    false,
					MinValue:    float64Ptr(1),
				},
			},
		},
		{
			Name:                     "config",
			Description:              "View or change the economy configuration",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show the current configuration",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Change a configuration value",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Setting to change",
							Required:    true,
							Choices:     settings.ConfigKeyChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "value",
							Description: "New value",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     "addmoney",
			Description:              "Add money to a member's balance",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to credit",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to add",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Account to credit (defaults to wallet)",
					Required:    false,
					Choices:     accountChoices,
				},
			},
		},
		{
			Name:                     "removemoney",
			Description:              "Remove money from a member's balance",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to debit",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to remove",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Account to debit (defaults to wallet)",
					Required:    false,
					Choices:     accountAllChoices,
				},
			},
		},
		{
			Name:                     "addmoneyrole",
			Description:              "Add money to every member with a role",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role whose members get credited",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to add per member",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Account to credit (defaults to wallet)",
					Required:    false,
					Choices:     accountChoices,
				},
			},
		},
		{
			Name:                     "removemoneyrole",
			Description:              "Remove money from every member with a role",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role whose members get debited",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to remove per member",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account",
					Description: "Account to debit (defaults to wallet)",
					Required:    false,
					Choices:     accountAllChoices,
				},
			},
		},
		{
			Name:                     "reset",
			Description:              "Reset a member's balance to zero",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to reset",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "scope",
					Description: "What to reset (defaults to all)",
					Required:    false,
					Choices:     accountAllChoices,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func float64Ptr(v float64) *float64 {
	return &v
}
