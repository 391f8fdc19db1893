package admin

import (
	"context"
	"errors"
	"fmt"

	"coffer/bot/common"
	"coffer/models"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, credit bool) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	var amount int64
	var targetUser *discordgo.User
	account := models.AccountWallet
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			targetUser = opt.UserValue(s)
		case "account":
			account = models.Account(opt.StringValue())
		}
	}
	if targetUser == nil {
		return common.NewUserError("Invalid target user.", "adjust rejected: missing target user")
	}

	userID, err := common.ParseSnowflake(targetUser.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse target user ID")
	}

	var balance *models.Balance
	if credit {
		balance, err = f.ledgerService.Credit(ctx, guildID, userID, amount, account)
	} else {
		balance, err = f.ledgerService.Debit(ctx, guildID, userID, amount, account)
	}
	if err != nil {
		return adjustError(err)
	}

	verb := "Removed"
	preposition := "from"
	if credit {
		verb = "Added"
		preposition = "to"
	}
	message := fmt.Sprintf("✅ %s **%s** %s %s's %s. Wallet: **%s** | Bank: **%s**",
		verb, common.FormatAmount(amount), preposition,
		common.GetDisplayNameInt64(s, i.GuildID, userID), account,
		common.FormatAmount(balance.WalletBalance), common.FormatAmount(balance.BankBalance))
	if err := common.RespondWithContent(s, i, message, false); err != nil {
		log.Errorf("Error responding to adjust command: %v", err)
	}
	return nil
}

func (f *Feature) handleBulkAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, credit bool) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	var amount int64
	var role *discordgo.Role
	account := models.AccountWallet
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		case "account":
			account = models.Account(opt.StringValue())
		}
	}
	if role == nil {
		return common.NewUserError("Invalid target role.", "bulk adjust rejected: missing target role")
	}

	// Member enumeration can be slow on big guilds; defer first. Everything
	// after this point answers through follow-ups.
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring bulk adjust response: %v", err)
		return nil
	}

	memberIDs, err := f.roleMemberIDs(s, i.GuildID, role.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to enumerate role members"), true)
		return nil
	}
	if len(memberIDs) == 0 {
		common.HandleError(s, i, common.NewUserError("That role has no members.", "bulk adjust rejected: empty role"), true)
		return nil
	}

	var result *models.BulkResult
	if credit {
		result, err = f.bulkService.BulkCredit(ctx, guildID, memberIDs, amount, account)
	} else {
		result, err = f.bulkService.BulkDebit(ctx, guildID, memberIDs, amount, account)
	}
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "bulk adjust aborted partway"), true)
		return nil
	}

	verb := "removed from"
	if credit {
		verb = "added to"
	}
	message := fmt.Sprintf("✅ **%s** %s the %s of **%d** member(s) with <@&%s>.",
		common.FormatAmount(amount), verb, account, result.Succeeded, role.ID)
	if result.Failed > 0 {
		message += fmt.Sprintf(" Skipped **%d** (cap or insufficient funds).", result.Failed)
	}
	common.FollowUpWithContent(s, i, message, false)
	return nil
}

func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	var targetUser *discordgo.User
	scope := models.AccountAll
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetUser = opt.UserValue(s)
		case "scope":
			scope = models.Account(opt.StringValue())
		}
	}
	if targetUser == nil {
		return common.NewUserError("Invalid target user.", "reset rejected: missing target user")
	}

	userID, err := common.ParseSnowflake(targetUser.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse target user ID")
	}

	if _, err := f.ledgerService.Reset(ctx, guildID, userID, scope); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			return common.NewUserError("That user has no balance here.", "reset rejected: account not found")
		case errors.Is(err, service.ErrInvalidScope):
			return common.NewUserError("Scope must be wallet, bank, or all.", "reset rejected: invalid scope")
		default:
			return common.NewSystemError(err, "failed to reset balance")
		}
	}

	message := fmt.Sprintf("✅ Reset the **%s** balance of %s.", scope, common.GetUserMention(userID))
	if err := common.RespondWithContent(s, i, message, false); err != nil {
		log.Errorf("Error responding to reset command: %v", err)
	}
	return nil
}

// adjustError maps a ledger failure to the error the command router
// reports back to the admin.
func adjustError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewUserError("Amount must be positive.", "adjust rejected: invalid amount")
	case errors.Is(err, service.ErrInvalidAccount):
		return common.NewUserError("Invalid account.", "adjust rejected: invalid account")
	case errors.Is(err, service.ErrLimitExceeded):
		return common.NewUserError("That would put the user over the balance cap.", "adjust rejected: balance limit exceeded")
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewUserError("The user doesn't have that much.", "adjust rejected: insufficient funds")
	case errors.Is(err, service.ErrAccountNotFound):
		return common.NewUserError("That user has no balance here.", "adjust rejected: account not found")
	default:
		return common.NewSystemError(err, "failed to adjust balance")
	}
}

// roleMemberIDs enumerates every guild member holding the role, paging
// through the member list 1000 at a time.
func (f *Feature) roleMemberIDs(s *discordgo.Session, guildID, roleID string) ([]int64, error) {
	var memberIDs []int64
	after := ""
	for {
		members, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to list guild members: %w", err)
		}
		if len(members) == 0 {
			break
		}
		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			for _, r := range member.Roles {
				if r == roleID {
					id, err := common.ParseSnowflake(member.User.ID)
					if err != nil {
						continue
					}
					memberIDs = append(memberIDs, id)
					break
				}
			}
		}
		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}
	return memberIDs, nil
}
