package transfer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"coffer/bot/common"
	"coffer/models"
	"coffer/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate, toBank bool) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}
	userID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse user ID")
	}

	var amountArg string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "amount" {
			amountArg = opt.StringValue()
		}
	}

	amount, err := f.resolveAmount(ctx, guildID, userID, amountArg, toBank)
	if err != nil {
		return err
	}

	direction := models.TransferToWallet
	if toBank {
		direction = models.TransferToBank
	}

	balance, err := f.ledgerService.Transfer(ctx, guildID, userID, amount, direction)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			return common.NewUserError("You don't have that much to move.", "transfer rejected: insufficient funds")
		case errors.Is(err, service.ErrLimitExceeded):
			return common.NewUserError("That would put the destination over the balance cap.", "transfer rejected: balance limit exceeded")
		case errors.Is(err, service.ErrInvalidAmount):
			return common.NewUserError("Amount must be positive.", "transfer rejected: invalid amount")
		default:
			return common.NewSystemError(err, "failed to transfer between accounts")
		}
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	verb := "Withdrew"
	if toBank {
		verb = "Deposited"
	}
	message := fmt.Sprintf("✅ %s %s. Wallet: **%s** | Bank: **%s**",
		verb, common.FormatCurrency(amount, cfg),
		common.FormatAmount(balance.WalletBalance), common.FormatAmount(balance.BankBalance))
	if err := common.RespondWithContent(s, i, message, false); err != nil {
		log.Errorf("Error responding to transfer command: %v", err)
	}
	return nil
}

// resolveAmount parses the amount argument, where "all" means the full
// source sub-account.
func (f *Feature) resolveAmount(ctx context.Context, guildID, userID int64, arg string, toBank bool) (int64, error) {
	arg = strings.TrimSpace(strings.ToLower(arg))

	if arg == "all" {
		balance, err := f.ledgerService.GetBalance(ctx, guildID, userID)
		if err != nil {
			return 0, common.NewSystemError(err, "failed to resolve full balance")
		}
		amount := balance.BankBalance
		if toBank {
			amount = balance.WalletBalance
		}
		if amount <= 0 {
			return 0, common.NewUserError("There is nothing to move.", "transfer rejected: empty source account")
		}
		return amount, nil
	}

	amount, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || amount <= 0 {
		return 0, common.NewUserError("Amount must be a positive number or `all`.", "transfer rejected: unparseable amount")
	}
	return amount, nil
}
