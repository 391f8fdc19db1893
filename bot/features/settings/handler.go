package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"coffer/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	cfg, err := f.guildConfigService.GetConfig(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to get guild config")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Economy configuration",
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Currency", Value: fmt.Sprintf("%s %s", cfg.CurrencyEmoji, cfg.CurrencyName), Inline: true},
			{Name: "Starting balance", Value: common.FormatAmount(cfg.StartingBalance), Inline: true},
			{Name: "Max balance", Value: common.FormatAmount(cfg.MaxBalance), Inline: true},
			{Name: "Daily amount", Value: common.FormatAmount(cfg.DailyAmount), Inline: true},
			{Name: "Daily cooldown", Value: common.FormatDuration(cfg.DailyCooldown), Inline: true},
			{Name: "Daily enabled", Value: strconv.FormatBool(cfg.DailyEnabled), Inline: true},
			{Name: "Work amount", Value: fmt.Sprintf("%s – %s", common.FormatAmount(cfg.WorkMinAmount), common.FormatAmount(cfg.WorkMaxAmount)), Inline: true},
			{Name: "Work cooldown", Value: common.FormatDuration(cfg.WorkCooldown), Inline: true},
			{Name: "Work enabled", Value: strconv.FormatBool(cfg.WorkEnabled), Inline: true},
			{Name: "Rob amount", Value: fmt.Sprintf("%s – %s", common.FormatAmount(cfg.RobMinAmount), common.FormatAmount(cfg.RobMaxAmount)), Inline: true},
			{Name: "Rob chance", Value: fmt.Sprintf("%.1f%%", cfg.RobChance), Inline: true},
			{Name: "Rob enabled", Value: strconv.FormatBool(cfg.RobEnabled), Inline: true},
			{Name: "Interest rate", Value: fmt.Sprintf("%.2f%%", cfg.InterestRate), Inline: true},
			{Name: "Interest cooldown", Value: common.FormatDuration(cfg.InterestCooldown), Inline: true},
			{Name: "Interest enabled", Value: strconv.FormatBool(cfg.InterestEnabled), Inline: true},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Error responding to config view command: %v", err)
	}
	return nil
}

func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "failed to parse guild ID")
	}

	var key, rawValue string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "key":
			key = opt.StringValue()
		case "value":
			rawValue = opt.StringValue()
		}
	}

	value, err := parseConfigValue(key, rawValue)
	if err != nil {
		return common.NewUserError(err.Error(), "config set rejected: invalid value")
	}

	updated, err := f.guildConfigService.UpdateConfig(ctx, guildID, map[string]any{key: value})
	if err != nil {
		return common.NewSystemError(err, "failed to update guild config")
	}
	if !updated {
		return common.NewUserError(
			fmt.Sprintf("`%s` is not a configurable setting.", key),
			"config set rejected: unknown key")
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Set `%s` to `%v`.", key, value), true); err != nil {
		log.Errorf("Error responding to config set command: %v", err)
	}
	return nil
}

var (
	stringKeys = map[string]bool{
		"currency_name":  true,
		"currency_emoji": true,
	}
	durationKeys = map[string]bool{
		"command_cooldown":  true,
		"daily_cooldown":    true,
		"work_cooldown":     true,
		"interest_cooldown": true,
		"rob_cooldown":      true,
	}
	amountKeys = map[string]bool{
		"work_min_amount":  true,
		"work_max_amount":  true,
		"daily_amount":     true,
		"rob_min_amount":   true,
		"rob_max_amount":   true,
		"starting_balance": true,
		"max_balance":      true,
	}
	percentKeys = map[string]bool{
		"interest_rate": true,
		"rob_chance":    true,
	}
	toggleKeys = map[string]bool{
		"shop_enabled":     true,
		"gambling_enabled": true,
		"rob_enabled":      true,
		"work_enabled":     true,
		"daily_enabled":    true,
		"interest_enabled": true,
	}
)

// parseConfigValue converts the raw string value of a config key into the
// type its column expects. The store itself does no coercion.
func parseConfigValue(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case stringKeys[key]:
		if raw == "" {
			return nil, fmt.Errorf("Value must not be empty.")
		}
		return raw, nil

	case durationKeys[key]:
		seconds, err := parseDurationSeconds(raw)
		if err != nil {
			return nil, err
		}
		return seconds, nil

	case amountKeys[key]:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("Value must be a non-negative number.")
		}
		return n, nil

	case percentKeys[key]:
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil || pct < 0 || pct > 100 {
			return nil, fmt.Errorf("Value must be a percentage between 0 and 100.")
		}
		return pct, nil

	case toggleKeys[key]:
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("Value must be true or false.")
		}
		return enabled, nil
	}

	return nil, fmt.Errorf("`%s` is not a configurable setting.", key)
}

// parseDurationSeconds parses a compact duration like 30s, 5m, 2h, or 1d.
// A bare number is taken as seconds.
func parseDurationSeconds(raw string) (int64, error) {
	raw = strings.ToLower(raw)
	multiplier := int64(1)

	switch {
	case strings.HasSuffix(raw, "s"):
		raw = strings.TrimSuffix(raw, "s")
	case strings.HasSuffix(raw, "m"):
		raw, multiplier = strings.TrimSuffix(raw, "m"), 60
	case strings.HasSuffix(raw, "h"):
		raw, multiplier = strings.TrimSuffix(raw, "h"), 3600
	case strings.HasSuffix(raw, "d"):
		raw, multiplier = strings.TrimSuffix(raw, "d"), 86400
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("Value must be a duration like `30s`, `5m`, `2h`, or `1d`.")
	}
	return n * multiplier, nil
}

// ConfigKeyChoices lists every settable key as a slash-command choice
func ConfigKeyChoices() []*discordgo.ApplicationCommandOptionChoice {
	keys := []string{
		"currency_name", "currency_emoji",
		"command_cooldown", "daily_cooldown", "work_cooldown", "interest_cooldown", "rob_cooldown",
		"work_min_amount", "work_max_amount", "daily_amount", "rob_min_amount", "rob_max_amount",
		"starting_balance", "max_balance", "interest_rate", "rob_chance",
		"shop_enabled", "gambling_enabled", "rob_enabled", "work_enabled", "daily_enabled", "interest_enabled",
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(keys))
	for _, key := range keys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: key, Value: key})
	}
	return choices
}
