package common

import (
	"fmt"
	"strings"
	"time"

	"coffer/models"
)

// FormatAmount formats a currency amount with thousand separators
func FormatAmount(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatCurrency formats an amount with the guild's currency emoji and name
func FormatCurrency(amount int64, cfg *models.GuildConfig) string {
	return fmt.Sprintf("%s **%s** %s", cfg.CurrencyEmoji, FormatAmount(amount), cfg.CurrencyName)
}

// FormatDuration renders a second count as a compact human duration,
// e.g. 90061 -> "1d 1h 1m 1s"
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}

	var parts []string
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}

	return strings.Join(parts, " ")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
