package bot

import (
	"regexp"
	"strings"
)

var nonWordRE = regexp.MustCompile(`\W`)

// CleanPrompt strips the bot's own mention token from the raw message text
// and trims surrounding whitespace. If the bot has been initialized by
// calling its name, the leading @**<name>** token is removed exactly once.
// The function is pure and idempotent.
func CleanPrompt(raw, botFullName string) string {
	mention := "@**" + botFullName + "**"

	if strings.HasPrefix(raw, mention) {
		raw = strings.TrimPrefix(raw, mention)
	}

	return strings.TrimSpace(raw)
}

// BotID derives the bot's identifier from its full display name by
// stripping whitespace, symbols, and every other non-word rune.
func BotID(botFullName string) string {
	return nonWordRE.ReplaceAllString(botFullName, "")
}
