// Package trigger decides whether an inbound message should get a reply.
// Everything in a private chat does; in groups the bot stays quiet unless
// it is addressed.
package trigger

import (
	"strings"

	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
)

// ShouldRespond applies the group gating rules in order, first match wins:
// private chat, reply to one of the bot's own messages, an @botUsername
// mention, or any configured wake-name in the text. All text matching is
// case-insensitive substring matching. No side effects.
func ShouldRespond(msg *telegram.Message, botUsername string, wakeNames []string) bool {
	if msg == nil {
		return false
	}
	if msg.IsPrivate() {
		return true
	}

	if msg.ReplyTo != nil && msg.ReplyTo.From != nil && msg.ReplyTo.From.Username != "" &&
		strings.EqualFold(msg.ReplyTo.From.Username, botUsername) {
		return true
	}

	if msg.Text == "" {
		return false
	}
	text := strings.ToLower(msg.Text)

	if botUsername != "" && strings.Contains(text, "@"+strings.ToLower(botUsername)) {
		return true
	}

	for _, name := range wakeNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && strings.Contains(text, name) {
			return true
		}
	}
	return false
}
