package bot

import (
	"context"
	"fmt"

	"github.com/replituseonly8-lang/Evelyn/internal/persona"
	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
)

func (b *Bot) handleStart(ctx context.Context, msg *telegram.Message) {
	var rows [][]telegram.InlineKeyboardButton
	var creatorRow []telegram.InlineKeyboardButton
	if b.developerURL != "" {
		creatorRow = append(creatorRow, telegram.InlineKeyboardButton{Text: "👨‍💻 Developer", URL: b.developerURL})
	}
	if b.communityURL != "" {
		creatorRow = append(creatorRow, telegram.InlineKeyboardButton{Text: "🌟 Community", URL: b.communityURL})
	}
	if len(creatorRow) > 0 {
		rows = append(rows, creatorRow)
	}
	if username := b.botUsername(ctx); username != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text: "➕ Add me to group",
			URL:  fmt.Sprintf("https://t.me/%s?startgroup=true", username),
		}})
	}

	var markup *telegram.InlineKeyboardMarkup
	if len(rows) > 0 {
		markup = &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
	}
	if err := b.api.SendMessageMarkup(ctx, msg.ChatID(), persona.Welcome, markup); err != nil {
		b.logger.Error("start command send failed", "error", err)
		return
	}
	b.logger.Info("start command handled", "user", msg.From.DisplayName())
}

func (b *Bot) handleStats(ctx context.Context, msg *telegram.Message) {
	if msg.From == nil || !b.owners[msg.From.ID] {
		if err := b.api.SendMessage(ctx, msg.ChatID(), persona.StatsDenied, 0); err != nil {
			b.logger.Warn("stats denial send failed", "error", err)
		}
		return
	}

	snap := b.counters.Snapshot()
	text := fmt.Sprintf(`🤖 *Anikah Bot Stats*

👥 *Users in memory:* %d
💬 *Total messages:* %d
🔥 *API calls:* %d
❌ *Errors:* %d
⏱️ *Uptime:* %s
🧠 *Model:* %s`,
		b.store.Len(), snap.TotalMessages, snap.APICalls, snap.Errors, snap.Uptime, b.model)

	if err := b.api.SendMessage(ctx, msg.ChatID(), text, 0); err != nil {
		b.logger.Error("stats send failed", "error", err)
	}
}
