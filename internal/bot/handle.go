package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/replituseonly8-lang/Evelyn/internal/persona"
	"github.com/replituseonly8-lang/Evelyn/internal/prompt"
	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
	"github.com/replituseonly8-lang/Evelyn/internal/trigger"
)

// delivery is the explicit outcome of a reply send. It is logged, never
// raised; the turn handler is total by construction.
type delivery int

const (
	undeliverable delivery = iota
	delivered
	deliveredFallback
)

// HandleUpdate is the entry point for one inbound update. It dispatches
// commands and hands everything else to HandleMessage.
func (b *Bot) HandleUpdate(ctx context.Context, upd telegram.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	if strings.HasPrefix(text, "/") {
		switch commandName(text) {
		case "/start":
			b.handleStart(ctx, msg)
		case "/stats":
			b.handleStats(ctx, msg)
		}
		return
	}
	b.HandleMessage(ctx, msg)
}

// commandName extracts "/cmd" from "/cmd@bot arg...".
func commandName(text string) string {
	cmd := text
	if i := strings.IndexAny(cmd, " \n"); i >= 0 {
		cmd = cmd[:i]
	}
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd
}

// HandleMessage runs one conversational turn. Gate misses are silent; any
// failure past the gate degrades to a fallback instead of propagating.
func (b *Bot) HandleMessage(ctx context.Context, msg *telegram.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	userID := strconv.FormatInt(msg.From.ID, 10)
	username := msg.From.DisplayName()

	if !trigger.ShouldRespond(msg, b.botUsername(ctx), b.wakeNames) {
		return
	}

	// Best-effort; a missing typing indicator never aborts the turn.
	if err := b.api.SendTyping(ctx, msg.ChatID()); err != nil {
		b.logger.Debug("typing indicator failed", "error", err)
	}

	rec, _ := b.store.Get(userID)
	b.logger.Info("message received", "user", username, "user_id", userID, "text", clip(text, 100))

	reply := b.responder.Reply(ctx, prompt.Build(b.persona, rec, text))

	switch b.deliver(ctx, msg, reply) {
	case delivered:
		if err := b.store.RecordExchange(userID, username, text, reply); err != nil {
			b.logger.Error("memory persist failed", "error", err)
		}
		if b.convLog != nil {
			if err := b.convLog.Record(userID, username, text, reply); err != nil {
				b.logger.Error("conversation log append failed", "error", err)
			}
		}
		b.counters.MessageHandled()
		b.logger.Info("reply sent", "user", username, "text", clip(reply, 100))
	case deliveredFallback:
		b.logger.Warn("reply replaced by delivery fallback", "user", username)
	case undeliverable:
		b.logger.Warn("reply undeliverable", "user", username, "chat_id", msg.ChatID())
	}
}

// deliver sends the reply, quoting the triggering message in groups. If
// the send fails it tries one in-character fallback line and swallows
// that failure too.
func (b *Bot) deliver(ctx context.Context, msg *telegram.Message, text string) delivery {
	replyTo := int64(0)
	if !msg.IsPrivate() {
		replyTo = msg.MessageID
	}
	err := b.api.SendMessage(ctx, msg.ChatID(), text, replyTo)
	if err == nil {
		return delivered
	}
	b.logger.Warn("reply send failed", "error", err)

	if err := b.api.SendMessage(ctx, msg.ChatID(), persona.FallbackDelivery, 0); err != nil {
		b.logger.Warn("fallback send failed", "error", err)
		return undeliverable
	}
	return deliveredFallback
}
