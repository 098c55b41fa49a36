// Package bot wires the gate, memory, prompt assembly and responder into
// the per-message turn workflow. Nothing in here may let a single bad
// message take the update loop down.
package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/replituseonly8-lang/Evelyn/internal/convlog"
	"github.com/replituseonly8-lang/Evelyn/internal/memory"
	"github.com/replituseonly8-lang/Evelyn/internal/stats"
	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
	"github.com/replituseonly8-lang/Evelyn/llm"
)

// ChatAPI is the slice of the Telegram API the bot needs per turn.
type ChatAPI interface {
	GetMe(ctx context.Context) (*telegram.User, error)
	SendTyping(ctx context.Context, chatID int64) error
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error
	SendMessageMarkup(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) error
}

// Replier resolves an assembled prompt to display-ready text; it never
// fails (see internal/responder).
type Replier interface {
	Reply(ctx context.Context, msgs []llm.Message) string
}

type Options struct {
	API       ChatAPI
	Store     *memory.Store
	Responder Replier
	ConvLog   *convlog.Logger // optional
	Counters  *stats.Counters
	Logger    *slog.Logger

	Persona      string
	WakeNames    []string
	OwnerIDs     []int64
	Model        string
	DeveloperURL string
	CommunityURL string
}

type Bot struct {
	api       ChatAPI
	store     *memory.Store
	responder Replier
	convLog   *convlog.Logger
	counters  *stats.Counters
	logger    *slog.Logger

	persona      string
	wakeNames    []string
	owners       map[int64]bool
	model        string
	developerURL string
	communityURL string

	// The bot's own identity is resolved lazily on first use and cached
	// for the process lifetime; the mutex keeps concurrent first turns
	// from issuing duplicate getMe calls.
	botUserMu sync.Mutex
	botUser   *telegram.User
}

func New(opts Options) *Bot {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	counters := opts.Counters
	if counters == nil {
		counters = stats.NewUnregistered()
	}
	owners := make(map[int64]bool, len(opts.OwnerIDs))
	for _, id := range opts.OwnerIDs {
		owners[id] = true
	}
	return &Bot{
		api:          opts.API,
		store:        opts.Store,
		responder:    opts.Responder,
		convLog:      opts.ConvLog,
		counters:     counters,
		logger:       logger,
		persona:      opts.Persona,
		wakeNames:    opts.WakeNames,
		owners:       owners,
		model:        opts.Model,
		developerURL: opts.DeveloperURL,
		communityURL: opts.CommunityURL,
	}
}

// botUsername returns the cached bot handle, resolving it on first use.
// A failed resolution is not cached, so the next turn tries again; the
// empty result just disables the handle-based gate rules for this turn.
func (b *Bot) botUsername(ctx context.Context) string {
	b.botUserMu.Lock()
	defer b.botUserMu.Unlock()
	if b.botUser != nil {
		return b.botUser.Username
	}
	me, err := b.api.GetMe(ctx)
	if err != nil {
		b.logger.Warn("getMe failed; handle mentions disabled this turn", "error", err)
		return ""
	}
	b.botUser = me
	b.logger.Info("bot identity cached", "username", me.Username)
	return me.Username
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
