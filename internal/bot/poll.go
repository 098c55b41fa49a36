package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
)

const pollErrorBackoff = 3 * time.Second

// Poller drives the long-poll loop and feeds updates to the bot. Each
// update runs in its own goroutine so a slow completion call for one chat
// does not stall the others; same-user ordering is handled by the memory
// store's mutation lock.
type Poller struct {
	api         *telegram.API
	bot         *Bot
	timeout     time.Duration
	dropPending bool
	logger      *slog.Logger
}

func NewPoller(api *telegram.API, b *Bot, timeout time.Duration, dropPending bool, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		api:         api,
		bot:         b,
		timeout:     timeout,
		dropPending: dropPending,
		logger:      logger,
	}
}

// Run polls until ctx is cancelled. Poll failures are logged and backed
// off; they never end the loop.
func (p *Poller) Run(ctx context.Context) error {
	offset := int64(0)
	if p.dropPending {
		// offset -1 fetches only the newest pending update, so everything
		// that queued up while the bot was down gets acknowledged unseen.
		if _, next, err := p.api.GetUpdates(ctx, -1, time.Second); err != nil {
			p.logger.Warn("dropping pending updates failed", "error", err)
		} else {
			offset = next
		}
	}

	p.logger.Info("polling for updates", "timeout", p.timeout.String())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		updates, next, err := p.api.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollErrorBackoff):
			}
			continue
		}
		offset = next
		for _, upd := range updates {
			upd := upd
			go p.bot.HandleUpdate(ctx, upd)
		}
	}
}
