package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/replituseonly8-lang/Evelyn/internal/bot"
	"github.com/replituseonly8-lang/Evelyn/internal/config"
	"github.com/replituseonly8-lang/Evelyn/internal/convlog"
	"github.com/replituseonly8-lang/Evelyn/internal/logutil"
	"github.com/replituseonly8-lang/Evelyn/internal/memory"
	"github.com/replituseonly8-lang/Evelyn/internal/responder"
	"github.com/replituseonly8-lang/Evelyn/internal/stats"
	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
	"github.com/replituseonly8-lang/Evelyn/providers/openai"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bot against Telegram long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			cfg, err := config.FromViper()
			if err != nil {
				return err
			}

			store := memory.NewStore(cfg.State.MemoryFile)
			if err := store.Load(); err != nil {
				// Stale or unreadable memory is not fatal; start empty.
				logger.Error("memory load failed; continuing with empty memory", "path", cfg.State.MemoryFile, "error", err)
			} else {
				logger.Info("memory loaded", "path", cfg.State.MemoryFile, "users", store.Len())
			}

			var conversationLog *convlog.Logger
			if cfg.State.ConversationLog != "" {
				conversationLog, err = convlog.Open(cfg.State.ConversationLog)
				if err != nil {
					logger.Error("conversation log unavailable", "path", cfg.State.ConversationLog, "error", err)
					conversationLog = nil
				} else {
					defer conversationLog.Close()
				}
			}

			counters := stats.New("evelyn")
			client := openai.New(cfg.LLM.Endpoint, cfg.LLM.APIKey)
			api := telegram.NewAPI(nil, cfg.Telegram.BaseURL, cfg.Telegram.BotToken)

			b := bot.New(bot.Options{
				API:          api,
				Store:        store,
				Responder:    responder.New(client, cfg.LLM.Model, counters, logger),
				ConvLog:      conversationLog,
				Counters:     counters,
				Logger:       logger,
				Persona:      cfg.Bot.Persona,
				WakeNames:    cfg.Bot.WakeNames,
				OwnerIDs:     cfg.Bot.OwnerIDs,
				Model:        cfg.LLM.Model,
				DeveloperURL: cfg.Bot.DeveloperURL,
				CommunityURL: cfg.Bot.CommunityURL,
			})

			if cfg.Metrics.Listen != "" {
				metricsSrv := stats.NewServer(cfg.Metrics.Listen)
				metricsSrv.Start(logger)
				logger.Info("metrics listening", "addr", cfg.Metrics.Listen)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = metricsSrv.Shutdown(shutdownCtx)
				}()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting bot", "model", cfg.LLM.Model)
			poller := bot.NewPoller(api, b, cfg.Telegram.PollTimeout, cfg.Telegram.DropPending, logger)
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("bot stopped")
			return nil
		},
	}

	cmd.Flags().String("telegram-bot-token", "", "Telegram bot token.")
	cmd.Flags().String("telegram-base-url", "", "Telegram API base URL override.")
	cmd.Flags().Duration("telegram-poll-timeout", 30*time.Second, "Long poll timeout.")
	cmd.Flags().Bool("telegram-drop-pending", true, "Drop updates queued while the bot was down.")
	cmd.Flags().String("llm-endpoint", "", "OpenAI-compatible completion endpoint base URL.")
	cmd.Flags().String("llm-api-key", "", "Completion API key.")
	cmd.Flags().String("llm-model", "", "Completion model identifier.")
	cmd.Flags().String("memory-file", "", "Path of the rolling-memory JSON document.")
	cmd.Flags().String("conversation-log", "", "Path of the JSONL conversation audit log (empty disables).")
	cmd.Flags().StringSlice("wake-name", nil, "Wake-name alias that activates the bot in groups (repeatable).")
	cmd.Flags().IntSlice("owner-id", nil, "User ID allowed to read /stats (repeatable).")
	cmd.Flags().String("developer-url", "", "Developer link on the /start keyboard.")
	cmd.Flags().String("community-url", "", "Community link on the /start keyboard.")
	cmd.Flags().String("metrics-listen", "", "Listen address for /healthz and /metrics (empty disables).")

	_ = viper.BindPFlag("telegram.bot_token", cmd.Flags().Lookup("telegram-bot-token"))
	_ = viper.BindPFlag("telegram.base_url", cmd.Flags().Lookup("telegram-base-url"))
	_ = viper.BindPFlag("telegram.poll_timeout", cmd.Flags().Lookup("telegram-poll-timeout"))
	_ = viper.BindPFlag("telegram.drop_pending", cmd.Flags().Lookup("telegram-drop-pending"))
	_ = viper.BindPFlag("llm.endpoint", cmd.Flags().Lookup("llm-endpoint"))
	_ = viper.BindPFlag("llm.api_key", cmd.Flags().Lookup("llm-api-key"))
	_ = viper.BindPFlag("llm.model", cmd.Flags().Lookup("llm-model"))
	_ = viper.BindPFlag("state.memory_file", cmd.Flags().Lookup("memory-file"))
	_ = viper.BindPFlag("state.conversation_log", cmd.Flags().Lookup("conversation-log"))
	_ = viper.BindPFlag("bot.wake_names", cmd.Flags().Lookup("wake-name"))
	_ = viper.BindPFlag("bot.owner_ids", cmd.Flags().Lookup("owner-id"))
	_ = viper.BindPFlag("bot.developer_url", cmd.Flags().Lookup("developer-url"))
	_ = viper.BindPFlag("bot.community_url", cmd.Flags().Lookup("community-url"))
	_ = viper.BindPFlag("metrics.listen", cmd.Flags().Lookup("metrics-listen"))

	return cmd
}
