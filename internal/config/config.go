// Package config materializes the typed runtime configuration from viper.
// Values come from (in ascending priority) built-in defaults, an optional
// config file, EVELYN_*-prefixed environment variables and flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Telegram struct {
	BotToken    string
	BaseURL     string
	PollTimeout time.Duration
	DropPending bool
}

type LLM struct {
	Endpoint string
	APIKey   string
	Model    string
}

type Bot struct {
	WakeNames    []string
	OwnerIDs     []int64
	DeveloperURL string
	CommunityURL string
	Persona      string
}

type State struct {
	MemoryFile      string
	ConversationLog string
}

type Metrics struct {
	Listen string
}

type Config struct {
	Telegram Telegram
	LLM      LLM
	Bot      Bot
	State    State
	Metrics  Metrics
}

// SetDefaults installs every default except secrets. Call before binding
// flags so flag values still win.
func SetDefaults(persona string) {
	viper.SetDefault("telegram.base_url", "https://api.telegram.org")
	viper.SetDefault("telegram.poll_timeout", "30s")
	viper.SetDefault("telegram.drop_pending", true)

	viper.SetDefault("llm.endpoint", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o")

	viper.SetDefault("bot.wake_names", []string{"anikah", "anika", "ani", "anu", "anuh"})
	viper.SetDefault("bot.persona", persona)

	viper.SetDefault("state.memory_file", "evelyn_memory.json")
	viper.SetDefault("state.conversation_log", "evelyn_conversations.jsonl")
}

// FromViper builds and validates the config for the run command.
func FromViper() (Config, error) {
	cfg := Config{
		Telegram: Telegram{
			BotToken:    strings.TrimSpace(viper.GetString("telegram.bot_token")),
			BaseURL:     strings.TrimSpace(viper.GetString("telegram.base_url")),
			PollTimeout: viper.GetDuration("telegram.poll_timeout"),
			DropPending: viper.GetBool("telegram.drop_pending"),
		},
		LLM: LLM{
			Endpoint: strings.TrimSpace(viper.GetString("llm.endpoint")),
			APIKey:   strings.TrimSpace(viper.GetString("llm.api_key")),
			Model:    strings.TrimSpace(viper.GetString("llm.model")),
		},
		Bot: Bot{
			WakeNames:    viper.GetStringSlice("bot.wake_names"),
			DeveloperURL: strings.TrimSpace(viper.GetString("bot.developer_url")),
			CommunityURL: strings.TrimSpace(viper.GetString("bot.community_url")),
			Persona:      viper.GetString("bot.persona"),
		},
		State: State{
			MemoryFile:      strings.TrimSpace(viper.GetString("state.memory_file")),
			ConversationLog: strings.TrimSpace(viper.GetString("state.conversation_log")),
		},
		Metrics: Metrics{
			Listen: strings.TrimSpace(viper.GetString("metrics.listen")),
		},
	}
	for _, id := range viper.GetIntSlice("bot.owner_ids") {
		cfg.Bot.OwnerIDs = append(cfg.Bot.OwnerIDs, int64(id))
	}

	if cfg.Telegram.BotToken == "" {
		return Config{}, fmt.Errorf("missing telegram.bot_token (set via --telegram-bot-token or EVELYN_TELEGRAM_BOT_TOKEN)")
	}
	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("missing llm.api_key (set via --llm-api-key or EVELYN_LLM_API_KEY)")
	}
	if cfg.Telegram.PollTimeout <= 0 {
		cfg.Telegram.PollTimeout = 30 * time.Second
	}
	return cfg, nil
}
