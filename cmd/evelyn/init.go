package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			dir = filepath.Clean(dir)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists: %s", cfgPath)
			}

			starter := map[string]any{
				"telegram": map[string]any{
					"bot_token":    "",
					"poll_timeout": "30s",
					"drop_pending": true,
				},
				"llm": map[string]any{
					"endpoint": "https://api.openai.com/v1",
					"api_key":  "",
					"model":    "gpt-4o",
				},
				"bot": map[string]any{
					"wake_names":    []string{"anikah", "anika", "ani", "anu", "anuh"},
					"owner_ids":     []int64{},
					"developer_url": "",
					"community_url": "",
				},
				"state": map[string]any{
					"memory_file":      "evelyn_memory.json",
					"conversation_log": "evelyn_conversations.jsonl",
				},
				"metrics": map[string]any{
					"listen": "",
				},
				"logging": map[string]any{
					"level":  "info",
					"format": "text",
				},
			}

			body, err := yaml.Marshal(starter)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, body, 0o600); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", cfgPath)
			return nil
		},
	}
}
