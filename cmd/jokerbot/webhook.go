package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkouassi/jokerbot/internal/telegram"
	"github.com/dkouassi/jokerbot/pkg/types"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Bot API webhook registration",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Register a webhook URL with Telegram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bot, err := webhookClient()
		if err != nil {
			return err
		}
		url := args[0] + "/webhook"
		secret := loadedSecrets.Get("webhook-secret", viper.GetString("server.webhook_secret"))
		if err := bot.SetWebhook(cmd.Context(), url, secret); err != nil {
			return fmt.Errorf("setting webhook: %w", err)
		}
		fmt.Printf("Webhook set: %s\n", url)
		return nil
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the registered webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		bot, err := webhookClient()
		if err != nil {
			return err
		}
		if err := bot.DeleteWebhook(cmd.Context()); err != nil {
			return fmt.Errorf("deleting webhook: %w", err)
		}
		fmt.Println("Webhook deleted.")
		return nil
	},
}

var webhookInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the current webhook registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		bot, err := webhookClient()
		if err != nil {
			return err
		}
		info, err := bot.GetWebhookInfo(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching webhook info: %w", err)
		}
		if info.URL == "" {
			fmt.Println("No webhook registered.")
			return nil
		}
		fmt.Printf("URL: %s\nPending updates: %d\n", info.URL, info.PendingUpdates)
		if info.LastError != "" {
			fmt.Printf("Last error: %s (%s)\n", info.LastError, time.Unix(info.LastErrorDate, 0).Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	webhookCmd.AddCommand(webhookSetCmd, webhookDeleteCmd, webhookInfoCmd)
	rootCmd.AddCommand(webhookCmd)
}

// webhookClient builds a Bot API client from the configured token.
func webhookClient() (*telegram.Client, error) {
	token := loadedSecrets.Get("bot-token", viper.GetString("bot.token"))
	if token == "" {
		return nil, fmt.Errorf("bot token is required: set bot.token, JOKERBOT_BOT_TOKEN, or .secrets/bot-token")
	}
	return telegram.New(types.BotConfig{
		Token:      token,
		APIBaseURL: viper.GetString("bot.api_base_url"),
		Timeout:    defaultTimeout,
		UserAgent:  defaultUserAgent,
	}), nil
}
