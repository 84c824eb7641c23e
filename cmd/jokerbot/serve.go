package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkouassi/jokerbot/internal/server"
	"github.com/dkouassi/jokerbot/internal/store"
	"github.com/dkouassi/jokerbot/internal/telegram"
	"github.com/dkouassi/jokerbot/pkg/types"
)

const (
	defaultPort      = 10000
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "jokerbot/0.1"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Long: `Serve starts the HTTP server that receives Telegram webhook deliveries,
registers the webhook when a public URL is configured, and processes channel
messages into predictions.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", defaultPort, "HTTP listen port")
	serveCmd.Flags().String("webhook-url", "", "public base URL registered with Telegram")
	serveCmd.Flags().Int64("source-channel", 0, "channel id whose messages feed the engine")
	serveCmd.Flags().Int64("target-chat", 0, "chat id predictions are sent to (default: source channel)")
	serveCmd.Flags().String("data-dir", "data", "directory for the bookkeeping database")
	serveCmd.Flags().Duration("timeout", defaultTimeout, "Bot API request timeout")
	serveCmd.Flags().Bool("debug", false, "enable debug logging")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.webhook_url", serveCmd.Flags().Lookup("webhook-url"))
	viper.BindPFlag("predictor.source_channel_id", serveCmd.Flags().Lookup("source-channel"))
	viper.BindPFlag("predictor.target_chat_id", serveCmd.Flags().Lookup("target-chat"))
	viper.BindPFlag("store.data_dir", serveCmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("bot.timeout", serveCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("debug", serveCmd.Flags().Lookup("debug"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := telegram.New(cfg.Bot)
	if me, err := bot.GetMe(ctx); err != nil {
		logger.Warn("could not verify bot identity", "err", err)
	} else {
		logger.Info("bot authenticated", "username", me.Username)
	}

	srv := server.New(cfg, bot, st, logger)
	return srv.Run(ctx)
}

// buildConfig assembles the app configuration from flags, config file,
// environment, and the secrets directory.
func buildConfig() (types.AppConfig, error) {
	token := loadedSecrets.Get("bot-token", viper.GetString("bot.token"))
	if token == "" {
		return types.AppConfig{}, fmt.Errorf("bot token is required: set bot.token, JOKERBOT_BOT_TOKEN, or .secrets/bot-token")
	}
	if len(strings.Split(token, ":")) != 2 {
		return types.AppConfig{}, fmt.Errorf("invalid bot token format")
	}

	sourceChannel := viper.GetInt64("predictor.source_channel_id")
	if sourceChannel == 0 {
		return types.AppConfig{}, fmt.Errorf("source channel id is required: set predictor.source_channel_id or --source-channel")
	}

	webhookURL := viper.GetString("server.webhook_url")
	if webhookURL != "" && !strings.HasPrefix(webhookURL, "https://") {
		fmt.Fprintln(os.Stderr, "warning: webhook URL should use HTTPS for production")
	}

	timeout := viper.GetDuration("bot.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.AppConfig{
		Bot: types.BotConfig{
			Token:      token,
			APIBaseURL: viper.GetString("bot.api_base_url"),
			Timeout:    timeout,
			UserAgent:  defaultUserAgent,
			MaxRetries: viper.GetInt("bot.max_retries"),
		},
		Server: types.ServerConfig{
			Port:          viper.GetInt("server.port"),
			WebhookURL:    strings.TrimRight(webhookURL, "/"),
			WebhookSecret: loadedSecrets.Get("webhook-secret", viper.GetString("server.webhook_secret")),
		},
		Predictor: types.PredictorConfig{
			SourceChannelID: sourceChannel,
			TargetChatID:    viper.GetInt64("predictor.target_chat_id"),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
	}, nil
}
