package types

import "time"

// BotConfig holds settings for the Telegram Bot API client.
type BotConfig struct {
	// Token is the bot token issued by BotFather ("<id>:<secret>").
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// APIBaseURL overrides the Bot API endpoint (default
	// "https://api.telegram.org"). Tests point it at an httptest server.
	APIBaseURL string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`

	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "jokerbot/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the webhook HTTP server.
type ServerConfig struct {
	// Port the server listens on (default 10000).
	Port int `json:"port" yaml:"port"`

	// WebhookURL is the public base URL registered with Telegram; the
	// /webhook path is appended. Empty disables registration at startup.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`

	// WebhookSecret, when set, is required in the
	// X-Telegram-Bot-Api-Secret-Token header of inbound deliveries.
	WebhookSecret string `json:"webhook_secret,omitempty" yaml:"webhook_secret,omitempty"`
}

// PredictorConfig holds settings for the prediction pipeline.
type PredictorConfig struct {
	// SourceChannelID is the only channel whose messages feed the engine.
	SourceChannelID int64 `json:"source_channel_id" yaml:"source_channel_id"`

	// TargetChatID is the chat prediction messages are sent to. Zero means
	// predictions are announced in the source channel itself.
	TargetChatID int64 `json:"target_chat_id,omitempty" yaml:"target_chat_id,omitempty"`
}

// StoreConfig holds settings for the bookkeeping database.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Bot       BotConfig       `json:"bot" yaml:"bot"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Predictor PredictorConfig `json:"predictor" yaml:"predictor"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
