package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "CRYPTO_DIGEST_CONFIG"
	dedupPathEnv        = "DEDUP_STORE_PATH"
	predictorURLEnv     = "PREDICTOR_URL"
	predictorAPIKeyEnv  = "PREDICTOR_API_KEY"
	summarizerAPIKeyEnv = "SUMMARIZER_API_KEY"
	summarizerModelEnv  = "SUMMARIZER_MODEL"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Feeds         FeedsConfig        `yaml:"feeds"`
	Dedup         DedupConfig        `yaml:"dedup"`
	Predictor     PredictorConfig    `yaml:"predictor"`
	Summarizer    SummarizerConfig   `yaml:"summarizer"`
	Notifications NotificationConfig `yaml:"notifications"`
	Curation      CurationConfig     `yaml:"curation"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedsConfig points at the drop directory holding per-source feed files.
type FeedsConfig struct {
	Dir     string       `yaml:"dir"`
	Sources []FeedConfig `yaml:"sources"`
}

// FeedConfig describes one feed file: its source tag and record format.
type FeedConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Format string `yaml:"format"`
}

// DedupConfig selects the dedup store backend.
type DedupConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// PredictorConfig describes the virality prediction service.
type PredictorConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// SummarizerConfig defines how to contact the narrative summarizer API.
type SummarizerConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// CurationConfig bounds the selection produced per run.
type CurationConfig struct {
	Cap          int `yaml:"cap"`
	SolanaQuota  int `yaml:"solanaQuota"`
	GeneralQuota int `yaml:"generalQuota"`
	Highlights   int `yaml:"highlights"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return LoadPath(os.Getenv(configPathEnv))
}

// LoadPath reads the given YAML file, falling back to defaults on any problem.
func LoadPath(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds.Sources) == 0 {
		cfg.Feeds.Sources = defaultConfig().Feeds.Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dedupPathEnv); v != "" {
		c.Dedup.Path = v
	}

	if v := os.Getenv(predictorURLEnv); v != "" {
		c.Predictor.Endpoint = v
	}
	if v := os.Getenv(predictorAPIKeyEnv); v != "" {
		c.Predictor.APIKey = v
	}

	if v := os.Getenv(summarizerAPIKeyEnv); v != "" {
		c.Summarizer.APIKey = v
	}
	if v := os.Getenv(summarizerModelEnv); v != "" {
		c.Summarizer.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Feeds.Dir != "" {
		base.Feeds.Dir = override.Feeds.Dir
	}
	if len(override.Feeds.Sources) > 0 {
		base.Feeds.Sources = override.Feeds.Sources
	}

	if override.Dedup.Driver != "" {
		base.Dedup.Driver = override.Dedup.Driver
	}
	if override.Dedup.Path != "" {
		base.Dedup.Path = override.Dedup.Path
	}

	if override.Predictor.Endpoint != "" {
		base.Predictor.Endpoint = override.Predictor.Endpoint
	}
	if override.Predictor.APIKey != "" {
		base.Predictor.APIKey = override.Predictor.APIKey
	}

	if override.Summarizer.Endpoint != "" {
		base.Summarizer.Endpoint = override.Summarizer.Endpoint
	}
	if override.Summarizer.Model != "" {
		base.Summarizer.Model = override.Summarizer.Model
	}
	if override.Summarizer.APIKey != "" {
		base.Summarizer.APIKey = override.Summarizer.APIKey
	}
	if override.Summarizer.SystemPrompt != "" {
		base.Summarizer.SystemPrompt = override.Summarizer.SystemPrompt
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Curation.Cap > 0 {
		base.Curation.Cap = override.Curation.Cap
	}
	if override.Curation.SolanaQuota > 0 {
		base.Curation.SolanaQuota = override.Curation.SolanaQuota
	}
	if override.Curation.GeneralQuota > 0 {
		base.Curation.GeneralQuota = override.Curation.GeneralQuota
	}
	if override.Curation.Highlights > 0 {
		base.Curation.Highlights = override.Curation.Highlights
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Feeds: FeedsConfig{
			Dir: "feeds",
			Sources: []FeedConfig{
				{Name: "twitter", Source: "twitter", Format: "json"},
				{Name: "reddit", Source: "reddit", Format: "json"},
				{Name: "news", Source: "news", Format: "json"},
			},
		},
		Dedup: DedupConfig{Driver: "file", Path: "seen_items.json"},
		Predictor: PredictorConfig{
			Endpoint: "",
			APIKey:   "",
		},
		Summarizer: SummarizerConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You write short executive summaries of crypto news digests.",
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Curation: CurationConfig{
			Cap:          15,
			SolanaQuota:  4,
			GeneralQuota: 6,
			Highlights:   5,
		},
	}
}
