package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug             bool          `env:"BOT_DEBUG"`
	BotToken          string        `env:"BOT_TELEGRAM_TOKEN"`
	BotName           string        `env:"BOT_NAME" envDefault:"Baka-Chan"`
	Prefix            string        `env:"BOT_PREFIX" envDefault:"/"`
	Symbol            string        `env:"BOT_SYMBOL" envDefault:"•"`
	Locale            string        `env:"BOT_LOCALE" envDefault:"en"`
	HelpDecoration    bool          `env:"BOT_HELP_DECORATION" envDefault:"true"`
	HelpStrict        bool          `env:"BOT_HELP_STRICT"`
	DecorationURL     string        `env:"BOT_DECORATION_URL" envDefault:"https://api.waifu.pics/sfw/waifu"`
	DecorationTimeout time.Duration `env:"BOT_DECORATION_TIMEOUT" envDefault:"8s"`
	PollDuration      time.Duration `env:"BOT_POLL_DURATION"`
	CommandsFile      string        `env:"BOT_COMMANDS_FILE"`
}

var config *Config

// GetConfig loads configuration once and exits the process if it is invalid
func GetConfig() *Config {
	if config != nil {
		return config
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	conf, err := Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if conf.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Debug("Configuration parameters",
		"BOT_DEBUG", conf.Debug,
		"BOT_NAME", conf.BotName,
		"BOT_PREFIX", conf.Prefix,
		"BOT_SYMBOL", conf.Symbol,
		"BOT_LOCALE", conf.Locale,
		"BOT_HELP_DECORATION", conf.HelpDecoration,
		"BOT_HELP_STRICT", conf.HelpStrict,
		"BOT_DECORATION_URL", conf.DecorationURL,
		"BOT_DECORATION_TIMEOUT", conf.DecorationTimeout,
		"BOT_POLL_DURATION", conf.PollDuration,
		"BOT_COMMANDS_FILE", conf.CommandsFile)

	config = conf
	return config
}

// Load parses the process environment without caching the result
func Load() (*Config, error) {
	conf, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	if conf.Prefix == "" {
		return nil, fmt.Errorf("BOT_PREFIX must not be empty")
	}
	if conf.DecorationTimeout <= 0 {
		return nil, fmt.Errorf("BOT_DECORATION_TIMEOUT must be positive, got %s", conf.DecorationTimeout)
	}
	if conf.PollDuration < 0 {
		return nil, fmt.Errorf("BOT_POLL_DURATION must not be negative, got %s", conf.PollDuration)
	}
	return &conf, nil
}

// RequireBotToken fails when no Telegram token is configured. Only commands talking
// to the Bot API need one.
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token not found in the environment (BOT_TELEGRAM_TOKEN)")
	}
	return nil
}
