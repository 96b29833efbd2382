package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the bot configuration. It is loaded once at startup and
// handed to every component that needs it.
type Config struct {
	DiscordToken  string `envconfig:"DISCORD_TOKEN"`
	CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"!"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"INFO"`
	ClientID      string `envconfig:"CLIENT_ID"`
	GuildID       string `envconfig:"GUILD_ID"`

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Scores    ScoresConfig

	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// OpenAIConfig configures the /chat and !chat commands
type OpenAIConfig struct {
	APIKey      string  `envconfig:"OPENAI_API_KEY"`
	Model       string  `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	MaxTokens   int     `envconfig:"MAX_TOKENS" default:"150"`
	Temperature float64 `envconfig:"TEMPERATURE" default:"0.7"`
}

// AnthropicConfig configures the !claude command
type AnthropicConfig struct {
	APIKey    string `envconfig:"ANTHROPIC_API_KEY"`
	Model     string `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-5"`
	MaxTokens int64  `envconfig:"ANTHROPIC_MAX_TOKENS" default:"1024"`
}

// ScoresConfig configures the scoreboard workflow
type ScoresConfig struct {
	Role             string        `envconfig:"SCOREBOARD_ROLE" default:"men"`
	SelectionTimeout time.Duration `envconfig:"SELECTION_TIMEOUT" default:"30s"`
	BaseURL          string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings required to run the Discord bot
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}
	if c.CommandPrefix == "" {
		return errors.New("COMMAND_PREFIX must not be empty")
	}
	if c.Scores.SelectionTimeout <= 0 {
		return errors.New("SELECTION_TIMEOUT must be greater than 0")
	}
	if c.Scores.BaseURL == "" {
		return errors.New("ESPN_BASE_URL must not be empty")
	}
	return nil
}
