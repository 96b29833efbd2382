package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 150, cfg.OpenAI.MaxTokens)
	assert.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "men", cfg.Scores.Role)
	assert.Equal(t, 30*time.Second, cfg.Scores.SelectionTimeout)
	assert.Equal(t, "https://site.api.espn.com/apis/site/v2/sports", cfg.Scores.BaseURL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("SELECTION_TIMEOUT", "45s")
	t.Setenv("SCOREBOARD_ROLE", "fans")
	t.Setenv("MAX_TOKENS", "300")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, 45*time.Second, cfg.Scores.SelectionTimeout)
	assert.Equal(t, "fans", cfg.Scores.Role)
	assert.Equal(t, 300, cfg.OpenAI.MaxTokens)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SELECTION_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DiscordToken:  "token",
			CommandPrefix: "!",
			Scores: ScoresConfig{
				SelectionTimeout: 30 * time.Second,
				BaseURL:          "http://example.invalid",
			},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.DiscordToken = ""
	assert.ErrorContains(t, cfg.Validate(), "DISCORD_TOKEN")

	cfg = valid()
	cfg.CommandPrefix = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scores.SelectionTimeout = 0
	assert.Error(t, cfg.Validate())
}
