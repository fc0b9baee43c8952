package cli_test

import (
	"testing"
	"time"

	"carousel/cli"
	"carousel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := cli.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := cli.ParseConfig([]string{
		"-port", "7000",
		"-fps", "120",
		"-duration", "1s",
		"-min-width", "320",
		"-log-format", "json",
		"-origins", "https://a.example, https://b.example,",
	})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.WebPort)
	assert.Equal(t, 120, cfg.FrameRate)
	assert.Equal(t, time.Second, cfg.TransitionDuration)
	assert.Equal(t, 320.0, cfg.MinWidth)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}

func TestParseConfig_EnvOverridesFlags(t *testing.T) {
	t.Setenv("WEB_PORT", "9100")

	cfg, err := cli.ParseConfig([]string{"-port", "7000"})
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.WebPort)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := cli.ParseConfig([]string{"-fps", "0"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = cli.ParseConfig([]string{"-unknown"})
	assert.Error(t, err)
}
