package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spass-tools/unseal/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "skip", cfg.Parse.OnBadRecord)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad output format", func(c *config.Config) { c.Output.Format = "xml" }},
		{"bad record policy", func(c *config.Config) { c.Parse.OnBadRecord = "ignore" }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoader(t *testing.T) {
	t.Run("defaults when no file exists", func(t *testing.T) {
		cfg, err := config.NewLoader("").Load()
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.Output.Format)
	})

	t.Run("reads config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unseal.json")
		content := `{
  "output": {"format": "md"},
  "parse": {"on_bad_record": "abort"},
  "log": {"level": "debug", "format": "json"}
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := config.NewLoader(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "md", cfg.Output.Format)
		assert.Equal(t, "abort", cfg.Parse.OnBadRecord)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unseal.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"output": {"format": "md"}}`), 0600))

		t.Setenv("UNSEAL_OUTPUT_FORMAT", "json")
		t.Setenv("UNSEAL_LOG_LEVEL", "warn")

		cfg, err := config.NewLoader(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("invalid file values fail validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unseal.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"output": {"format": "docx"}}`), 0600))

		_, err := config.NewLoader(path).Load()
		assert.Error(t, err)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := config.NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load()
		assert.Error(t, err)
	})
}
