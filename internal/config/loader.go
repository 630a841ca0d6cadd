package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from file and environment.
type Loader struct {
	configPath string
	v          *viper.Viper
}

// NewLoader creates a config loader. An empty configPath searches the
// default locations instead.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		v:          viper.New(),
	}
}

// Load reads configuration from defaults, then an optional config
// file, then UNSEAL_* environment variables, and validates the result.
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()
	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.path", defaults.Output.Path)
	l.v.SetDefault("parse.on_bad_record", defaults.Parse.OnBadRecord)
	l.v.SetDefault("log.level", defaults.Log.Level)
	l.v.SetDefault("log.format", defaults.Log.Format)
	l.v.SetDefault("log.file", defaults.Log.File)
	l.v.SetDefault("log.color", defaults.Log.Color)

	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", l.configPath, err)
		}
	} else {
		l.v.SetConfigName("unseal")
		for _, dir := range defaultDirs() {
			l.v.AddConfigPath(dir)
		}
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	l.v.SetEnvPrefix("UNSEAL")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// defaultDirs returns default config file search directories.
func defaultDirs() []string {
	dirs := []string{"."}

	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(homeDir, ".config", "unseal"),
			filepath.Join(homeDir, ".unseal"),
		)
	}

	return dirs
}
