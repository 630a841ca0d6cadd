package config

import (
	"errors"
	"fmt"
)

// Config holds all application configuration.
type Config struct {
	// Output controls export format and destination.
	Output OutputConfig `mapstructure:"output" json:"output"`

	// Parse controls record-parsing behavior.
	Parse ParseConfig `mapstructure:"parse" json:"parse"`

	// Log controls logging behavior.
	Log LogConfig `mapstructure:"log" json:"log"`
}

// OutputConfig for export behavior.
type OutputConfig struct {
	Format string `mapstructure:"format" json:"format"` // csv, txt, md, json, sqlite
	Path   string `mapstructure:"path" json:"path"`     // empty = derive from input path
}

// ParseConfig for the record parser.
type ParseConfig struct {
	// OnBadRecord decides what an undecodable table row does:
	// "skip" collects it as a warning, "abort" fails the whole run.
	OnBadRecord string `mapstructure:"on_bad_record" json:"on_bad_record"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" json:"format"` // text, json
	File   string `mapstructure:"file" json:"file"`     // log file path (empty = stderr)
	Color  bool   `mapstructure:"color" json:"color"`   // colored terminal output
}

// ExportFormats lists the supported output formats.
var ExportFormats = []string{"csv", "txt", "md", "json", "sqlite"}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "csv",
		},
		Parse: ParseConfig{
			OnBadRecord: "skip",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Color:  true,
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if !validFormat(c.Output.Format) {
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}

	switch c.Parse.OnBadRecord {
	case "skip", "abort":
	default:
		return fmt.Errorf("invalid parse.on_bad_record: %s", c.Parse.OnBadRecord)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.Log.Format] {
		return errors.New("log format must be text or json")
	}

	return nil
}

func validFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}
