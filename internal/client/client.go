// Package client wires configuration, logging, and the decode pipeline
// into the high-level API the CLI consumes.
package client

import (
	"fmt"

	"github.com/spass-tools/unseal/internal/config"
	"github.com/spass-tools/unseal/internal/crypto"
	"github.com/spass-tools/unseal/internal/events"
	"github.com/spass-tools/unseal/internal/export"
	"github.com/spass-tools/unseal/internal/parser"
	"github.com/spass-tools/unseal/internal/services/unseal"
)

// Client provides the high-level API for unseal operations.
type Client struct {
	Unseal *unseal.Service

	config *config.Config
	logger *events.Logger
}

// New creates a client from config.
func New(cfg *config.Config, logger *events.Logger) (*Client, error) {
	policy, err := parser.ParsePolicy(cfg.Parse.OnBadRecord)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	provider := crypto.NewProvider()
	recordParser := parser.New(policy, logger)

	return &Client{
		Unseal: unseal.NewService(provider, recordParser, logger),
		config: cfg,
		logger: logger,
	}, nil
}

// Exporter returns the exporter for a format, falling back to the
// configured default when format is empty.
func (c *Client) Exporter(format string) (export.Exporter, error) {
	if format == "" {
		format = c.config.Output.Format
	}
	return export.For(format)
}
