package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docbrowser/internal/auth"
	"github.com/ziadkadry99/docbrowser/internal/config"
	"github.com/ziadkadry99/docbrowser/internal/documents"
	"github.com/ziadkadry99/docbrowser/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docbrowser init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: string(cfg.Log.Format),
		File:   cfg.Log.File,
	})
}

// newDocumentsClient creates the documents API client described by cfg.
func newDocumentsClient(cfg *config.Config) *documents.Client {
	opts := []documents.Option{documents.WithTimeout(cfg.API.Timeout)}
	ts := auth.NewTokenSource(context.Background(), cfg.API.Token, auth.ClientCredentials{
		ClientID:     cfg.API.OAuth.ClientID,
		ClientSecret: cfg.API.OAuth.ClientSecret,
		TokenURL:     cfg.API.OAuth.TokenURL,
		Scopes:       cfg.API.OAuth.Scopes,
	})
	if ts != nil {
		opts = append(opts, documents.WithTokenSource(ts))
	}
	return documents.NewClient(cfg.API.BaseURL, opts...)
}
