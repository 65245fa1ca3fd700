package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"namefix/internal/config"
	"namefix/internal/errors"
	"namefix/internal/history"
	"namefix/internal/logging"
	"namefix/internal/pipeline"
	"namefix/internal/suggest"
)

// getProjectRoot returns the project root directory.
func getProjectRoot() (string, error) {
	if projectFlag != "" {
		return filepath.Abs(projectFlag)
	}
	return os.Getwd()
}

// mustGetProjectRoot returns the project root or exits on error.
func mustGetProjectRoot() string {
	root, err := getProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// loadProjectConfig loads the project configuration, falling back to defaults.
func loadProjectConfig(root string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		cfg = config.DefaultConfig()
	}
	return cfg
}

// newLogger creates a logger honoring the config and the --verbose flag. A
// nil config gives the human info-level default used before config loads.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	level := logging.InfoLevel
	if cfg != nil {
		if cfg.Logging.Format == "json" {
			format = logging.JSONFormat
		}
		level = logging.ParseLevel(cfg.Logging.Level)
	}
	if verboseFlag {
		level = logging.DebugLevel
	}
	return logging.NewLogger(logging.Config{Format: format, Level: level})
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// readDiffInput returns the diff text from the named file, or from stdin when
// no argument (or "-") is given.
func readDiffInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read diff file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read diff from stdin: %w", err)
	}
	return string(data), nil
}

// pipelineOptions selects what buildPipeline wires up for a command.
type pipelineOptions struct {
	needProvider bool
	title        string
	description  string
}

// buildPipeline assembles the rename pipeline for one command invocation. The
// returned cleanup closes the journal and must be called when non-nil errors
// are absent.
func buildPipeline(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger, opts pipelineOptions) (*pipeline.Pipeline, func(), error) {
	mode, err := resolveTierMode(cfg)
	if err != nil {
		return nil, nil, err
	}
	cfg.Tier.Mode = string(mode)

	var provider suggest.Provider
	if opts.needProvider {
		apiKey := os.Getenv(cfg.Suggest.APIKeyEnv)
		if apiKey == "" {
			return nil, nil, errors.New(errors.MissingCredentials,
				fmt.Sprintf("%s is not set; export your API key to request suggestions", cfg.Suggest.APIKeyEnv), nil)
		}
		gemini, err := suggest.NewGeminiProvider(ctx, apiKey, cfg.Suggest.Model, cfg.Suggest.Temperature, cfg.Suggest.MaxTokens)
		if err != nil {
			return nil, nil, err
		}
		provider = gemini
	}

	cleanup := func() {}
	var journal *history.Journal
	if cfg.History.Enabled {
		j, err := history.Open(root, logger)
		if err != nil {
			logger.Warn("Failed to open rename journal, continuing without history", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			journal = j
			cleanup = func() { _ = j.Close() }
		}
	}

	p, err := pipeline.New(pipeline.Options{
		ProjectRoot:       root,
		Config:            cfg,
		Provider:          provider,
		Journal:           journal,
		Logger:            logger,
		ChangeTitle:       opts.title,
		ChangeDescription: opts.description,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}
