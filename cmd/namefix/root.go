package main

import (
	"os"

	"github.com/spf13/cobra"

	"namefix/internal/config"
	"namefix/internal/tier"
	"namefix/internal/version"
)

var (
	// tierFlag is the CLI --tier flag value
	tierFlag string
	// projectFlag overrides the project root directory
	projectFlag string
	// verboseFlag enables debug logging
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "namefix",
	Short: "namefix - safe renames for the identifiers a diff introduces",
	Long: `namefix reads a unified diff, mines the identifiers it introduces, asks an
LLM for better names, and applies the safe ones with backed-up, verified,
reversible edits across the languages of the change.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("namefix version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&tierFlag, "tier", "",
		"Rename tier: tree, tool, fallback, or auto (default: auto)")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "",
		"Project root directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}

// resolveTierMode determines the effective tier mode from CLI flag, env var, and config.
// Precedence: CLI flag > NAMEFIX_TIER env var > config.json tier > auto
func resolveTierMode(cfg *config.Config) (tier.Mode, error) {
	// 1. CLI flag (highest priority)
	if tierFlag != "" {
		return tier.ParseMode(tierFlag)
	}

	// 2. Environment variable
	if env := os.Getenv("NAMEFIX_TIER"); env != "" {
		return tier.ParseMode(env)
	}

	// 3. Config file default
	if cfg != nil && cfg.Tier.Mode != "" {
		return tier.ParseMode(cfg.Tier.Mode)
	}

	// 4. Auto-detect (default)
	return tier.ModeAuto, nil
}
