package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"namefix/internal/config"
	"namefix/internal/history"
	"namefix/internal/symbols"
	"namefix/internal/tier"
)

var doctorFormat string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose namefix configuration and rename capability",
	Long: `Doctor checks the configuration, credentials, and rename journal, then
reports the effective rename tier for every supported language.

A language shows as degraded when its best backend is unavailable, for
example a binary built without cgo or a missing refactoring engine.`,
	Run: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	root := mustGetProjectRoot()
	logger := newLogger(nil)

	var checks []DoctorCheckCLI

	// Configuration
	cfg, cfgErr := config.LoadConfig(root)
	if cfgErr != nil {
		checks = append(checks, DoctorCheckCLI{
			Name:    "config",
			Status:  "fail",
			Message: fmt.Sprintf("cannot load configuration: %v", cfgErr),
		})
		cfg = config.DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		checks = append(checks, DoctorCheckCLI{
			Name:    "config",
			Status:  "fail",
			Message: err.Error(),
		})
	} else {
		checks = append(checks, DoctorCheckCLI{
			Name:    "config",
			Status:  "pass",
			Message: "configuration is valid",
		})
	}

	// Credentials
	if os.Getenv(cfg.Suggest.APIKeyEnv) != "" {
		checks = append(checks, DoctorCheckCLI{
			Name:    "credentials",
			Status:  "pass",
			Message: fmt.Sprintf("%s is set", cfg.Suggest.APIKeyEnv),
		})
	} else {
		checks = append(checks, DoctorCheckCLI{
			Name:    "credentials",
			Status:  "warn",
			Message: fmt.Sprintf("%s is not set (review and apply need it)", cfg.Suggest.APIKeyEnv),
		})
	}

	// Journal
	if !cfg.History.Enabled {
		checks = append(checks, DoctorCheckCLI{
			Name:    "journal",
			Status:  "warn",
			Message: "rename history is disabled in config",
		})
	} else if journal, err := history.Open(root, logger); err != nil {
		checks = append(checks, DoctorCheckCLI{
			Name:    "journal",
			Status:  "fail",
			Message: fmt.Sprintf("cannot open rename journal: %v", err),
		})
	} else {
		_ = journal.Close()
		checks = append(checks, DoctorCheckCLI{
			Name:    "journal",
			Status:  "pass",
			Message: fmt.Sprintf("rename journal opens at %s", journal.Path()),
		})
	}

	// Tree-sitter
	if symbols.TreeAvailable() {
		checks = append(checks, DoctorCheckCLI{
			Name:    "tree-sitter",
			Status:  "pass",
			Message: "syntax-aware renaming is compiled in",
		})
	} else {
		checks = append(checks, DoctorCheckCLI{
			Name:    "tree-sitter",
			Status:  "warn",
			Message: "built without cgo; tree languages fall back to text renaming",
		})
	}

	// Tier mode and per-language capability
	var languages []tier.LanguageInfo
	mode, err := resolveTierMode(cfg)
	if err != nil {
		checks = append(checks, DoctorCheckCLI{
			Name:    "tier",
			Status:  "fail",
			Message: err.Error(),
		})
	} else {
		checks = append(checks, DoctorCheckCLI{
			Name:    "tier",
			Status:  "pass",
			Message: fmt.Sprintf("tier mode is %s", mode),
		})

		detector := tier.NewDetector()
		detector.SetMode(mode)
		detector.SetTreeAvailable(symbols.TreeAvailable())
		detector.DetectTools(cfg.Tier.ToolPaths)
		languages = detector.Describe()
	}

	healthy := true
	for _, check := range checks {
		if check.Status == "fail" {
			healthy = false
		}
	}

	response := &DoctorResponseCLI{
		Healthy:   healthy,
		Checks:    checks,
		Languages: languages,
	}

	output, err := FormatResponse(response, OutputFormat(doctorFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	if !healthy {
		os.Exit(1)
	}
}
