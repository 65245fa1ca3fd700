package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"namefix/internal/config"
)

var (
	configFormat string
	initForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage namefix configuration",
	Long:  "View and manage namefix configuration stored in .namefix/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current namefix configuration.

Examples:
  namefix config show                # Pretty-print current config
  namefix config show --format json  # Raw JSON output`,
	Run: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize namefix configuration",
	Long:  "Creates a .namefix/ directory with default configuration in the project root",
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string         `json:"configPath,omitempty"`
	UsedDefaults bool           `json:"usedDefaults"`
	Config       *config.Config `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) {
	root := mustGetProjectRoot()

	cfg, err := config.LoadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	configPath := filepath.Join(root, config.ConfigDir, "config.json")
	usedDefaults := false
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = ""
		usedDefaults = true
	}

	response := &ConfigShowResponse{
		ConfigPath:   configPath,
		UsedDefaults: usedDefaults,
		Config:       cfg,
	}

	if configFormat == "json" {
		output, err := formatJSON(response)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
		return
	}

	printConfigHuman(response)
}

func printConfigHuman(response *ConfigShowResponse) {
	cfg := response.Config
	defaults := config.DefaultConfig()

	fmt.Println("namefix Configuration")
	fmt.Println(strings.Repeat("=", 60))

	if response.UsedDefaults {
		fmt.Println("Source: defaults (no config file found)")
	} else {
		fmt.Printf("Source: %s\n", response.ConfigPath)
	}
	fmt.Println()

	printConfigValue("version", cfg.Version, defaults.Version)

	fmt.Println("\nsuggest:")
	printConfigValue("  model", cfg.Suggest.Model, defaults.Suggest.Model)
	printConfigValue("  maxTokens", cfg.Suggest.MaxTokens, defaults.Suggest.MaxTokens)
	printConfigValue("  temperature", cfg.Suggest.Temperature, defaults.Suggest.Temperature)
	printConfigValue("  maxRetries", cfg.Suggest.MaxRetries, defaults.Suggest.MaxRetries)
	printConfigValue("  apiKeyEnv", cfg.Suggest.APIKeyEnv, defaults.Suggest.APIKeyEnv)
	printConfigValue("  cacheTtlSeconds", cfg.Suggest.CacheTTLSeconds, defaults.Suggest.CacheTTLSeconds)
	printConfigValue("  cacheSize", cfg.Suggest.CacheSize, defaults.Suggest.CacheSize)
	printConfigValue("  maxCandidatesPerFile", cfg.Suggest.MaxCandidatesPerFile, defaults.Suggest.MaxCandidatesPerFile)

	fmt.Println("\ndiff:")
	printConfigValue("  modificationWindow", cfg.Diff.ModificationWindow, defaults.Diff.ModificationWindow)

	fmt.Println("\ntier:")
	printConfigValue("  mode", cfg.Tier.Mode, defaults.Tier.Mode)
	if len(cfg.Tier.ToolPaths) > 0 {
		for name, path := range cfg.Tier.ToolPaths {
			fmt.Printf("  toolPaths.%s: %s\n", name, path)
		}
	}

	fmt.Println("\nverify:")
	printConfigValue("  timeoutSeconds", cfg.Verify.TimeoutSeconds, defaults.Verify.TimeoutSeconds)

	fmt.Println("\nhistory:")
	printConfigValue("  enabled", cfg.History.Enabled, defaults.History.Enabled)

	fmt.Println("\nlogging:")
	printConfigValue("  format", cfg.Logging.Format, defaults.Logging.Format)
	printConfigValue("  level", cfg.Logging.Level, defaults.Logging.Level)

	fmt.Println()
	fmt.Println("Use 'namefix config show --format json' for the full configuration")
}

func printConfigValue(name string, value, defaultValue interface{}) {
	modified := ""
	if fmt.Sprintf("%v", value) != fmt.Sprintf("%v", defaultValue) {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Printf("%s: %v%s\n", name, value, modified)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root := mustGetProjectRoot()
	configPath := filepath.Join(root, config.ConfigDir, "config.json")

	if _, err := os.Stat(configPath); err == nil && !initForce {
		// Idempotent behavior: already initialized is success
		fmt.Println("namefix already initialized.")
		fmt.Printf("Configuration at: %s\n", configPath)
		fmt.Println("\nRun 'namefix config init --force' to overwrite.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Println("Initialized namefix.")
	fmt.Printf("Configuration at: %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  export %s=<your key>\n", cfg.Suggest.APIKeyEnv)
	fmt.Println("  git diff | namefix review")
	return nil
}
