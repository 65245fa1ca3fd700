package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"namefix/internal/config"
	"namefix/internal/history"
)

var (
	logFormat    string
	logLimit     int
	logPruneDays int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent renames from the project journal",
	Long: `Log lists the renames recorded in .namefix/history.db, newest first.

Examples:
  namefix log                  # Show the last 20 renames
  namefix log --limit 50       # Show the last 50
  namefix log --prune-days 30  # Delete entries older than 30 days`,
	Run: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logFormat, "format", "human", "Output format (json, human)")
	logCmd.Flags().IntVar(&logLimit, "limit", history.DefaultRecentLimit, "Number of entries to show")
	logCmd.Flags().IntVar(&logPruneDays, "prune-days", 0, "Delete entries older than this many days")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) {
	root := mustGetProjectRoot()

	bootLogger := newLogger(nil)
	cfg := loadProjectConfig(root, bootLogger)
	logger := newLogger(cfg)

	// An absent journal means nothing was recorded; do not create one just
	// to read it.
	dbPath := filepath.Join(root, config.ConfigDir, "history.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		output, ferr := FormatResponse(&LogResponseCLI{Entries: []history.HistoryEntry{}}, OutputFormat(logFormat))
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", ferr)
			os.Exit(1)
		}
		fmt.Println(output)
		return
	}

	journal, err := history.Open(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rename journal: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = journal.Close() }()

	if logPruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -logPruneDays)
		removed, err := journal.Prune(cutoff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning journal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Pruned %d journal entries older than %d days\n", removed, logPruneDays)
		return
	}

	entries, err := journal.Recent(logLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading rename journal: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResponse(&LogResponseCLI{Count: len(entries), Entries: entries}, OutputFormat(logFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}
