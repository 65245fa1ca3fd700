package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	reviewFormat string
	reviewTitle  string
	reviewDesc   string
	reviewOut    string
)

var reviewCmd = &cobra.Command{
	Use:   "review [diff-file]",
	Short: "Suggest better names for identifiers a diff introduces",
	Long: `Review reads a unified diff, mines the identifiers it introduces, and asks
the model for better names. No files are modified.

The diff comes from a file argument or stdin:

  git diff | namefix review
  namefix review changes.patch
  namefix review --title "Add session cache" changes.patch

Use --out to save the JSON report; a .zst extension compresses it.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewFormat, "format", "human", "Output format (json, human)")
	reviewCmd.Flags().StringVar(&reviewTitle, "title", "", "Change title given to the model as context")
	reviewCmd.Flags().StringVar(&reviewDesc, "desc", "", "Change description given to the model as context")
	reviewCmd.Flags().StringVar(&reviewOut, "out", "", "Write the JSON report to this path (.zst compresses)")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) {
	start := time.Now()
	root := mustGetProjectRoot()

	diffText, err := readDiffInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bootLogger := newLogger(nil)
	cfg := loadProjectConfig(root, bootLogger)
	logger := newLogger(cfg)
	ctx := newContext()

	p, cleanup, err := buildPipeline(ctx, root, cfg, logger, pipelineOptions{
		needProvider: true,
		title:        reviewTitle,
		description:  reviewDesc,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	report, err := p.Review(ctx, diffText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reviewing diff: %v\n", err)
		os.Exit(1)
	}

	if reviewOut != "" {
		if err := report.Export(reviewOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
			os.Exit(1)
		}
	}

	output, err := FormatResponse(report, OutputFormat(reviewFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("Review completed", map[string]interface{}{
		"files":      report.Files,
		"candidates": report.Candidates,
		"duration":   time.Since(start).Milliseconds(),
	})
}
