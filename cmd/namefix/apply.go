package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	applyFormat string
	applyTitle  string
	applyDesc   string
	applyOut    string
	applyDryRun bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [diff-file]",
	Short: "Review a diff and apply the safe renames",
	Long: `Apply runs a review, then applies every suggestion the safety gate cleared
for auto-apply. Each rename is backed up, verified, and rolled back on
failure. The batch stops at the first failed rename.

Examples:
  git diff | namefix apply
  namefix apply --dry-run changes.patch
  namefix apply --out report.json.zst changes.patch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyFormat, "format", "human", "Output format (json, human)")
	applyCmd.Flags().StringVar(&applyTitle, "title", "", "Change title given to the model as context")
	applyCmd.Flags().StringVar(&applyDesc, "desc", "", "Change description given to the model as context")
	applyCmd.Flags().StringVar(&applyOut, "out", "", "Write the JSON report to this path (.zst compresses)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Review only, modify nothing")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
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
		title:        applyTitle,
		description:  applyDesc,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	run := p.Apply
	if applyDryRun {
		run = p.Review
	}

	report, err := run(ctx, diffText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error applying renames: %v\n", err)
		os.Exit(1)
	}

	if applyOut != "" {
		if err := report.Export(applyOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
			os.Exit(1)
		}
	}

	output, err := FormatResponse(report, OutputFormat(applyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	applied, failed := 0, 0
	for _, rec := range report.Records {
		if rec.Outcome == nil {
			continue
		}
		if rec.Outcome.Success {
			applied++
		} else {
			failed++
		}
	}

	logger.Debug("Apply completed", map[string]interface{}{
		"applied":  applied,
		"failed":   failed,
		"duration": time.Since(start).Milliseconds(),
	})

	if failed > 0 {
		os.Exit(1)
	}
}
