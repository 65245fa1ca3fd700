package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	renameFormat string
	renameLine   int
)

var renameCmd = &cobra.Command{
	Use:   "rename <file> <old-name> <new-name>",
	Short: "Rename one identifier in one file",
	Long: `Rename applies a single identifier rename with backup, verification, and
automatic rollback on failure. No model call is made.

Examples:
  namefix rename src/app.ts data userProfile
  namefix rename --line 42 src/app.ts data userProfile`,
	Args: cobra.ExactArgs(3),
	Run:  runRename,
}

func init() {
	renameCmd.Flags().StringVar(&renameFormat, "format", "human", "Output format (json, human)")
	renameCmd.Flags().IntVar(&renameLine, "line", 0, "Line of the declaration, to disambiguate shadowed names")
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) {
	root := mustGetProjectRoot()

	bootLogger := newLogger(nil)
	cfg := loadProjectConfig(root, bootLogger)
	logger := newLogger(cfg)
	ctx := newContext()

	p, cleanup, err := buildPipeline(ctx, root, cfg, logger, pipelineOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	outcome := p.RenameOne(ctx, args[0], args[1], args[2], renameLine)

	output, err := FormatResponse(outcome, OutputFormat(renameFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	if !outcome.Success {
		os.Exit(1)
	}
}
