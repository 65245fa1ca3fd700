package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"namefix/internal/backends"
	"namefix/internal/pipeline"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *pipeline.Report:
		return v.Human(), nil
	case *backends.RenameOutcome:
		return formatRenameHuman(v)
	case *LogResponseCLI:
		return formatLogHuman(v)
	case *DoctorResponseCLI:
		return formatDoctorHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatRenameHuman(outcome *backends.RenameOutcome) (string, error) {
	var b strings.Builder

	if outcome.Success {
		b.WriteString(fmt.Sprintf("✓ Renamed %s -> %s\n", outcome.OldName, outcome.NewName))
		b.WriteString(fmt.Sprintf("  File: %s\n", outcome.File))
		b.WriteString(fmt.Sprintf("  References updated: %d\n", outcome.ReferencesUpdated))
		b.WriteString(fmt.Sprintf("  Backend: %s\n", outcome.BackendID))
	} else {
		b.WriteString(fmt.Sprintf("✗ Rename failed: %s\n", outcome.Error))
		b.WriteString(fmt.Sprintf("  File: %s\n", outcome.File))
		if outcome.BackendID != "" {
			b.WriteString(fmt.Sprintf("  Backend: %s\n", outcome.BackendID))
		}
	}

	return b.String(), nil
}

func formatLogHuman(resp *LogResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Rename History\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(resp.Entries) == 0 {
		b.WriteString("No renames recorded.\n")
		return b.String(), nil
	}

	for i, entry := range resp.Entries {
		b.WriteString(fmt.Sprintf("%d. %s: %s -> %s\n", i+1, entry.FilePath, entry.OldName, entry.NewName))
		b.WriteString(fmt.Sprintf("   %s, %d references, %s backend\n",
			entry.AppliedAt.Format("2006-01-02 15:04 MST"),
			entry.ReferencesUpdated,
			entry.BackendID))
	}

	return b.String(), nil
}

func formatDoctorHuman(resp *DoctorResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("namefix Diagnostics\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, check := range resp.Checks {
		icon := "✓"
		switch check.Status {
		case "warn":
			icon = "!"
		case "fail":
			icon = "✗"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", icon, check.Name, check.Message))
	}

	if len(resp.Languages) > 0 {
		b.WriteString("\nRename capability:\n")
		for _, info := range resp.Languages {
			b.WriteString(fmt.Sprintf("  %-12s %-10s", info.Language, info.TierName))
			if info.Degraded && info.Reason != "" {
				b.WriteString(fmt.Sprintf(" (%s)", info.Reason))
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
