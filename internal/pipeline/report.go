package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"namefix/internal/backends"
	"namefix/internal/suggest"
)

// SuggestionRecord is one reviewed identifier: where it was found, what the
// model proposed, the gate verdict, and the rename outcome when one was
// attempted. Records after a failed batch rename carry no outcome.
type SuggestionRecord struct {
	File       string                    `json:"file"`
	Identifier string                    `json:"identifier"`
	Line       int                       `json:"line,omitempty"`
	Suggestion *suggest.NamingSuggestion `json:"suggestion"`
	AutoApply  bool                      `json:"autoApply"`
	Outcome    *backends.RenameOutcome   `json:"outcome,omitempty"`
}

// SkipCounters tallies candidates filtered out of a run. Scope filters are
// not errors; counting them lets the report explain missing records.
type SkipCounters struct {
	UnsupportedFiles int `json:"unsupportedFiles"`
	UnreadableFiles  int `json:"unreadableFiles"`
	IgnoredNames     int `json:"ignoredNames"`
	NoDeclaration    int `json:"noDeclaration"`
	NoSuggestion     int `json:"noSuggestion"`
	LowConfidence    int `json:"lowConfidence"`
	OverCandidateCap int `json:"overCandidateCap"`
}

// Report is the result of one review or apply run.
type Report struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Files       int                `json:"files"`
	Candidates  int                `json:"candidates"`
	Records     []SuggestionRecord `json:"records"`
	Skips       SkipCounters       `json:"skips"`
	Costs       suggest.CostStats  `json:"costs"`
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Human renders the report as readable text.
func (r *Report) Human() string {
	var b strings.Builder

	b.WriteString("Rename Review\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Files: %d   Candidates: %d   Suggestions: %d\n\n",
		r.Files, r.Candidates, len(r.Records)))

	for i, rec := range r.Records {
		s := rec.Suggestion
		b.WriteString(fmt.Sprintf("%d. %s", i+1, rec.File))
		if rec.Line > 0 {
			b.WriteString(fmt.Sprintf(":%d", rec.Line))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("   %s -> %s (confidence %.2f)\n", s.OldName, s.NewName, s.Confidence))
		b.WriteString(fmt.Sprintf("   %s\n", s.Rationale))
		if len(s.Alternatives) > 0 {
			b.WriteString(fmt.Sprintf("   Alternatives: %s\n", strings.Join(s.Alternatives, ", ")))
		}

		verdict := "needs review"
		if rec.AutoApply {
			verdict = "auto-apply"
		}
		if s.Safety.IsPublicSurface {
			verdict += " (public surface)"
		}
		b.WriteString(fmt.Sprintf("   Gate: %s\n", verdict))

		if rec.Outcome != nil {
			if rec.Outcome.Success {
				b.WriteString(fmt.Sprintf("   ✓ Applied: %d references via %s backend\n",
					rec.Outcome.ReferencesUpdated, rec.Outcome.BackendID))
			} else {
				b.WriteString(fmt.Sprintf("   ✗ Failed: %s\n", rec.Outcome.Error))
			}
		}
		b.WriteString("\n")
	}

	if r.Skips != (SkipCounters{}) {
		b.WriteString("Skipped:\n")
		writeSkip(&b, "unsupported files", r.Skips.UnsupportedFiles)
		writeSkip(&b, "unreadable files", r.Skips.UnreadableFiles)
		writeSkip(&b, "ignored identifiers", r.Skips.IgnoredNames)
		writeSkip(&b, "no declaration found", r.Skips.NoDeclaration)
		writeSkip(&b, "no suggestion produced", r.Skips.NoSuggestion)
		writeSkip(&b, "below confidence floor", r.Skips.LowConfidence)
		writeSkip(&b, "over per-file candidate cap", r.Skips.OverCandidateCap)
		b.WriteString("\n")
	}

	b.WriteString("Cost:\n")
	b.WriteString(fmt.Sprintf("  API Calls: %d\n", r.Costs.APICalls))
	b.WriteString(fmt.Sprintf("  Tokens: %d\n", r.Costs.TotalTokens))
	b.WriteString(fmt.Sprintf("  Estimated: $%.4f\n", r.Costs.EstimatedCostUSD))
	b.WriteString(fmt.Sprintf("  Cache Hit Rate: %.1f%%\n", r.Costs.CacheHitRate*100))

	return b.String()
}

func writeSkip(b *strings.Builder, label string, count int) {
	if count == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("  %s: %d\n", label, count))
}

// Export writes the JSON report to path. A .zst extension compresses the
// bytes with zstd before writing.
func (r *Report) Export(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".zst") {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("failed to create compressor: %w", err)
		}
		data = encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
		encoder.Close()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
