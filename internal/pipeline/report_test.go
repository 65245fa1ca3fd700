package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"namefix/internal/backends"
	"namefix/internal/suggest"
)

func sampleReport() *Report {
	return &Report{
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Files:       2,
		Candidates:  3,
		Records: []SuggestionRecord{
			{
				File:       "src/app.ts",
				Identifier: "data",
				Line:       12,
				Suggestion: &suggest.NamingSuggestion{
					OldName:    "data",
					NewName:    "userProfile",
					Confidence: 0.92,
					Rationale:  "Holds the fetched user profile.",
					Safety: suggest.Safety{
						AutofixEligible: true,
						ReasonText:      "Local to the module.",
					},
					Alternatives: []string{"profile", "currentUser"},
				},
				AutoApply: true,
				Outcome: &backends.RenameOutcome{
					Success:           true,
					File:              "src/app.ts",
					OldName:           "data",
					NewName:           "userProfile",
					ReferencesUpdated: 2,
					BackendID:         backends.BackendFallback,
				},
			},
			{
				File:       "src/api.ts",
				Identifier: "res",
				Suggestion: &suggest.NamingSuggestion{
					OldName:    "res",
					NewName:    "responseBody",
					Confidence: 0.88,
					Rationale:  "Names the decoded response payload.",
					Safety: suggest.Safety{
						IsPublicSurface: true,
						AutofixEligible: true,
						ReasonText:      "Exported from the package.",
					},
				},
			},
		},
		Skips: SkipCounters{UnsupportedFiles: 1, LowConfidence: 1},
		Costs: suggest.CostStats{
			TotalTokens:      1400,
			EstimatedCostUSD: 0.0012,
			APICalls:         3,
			CacheHitRate:     0.25,
		},
	}
}

func TestReport_JSONRoundTrip(t *testing.T) {
	report := sampleReport()

	data, err := report.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Files != 2 || decoded.Candidates != 3 {
		t.Errorf("decoded counts = %d/%d, want 2/3", decoded.Files, decoded.Candidates)
	}
	if len(decoded.Records) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded.Records))
	}
	if decoded.Records[0].Suggestion.NewName != "userProfile" {
		t.Errorf("record 0 new name = %s", decoded.Records[0].Suggestion.NewName)
	}
	if decoded.Records[0].Outcome == nil || decoded.Records[0].Outcome.ReferencesUpdated != 2 {
		t.Errorf("record 0 outcome = %+v", decoded.Records[0].Outcome)
	}
	if decoded.Records[1].Outcome != nil {
		t.Error("record 1 gained an outcome through the round trip")
	}
	if decoded.Skips.LowConfidence != 1 {
		t.Errorf("decoded LowConfidence = %d, want 1", decoded.Skips.LowConfidence)
	}
}

func TestReport_Human(t *testing.T) {
	out := sampleReport().Human()

	for _, want := range []string{
		"Rename Review",
		"Files: 2   Candidates: 3   Suggestions: 2",
		"1. src/app.ts:12",
		"data -> userProfile (confidence 0.92)",
		"Alternatives: profile, currentUser",
		"Gate: auto-apply",
		"✓ Applied: 2 references via fallback backend",
		"2. src/api.ts",
		"Gate: needs review (public surface)",
		"unsupported files: 1",
		"below confidence floor: 1",
		"API Calls: 3",
		"Estimated: $0.0012",
		"Cache Hit Rate: 25.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("human output missing %q\n%s", want, out)
		}
	}
}

func TestReport_HumanFailedOutcome(t *testing.T) {
	report := sampleReport()
	report.Records[0].Outcome = &backends.RenameOutcome{
		Success: false,
		Error:   "verification failed: file restored from backup",
	}

	out := report.Human()
	if !strings.Contains(out, "✗ Failed: verification failed") {
		t.Errorf("human output missing failure line\n%s", out)
	}
}

func TestReport_ExportPlain(t *testing.T) {
	report := sampleReport()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := report.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want, err := report.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("plain export differs from JSON rendering")
	}
}

func TestReport_ExportCompressed(t *testing.T) {
	report := sampleReport()
	path := filepath.Join(t.TempDir(), "report.json.zst")

	if err := report.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	compressed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer decoder.Close()

	got, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	want, err := report.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("decompressed export differs from JSON rendering")
	}
	if len(compressed) >= len(want) {
		t.Errorf("compressed size %d not smaller than plain %d", len(compressed), len(want))
	}
}
