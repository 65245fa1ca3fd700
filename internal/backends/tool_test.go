package backends

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"namefix/internal/lang"
	"namefix/internal/tier"
)

func newToolBackend(t *testing.T, runner *tier.MockRunner, gorenamePath string) *ToolBackend {
	t.Helper()
	detector := tier.NewDetector()
	if gorenamePath != "" {
		detector.SetToolPath(lang.Go, gorenamePath)
	}
	verifier := NewVerifier(runner, nil, nil)
	fallback := NewFallbackBackend(verifier, nil)
	return NewToolBackend(detector, runner, verifier, fallback, nil)
}

func TestToolBackend_RenameInvokesEngine(t *testing.T) {
	runner := tier.NewMockRunner()
	runner.SetCommand("/usr/bin/gorename", "", "", nil)
	backend := newToolBackend(t, runner, "/usr/bin/gorename")

	path := writeTempFile(t, "main.go", "package main\n\nfunc handleReq() {}\n")
	outcome := backend.Rename(context.Background(), RenameRequest{
		FilePath: path,
		OldName:  "handleReq",
		NewName:  "handleRequest",
		LineHint: 3,
	})

	if !outcome.Success {
		t.Fatalf("rename failed: %s", outcome.Error)
	}
	if outcome.BackendID != BackendTool {
		t.Errorf("BackendID = %s, want %s", outcome.BackendID, BackendTool)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want one engine invocation", calls)
	}
	if !strings.Contains(calls[0], "-offset") || !strings.Contains(calls[0], "-to handleRequest") {
		t.Errorf("engine argv = %q, want -offset and -to flags", calls[0])
	}
	// Offset of handleReq on line 3: "package main\n\nfunc ".
	if !strings.Contains(calls[0], ":#19") {
		t.Errorf("engine argv = %q, want byte offset 19", calls[0])
	}
}

func TestToolBackend_RenameEngineFailure(t *testing.T) {
	runner := tier.NewMockRunner()
	runner.SetCommand("/usr/bin/gorename", "", "gorename: no identifier at this position", errors.New("exit status 1"))
	backend := newToolBackend(t, runner, "/usr/bin/gorename")

	path := writeTempFile(t, "main.go", "package main\n\nfunc handleReq() {}\n")
	outcome := backend.Rename(context.Background(), RenameRequest{
		FilePath: path,
		OldName:  "handleReq",
		NewName:  "handleRequest",
	})

	if outcome.Success {
		t.Fatal("expected failure when the engine fails")
	}
	if !strings.Contains(outcome.Error, "refactoring engine failed") {
		t.Errorf("Error = %q, want engine failure message", outcome.Error)
	}
	if !strings.Contains(outcome.Error, "no identifier at this position") {
		t.Errorf("Error = %q, want stderr detail", outcome.Error)
	}
}

func TestToolBackend_RenameDegradesWithoutEngine(t *testing.T) {
	runner := tier.NewMockRunner()
	backend := newToolBackend(t, runner, "")

	path := writeTempFile(t, "main.go", "package main\n\nvar cnt = 0\nvar x = cnt\n")
	outcome := backend.Rename(context.Background(), RenameRequest{
		FilePath: path,
		OldName:  "cnt",
		NewName:  "count",
	})

	if !outcome.Success {
		t.Fatalf("degraded rename failed: %s", outcome.Error)
	}
	if outcome.BackendID != BackendFallback {
		t.Errorf("BackendID = %s, want %s (silent degradation)", outcome.BackendID, BackendFallback)
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("calls = %v, want none", runner.Calls())
	}

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "var count = 0") {
		t.Errorf("file content = %q, want textual rename applied", string(content))
	}
}

func TestToolBackend_RenameSymbolNotFound(t *testing.T) {
	runner := tier.NewMockRunner()
	backend := newToolBackend(t, runner, "/usr/bin/gorename")

	path := writeTempFile(t, "main.go", "package main\n")
	outcome := backend.Rename(context.Background(), RenameRequest{
		FilePath: path,
		OldName:  "handleReq",
		NewName:  "handleRequest",
	})

	if outcome.Success {
		t.Fatal("expected failure for absent symbol")
	}
	if outcome.Error != "symbol handleReq not found" {
		t.Errorf("Error = %q, want symbol-not-found", outcome.Error)
	}
}

func TestOffsetFor(t *testing.T) {
	content := "package main\n\nvar data = 1\nfunc use() { _ = data }\n"

	tests := []struct {
		name     string
		word     string
		lineHint int
		want     int
	}{
		{"hint on declaration line", "data", 3, 18},
		{"hint on usage line", "data", 4, 44},
		{"no hint takes first", "data", 0, 18},
		{"hint line lacks word falls back to first", "data", 1, 18},
		{"hint past end falls back to first", "data", 99, 18},
		{"absent word", "missing", 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offsetFor(content, tt.word, tt.lineHint); got != tt.want {
				t.Errorf("offsetFor(%q, %d) = %d, want %d", tt.word, tt.lineHint, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("first\nsecond"); got != "first" {
		t.Errorf("firstLine = %q, want %q", got, "first")
	}
	if got := firstLine("  only  "); got != "only" {
		t.Errorf("firstLine = %q, want %q", got, "only")
	}
	if got := firstLine(""); got != "" {
		t.Errorf("firstLine = %q, want empty", got)
	}
}
