package backends

import (
	"context"
	"errors"
	"strings"
	"testing"

	"namefix/internal/lang"
	"namefix/internal/tier"
)

func TestVerifier_Check(t *testing.T) {
	tests := []struct {
		name     string
		language lang.Language
		file     string
		cmdKey   string
		cmdErr   error
		want     bool
		wantCall string
	}{
		{
			name:     "python check passes",
			language: lang.Python,
			file:     "/tmp/app.py",
			cmdKey:   "python3",
			want:     true,
			wantCall: "python3 -m py_compile /tmp/app.py",
		},
		{
			name:     "ruby check fails",
			language: lang.Ruby,
			file:     "/tmp/invoice.rb",
			cmdKey:   "ruby",
			cmdErr:   errors.New("exit status 1"),
			want:     false,
			wantCall: "ruby -c /tmp/invoice.rb",
		},
		{
			name:     "shell check passes",
			language: lang.Shell,
			file:     "/tmp/deploy.sh",
			cmdKey:   "bash",
			want:     true,
			wantCall: "bash -n /tmp/deploy.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := tier.NewMockRunner()
			runner.SetCommand(tt.cmdKey, "", "", tt.cmdErr)
			v := NewVerifier(runner, nil, nil)

			got := v.Check(context.Background(), tt.file, "", tt.language)
			if got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}

			calls := runner.Calls()
			if len(calls) != 1 || calls[0] != tt.wantCall {
				t.Errorf("calls = %v, want [%q]", calls, tt.wantCall)
			}
		})
	}
}

func TestVerifier_CheckNoCheckerPassesOptimistically(t *testing.T) {
	runner := tier.NewMockRunner()
	v := NewVerifier(runner, nil, nil)

	if !v.Check(context.Background(), "/tmp/program.cs", "", lang.CSharp) {
		t.Error("language without a checker must verify optimistically")
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("calls = %v, want none", runner.Calls())
	}
}

func TestVerifier_CheckOverride(t *testing.T) {
	runner := tier.NewMockRunner()
	runner.SetCommand("deno", "", "", nil)
	overrides := map[string][]string{
		"typescript": {"deno", "check", "{file}"},
	}
	v := NewVerifier(runner, overrides, nil)

	if !v.Check(context.Background(), "/tmp/app.ts", "", lang.TypeScript) {
		t.Error("expected override command to pass")
	}

	calls := runner.Calls()
	if len(calls) != 1 || calls[0] != "deno check /tmp/app.ts" {
		t.Errorf("calls = %v, want [deno check /tmp/app.ts]", calls)
	}
}

func TestVerifier_CheckProjectScopedCommandRunsInFileDir(t *testing.T) {
	runner := tier.NewMockRunner()
	runner.SetCommand("go", "", "", nil)
	v := NewVerifier(runner, nil, nil)

	if !v.Check(context.Background(), "/repo/pkg/server/main.go", "/repo", lang.Go) {
		t.Error("expected go build to pass")
	}

	calls := runner.Calls()
	if len(calls) != 1 || !strings.HasPrefix(calls[0], "go build") {
		t.Errorf("calls = %v, want a go build invocation", calls)
	}
}
