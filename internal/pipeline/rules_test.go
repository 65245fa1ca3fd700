package pipeline

import (
	"testing"

	"namefix/internal/errors"
)

func TestLoadRules_MissingFile(t *testing.T) {
	rules, err := LoadRules(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.IgnoreSet() != nil {
		t.Error("IgnoreSet() != nil for empty rules")
	}
	if notes := rules.PromptNotes(); len(notes) != 0 {
		t.Errorf("PromptNotes() = %v, want empty", notes)
	}
}

func TestLoadRules_Valid(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, ".namefix/rules.yaml", `styles:
  typescript: camelCase
  python: snake_case
ignores:
  - data
  - tmp
notes:
  - Prefer domain nouns over abbreviations.
`)

	rules, err := LoadRules(root)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	ignores := rules.IgnoreSet()
	if !ignores["data"] || !ignores["tmp"] {
		t.Errorf("IgnoreSet() = %v, want data and tmp", ignores)
	}

	notes := rules.PromptNotes()
	want := []string{
		`python identifiers use snake_case, for example "user_profile".`,
		`typescript identifiers use camelCase, for example "userProfile".`,
		"Prefer domain nouns over abbreviations.",
	}
	if len(notes) != len(want) {
		t.Fatalf("PromptNotes() = %v, want %v", notes, want)
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("note[%d] = %q, want %q", i, notes[i], want[i])
		}
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "styles: [not: a map\n",
		},
		{
			name:    "unknown language",
			content: "styles:\n  klingon: camelCase\n",
		},
		{
			name:    "unknown style",
			content: "styles:\n  typescript: shoutyCase\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeProjectFile(t, root, ".namefix/rules.yaml", tt.content)

			_, err := LoadRules(root)
			if err == nil {
				t.Fatal("LoadRules accepted an invalid rules file")
			}
			if errors.CodeOf(err) != errors.ConfigInvalid {
				t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.ConfigInvalid)
			}
		})
	}
}
