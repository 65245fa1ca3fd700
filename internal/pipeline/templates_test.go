package pipeline

import (
	"strings"
	"testing"

	"namefix/internal/errors"
	"namefix/internal/lang"
)

func TestLoadTemplates_MissingFile(t *testing.T) {
	templates, err := LoadTemplates(t.TempDir())
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if templates.SystemInstruction() != "" {
		t.Errorf("SystemInstruction() = %q, want empty", templates.SystemInstruction())
	}

	guidance := templates.LanguageGuidance()
	if !strings.Contains(guidance[lang.Go], "MixedCaps") {
		t.Errorf("Go guidance = %q, want MixedCaps rule", guidance[lang.Go])
	}
	if !strings.Contains(guidance[lang.Python], "snake_case") {
		t.Errorf("Python guidance = %q, want snake_case rule", guidance[lang.Python])
	}
	for _, language := range []lang.Language{lang.Shell, lang.PHP, lang.C, lang.CPP} {
		if line, ok := guidance[language]; ok {
			t.Errorf("unexpected built-in guidance for %s: %q", language, line)
		}
	}
}

func TestLoadTemplates_Overrides(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, ".namefix/prompts.toml", `system = "You help rename identifiers in legacy code."

[guidance]
typescript = "Use domain nouns, never single letters."
`)

	templates, err := LoadTemplates(root)
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if templates.SystemInstruction() != "You help rename identifiers in legacy code." {
		t.Errorf("SystemInstruction() = %q", templates.SystemInstruction())
	}

	guidance := templates.LanguageGuidance()
	if guidance[lang.TypeScript] != "Use domain nouns, never single letters." {
		t.Errorf("TypeScript guidance = %q, want the override", guidance[lang.TypeScript])
	}
	if !strings.Contains(guidance[lang.Go], "MixedCaps") {
		t.Errorf("Go guidance = %q, want the built-in line preserved", guidance[lang.Go])
	}
}

func TestLoadTemplates_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed toml",
			content: "system = unterminated\n",
		},
		{
			name:    "unknown language",
			content: "[guidance]\nklingon = \"Use battle metaphors.\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeProjectFile(t, root, ".namefix/prompts.toml", tt.content)

			_, err := LoadTemplates(root)
			if err == nil {
				t.Fatal("LoadTemplates accepted an invalid template file")
			}
			if errors.CodeOf(err) != errors.ConfigInvalid {
				t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.ConfigInvalid)
			}
		})
	}
}
