package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"namefix/internal/config"
	"namefix/internal/errors"
	"namefix/internal/lang"
)

// TemplatesFile is the prompt template file under the config directory.
const TemplatesFile = "prompts.toml"

// builtinGuidance is the per-language rule line used when no template file
// overrides it. Languages without established single-style conventions for
// locals are left out.
var builtinGuidance = map[lang.Language]string{
	lang.Go:         "Go identifiers use MixedCaps; exported names start with an uppercase letter.",
	lang.JavaScript: "JavaScript identifiers use camelCase.",
	lang.TypeScript: "TypeScript identifiers use camelCase; types and interfaces use PascalCase.",
	lang.TSX:        "TypeScript identifiers use camelCase; React components use PascalCase.",
	lang.Python:     "Python identifiers use snake_case; classes use PascalCase.",
	lang.Rust:       "Rust identifiers use snake_case; types and traits use PascalCase.",
	lang.Java:       "Java identifiers use camelCase; classes use PascalCase.",
	lang.Kotlin:     "Kotlin identifiers use camelCase; classes use PascalCase.",
	lang.Ruby:       "Ruby identifiers use snake_case; classes use PascalCase.",
	lang.CSharp:     "C# members use PascalCase; locals and parameters use camelCase.",
}

// Templates holds optional prompt overrides from .namefix/prompts.toml.
type Templates struct {
	// System replaces the built-in system instruction when set.
	System string `toml:"system"`
	// Guidance maps a language name to a replacement guidance line.
	Guidance map[string]string `toml:"guidance"`
}

// LoadTemplates reads .namefix/prompts.toml under the project root. A missing
// file yields the built-in templates; malformed content is a fatal
// configuration error.
func LoadTemplates(projectRoot string) (*Templates, error) {
	path := filepath.Join(projectRoot, config.ConfigDir, TemplatesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Templates{}, nil
		}
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("cannot read %s", path), err)
	}

	templates := &Templates{}
	if err := toml.Unmarshal(data, templates); err != nil {
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("%s is not valid TOML", path), err)
	}
	for name := range templates.Guidance {
		if !knownLanguage(name) {
			return nil, errors.New(errors.ConfigInvalid,
				fmt.Sprintf("template file references unknown language %q", name), nil)
		}
	}
	return templates, nil
}

// SystemInstruction returns the system prompt override, or empty when the
// built-in instruction applies.
func (t *Templates) SystemInstruction() string { return t.System }

// LanguageGuidance merges the built-in guidance lines with file overrides.
func (t *Templates) LanguageGuidance() map[lang.Language]string {
	merged := make(map[lang.Language]string, len(builtinGuidance)+len(t.Guidance))
	for language, line := range builtinGuidance {
		merged[language] = line
	}
	for name, line := range t.Guidance {
		merged[lang.Language(name)] = line
	}
	return merged
}
