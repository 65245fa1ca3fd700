package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"namefix/internal/config"
	"namefix/internal/errors"
	"namefix/internal/lang"
)

// RulesFile is the naming rules file under the project config directory.
const RulesFile = "rules.yaml"

// namingStyles maps a style name a rules file may use to an example.
var namingStyles = map[string]string{
	"camelCase":            "userProfile",
	"PascalCase":           "UserProfile",
	"snake_case":           "user_profile",
	"SCREAMING_SNAKE_CASE": "USER_PROFILE",
	"kebab-case":           "user-profile",
}

// Rules holds optional project naming conventions from .namefix/rules.yaml.
type Rules struct {
	// Styles maps a language name to the naming style its identifiers follow.
	Styles map[string]string `yaml:"styles"`
	// Ignores lists identifiers never offered for renaming.
	Ignores []string `yaml:"ignores"`
	// Notes are free-form convention lines added to every prompt.
	Notes []string `yaml:"notes"`
}

// LoadRules reads .namefix/rules.yaml under the project root. A missing file
// yields empty rules; malformed content is a fatal configuration error.
func LoadRules(projectRoot string) (*Rules, error) {
	path := filepath.Join(projectRoot, config.ConfigDir, RulesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Rules{}, nil
		}
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("cannot read %s", path), err)
	}

	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, errors.New(errors.ConfigInvalid, fmt.Sprintf("%s is not valid YAML", path), err)
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *Rules) validate() error {
	for name, style := range r.Styles {
		if !knownLanguage(name) {
			return errors.New(errors.ConfigInvalid,
				fmt.Sprintf("rules file references unknown language %q", name), nil)
		}
		if _, ok := namingStyles[style]; !ok {
			return errors.New(errors.ConfigInvalid,
				fmt.Sprintf("rules file references unknown style %q for %s", style, name), nil)
		}
	}
	return nil
}

// IgnoreSet returns the extra identifiers to drop during extraction, or nil
// when the rules add none.
func (r *Rules) IgnoreSet() map[string]bool {
	if len(r.Ignores) == 0 {
		return nil
	}
	set := make(map[string]bool, len(r.Ignores))
	for _, name := range r.Ignores {
		set[name] = true
	}
	return set
}

// PromptNotes renders the rules as prompt rule lines: one per styled
// language in sorted order, then the free-form notes.
func (r *Rules) PromptNotes() []string {
	names := make([]string, 0, len(r.Styles))
	for name := range r.Styles {
		names = append(names, name)
	}
	sort.Strings(names)

	notes := make([]string, 0, len(names)+len(r.Notes))
	for _, name := range names {
		style := r.Styles[name]
		notes = append(notes, fmt.Sprintf("%s identifiers use %s, for example %q.", name, style, namingStyles[style]))
	}
	notes = append(notes, r.Notes...)
	return notes
}

func knownLanguage(name string) bool {
	for _, l := range lang.All() {
		if string(l) == name {
			return true
		}
	}
	return false
}
