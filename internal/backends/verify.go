package backends

import (
	"context"
	"path/filepath"
	"strings"

	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/tier"
)

// checkCommands maps languages to their post-rename syntax check argv.
// "{file}" expands to the target path; commands without it run in the
// file's directory so project-scoped builds see their unit.
var checkCommands = map[lang.Language][]string{
	lang.Go:         {"go", "build", "./..."},
	lang.JavaScript: {"node", "--check", "{file}"},
	lang.Python:     {"python3", "-m", "py_compile", "{file}"},
	lang.Ruby:       {"ruby", "-c", "{file}"},
	lang.PHP:        {"php", "-l", "{file}"},
	lang.Shell:      {"bash", "-n", "{file}"},
	lang.C:          {"gcc", "-fsyntax-only", "{file}"},
	lang.CPP:        {"g++", "-fsyntax-only", "{file}"},
}

// Verifier runs the external check command for the tool and fallback tiers.
// The tree backend verifies by re-parsing instead.
type Verifier struct {
	runner    tier.ExecRunner
	overrides map[string][]string
	logger    *logging.Logger
}

// NewVerifier creates a verifier. Overrides replace the built-in command for
// a language, keyed by language name, with "{file}" as the path placeholder.
func NewVerifier(runner tier.ExecRunner, overrides map[string][]string, logger *logging.Logger) *Verifier {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Verifier{runner: runner, overrides: overrides, logger: logger}
}

// Check reports whether the file still passes its language's syntax check.
// Languages with no known checker pass with a logged warning; failing them
// would make every rename in those languages impossible.
func (v *Verifier) Check(ctx context.Context, filePath, projectRoot string, language lang.Language) bool {
	argv := v.command(language)
	if len(argv) == 0 {
		v.logger.Warn("no syntax checker for language, verification skipped", map[string]interface{}{
			"language": string(language),
			"file":     filePath,
		})
		return true
	}

	expanded := make([]string, len(argv))
	usesFile := false
	for i, arg := range argv {
		if strings.Contains(arg, "{file}") {
			usesFile = true
		}
		expanded[i] = strings.ReplaceAll(arg, "{file}", filePath)
	}
	dir := projectRoot
	if !usesFile {
		dir = filepath.Dir(filePath)
	}

	_, stderr, err := v.runner.Run(ctx, dir, expanded[0], expanded[1:]...)
	if err != nil {
		v.logger.Debug("verification command failed", map[string]interface{}{
			"file":    filePath,
			"command": strings.Join(expanded, " "),
			"stderr":  stderr,
			"error":   err.Error(),
		})
		return false
	}
	return true
}

func (v *Verifier) command(language lang.Language) []string {
	if argv, ok := v.overrides[string(language)]; ok && len(argv) > 0 {
		return argv
	}
	return checkCommands[language]
}
