package backends

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/tier"
)

// FallbackBackend renames by whole-word textual substitution. It is the
// weakest tier and the universal degradation target, so it is always
// available. Approximate: it cannot tell a binding from an unrelated
// identifier with the same spelling in another scope.
type FallbackBackend struct {
	verifier *Verifier
	logger   *logging.Logger
}

// NewFallbackBackend creates the textual substitution backend.
func NewFallbackBackend(verifier *Verifier, logger *logging.Logger) *FallbackBackend {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FallbackBackend{verifier: verifier, logger: logger}
}

// ID implements Backend.
func (b *FallbackBackend) ID() BackendID { return BackendFallback }

// Tier implements Backend.
func (b *FallbackBackend) Tier() tier.Tier { return tier.TierFallback }

// IsAvailable implements Backend. The fallback has no external requirements.
func (b *FallbackBackend) IsAvailable() bool { return true }

// Rename replaces every whole-word occurrence of the old name. Zero matches
// is a failure; the symbol the caller saw is not in the file anymore.
func (b *FallbackBackend) Rename(ctx context.Context, req RenameRequest) *RenameOutcome {
	content, mode, err := readFileWithMode(req.FilePath)
	if err != nil {
		return failedOutcome(req, BackendFallback, fmt.Sprintf("cannot read file: %v", err))
	}

	replaced, count := replaceWholeWord(content, req.OldName, req.NewName)
	if count == 0 {
		return failedOutcome(req, BackendFallback, fmt.Sprintf("symbol %s not found", req.OldName))
	}

	if err := os.WriteFile(req.FilePath, []byte(replaced), mode); err != nil {
		return failedOutcome(req, BackendFallback, fmt.Sprintf("cannot write file: %v", err))
	}

	b.logger.Debug("textual rename applied", map[string]interface{}{
		"file":     req.FilePath,
		"oldName":  req.OldName,
		"newName":  req.NewName,
		"replaced": count,
	})

	return &RenameOutcome{
		Success:           true,
		File:              req.FilePath,
		OldName:           req.OldName,
		NewName:           req.NewName,
		ReferencesUpdated: countWholeWord(replaced, req.NewName),
		BackendID:         BackendFallback,
	}
}

// Verify implements Backend via the external per-language check.
func (b *FallbackBackend) Verify(ctx context.Context, filePath, projectRoot string) bool {
	language, ok := lang.Detect(filePath)
	if !ok {
		return true
	}
	return b.verifier.Check(ctx, filePath, projectRoot, language)
}

func readFileWithMode(path string) (string, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return string(content), info.Mode().Perm(), nil
}

// isIdentByte reports whether b is a valid ASCII identifier character.
// Used to ensure replacements occur only at identifier boundaries.
func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('0' <= b && b <= '9') ||
		('A' <= b && b <= 'Z') ||
		('a' <= b && b <= 'z')
}

// replaceWholeWord substitutes newName for every boundary-delimited
// occurrence of oldName and returns the new text plus the replacement count.
func replaceWholeWord(content, oldName, newName string) (string, int) {
	var out strings.Builder
	count := 0
	i := 0
	for i < len(content) {
		idx := strings.Index(content[i:], oldName)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(oldName)
		out.WriteString(content[i:start])
		if wordBoundary(content, start, end) {
			out.WriteString(newName)
			count++
		} else {
			out.WriteString(oldName)
		}
		i = end
	}
	out.WriteString(content[i:])
	return out.String(), count
}

// countWholeWord counts boundary-delimited occurrences of name.
func countWholeWord(content, name string) int {
	count := 0
	i := 0
	for i < len(content) {
		idx := strings.Index(content[i:], name)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(name)
		if wordBoundary(content, start, end) {
			count++
			i = end
		} else {
			i = start + 1
		}
	}
	return count
}

// indexWholeWord returns the byte offset of the first boundary-delimited
// occurrence of name, or -1.
func indexWholeWord(content, name string) int {
	i := 0
	for i < len(content) {
		idx := strings.Index(content[i:], name)
		if idx < 0 {
			return -1
		}
		start := i + idx
		if wordBoundary(content, start, start+len(name)) {
			return start
		}
		i = start + 1
	}
	return -1
}

func wordBoundary(content string, start, end int) bool {
	if start > 0 && isIdentByte(content[start-1]) {
		return false
	}
	if end < len(content) && isIdentByte(content[end]) {
		return false
	}
	return true
}
