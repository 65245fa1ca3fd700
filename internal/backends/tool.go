package backends

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/tier"
)

// ToolBackend drives an external refactoring engine, today gorename for Go.
// A missing engine is a capability gap, not an error: requests degrade to
// the fallback backend silently.
type ToolBackend struct {
	detector *tier.Detector
	runner   tier.ExecRunner
	verifier *Verifier
	fallback *FallbackBackend
	logger   *logging.Logger
}

// NewToolBackend creates the external-engine backend.
func NewToolBackend(detector *tier.Detector, runner tier.ExecRunner, verifier *Verifier, fallback *FallbackBackend, logger *logging.Logger) *ToolBackend {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ToolBackend{
		detector: detector,
		runner:   runner,
		verifier: verifier,
		fallback: fallback,
		logger:   logger,
	}
}

// ID implements Backend.
func (b *ToolBackend) ID() BackendID { return BackendTool }

// Tier implements Backend.
func (b *ToolBackend) Tier() tier.Tier { return tier.TierTool }

// IsAvailable reports whether any refactoring engine was detected.
func (b *ToolBackend) IsAvailable() bool {
	for _, tool := range tier.RenameTools() {
		if _, ok := b.detector.ToolPath(tool.Language); ok {
			return true
		}
	}
	return false
}

// Rename locates the symbol's byte offset and invokes the engine against
// the project. The engine rewrites every reference it can prove; the
// reported count is the post-rename occurrence count in the target file.
func (b *ToolBackend) Rename(ctx context.Context, req RenameRequest) *RenameOutcome {
	language, ok := lang.Detect(req.FilePath)
	if !ok {
		return failedOutcome(req, BackendTool, fmt.Sprintf("unsupported file type: %s", req.FilePath))
	}

	toolPath, ok := b.detector.ToolPath(language)
	if !ok {
		b.logger.Debug("refactoring engine unavailable, using fallback", map[string]interface{}{
			"language": string(language),
			"file":     req.FilePath,
		})
		return b.fallback.Rename(ctx, req)
	}

	content, err := os.ReadFile(req.FilePath)
	if err != nil {
		return failedOutcome(req, BackendTool, fmt.Sprintf("cannot read file: %v", err))
	}

	offset := offsetFor(string(content), req.OldName, req.LineHint)
	if offset < 0 {
		return failedOutcome(req, BackendTool, fmt.Sprintf("symbol %s not found", req.OldName))
	}

	absFile, err := filepath.Abs(req.FilePath)
	if err != nil {
		absFile = req.FilePath
	}

	_, stderr, err := b.runner.Run(ctx, req.ProjectRoot, toolPath,
		"-offset", fmt.Sprintf("%s:#%d", absFile, offset),
		"-to", req.NewName,
	)
	if err != nil {
		message := fmt.Sprintf("refactoring engine failed: %v", err)
		if line := firstLine(stderr); line != "" {
			message += ": " + line
		}
		return failedOutcome(req, BackendTool, message)
	}

	renamed, err := os.ReadFile(req.FilePath)
	if err != nil {
		return failedOutcome(req, BackendTool, fmt.Sprintf("cannot re-read file: %v", err))
	}

	return &RenameOutcome{
		Success:           true,
		File:              req.FilePath,
		OldName:           req.OldName,
		NewName:           req.NewName,
		ReferencesUpdated: countWholeWord(string(renamed), req.NewName),
		BackendID:         BackendTool,
	}
}

// Verify implements Backend via the external per-language check.
func (b *ToolBackend) Verify(ctx context.Context, filePath, projectRoot string) bool {
	language, ok := lang.Detect(filePath)
	if !ok {
		return true
	}
	return b.verifier.Check(ctx, filePath, projectRoot, language)
}

// offsetFor finds the byte offset of the first whole-word occurrence of
// name, preferring the hinted 1-based line. Returns -1 when absent.
func offsetFor(content, name string, lineHint int) int {
	if lineHint > 0 {
		lineStart := 0
		line := 1
		for lineStart <= len(content) {
			lineEnd := strings.IndexByte(content[lineStart:], '\n')
			end := len(content)
			if lineEnd >= 0 {
				end = lineStart + lineEnd
			}
			if line == lineHint {
				if off := indexWholeWord(content[lineStart:end], name); off >= 0 {
					return lineStart + off
				}
				break
			}
			if lineEnd < 0 {
				break
			}
			lineStart = end + 1
			line++
		}
	}
	return indexWholeWord(content, name)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
