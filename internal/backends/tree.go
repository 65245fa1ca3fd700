//go:build cgo

package backends

import (
	"context"
	"fmt"
	"os"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/symbols"
	"namefix/internal/tier"
)

// TreeBackend renames through a tree-sitter parse of the file in isolation:
// every identifier node carrying the old name's exact text is rewritten.
// In-file only; references in other files are outside its reach.
type TreeBackend struct {
	logger *logging.Logger
}

// NewTreeBackend creates the tree-sitter backend.
func NewTreeBackend(logger *logging.Logger) *TreeBackend {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TreeBackend{logger: logger}
}

// ID implements Backend.
func (b *TreeBackend) ID() BackendID { return BackendTree }

// Tier implements Backend.
func (b *TreeBackend) Tier() tier.Tier { return tier.TierTree }

// IsAvailable implements Backend.
func (b *TreeBackend) IsAvailable() bool { return symbols.TreeAvailable() }

// Rename rewrites every identifier node whose text equals the old name and
// persists the file. The reported count is the post-rename occurrence count
// of the new name.
func (b *TreeBackend) Rename(ctx context.Context, req RenameRequest) *RenameOutcome {
	language, ok := lang.Detect(req.FilePath)
	if !ok || symbols.Grammar(language) == nil {
		return failedOutcome(req, BackendTree, fmt.Sprintf("no grammar for file: %s", req.FilePath))
	}

	content, mode, err := readFileWithMode(req.FilePath)
	if err != nil {
		return failedOutcome(req, BackendTree, fmt.Sprintf("cannot read file: %v", err))
	}

	ranges, err := symbols.Occurrences([]byte(content), req.OldName, language)
	if err != nil {
		return failedOutcome(req, BackendTree, fmt.Sprintf("parse failed: %v", err))
	}
	if len(ranges) == 0 {
		return failedOutcome(req, BackendTree, fmt.Sprintf("symbol %s not found", req.OldName))
	}

	// Splice back to front so earlier offsets stay valid.
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] > ranges[j][0] })
	renamed := []byte(content)
	for _, r := range ranges {
		renamed = append(renamed[:r[0]], append([]byte(req.NewName), renamed[r[1]:]...)...)
	}

	if err := os.WriteFile(req.FilePath, renamed, mode); err != nil {
		return failedOutcome(req, BackendTree, fmt.Sprintf("cannot write file: %v", err))
	}

	references := len(ranges)
	if after, err := symbols.Occurrences(renamed, req.NewName, language); err == nil {
		references = len(after)
	}

	b.logger.Debug("tree rename applied", map[string]interface{}{
		"file":     req.FilePath,
		"oldName":  req.OldName,
		"newName":  req.NewName,
		"replaced": len(ranges),
	})

	return &RenameOutcome{
		Success:           true,
		File:              req.FilePath,
		OldName:           req.OldName,
		NewName:           req.NewName,
		ReferencesUpdated: references,
		BackendID:         BackendTree,
	}
}

// Verify re-parses the file and fails on any structural error node.
func (b *TreeBackend) Verify(ctx context.Context, filePath, projectRoot string) bool {
	language, ok := lang.Detect(filePath)
	if !ok {
		return true
	}
	grammar := symbols.Grammar(language)
	if grammar == nil {
		return true
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return false
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return false
	}
	return !tree.RootNode().HasError()
}
