// Package backends implements the per-language rename backends and the
// ladder that selects between them. Three backends cover the capability
// tiers: a tree-sitter rename, an external refactoring engine, and a
// whole-word textual substitution that every language can fall back to.
package backends

import (
	"context"

	"namefix/internal/tier"
)

// BackendID uniquely identifies a backend type
type BackendID string

const (
	// BackendTree renames through an in-process tree-sitter parse
	BackendTree BackendID = "tree"
	// BackendTool drives an external refactoring engine
	BackendTool BackendID = "tool"
	// BackendFallback performs whole-word textual substitution
	BackendFallback BackendID = "fallback"
)

// RenameRequest describes one rename against one file.
type RenameRequest struct {
	FilePath string `json:"filePath"`
	OldName  string `json:"oldName"`
	NewName  string `json:"newName"`
	// LineHint is the 1-based declaration line when known; zero means none.
	LineHint    int    `json:"lineHint,omitempty"`
	ProjectRoot string `json:"projectRoot,omitempty"`
}

// RenameOutcome is the terminal result of one rename. Never mutated after
// return.
type RenameOutcome struct {
	Success           bool      `json:"success"`
	File              string    `json:"file"`
	OldName           string    `json:"oldName"`
	NewName           string    `json:"newName"`
	ReferencesUpdated int       `json:"referencesUpdated"`
	BackendID         BackendID `json:"backendId,omitempty"`
	Error             string    `json:"error,omitempty"`
}

// Backend is the contract every rename backend implements
type Backend interface {
	// ID returns the unique identifier for this backend
	ID() BackendID

	// Tier returns the capability tier this backend serves
	Tier() tier.Tier

	// IsAvailable checks if this backend can run in the current build
	IsAvailable() bool

	// Rename performs the rename and always resolves to a definite outcome
	Rename(ctx context.Context, req RenameRequest) *RenameOutcome

	// Verify re-checks the file after a rename; true means still sound
	Verify(ctx context.Context, filePath, projectRoot string) bool
}

func failedOutcome(req RenameRequest, id BackendID, message string) *RenameOutcome {
	return &RenameOutcome{
		Success:   false,
		File:      req.FilePath,
		OldName:   req.OldName,
		NewName:   req.NewName,
		BackendID: id,
		Error:     message,
	}
}
