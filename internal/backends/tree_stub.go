//go:build !cgo

package backends

import (
	"context"

	"namefix/internal/logging"
	"namefix/internal/tier"
)

// TreeBackend is inert without CGO; the registry never selects it because
// the tier detector already lowered tree-tier languages to fallback.
type TreeBackend struct {
	logger *logging.Logger
}

// NewTreeBackend creates the inert stub.
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
func (b *TreeBackend) IsAvailable() bool { return false }

// Rename implements Backend.
func (b *TreeBackend) Rename(ctx context.Context, req RenameRequest) *RenameOutcome {
	return failedOutcome(req, BackendTree, "tree backend requires a cgo build")
}

// Verify implements Backend.
func (b *TreeBackend) Verify(ctx context.Context, filePath, projectRoot string) bool {
	return false
}
