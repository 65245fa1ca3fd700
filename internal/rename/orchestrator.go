// Package rename executes rename transactions: backup, backend rename,
// verification, then commit or rollback. The file on disk is never left
// different from its pre-transaction bytes unless the emergency restore
// itself fails, and that failure is logged loudly.
package rename

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"namefix/internal/backends"
	"namefix/internal/lang"
	"namefix/internal/logging"
)

// Orchestrator drives the per-file rename state machine: BackedUp, Renamed,
// Verified, Committed, with any failed transition ending in RolledBack.
type Orchestrator struct {
	registry *backends.Registry
	logger   *logging.Logger
}

// NewOrchestrator creates an orchestrator over a backend registry.
func NewOrchestrator(registry *backends.Registry, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Orchestrator{registry: registry, logger: logger}
}

// Apply runs one rename transaction and always resolves to a definite
// outcome. After the backup exists the file is guaranteed to end up either
// fully renamed and verified or byte-identical to its pre-call state.
func (o *Orchestrator) Apply(ctx context.Context, req backends.RenameRequest) (outcome *backends.RenameOutcome) {
	language, ok := lang.Detect(req.FilePath)
	if !ok {
		return failure(req, "", fmt.Sprintf("unsupported file type: %s", req.FilePath))
	}

	backend := o.registry.Select(language)
	if backend == nil {
		return failure(req, "", "no rename backend available")
	}

	backupPath, err := o.backup(req.FilePath)
	if err != nil {
		// Nothing was touched; there is no rollback to do.
		return failure(req, backend.ID(), fmt.Sprintf("backup failed: %v", err))
	}

	defer func() {
		if p := recover(); p != nil {
			o.restore(req.FilePath, backupPath)
			outcome = failure(req, backend.ID(), fmt.Sprintf("rename panicked: %v", p))
		}
	}()

	result := backend.Rename(ctx, req)
	if !result.Success {
		o.restore(req.FilePath, backupPath)
		return result
	}

	if !backend.Verify(ctx, req.FilePath, req.ProjectRoot) {
		o.restore(req.FilePath, backupPath)
		failed := *result
		failed.Success = false
		failed.Error = "verification failed: file restored from backup"
		return &failed
	}

	o.removeBackup(backupPath)
	o.logger.Info("rename committed", map[string]interface{}{
		"file":       req.FilePath,
		"oldName":    req.OldName,
		"newName":    req.NewName,
		"backend":    string(result.BackendID),
		"references": result.ReferencesUpdated,
	})
	return result
}

// ApplyAll runs requests in list order and stops at the first failure.
// Later renames may depend on earlier ones; continuing after a failure
// risks silent corruption. The returned slice holds only the outcomes of
// attempted requests.
func (o *Orchestrator) ApplyAll(ctx context.Context, reqs []backends.RenameRequest) []*backends.RenameOutcome {
	outcomes := make([]*backends.RenameOutcome, 0, len(reqs))
	for _, req := range reqs {
		outcome := o.Apply(ctx, req)
		outcomes = append(outcomes, outcome)
		if !outcome.Success {
			break
		}
	}
	return outcomes
}

// backup copies the target to a uuid-suffixed sidecar next to it.
func (o *Orchestrator) backup(filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	backupPath := fmt.Sprintf("%s.bak.%s", filePath, uuid.New().String())
	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", err
	}
	return backupPath, nil
}

// restore copies the backup over the target and removes the sidecar.
// Restore failures are logged, never returned; they must not mask the
// failure that triggered the rollback.
func (o *Orchestrator) restore(filePath, backupPath string) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		o.logger.Error("rollback failed: cannot read backup", map[string]interface{}{
			"file":   filePath,
			"backup": backupPath,
			"error":  err.Error(),
		})
		return
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(backupPath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		o.logger.Error("rollback failed: cannot restore file", map[string]interface{}{
			"file":   filePath,
			"backup": backupPath,
			"error":  err.Error(),
		})
		return
	}

	o.removeBackup(backupPath)
}

func (o *Orchestrator) removeBackup(backupPath string) {
	if err := os.Remove(backupPath); err != nil {
		o.logger.Warn("could not remove backup file", map[string]interface{}{
			"backup": backupPath,
			"error":  err.Error(),
		})
	}
}

func failure(req backends.RenameRequest, id backends.BackendID, message string) *backends.RenameOutcome {
	return &backends.RenameOutcome{
		Success:   false,
		File:      req.FilePath,
		OldName:   req.OldName,
		NewName:   req.NewName,
		BackendID: id,
		Error:     message,
	}
}
