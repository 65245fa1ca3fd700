// Package pipeline drives the review and apply flows: diff interpretation,
// identifier mining, suggestion requests, gate evaluation, and transactional
// application of eligible renames.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"namefix/internal/backends"
	"namefix/internal/config"
	"namefix/internal/diff"
	"namefix/internal/errors"
	"namefix/internal/gate"
	"namefix/internal/history"
	"namefix/internal/logging"
	"namefix/internal/rename"
	"namefix/internal/suggest"
	"namefix/internal/symbols"
	"namefix/internal/tier"
)

// Options configures a Pipeline.
type Options struct {
	ProjectRoot string
	Config      *config.Config

	// Provider supplies naming suggestions. It may be nil for flows that
	// never review (manual rename); Review and Apply then fail.
	Provider suggest.Provider

	// Runner executes external tools. Nil selects the real runner with the
	// configured verify timeout.
	Runner tier.ExecRunner

	// Journal records committed renames. Nil disables journaling.
	Journal *history.Journal

	Logger *logging.Logger

	// ChangeTitle and ChangeDescription describe the change under review and
	// are passed to the model as naming context.
	ChangeTitle       string
	ChangeDescription string
}

// Pipeline glues the interpreter, extractor, suggestion client, gate, and
// orchestrator into the review and apply flows.
type Pipeline struct {
	root      string
	cfg       *config.Config
	rules     *Rules
	parser    *diff.Parser
	extractor *symbols.Extractor
	client    *suggest.Client
	detector  *tier.Detector
	orch      *rename.Orchestrator
	journal   *history.Journal
	logger    *logging.Logger
	title     string
	desc      string
}

// New builds a pipeline from options. The rules and template files are read
// once here; malformed content fails construction.
func New(opts Options) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	root := opts.ProjectRoot
	if root == "" {
		root = "."
	}

	rules, err := LoadRules(root)
	if err != nil {
		return nil, err
	}
	templates, err := LoadTemplates(root)
	if err != nil {
		return nil, err
	}

	var client *suggest.Client
	if opts.Provider != nil {
		client, err = suggest.NewClient(opts.Provider, suggest.Options{
			MaxRetries:       cfg.Suggest.MaxRetries,
			CacheSize:        cfg.Suggest.CacheSize,
			CacheTTL:         time.Duration(cfg.Suggest.CacheTTLSeconds) * time.Second,
			Logger:           logger,
			SystemPrompt:     templates.SystemInstruction(),
			PromptNotes:      rules.PromptNotes(),
			LanguageGuidance: templates.LanguageGuidance(),
		})
		if err != nil {
			return nil, err
		}
	}

	runner := opts.Runner
	if runner == nil {
		runner = tier.NewRealRunner(time.Duration(cfg.Verify.TimeoutSeconds) * time.Second)
	}

	mode, err := tier.ParseMode(cfg.Tier.Mode)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, err.Error(), nil)
	}
	detector := tier.NewDetector()
	detector.SetRunner(runner)
	detector.SetMode(mode)
	detector.SetTreeAvailable(symbols.TreeAvailable())
	detector.DetectTools(cfg.Tier.ToolPaths)

	parser := diff.NewParser()
	if cfg.Diff.ModificationWindow > 0 {
		parser.Window = cfg.Diff.ModificationWindow
	}

	verifier := backends.NewVerifier(runner, cfg.Verify.Commands, logger)
	registry := backends.DefaultRegistry(detector, runner, verifier, logger)

	return &Pipeline{
		root:      root,
		cfg:       cfg,
		rules:     rules,
		parser:    parser,
		extractor: symbols.NewExtractor(logger),
		client:    client,
		detector:  detector,
		orch:      rename.NewOrchestrator(registry, logger),
		journal:   opts.Journal,
		logger:    logger,
		title:     opts.ChangeTitle,
		desc:      opts.ChangeDescription,
	}, nil
}

// Detector exposes the capability detector for doctor output.
func (p *Pipeline) Detector() *tier.Detector {
	return p.detector
}

// Review interprets a diff and collects naming suggestions for every
// candidate identifier. It never mutates files. Scope filters (unsupported
// file, no declaration, no suggestion) are counted, not raised.
func (p *Pipeline) Review(ctx context.Context, diffText string) (*Report, error) {
	if p.client == nil {
		return nil, errors.New(errors.MissingCredentials, "no suggestion provider configured", nil)
	}

	changes, err := p.parser.ParseAll(diffText)
	if err != nil {
		return nil, err
	}

	report := &Report{GeneratedAt: time.Now().UTC(), Files: len(changes)}
	if paths, err := diff.FilePaths(diffText); err == nil {
		if n := len(paths) - len(changes); n > 0 {
			report.Skips.UnsupportedFiles = n
		}
	}

	ignores := p.rules.IgnoreSet()
	maxPerFile := p.cfg.Suggest.MaxCandidatesPerFile

	for _, change := range changes {
		content, err := os.ReadFile(p.absPath(change.FilePath))
		if err != nil {
			p.logger.Warn("cannot read changed file", map[string]interface{}{
				"file":  change.FilePath,
				"error": err.Error(),
			})
			report.Skips.UnreadableFiles++
			continue
		}

		var names []string
		for _, name := range diff.Candidates(change) {
			if ignores[name] {
				report.Skips.IgnoredNames++
				continue
			}
			names = append(names, name)
		}
		if maxPerFile > 0 && len(names) > maxPerFile {
			report.Skips.OverCandidateCap += len(names) - maxPerFile
			names = names[:maxPerFile]
		}

		for _, name := range names {
			report.Candidates++

			sc := p.extractor.Extract(change.FilePath, name, string(content), change.Language)
			if sc == nil {
				report.Skips.NoDeclaration++
				continue
			}
			sc.ChangeTitle = p.title
			sc.ChangeDescription = p.desc

			s := p.client.Ask(ctx, sc)
			if s == nil {
				report.Skips.NoSuggestion++
				continue
			}
			if s.Confidence < gate.CollectThreshold {
				report.Skips.LowConfidence++
				continue
			}

			report.Records = append(report.Records, SuggestionRecord{
				File:       change.FilePath,
				Identifier: name,
				Line:       sc.DeclarationLine,
				Suggestion: s,
				AutoApply:  gate.AutoApply(s),
			})
		}
	}

	report.Costs = p.client.Costs().Stats()
	return report, nil
}

// Apply reviews the diff, then feeds the auto-apply eligible records to the
// orchestrator as a fail-fast batch. Each attempted rename's outcome is
// attached to its record; records after the first failure carry none.
func (p *Pipeline) Apply(ctx context.Context, diffText string) (*Report, error) {
	report, err := p.Review(ctx, diffText)
	if err != nil {
		return nil, err
	}

	var reqs []backends.RenameRequest
	var indices []int
	for i, rec := range report.Records {
		if !rec.AutoApply {
			continue
		}
		reqs = append(reqs, backends.RenameRequest{
			FilePath:    p.absPath(rec.File),
			OldName:     rec.Suggestion.OldName,
			NewName:     rec.Suggestion.NewName,
			LineHint:    rec.Line,
			ProjectRoot: p.root,
		})
		indices = append(indices, i)
	}
	if len(reqs) == 0 {
		return report, nil
	}

	outcomes := p.orch.ApplyAll(ctx, reqs)
	for k, outcome := range outcomes {
		rec := &report.Records[indices[k]]
		rec.Outcome = outcome
		if outcome.Success {
			p.journalRecord(rec.File, outcome)
		}
	}
	return report, nil
}

// RenameOne runs a single manual rename through the full transaction,
// bypassing diff interpretation and suggestion.
func (p *Pipeline) RenameOne(ctx context.Context, file, oldName, newName string, lineHint int) *backends.RenameOutcome {
	outcome := p.orch.Apply(ctx, backends.RenameRequest{
		FilePath:    p.absPath(file),
		OldName:     oldName,
		NewName:     newName,
		LineHint:    lineHint,
		ProjectRoot: p.root,
	})
	if outcome.Success {
		p.journalRecord(file, outcome)
	}
	return outcome
}

// journalRecord writes a committed rename to the journal. Journal failures
// are warnings: the rename they describe already committed.
func (p *Pipeline) journalRecord(file string, outcome *backends.RenameOutcome) {
	if p.journal == nil {
		return
	}
	err := p.journal.Record(&history.HistoryEntry{
		FilePath:          file,
		OldName:           outcome.OldName,
		NewName:           outcome.NewName,
		ReferencesUpdated: outcome.ReferencesUpdated,
		BackendID:         string(outcome.BackendID),
	})
	if err != nil {
		p.logger.Warn("failed to journal rename", map[string]interface{}{
			"file":  file,
			"error": err.Error(),
		})
	}
}

func (p *Pipeline) absPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(p.root, file)
}
