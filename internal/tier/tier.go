// Package tier provides rename capability detection and gating.
// namefix renames through three tiers of language tooling:
//   - Tree: tree-sitter parse with binding-aware in-file rename
//   - Tool: an external refactoring engine invoked per project
//   - Fallback: whole-word textual substitution
//
// Every language has a static ceiling; missing capabilities (a binary built
// without cgo, an uninstalled refactoring tool) lower the effective tier at
// runtime, and an explicit mode can cap it further.
package tier

import (
	"fmt"
	"time"

	"namefix/internal/lang"
)

// Tier represents the rename capability level for a language.
type Tier int

const (
	// TierFallback performs whole-word textual substitution.
	// Always available; approximate by design.
	TierFallback Tier = iota

	// TierTool drives an external refactoring engine (e.g. gorename).
	// Requires the engine binary on PATH or a configured path.
	TierTool

	// TierTree performs a tree-sitter parse and renames the binding in-file.
	// Requires a CGO build.
	TierTree
)

// String returns the tier name (user-facing).
func (t Tier) String() string {
	switch t {
	case TierFallback:
		return "Fallback"
	case TierTool:
		return "Tool"
	case TierTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// ModeName returns the CLI mode name for the tier.
func (t Tier) ModeName() string {
	switch t {
	case TierFallback:
		return "fallback"
	case TierTool:
		return "tool"
	case TierTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Description returns a human-readable description of the tier.
func (t Tier) Description() string {
	switch t {
	case TierFallback:
		return "whole-word substitution"
	case TierTool:
		return "external refactoring engine"
	case TierTree:
		return "tree-sitter rename"
	default:
		return "unknown"
	}
}

// Mode represents the requested tier mode from CLI/env/config. A mode caps
// the maximum tier; it never raises a language above its capabilities.
type Mode string

const (
	// ModeAuto uses the highest available tier per language (default)
	ModeAuto Mode = "auto"
	// ModeFallback forces whole-word substitution for every language
	ModeFallback Mode = "fallback"
	// ModeTool caps languages at the external-tool tier
	ModeTool Mode = "tool"
	// ModeTree allows all tiers (same ceiling as auto, but explicit)
	ModeTree Mode = "tree"
)

// ValidModes returns all valid tier mode strings.
func ValidModes() []string {
	return []string{"auto", "fallback", "tool", "tree"}
}

// ParseMode parses a string into a Mode, returning an error for invalid values.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "fallback":
		return ModeFallback, nil
	case "tool":
		return ModeTool, nil
	case "tree":
		return ModeTree, nil
	default:
		return ModeAuto, fmt.Errorf("invalid tier '%s': must be one of: auto, fallback, tool, tree", s)
	}
}

func tierFromMode(mode Mode) Tier {
	switch mode {
	case ModeFallback:
		return TierFallback
	case ModeTool:
		return TierTool
	default:
		return TierTree
	}
}

// staticTiers is the per-language capability ceiling. Go gets the external
// engine because gorename understands scope; the tree-sitter grammars carry
// the rest of the structured languages; everything else is textual.
var staticTiers = map[lang.Language]Tier{
	lang.Go:         TierTool,
	lang.JavaScript: TierTree,
	lang.TypeScript: TierTree,
	lang.TSX:        TierTree,
	lang.Python:     TierTree,
	lang.Rust:       TierTree,
	lang.Java:       TierTree,
	lang.Kotlin:     TierTree,
	lang.Ruby:       TierFallback,
	lang.PHP:        TierFallback,
	lang.C:          TierFallback,
	lang.CPP:        TierFallback,
	lang.CSharp:     TierFallback,
	lang.Shell:      TierFallback,
}

// StaticTier returns the capability ceiling for a language.
func StaticTier(l lang.Language) Tier {
	if t, ok := staticTiers[l]; ok {
		return t
	}
	return TierFallback
}

// RenameTool describes an external refactoring engine for one language.
type RenameTool struct {
	Name        string        `json:"name"`
	Language    lang.Language `json:"language"`
	InstallHint string        `json:"installHint"`
}

// RenameTools returns the external engines namefix knows how to drive.
func RenameTools() []RenameTool {
	return []RenameTool{
		{
			Name:        "gorename",
			Language:    lang.Go,
			InstallHint: "go install golang.org/x/tools/cmd/gorename@latest",
		},
	}
}

// LanguageInfo describes the effective capability for one language.
type LanguageInfo struct {
	Language  lang.Language `json:"language"`
	Static    Tier          `json:"-"`
	Effective Tier          `json:"-"`
	TierName  string        `json:"tier"`
	Degraded  bool          `json:"degraded"`
	Reason    string        `json:"reason,omitempty"`
}

// Detector resolves effective tiers from static ceilings and runtime
// capabilities. Availability is injected so tests control it.
type Detector struct {
	mode          Mode
	treeAvailable bool
	toolPaths     map[lang.Language]string
	runner        ExecRunner
}

// NewDetector creates a detector with auto mode and no detected capabilities.
func NewDetector() *Detector {
	return &Detector{
		mode:      ModeAuto,
		toolPaths: make(map[lang.Language]string),
		runner:    NewRealRunner(10 * time.Second),
	}
}

// SetRunner replaces the command runner used for tool probing.
func (d *Detector) SetRunner(r ExecRunner) {
	d.runner = r
}

// SetMode sets the explicitly requested tier mode.
func (d *Detector) SetMode(mode Mode) {
	d.mode = mode
}

// Mode returns the currently requested tier mode.
func (d *Detector) Mode() Mode {
	return d.mode
}

// IsExplicitMode returns true if the tier mode was explicitly set (not auto).
func (d *Detector) IsExplicitMode() bool {
	return d.mode != ModeAuto
}

// SetTreeAvailable records whether tree-sitter parsing is compiled in.
func (d *Detector) SetTreeAvailable(available bool) {
	d.treeAvailable = available
}

// SetToolPath records the resolved binary path for a language's engine.
// An empty path marks the tool as unavailable.
func (d *Detector) SetToolPath(l lang.Language, path string) {
	if path == "" {
		delete(d.toolPaths, l)
		return
	}
	d.toolPaths[l] = path
}

// ToolPath returns the resolved engine path for a language.
func (d *Detector) ToolPath(l lang.Language) (string, bool) {
	p, ok := d.toolPaths[l]
	return p, ok
}

// DetectTools probes PATH for each known engine. Entries in overrides
// (language name → binary path) win over the PATH lookup.
func (d *Detector) DetectTools(overrides map[string]string) {
	for _, tool := range RenameTools() {
		if override, ok := overrides[string(tool.Language)]; ok && override != "" {
			d.toolPaths[tool.Language] = override
			continue
		}
		if path, err := d.runner.LookPath(tool.Name); err == nil {
			d.toolPaths[tool.Language] = path
		}
	}
}

// Resolve returns the effective tier for a language plus the degradation
// reason when the static ceiling could not be met. Capability degradation is
// silent by contract; the reason exists for doctor output and debug logs.
func (d *Detector) Resolve(l lang.Language) (Tier, string) {
	effective := StaticTier(l)
	reason := ""

	switch effective {
	case TierTree:
		if !d.treeAvailable {
			effective = TierFallback
			reason = "built without cgo (tree-sitter unavailable)"
		}
	case TierTool:
		if _, ok := d.toolPaths[l]; !ok {
			effective = TierFallback
			reason = "refactoring engine not installed"
		}
	}

	if ceiling := tierFromMode(d.mode); d.mode != ModeAuto && effective > ceiling {
		effective = ceiling
		reason = fmt.Sprintf("capped by tier mode '%s'", d.mode)
	}

	return effective, reason
}

// EffectiveTier returns the tier that will rename files of this language.
func (d *Detector) EffectiveTier(l lang.Language) Tier {
	t, _ := d.Resolve(l)
	return t
}

// Describe returns the per-language capability table for doctor output.
func (d *Detector) Describe() []LanguageInfo {
	infos := make([]LanguageInfo, 0, len(lang.All()))
	for _, l := range lang.All() {
		static := StaticTier(l)
		effective, reason := d.Resolve(l)
		infos = append(infos, LanguageInfo{
			Language:  l,
			Static:    static,
			Effective: effective,
			TierName:  effective.ModeName(),
			Degraded:  effective < static,
			Reason:    reason,
		})
	}
	return infos
}
