// Package symbols builds the naming context for a candidate identifier: its
// declaration, nearby usages, sibling names, enclosing scopes, and any type
// text the source gives away. Languages with a tree-sitter grammar get a full
// syntax-tree walk; everything else gets a literal line scan.
package symbols

import (
	"namefix/internal/lang"
	"namefix/internal/logging"
)

const (
	// MaxUsageSnippets caps how many usage sites are captured per symbol.
	MaxUsageSnippets = 5
	// MaxNeighbors caps how many sibling declaration names are captured.
	MaxNeighbors = 10
)

// SymbolContext is everything the suggestion client gets to see about one
// identifier. Built once per (file, name) pair and read-only afterwards.
type SymbolContext struct {
	File              string            `json:"file"`
	Language          lang.Language     `json:"language"`
	OldName           string            `json:"oldName"`
	DeclarationText   string            `json:"declarationText"`
	DeclarationLine   int               `json:"declarationLine"`
	UsageSnippets     []string          `json:"usageSnippets"`
	NeighborNames     []string          `json:"neighborNames"`
	EnclosingScopes   []string          `json:"enclosingScopes"`
	TypeHints         map[string]string `json:"typeHints"`
	ChangeTitle       string            `json:"changeTitle,omitempty"`
	ChangeDescription string            `json:"changeDescription,omitempty"`
}

// Extractor extracts symbol context from source files.
type Extractor struct {
	logger *logging.Logger
}

// NewExtractor creates a new context extractor.
func NewExtractor(logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Extractor{logger: logger}
}

// Extract builds the SymbolContext for name inside content. It returns nil
// when the symbol cannot be found; any internal failure is caught, logged,
// and also surfaces as nil so the caller can move on to the next symbol.
func (e *Extractor) Extract(file, name, content string, language lang.Language) (sc *SymbolContext) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("symbol extraction panicked", map[string]interface{}{
				"file":     file,
				"name":     name,
				"language": string(language),
				"panic":    r,
			})
			sc = nil
		}
	}()

	if name == "" || content == "" {
		return nil
	}

	if treeAvailable() && hasGrammar(language) {
		return e.extractTree(file, name, content, language)
	}
	return e.extractHeuristic(file, name, content, language)
}
