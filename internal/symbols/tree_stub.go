//go:build !cgo

package symbols

import "namefix/internal/lang"

// TreeAvailable reports whether tree-sitter extraction is compiled in.
// Always false without CGO.
func TreeAvailable() bool {
	return false
}

func treeAvailable() bool {
	return false
}

func hasGrammar(language lang.Language) bool {
	return false
}

// extractTree is unreachable without CGO; the dispatcher falls back to the
// line scan before calling it.
func (e *Extractor) extractTree(file, name, content string, language lang.Language) *SymbolContext {
	return nil
}
