package symbols

import (
	"regexp"
	"strings"

	"namefix/internal/lang"
)

// declarationPatterns builds the three line shapes the heuristic scan accepts
// as a declaration of name: definition keyword + name, type keyword + name,
// and assignment to name.
func declarationPatterns(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`\b(?:func|function|def|fn|fun|sub)\s+` + quoted + `\b`),
		regexp.MustCompile(`\b(?:class|struct|interface|trait|enum|module|object|type)\s+` + quoted + `\b`),
		regexp.MustCompile(`(?:^|[\s(])[$@]?` + quoted + `\s*:?=[^=]`),
	}
}

// extractHeuristic is the degraded extraction path for languages without tree
// access: first matching declaration-like line wins, usages are plain line
// matches, neighbors and scopes stay empty.
func (e *Extractor) extractHeuristic(file, name, content string, language lang.Language) *SymbolContext {
	lines := strings.Split(content, "\n")
	patterns := declarationPatterns(name)

	declLine := 0
	declText := ""
	for i, line := range lines {
		for _, p := range patterns {
			if p.MatchString(line) {
				declLine = i + 1
				declText = strings.TrimSpace(line)
				break
			}
		}
		if declLine != 0 {
			break
		}
	}
	if declLine == 0 {
		e.logger.Debug("symbol not found by line scan", map[string]interface{}{
			"file": file,
			"name": name,
		})
		return nil
	}

	usage := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	usages := make([]string, 0, MaxUsageSnippets)
	for i, line := range lines {
		if i+1 == declLine {
			continue
		}
		if usage.MatchString(line) {
			usages = append(usages, strings.TrimSpace(line))
			if len(usages) >= MaxUsageSnippets {
				break
			}
		}
	}

	return &SymbolContext{
		File:            file,
		Language:        language,
		OldName:         name,
		DeclarationText: declText,
		DeclarationLine: declLine,
		UsageSnippets:   usages,
		NeighborNames:   []string{},
		EnclosingScopes: []string{},
		TypeHints:       map[string]string{},
	}
}
