package diff

import (
	"regexp"
	"sort"

	"namefix/internal/lang"
)

// identifierPatterns holds the lexical patterns used to mine candidate names
// from added code, one to three per language: declaration keywords,
// assignment-like shapes, and method-call-like shapes. Each pattern captures
// the name in group 1. The scan is deliberately lossy - it produces
// candidates for the symbol extractor, not a parse.
var identifierPatterns = map[lang.Language][]*regexp.Regexp{
	lang.Go: {
		regexp.MustCompile(`\b(?:func|var|const|type)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*:=`),
		regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.JavaScript: {
		regexp.MustCompile(`\b(?:const|let|var|function|class)\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`\b([A-Za-z_$][A-Za-z0-9_$]*)\s*=[^=>]`),
		regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
	},
	lang.TypeScript: {
		regexp.MustCompile(`\b(?:const|let|var|function|class|interface|type|enum)\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`\b([A-Za-z_$][A-Za-z0-9_$]*)\s*=[^=>]`),
		regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
	},
	lang.TSX: {
		regexp.MustCompile(`\b(?:const|let|var|function|class|interface|type|enum)\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`\b([A-Za-z_$][A-Za-z0-9_$]*)\s*=[^=>]`),
		regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
	},
	lang.Python: {
		regexp.MustCompile(`\b(?:def|class)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`),
		regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.Rust: {
		regexp.MustCompile(`\b(?:fn|struct|enum|trait|mod|const|static|type)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\blet\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.Java: {
		regexp.MustCompile(`\b(?:class|interface|enum|record)\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`\b([A-Za-z_$][A-Za-z0-9_$]*)\s*=[^=]`),
		regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
	},
	lang.Kotlin: {
		regexp.MustCompile(`\b(?:fun|val|var|class|object|interface|typealias)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`),
		regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.Ruby: {
		regexp.MustCompile(`\b(?:def|class|module)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`(?m)^\s*@{0,2}([a-z_][A-Za-z0-9_]*)\s*=[^=~>]`),
		regexp.MustCompile(`\.([a-z_][A-Za-z0-9_]*)`),
	},
	lang.PHP: {
		regexp.MustCompile(`\bfunction\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)\s*=[^=>]`),
		regexp.MustCompile(`->([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.C: {
		regexp.MustCompile(`\b(?:struct|enum|union)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`),
	},
	lang.CPP: {
		regexp.MustCompile(`\b(?:class|struct|enum|namespace|union)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*=[^=]`),
		regexp.MustCompile(`(?:\.|->)([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.CSharp: {
		regexp.MustCompile(`\b(?:class|interface|struct|enum|record|namespace)\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*=[^=>]`),
		regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	},
	lang.Shell: {
		regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)=`),
		regexp.MustCompile(`\bfunction\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(\)`),
	},
}

// ExtractIdentifiers scans added code for candidate identifiers. Reserved
// words and single-character names are dropped; the result is deduplicated
// and sorted for stable output.
func ExtractIdentifiers(code string, language lang.Language) []string {
	patterns, ok := identifierPatterns[language]
	if !ok || code == "" {
		return nil
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(code, -1) {
			name := match[1]
			if len(name) <= 1 {
				continue
			}
			if lang.IsKeyword(language, name) {
				continue
			}
			seen[name] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidates mines a SourceChange for identifier candidates from its added
// and modified lines.
func Candidates(sc *SourceChange) []string {
	return ExtractIdentifiers(sc.AddedText(), sc.Language)
}
