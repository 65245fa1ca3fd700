package suggest

import (
	"fmt"
	"sort"
	"strings"

	"namefix/internal/symbols"
)

const defaultSystemPrompt = `You are a code naming reviewer. Given one identifier and the context
it appears in, propose a clearer name or confirm the current one cannot be
safely improved.

Judge three things:
- Whether the identifier communicates its role at the point of use.
- Whether renaming it is safe: an identifier that is part of a public or
  exported surface must be flagged with isPublicSurface true.
- How confident you are that the new name is strictly better.

Respond with a single JSON object and nothing else:
{
  "oldName": string,
  "newName": string,
  "confidence": number between 0 and 1,
  "rationale": string explaining the improvement,
  "safety": {
    "isPublicSurface": boolean,
    "autofixEligible": boolean,
    "reasonText": string
  },
  "alternatives": array of 1 to 5 candidate names
}

If the current name is already good, return it as newName with low
confidence rather than inventing a change.`

// SystemPrompt returns the built-in system instruction.
func SystemPrompt() string {
	return defaultSystemPrompt
}

// BuildPrompt renders a symbol context into the user prompt. Notes carry
// project naming rules and are appended verbatim as a RULES section.
func BuildPrompt(sc *symbols.SymbolContext, notes []string) string {
	var buf strings.Builder
	writeSection(&buf, "FILE", fmt.Sprintf("%s (%s)", sc.File, sc.Language))
	writeSection(&buf, "IDENTIFIER", sc.OldName)
	writeSection(&buf, "DECLARATION", fmt.Sprintf("line %d: %s", sc.DeclarationLine, sc.DeclarationText))
	writeSection(&buf, "USAGES", formatList(sc.UsageSnippets))
	writeSection(&buf, "NEIGHBORS", strings.Join(sc.NeighborNames, ", "))
	writeSection(&buf, "SCOPES", strings.Join(sc.EnclosingScopes, " > "))
	writeSection(&buf, "TYPE_HINTS", formatHints(sc.TypeHints))
	writeSection(&buf, "CHANGE", formatChange(sc.ChangeTitle, sc.ChangeDescription))
	if looksExported(sc) {
		writeSection(&buf, "VISIBILITY", "The declaration appears to be exported or public. Weigh isPublicSurface carefully.")
	}
	writeSection(&buf, "RULES", formatList(notes))
	return strings.TrimSpace(buf.String()) + "\n"
}

func writeSection(buf *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatHints(hints map[string]string) string {
	if len(hints) == 0 {
		return ""
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&buf, "- %s: %s\n", k, hints[k])
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatChange(title, description string) string {
	switch {
	case title == "" && description == "":
		return ""
	case description == "":
		return title
	case title == "":
		return description
	default:
		return title + "\n" + description
	}
}

// looksExported reports whether the declaration carries an export marker
// for its language. This is a hint for the model, not a safety decision.
func looksExported(sc *symbols.SymbolContext) bool {
	if sc.OldName != "" {
		first := sc.OldName[0]
		if first >= 'A' && first <= 'Z' && sc.Language == "go" {
			return true
		}
	}
	decl := sc.DeclarationText
	return strings.Contains(decl, "export ") ||
		strings.Contains(decl, "public ") ||
		strings.Contains(decl, "pub ")
}
