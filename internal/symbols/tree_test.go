//go:build cgo

package symbols

import (
	"testing"

	"namefix/internal/lang"
)

func TestExtract_TreeGo(t *testing.T) {
	source := `package main

type Database struct{}

func fetchRows(db *Database) int {
	count := 0
	count = count + 1
	return count
}

func helper() {}
`

	e := NewExtractor(nil)
	sc := e.Extract("main.go", "fetchRows", source, lang.Go)
	if sc == nil {
		t.Fatal("expected a context, got nil")
	}

	if sc.DeclarationLine != 5 {
		t.Errorf("DeclarationLine = %d, want 5", sc.DeclarationLine)
	}
	if sc.DeclarationText != "func fetchRows(db *Database) int {" {
		t.Errorf("DeclarationText = %q", sc.DeclarationText)
	}
	if got := sc.TypeHints["return"]; got != "int" {
		t.Errorf("return type hint = %q, want %q", got, "int")
	}
	if got := sc.TypeHints["db"]; got != "*Database" {
		t.Errorf("db type hint = %q, want %q", got, "*Database")
	}
}

func TestExtract_TreeGoLocalVariable(t *testing.T) {
	source := `package main

type Database struct{}

func fetchRows(db *Database) int {
	count := 0
	count = count + 1
	return count
}

func helper() {}
`

	e := NewExtractor(nil)
	sc := e.Extract("main.go", "count", source, lang.Go)
	if sc == nil {
		t.Fatal("expected a context, got nil")
	}

	if sc.DeclarationLine != 6 {
		t.Errorf("DeclarationLine = %d, want 6", sc.DeclarationLine)
	}
	if sc.DeclarationText != "count := 0" {
		t.Errorf("DeclarationText = %q", sc.DeclarationText)
	}
	if len(sc.UsageSnippets) != 2 {
		t.Fatalf("expected 2 usages, got %d: %v", len(sc.UsageSnippets), sc.UsageSnippets)
	}
	if len(sc.EnclosingScopes) != 1 || sc.EnclosingScopes[0] != "fetchRows" {
		t.Errorf("EnclosingScopes = %v, want [fetchRows]", sc.EnclosingScopes)
	}
}

func TestExtract_TreeGoNeighbors(t *testing.T) {
	source := `package main

type Database struct{}

func fetchRows(db *Database) int {
	return 0
}

func helper() {}
`

	e := NewExtractor(nil)
	sc := e.Extract("main.go", "Database", source, lang.Go)
	if sc == nil {
		t.Fatal("expected a context, got nil")
	}

	hasNeighbor := func(name string) bool {
		for _, n := range sc.NeighborNames {
			if n == name {
				return true
			}
		}
		return false
	}
	if !hasNeighbor("fetchRows") || !hasNeighbor("helper") {
		t.Errorf("NeighborNames = %v, want fetchRows and helper present", sc.NeighborNames)
	}
}

func TestExtract_TreeTypeScript(t *testing.T) {
	source := `const data = fetchUser();
console.log(data);
export function fetchUser() {
  return api.get("/user");
}
`

	e := NewExtractor(nil)
	sc := e.Extract("test.ts", "data", source, lang.TypeScript)
	if sc == nil {
		t.Fatal("expected a context, got nil")
	}

	if sc.DeclarationLine != 1 {
		t.Errorf("DeclarationLine = %d, want 1", sc.DeclarationLine)
	}
	if sc.DeclarationText != "const data = fetchUser();" {
		t.Errorf("DeclarationText = %q", sc.DeclarationText)
	}
	if len(sc.UsageSnippets) != 1 {
		t.Fatalf("expected 1 usage, got %d: %v", len(sc.UsageSnippets), sc.UsageSnippets)
	}
	if sc.UsageSnippets[0] != "console.log(data);" {
		t.Errorf("usage = %q", sc.UsageSnippets[0])
	}

	hasNeighbor := false
	for _, n := range sc.NeighborNames {
		if n == "fetchUser" {
			hasNeighbor = true
		}
	}
	if !hasNeighbor {
		t.Errorf("NeighborNames = %v, want fetchUser present", sc.NeighborNames)
	}
}

func TestExtract_TreeNotFound(t *testing.T) {
	e := NewExtractor(nil)
	sc := e.Extract("test.ts", "nonexistent", "const a = 1;", lang.TypeScript)
	if sc != nil {
		t.Errorf("expected nil for absent symbol, got %+v", sc)
	}
}

func TestExtract_TreePython(t *testing.T) {
	source := `import os

class Loader:
    def read_all(self):
        payload = self.fetch()
        return payload
`

	e := NewExtractor(nil)
	sc := e.Extract("loader.py", "payload", source, lang.Python)
	if sc == nil {
		t.Fatal("expected a context, got nil")
	}

	if sc.DeclarationLine != 5 {
		t.Errorf("DeclarationLine = %d, want 5", sc.DeclarationLine)
	}
	if len(sc.EnclosingScopes) != 2 {
		t.Fatalf("EnclosingScopes = %v, want [Loader read_all]", sc.EnclosingScopes)
	}
	if sc.EnclosingScopes[0] != "Loader" || sc.EnclosingScopes[1] != "read_all" {
		t.Errorf("EnclosingScopes = %v, want outermost first", sc.EnclosingScopes)
	}
}

func TestOccurrences(t *testing.T) {
	content := []byte("const data = 1;\nconsole.log(data);")

	ranges, err := Occurrences(content, "data", lang.JavaScript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(ranges))
	}
	for _, r := range ranges {
		if got := string(content[r[0]:r[1]]); got != "data" {
			t.Errorf("range text = %q, want %q", got, "data")
		}
	}
	if ranges[0][0] >= ranges[1][0] {
		t.Error("occurrences should be in document order")
	}
}

func TestOccurrences_NoGrammar(t *testing.T) {
	ranges, err := Occurrences([]byte("x=1"), "x", lang.Shell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != nil {
		t.Errorf("expected nil for grammarless language, got %v", ranges)
	}
}
