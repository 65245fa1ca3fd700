package diff

import (
	"testing"

	"namefix/internal/errors"
	"namefix/internal/lang"
)

func TestParse_BareHunk(t *testing.T) {
	diffText := "@@ -1,3 +1,4 @@\n const x = 1;\n+const data = fetchUser();\n const y = 2;"

	sc, err := Parse(diffText, "test.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc == nil {
		t.Fatal("expected a SourceChange, got nil")
	}

	if sc.FilePath != "test.ts" {
		t.Errorf("FilePath = %q, want %q", sc.FilePath, "test.ts")
	}
	if sc.Language != lang.TypeScript {
		t.Errorf("Language = %q, want %q", sc.Language, lang.TypeScript)
	}
	if len(sc.Additions) != 1 {
		t.Fatalf("expected 1 addition, got %d", len(sc.Additions))
	}
	if sc.Additions[0].Number != 2 {
		t.Errorf("addition line = %d, want 2", sc.Additions[0].Number)
	}
	if sc.Additions[0].Text != "const data = fetchUser();" {
		t.Errorf("addition text = %q, want %q", sc.Additions[0].Text, "const data = fetchUser();")
	}
	if len(sc.Deletions) != 0 {
		t.Errorf("expected 0 deletions, got %d", len(sc.Deletions))
	}
	if len(sc.Modifications) != 0 {
		t.Errorf("expected 0 modifications, got %d", len(sc.Modifications))
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	diffText := "@@ -1,1 +1,2 @@\n first\n+second"

	sc, err := Parse(diffText, "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc != nil {
		t.Errorf("expected nil for unsupported extension, got %+v", sc)
	}
}

func TestParse_Empty(t *testing.T) {
	sc, err := Parse("", "test.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc != nil {
		t.Errorf("expected nil for empty diff, got %+v", sc)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("@@ not a hunk header", "test.ts")
	if err == nil {
		t.Fatal("expected error for malformed hunk header")
	}
	if errors.CodeOf(err) != errors.InvalidDiff {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.InvalidDiff)
	}
}

func TestParse_WithFileHeaders(t *testing.T) {
	diffText := `diff --git a/app.py b/app.py
index 1234567..abcdefg 100644
--- a/app.py
+++ b/app.py
@@ -1,3 +1,4 @@
 import os

+def load_settings():
 def main():
`

	sc, err := Parse(diffText, "app.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc == nil {
		t.Fatal("expected a SourceChange, got nil")
	}
	if sc.Language != lang.Python {
		t.Errorf("Language = %q, want %q", sc.Language, lang.Python)
	}
	if len(sc.Additions) != 1 {
		t.Fatalf("expected 1 addition, got %d", len(sc.Additions))
	}
	if sc.Additions[0].Number != 3 {
		t.Errorf("addition line = %d, want 3", sc.Additions[0].Number)
	}
}

func TestParse_DeletionLineNumbers(t *testing.T) {
	// Deletions index the old file version and must not advance the new
	// file counter.
	diffText := "@@ -1,4 +1,3 @@\n line one\n-line two\n line three\n line four"

	sc, err := Parse(diffText, "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Deletions) != 1 {
		t.Fatalf("expected 1 deletion, got %d", len(sc.Deletions))
	}
	if sc.Deletions[0].Number != 2 {
		t.Errorf("deletion line = %d, want 2", sc.Deletions[0].Number)
	}
	if sc.Deletions[0].Text != "line two" {
		t.Errorf("deletion text = %q, want %q", sc.Deletions[0].Text, "line two")
	}
	if len(sc.Additions) != 0 {
		t.Errorf("expected 0 additions, got %d", len(sc.Additions))
	}
}

func TestParse_ModificationPairing(t *testing.T) {
	// A deletion and an addition on the same line read as an edit.
	diffText := "@@ -10,3 +10,3 @@\n before\n-const old_total = 0;\n+const runningTotal = 0;\n after"

	sc, err := Parse(diffText, "calc.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Modifications) != 1 {
		t.Fatalf("expected 1 modification, got %d", len(sc.Modifications))
	}
	if sc.Modifications[0].Number != 11 {
		t.Errorf("modification line = %d, want 11", sc.Modifications[0].Number)
	}
	if sc.Modifications[0].Text != "const runningTotal = 0;" {
		t.Errorf("modification text = %q", sc.Modifications[0].Text)
	}
	if len(sc.Additions) != 0 {
		t.Errorf("expected 0 pure additions, got %d", len(sc.Additions))
	}
	if len(sc.Deletions) != 1 {
		t.Errorf("expected 1 deletion, got %d", len(sc.Deletions))
	}
}

func TestParse_AdditionOutsideWindow(t *testing.T) {
	// An addition more than two lines from any deletion stays an addition.
	diffText := "@@ -1,5 +1,5 @@\n line a\n-removed here\n line b\n line c\n line d\n+added far away"

	sc, err := Parse(diffText, "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Additions) != 1 {
		t.Fatalf("expected 1 addition, got %d", len(sc.Additions))
	}
	if sc.Additions[0].Number != 5 {
		t.Errorf("addition line = %d, want 5", sc.Additions[0].Number)
	}
	if len(sc.Modifications) != 0 {
		t.Errorf("expected 0 modifications, got %d", len(sc.Modifications))
	}
}

func TestParse_CustomWindow(t *testing.T) {
	diffText := "@@ -1,5 +1,5 @@\n line a\n-removed here\n line b\n line c\n line d\n+added far away"

	p := &Parser{Window: 4}
	sc, err := p.Parse(diffText, "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Deletion at old line 2, addition at new line 5: inside a window of 4.
	if len(sc.Modifications) != 1 {
		t.Fatalf("expected 1 modification with widened window, got %d", len(sc.Modifications))
	}
	if len(sc.Additions) != 0 {
		t.Errorf("expected 0 additions, got %d", len(sc.Additions))
	}
}

func TestParseAll_MultipleFiles(t *testing.T) {
	diffText := `diff --git a/src/api.ts b/src/api.ts
index 1234567..abcdefg 100644
--- a/src/api.ts
+++ b/src/api.ts
@@ -1,2 +1,3 @@
 import axios from "axios";
+const result = await client.get(url);
 export default api;
diff --git a/README.txt b/README.txt
index 1234567..abcdefg 100644
--- a/README.txt
+++ b/README.txt
@@ -1,1 +1,2 @@
 hello
+world
diff --git a/vendor/lib/util.js b/vendor/lib/util.js
index 1234567..abcdefg 100644
--- a/vendor/lib/util.js
+++ b/vendor/lib/util.js
@@ -1,1 +1,2 @@
 x
+y
`

	changes, err := ParseAll(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 change (txt and vendor skipped), got %d", len(changes))
	}
	if changes[0].FilePath != "src/api.ts" {
		t.Errorf("FilePath = %q, want %q", changes[0].FilePath, "src/api.ts")
	}
	if len(changes[0].Additions) != 1 {
		t.Errorf("expected 1 addition, got %d", len(changes[0].Additions))
	}
}

func TestParseAll_Empty(t *testing.T) {
	changes, err := ParseAll("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected 0 changes, got %d", len(changes))
	}
}

func TestParseAll_DeletedFileSkipped(t *testing.T) {
	diffText := `diff --git a/old.go b/old.go
deleted file mode 100644
index 1234567..0000000
--- a/old.go
+++ /dev/null
@@ -1,3 +0,0 @@
-package main
-
-func goodbye() {}
`

	changes, err := ParseAll(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected deleted file to be skipped, got %d changes", len(changes))
	}

	paths, err := FilePaths(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected deleted file excluded from paths, got %v", paths)
	}
}

func TestFilePaths(t *testing.T) {
	diffText := `diff --git a/src/api.ts b/src/api.ts
index 1234567..abcdefg 100644
--- a/src/api.ts
+++ b/src/api.ts
@@ -1,1 +1,2 @@
 import axios from "axios";
+const result = await client.get(url);
diff --git a/README.txt b/README.txt
index 1234567..abcdefg 100644
--- a/README.txt
+++ b/README.txt
@@ -1,1 +1,2 @@
 hello
+world
`

	paths, err := FilePaths(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"src/api.ts", "README.txt"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestAddedText(t *testing.T) {
	sc := &SourceChange{
		Additions:     []Line{{Number: 2, Text: "const a = 1;"}},
		Modifications: []Line{{Number: 7, Text: "const b = 2;"}},
	}
	got := sc.AddedText()
	want := "const a = 1;\nconst b = 2;"
	if got != want {
		t.Errorf("AddedText() = %q, want %q", got, want)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a/foo.go", "foo.go"},
		{"b/foo.go", "foo.go"},
		{"foo.go", "foo.go"},
		{"/dev/null", "/dev/null"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := cleanPath(tt.input)
			if result != tt.expected {
				t.Errorf("cleanPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"main.go", true},
		{"internal/foo/bar.go", true},
		{"src/app.ts", true},
		{"vendor/github.com/pkg/foo.go", false},
		{"node_modules/package/index.js", false},
		{".git/config", false},
		{"go.sum", false},
		{"package-lock.json", false},
		{"foo.pb.go", false},
		{"bundle.min.js", false},
		{"types_generated.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := IsSourceFile(tt.path)
			if result != tt.expected {
				t.Errorf("IsSourceFile(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}
