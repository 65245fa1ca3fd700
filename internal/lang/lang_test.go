package lang

import (
	"testing"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		want   Language
		wantOk bool
	}{
		{".go", Go, true},
		{".js", JavaScript, true},
		{".mjs", JavaScript, true},
		{".jsx", JavaScript, true},
		{".ts", TypeScript, true},
		{".tsx", TSX, true},
		{".py", Python, true},
		{".rs", Rust, true},
		{".java", Java, true},
		{".kt", Kotlin, true},
		{".rb", Ruby, true},
		{".php", PHP, true},
		{".c", C, true},
		{".cc", CPP, true},
		{".cs", CSharp, true},
		{".sh", Shell, true},
		{".TS", TypeScript, true}, // case-insensitive
		{".txt", "", false},
		{".json", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := FromExtension(tt.ext)
			if ok != tt.wantOk {
				t.Fatalf("FromExtension(%q) ok = %v, want %v", tt.ext, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("FromExtension(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		want   Language
		wantOk bool
	}{
		{"src/app/main.ts", TypeScript, true},
		{"internal/diff/diff.go", Go, true},
		{"lib/helper.py", Python, true},
		{"README.md", "", false},
		{"Makefile", "", false},
		{"a/b/c/component.tsx", TSX, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Detect(tt.path)
			if ok != tt.wantOk {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.path, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetect_Idempotent(t *testing.T) {
	paths := []string{"a.ts", "b.go", "c.unknown", "noext"}
	for _, p := range paths {
		first, firstOk := Detect(p)
		for i := 0; i < 3; i++ {
			got, ok := Detect(p)
			if got != first || ok != firstOk {
				t.Errorf("Detect(%q) not stable: (%v,%v) then (%v,%v)", p, first, firstOk, got, ok)
			}
		}
	}
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		lang Language
		name string
		want bool
	}{
		{Go, "func", true},
		{Go, "userProfile", false},
		{JavaScript, "const", true},
		{JavaScript, "fetchUser", false},
		{TypeScript, "interface", true},
		{Python, "lambda", true},
		{Python, "data", false},
		{Ruby, "def", true},
		{Shell, "echo", true},
		{"unknownlang", "anything", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.name, func(t *testing.T) {
			if got := IsKeyword(tt.lang, tt.name); got != tt.want {
				t.Errorf("IsKeyword(%v, %q) = %v, want %v", tt.lang, tt.name, got, tt.want)
			}
		})
	}
}

func TestAll_CoversKeywordTable(t *testing.T) {
	for _, l := range All() {
		if _, ok := keywords[l]; !ok {
			t.Errorf("language %v has no keyword set", l)
		}
	}
}
