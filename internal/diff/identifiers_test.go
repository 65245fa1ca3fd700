package diff

import (
	"reflect"
	"testing"

	"namefix/internal/lang"
)

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language lang.Language
		want     []string
	}{
		{
			name:     "typescript const declaration",
			code:     "const data = fetchUser();",
			language: lang.TypeScript,
			want:     []string{"data"},
		},
		{
			name:     "typescript multiple declarations",
			code:     "const userName = resp.name;\nfunction parseToken(raw) {}\ninterface Payload {}",
			language: lang.TypeScript,
			want:     []string{"Payload", "parseToken", "userName"},
		},
		{
			name:     "go declarations and short assign",
			code:     "func handleRequest(w http.ResponseWriter) {\n\tresult := compute()\n\tvar total int\n}",
			language: lang.Go,
			want:     []string{"handleRequest", "result", "total"},
		},
		{
			name:     "python def and assignment",
			code:     "def process_batch(items):\n    count = 0\n    logger.debug(count)",
			language: lang.Python,
			want:     []string{"count", "debug", "process_batch"},
		},
		{
			name:     "rust let and fn",
			code:     "fn parse_header(buf: &[u8]) {\n    let mut offset = 0;\n}",
			language: lang.Rust,
			want:     []string{"offset", "parse_header"},
		},
		{
			name:     "keywords filtered",
			code:     "const for = 1; let class = 2;",
			language: lang.JavaScript,
			want:     nil,
		},
		{
			name:     "single char names filtered",
			code:     "const x = 1;\nconst y = 2;",
			language: lang.TypeScript,
			want:     nil,
		},
		{
			name:     "deduplication",
			code:     "const total = 1;\ntotal = total + 1;",
			language: lang.JavaScript,
			want:     []string{"total"},
		},
		{
			name:     "empty code",
			code:     "",
			language: lang.Go,
			want:     nil,
		},
		{
			name:     "shell assignment and function",
			code:     "BACKUP_DIR=/tmp/backups\ncleanup() {\n  rm -rf \"$BACKUP_DIR\"\n}",
			language: lang.Shell,
			want:     []string{"BACKUP_DIR", "cleanup"},
		},
		{
			name:     "php variable and method",
			code:     "$userCount = $repo->countActive();",
			language: lang.PHP,
			want:     []string{"countActive", "userCount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIdentifiers(tt.code, tt.language)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractIdentifiers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	sc := &SourceChange{
		FilePath: "test.ts",
		Language: lang.TypeScript,
		Additions: []Line{
			{Number: 2, Text: "const data = fetchUser();"},
		},
	}

	got := Candidates(sc)
	want := []string{"data"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}
