// Package diff interprets unified git diffs into per-file change records the
// rename pipeline can mine for candidate identifiers.
package diff

import (
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"namefix/internal/errors"
	"namefix/internal/lang"
)

// DefaultModificationWindow is how close (in lines) an added line must be to a
// deleted line before the pair is read as an edit rather than an insertion.
const DefaultModificationWindow = 2

// Line is one changed source line. Number is 1-based: for additions and
// modifications it indexes the new file version, for deletions the old one.
type Line struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// SourceChange is the structured view of one changed file. It is built once
// per file and never mutated afterwards.
type SourceChange struct {
	FilePath      string        `json:"filePath"`
	Language      lang.Language `json:"language"`
	Additions     []Line        `json:"additions"`
	Deletions     []Line        `json:"deletions"`
	Modifications []Line        `json:"modifications"`
}

// AddedText concatenates every added and modified line. This is the text the
// identifier scanner runs over.
func (sc *SourceChange) AddedText() string {
	parts := make([]string, 0, len(sc.Additions)+len(sc.Modifications))
	for _, l := range sc.Additions {
		parts = append(parts, l.Text)
	}
	for _, l := range sc.Modifications {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n")
}

// Parser turns unified diff text into SourceChange records.
type Parser struct {
	// Window is the modification pairing distance in lines.
	Window int
}

// NewParser creates a Parser with the default modification window.
func NewParser() *Parser {
	return &Parser{Window: DefaultModificationWindow}
}

// Parse interprets diff text for a single file. The text may be bare hunks or
// a full single-file diff with headers. Files whose extension is outside the
// language table are skipped: the return is (nil, nil), a scope filter rather
// than an error.
func (p *Parser) Parse(diffText, filePath string) (*SourceChange, error) {
	language, ok := lang.Detect(filePath)
	if !ok {
		return nil, nil
	}

	body := hunkSection(diffText)
	if body == "" {
		return nil, nil
	}

	hunks, err := godiff.ParseHunks([]byte(body))
	if err != nil {
		return nil, errors.New(errors.InvalidDiff, "failed to parse diff hunks", err).
			WithDetails(map[string]interface{}{"file": filePath})
	}

	sc := newChange(filePath, language)
	for _, hunk := range hunks {
		p.walkHunk(hunk, sc)
	}
	p.classify(sc)
	return sc, nil
}

// ParseAll interprets a multi-file diff, returning one SourceChange per
// supported source file. Deleted files, non-source paths, and unsupported
// extensions are silently skipped.
func (p *Parser) ParseAll(diffText string) ([]*SourceChange, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, errors.New(errors.InvalidDiff, "failed to parse diff", err)
	}

	changes := make([]*SourceChange, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		path := cleanPath(fd.NewName)
		if path == "" || path == "/dev/null" {
			// Deleted file: nothing left to rename.
			continue
		}
		if !IsSourceFile(path) {
			continue
		}
		language, ok := lang.Detect(path)
		if !ok {
			continue
		}

		sc := newChange(path, language)
		for _, hunk := range fd.Hunks {
			p.walkHunk(hunk, sc)
		}
		p.classify(sc)
		changes = append(changes, sc)
	}
	return changes, nil
}

func newChange(path string, language lang.Language) *SourceChange {
	return &SourceChange{
		FilePath:      path,
		Language:      language,
		Additions:     make([]Line, 0),
		Deletions:     make([]Line, 0),
		Modifications: make([]Line, 0),
	}
}

// walkHunk replays a hunk body against two line counters. Added lines consume
// one increment of the new-file counter, deleted lines one increment of the
// old-file counter, and context lines consume both.
func (p *Parser) walkHunk(hunk *godiff.Hunk, sc *SourceChange) {
	oldLine := int(hunk.OrigStartLine)
	newLine := int(hunk.NewStartLine)

	lines := strings.Split(string(hunk.Body), "\n")
	for _, line := range lines {
		if len(line) == 0 {
			// Empty line in diff body - treat as context line (both advance)
			oldLine++
			newLine++
			continue
		}

		switch line[0] {
		case '+':
			sc.Additions = append(sc.Additions, Line{Number: newLine, Text: line[1:]})
			newLine++
		case '-':
			sc.Deletions = append(sc.Deletions, Line{Number: oldLine, Text: line[1:]})
			oldLine++
		case ' ':
			oldLine++
			newLine++
		case '\\':
			// "\ No newline at end of file" - ignore
		}
	}
}

// classify moves additions that sit within Window lines of a deletion into the
// modifications list. Comparing new-file line numbers against old-file ones is
// an accepted approximation of "this line was edited, not inserted".
func (p *Parser) classify(sc *SourceChange) {
	if len(sc.Additions) == 0 || len(sc.Deletions) == 0 {
		return
	}

	additions := make([]Line, 0, len(sc.Additions))
	for _, add := range sc.Additions {
		if p.nearDeletion(add.Number, sc.Deletions) {
			sc.Modifications = append(sc.Modifications, add)
		} else {
			additions = append(additions, add)
		}
	}
	sc.Additions = additions
}

func (p *Parser) nearDeletion(line int, deletions []Line) bool {
	for _, del := range deletions {
		d := line - del.Number
		if d < 0 {
			d = -d
		}
		if d <= p.Window {
			return true
		}
	}
	return false
}

// hunkSection strips any file headers and returns the text from the first
// hunk header on, or "" when the text contains no hunks at all.
func hunkSection(diffText string) string {
	if strings.HasPrefix(diffText, "@@") {
		return diffText
	}
	if i := strings.Index(diffText, "\n@@"); i >= 0 {
		return diffText[i+1:]
	}
	return ""
}

// Parse is a convenience wrapper using the default modification window.
func Parse(diffText, filePath string) (*SourceChange, error) {
	return NewParser().Parse(diffText, filePath)
}

// ParseAll is a convenience wrapper using the default modification window.
func ParseAll(diffText string) ([]*SourceChange, error) {
	return NewParser().ParseAll(diffText)
}

// cleanPath removes the a/ or b/ prefix from git diff paths
// FilePaths lists the new-file path of every entry in a multi-file diff,
// including files the interpreter would skip. Deleted files are excluded.
// Callers compare this against ParseAll output to count skipped files.
func FilePaths(diffText string) ([]string, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil {
		return nil, errors.New(errors.InvalidDiff, "failed to parse diff", err)
	}

	paths := make([]string, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		path := cleanPath(fd.NewName)
		if path == "" || path == "/dev/null" {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func cleanPath(path string) string {
	if path == "" || path == "/dev/null" {
		return path
	}
	// Remove a/ or b/ prefix
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}
	return path
}

// IsSourceFile checks if the file is a source code file (not generated, vendor, etc.)
func IsSourceFile(path string) bool {
	// Skip common non-source paths
	skipPrefixes := []string{
		"vendor/",
		"node_modules/",
		".git/",
		"testdata/",
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	// Skip common generated/config files
	skipSuffixes := []string{
		".sum",
		".lock",
		".min.js",
		".min.css",
		".map",
		".pb.go",
		"_generated.go",
		"-lock.json", // package-lock.json, etc.
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}

	return true
}
