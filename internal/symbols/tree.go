//go:build cgo

package symbols

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"namefix/internal/lang"
)

// TreeAvailable reports whether tree-sitter extraction is compiled in.
func TreeAvailable() bool {
	return true
}

func treeAvailable() bool {
	return true
}

// Grammar returns the tree-sitter grammar for a language, or nil when the
// language has none.
func Grammar(language lang.Language) *sitter.Language {
	switch language {
	case lang.Go:
		return golang.GetLanguage()
	case lang.JavaScript:
		return javascript.GetLanguage()
	case lang.TypeScript:
		return typescript.GetLanguage()
	case lang.TSX:
		return tsx.GetLanguage()
	case lang.Python:
		return python.GetLanguage()
	case lang.Rust:
		return rust.GetLanguage()
	case lang.Java:
		return java.GetLanguage()
	case lang.Kotlin:
		return kotlin.GetLanguage()
	default:
		return nil
	}
}

func hasGrammar(language lang.Language) bool {
	return Grammar(language) != nil
}

// declarationNodeTypes returns the node types that can declare a name,
// covering variables, functions, classes, interfaces, type aliases, methods,
// and properties.
func declarationNodeTypes(language lang.Language) []string {
	switch language {
	case lang.Go:
		return []string{
			"function_declaration", "method_declaration", "type_spec",
			"var_spec", "const_spec", "short_var_declaration", "field_declaration",
		}
	case lang.JavaScript:
		return []string{
			"function_declaration", "generator_function_declaration",
			"class_declaration", "method_definition", "variable_declarator",
			"field_definition",
		}
	case lang.TypeScript, lang.TSX:
		return []string{
			"function_declaration", "generator_function_declaration",
			"class_declaration", "interface_declaration", "type_alias_declaration",
			"enum_declaration", "method_definition", "method_signature",
			"variable_declarator", "property_signature", "public_field_definition",
			"field_definition",
		}
	case lang.Python:
		return []string{"function_definition", "class_definition", "assignment"}
	case lang.Rust:
		return []string{
			"function_item", "struct_item", "enum_item", "trait_item",
			"type_item", "const_item", "static_item", "let_declaration",
			"field_declaration",
		}
	case lang.Java:
		return []string{
			"class_declaration", "interface_declaration", "enum_declaration",
			"method_declaration", "constructor_declaration", "variable_declarator",
		}
	case lang.Kotlin:
		return []string{
			"function_declaration", "class_declaration", "object_declaration",
			"property_declaration",
		}
	default:
		return nil
	}
}

// identifierNodeTypes are the leaf node types that carry an identifier.
var identifierNodeTypes = map[string]bool{
	"identifier":                    true,
	"simple_identifier":             true,
	"type_identifier":               true,
	"field_identifier":              true,
	"property_identifier":           true,
	"shorthand_property_identifier": true,
}

// scopeNodeTypes are the ancestor node types that name an enclosing scope.
var scopeNodeTypes = map[string]bool{
	"function_declaration":  true,
	"function_definition":   true,
	"function_item":         true,
	"method_declaration":    true,
	"method_definition":     true,
	"class_declaration":     true,
	"class_definition":      true,
	"object_declaration":    true,
	"interface_declaration": true,
	"trait_item":            true,
	"impl_item":             true,
	"enum_declaration":      true,
	"mod_item":              true,
}

// containerNodeTypes are the node types that hold sibling declarations.
var containerNodeTypes = map[string]bool{
	"source_file":            true,
	"program":                true,
	"module":                 true,
	"block":                  true,
	"statement_block":        true,
	"class_body":             true,
	"interface_body":         true,
	"enum_body":              true,
	"declaration_list":       true,
	"field_declaration_list": true,
	"object_type":            true,
}

// extractTree parses the whole file and builds the context from the syntax
// tree. A parse failure is logged and surfaces as nil, never as an error.
func (e *Extractor) extractTree(file, name, content string, language lang.Language) *SymbolContext {
	source := []byte(content)

	parser := sitter.NewParser()
	parser.SetLanguage(Grammar(language))
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		e.logger.Warn("tree parse failed", map[string]interface{}{
			"file":     file,
			"language": string(language),
			"error":    err.Error(),
		})
		return nil
	}
	root := tree.RootNode()

	decl := findDeclaration(root, source, name, language)
	if decl == nil {
		e.logger.Debug("declaration not found in tree", map[string]interface{}{
			"file": file,
			"name": name,
		})
		return nil
	}

	declRow := int(decl.StartPoint().Row)
	lines := strings.Split(content, "\n")
	declText := ""
	if declRow < len(lines) {
		declText = strings.TrimSpace(lines[declRow])
	}

	return &SymbolContext{
		File:            file,
		Language:        language,
		OldName:         name,
		DeclarationText: declText,
		DeclarationLine: declRow + 1,
		UsageSnippets:   collectUsages(root, source, name, declRow),
		NeighborNames:   collectNeighbors(decl, source, name, language),
		EnclosingScopes: collectScopes(decl, source),
		TypeHints:       collectTypeHints(decl, source, name),
	}
}

// findDeclaration returns the first node in document order that declares name.
func findDeclaration(root *sitter.Node, source []byte, name string, language lang.Language) *sitter.Node {
	declTypes := declarationNodeTypes(language)

	var found *sitter.Node
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil || found != nil {
			return
		}
		if contains(declTypes, node.Type()) {
			for _, declared := range declaredNames(node, source) {
				if declared == name {
					found = node
					return
				}
			}
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)
	return found
}

// declaredNames lists the names a declaration node introduces.
func declaredNames(node *sitter.Node, source []byte) []string {
	switch node.Type() {
	case "assignment", "let_declaration", "short_var_declaration":
		// The declared side is a pattern, possibly with several names.
		for _, field := range []string{"left", "pattern"} {
			if target := node.ChildByFieldName(field); target != nil {
				return identifiersIn(target, source)
			}
		}
		return nil
	}

	if n := node.ChildByFieldName("name"); n != nil {
		return []string{nodeText(n, source)}
	}

	// Grammars without a name field (kotlin's simple_identifier children).
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child == nil {
			continue
		}
		if ids := identifiersIn(child, source); len(ids) > 0 {
			return ids[:1]
		}
	}
	return nil
}

// identifiersIn collects identifier leaf texts under node.
func identifiersIn(node *sitter.Node, source []byte) []string {
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if identifierNodeTypes[n.Type()] {
			names = append(names, nodeText(n, source))
			return
		}
		for i := uint32(0); i < n.ChildCount(); i++ {
			walk(n.Child(int(i)))
		}
	}
	walk(node)
	return names
}

// collectUsages captures up to MaxUsageSnippets references to name on lines
// other than the declaration line, each as its nearest enclosing statement.
func collectUsages(root *sitter.Node, source []byte, name string, declRow int) []string {
	usages := make([]string, 0, MaxUsageSnippets)
	seenRows := make(map[int]bool)

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil || len(usages) >= MaxUsageSnippets {
			return
		}
		if identifierNodeTypes[node.Type()] && nodeText(node, source) == name {
			row := int(node.StartPoint().Row)
			if row != declRow && !seenRows[row] {
				seenRows[row] = true
				usages = append(usages, statementSnippet(node, source))
			}
			return
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)
	return usages
}

// statementSnippet renders the nearest enclosing statement of node as a
// single trimmed line.
func statementSnippet(node *sitter.Node, source []byte) string {
	stmt := node
	for p := node.Parent(); p != nil; p = p.Parent() {
		t := p.Type()
		if strings.HasSuffix(t, "_statement") || strings.HasSuffix(t, "_declaration") ||
			strings.HasSuffix(t, "_definition") || strings.HasSuffix(t, "_item") ||
			strings.HasSuffix(t, "_expression_statement") {
			stmt = p
			break
		}
	}

	text := nodeText(stmt, source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if len(text) > 160 {
		text = text[:160] + "..."
	}
	return text
}

// collectNeighbors lists other declaration names in the same syntactic
// container, capped at MaxNeighbors.
func collectNeighbors(decl *sitter.Node, source []byte, name string, language lang.Language) []string {
	container := decl.Parent()
	for container != nil && !containerNodeTypes[container.Type()] {
		container = container.Parent()
	}
	if container == nil {
		return []string{}
	}

	declTypes := declarationNodeTypes(language)
	seen := make(map[string]bool)
	neighbors := make([]string, 0, MaxNeighbors)

	add := func(node *sitter.Node) {
		if !contains(declTypes, node.Type()) {
			return
		}
		names := declaredNames(node, source)
		if len(names) == 0 {
			return
		}
		n := names[0]
		if n == "" || n == name || seen[n] {
			return
		}
		seen[n] = true
		neighbors = append(neighbors, n)
	}

	// Direct children plus one level down, which covers declaration lists
	// like lexical_declaration -> variable_declarator.
	for i := 0; i < int(container.NamedChildCount()) && len(neighbors) < MaxNeighbors; i++ {
		child := container.NamedChild(i)
		if child == nil {
			continue
		}
		add(child)
		for j := 0; j < int(child.NamedChildCount()) && len(neighbors) < MaxNeighbors; j++ {
			if grand := child.NamedChild(j); grand != nil {
				add(grand)
			}
		}
	}
	return neighbors
}

// collectScopes walks the ancestors of decl and names each enclosing
// function, class, or module, ordered outermost first.
func collectScopes(decl *sitter.Node, source []byte) []string {
	scopes := make([]string, 0, 4)
	for p := decl.Parent(); p != nil; p = p.Parent() {
		if !scopeNodeTypes[p.Type()] {
			continue
		}
		names := declaredNames(p, source)
		if len(names) > 0 && names[0] != "" {
			scopes = append(scopes, names[0])
		}
	}

	// Collected innermost first; reverse to outermost first.
	for i, j := 0, len(scopes)-1; i < j; i, j = i+1, j-1 {
		scopes[i], scopes[j] = scopes[j], scopes[i]
	}
	return scopes
}

// collectTypeHints gathers any statically visible type text: the declared
// type of the symbol, the return type, and parameter types.
func collectTypeHints(decl *sitter.Node, source []byte, name string) map[string]string {
	hints := make(map[string]string)

	if t := typeOf(decl, source); t != "" {
		hints[name] = t
	} else if parent := decl.Parent(); parent != nil {
		// Java locals and fields carry the type on the parent declaration.
		if t := typeOf(parent, source); t != "" {
			hints[name] = t
		}
	}

	for _, field := range []string{"return_type", "result"} {
		if n := decl.ChildByFieldName(field); n != nil {
			hints["return"] = cleanTypeText(nodeText(n, source))
			break
		}
	}

	if params := decl.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			if param == nil {
				continue
			}
			ids := identifiersIn(param, source)
			t := typeOf(param, source)
			if len(ids) > 0 && t != "" {
				hints[ids[0]] = t
			}
		}
	}

	return hints
}

func typeOf(node *sitter.Node, source []byte) string {
	if t := node.ChildByFieldName("type"); t != nil {
		return cleanTypeText(nodeText(t, source))
	}
	return ""
}

// cleanTypeText strips the leading colon some grammars keep in type
// annotation nodes.
func cleanTypeText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, ":")
	return strings.TrimSpace(text)
}

// Occurrences returns the byte ranges of every identifier node whose text is
// name, in document order. The tree rename backend replaces these ranges.
func Occurrences(content []byte, name string, language lang.Language) ([][2]uint32, error) {
	grammar := Grammar(language)
	if grammar == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}

	var ranges [][2]uint32
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if identifierNodeTypes[node.Type()] && nodeText(node, content) == name {
			ranges = append(ranges, [2]uint32{node.StartByte(), node.EndByte()})
			return
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(tree.RootNode())
	return ranges, nil
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
