// Package lang enumerates the source languages the rename pipeline understands
// and maps file paths onto them.
package lang

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported programming language.
type Language string

const (
	Go         Language = "go"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Python     Language = "python"
	Rust       Language = "rust"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	Ruby       Language = "ruby"
	PHP        Language = "php"
	C          Language = "c"
	CPP        Language = "cpp"
	CSharp     Language = "csharp"
	Shell      Language = "shell"
)

// All lists every supported language in stable order.
func All() []Language {
	return []Language{
		Go, JavaScript, TypeScript, TSX, Python, Rust, Java, Kotlin,
		Ruby, PHP, C, CPP, CSharp, Shell,
	}
}

// FromExtension returns the Language for a file extension (with leading dot).
func FromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".go":
		return Go, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	case ".py", ".pyw":
		return Python, true
	case ".rs":
		return Rust, true
	case ".java":
		return Java, true
	case ".kt", ".kts":
		return Kotlin, true
	case ".rb":
		return Ruby, true
	case ".php":
		return PHP, true
	case ".c", ".h":
		return C, true
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
		return CPP, true
	case ".cs":
		return CSharp, true
	case ".sh", ".bash":
		return Shell, true
	default:
		return "", false
	}
}

// Detect resolves a file path to its language. The second return is false for
// unsupported extensions, which callers treat as a scope filter, not an error.
func Detect(path string) (Language, bool) {
	return FromExtension(filepath.Ext(path))
}

// keywords holds the per-language reserved words that can never be rename
// candidates. The sets are deliberately small: they only have to stop the
// lexical scanner from proposing keywords, not reproduce each grammar.
var keywords = map[Language]map[string]bool{
	Go: wordSet("break case chan const continue default defer else fallthrough for func go goto if import interface map package range return select struct switch type var nil true false iota make new len cap append copy delete panic recover print println error string int int8 int16 int32 int64 uint uint8 uint16 uint32 uint64 byte rune float32 float64 bool any"),
	JavaScript: wordSet("break case catch class const continue debugger default delete do else export extends finally for function if import in instanceof let new return static super switch this throw try typeof var void while with yield async await of null undefined true false console require module exports"),
	TypeScript: wordSet("break case catch class const continue debugger default delete do else enum export extends finally for function if implements import in instanceof interface let namespace new private protected public readonly return static super switch this throw try type typeof var void while yield async await of keyof infer declare abstract as satisfies null undefined true false string number boolean object unknown never any console require"),
	Python: wordSet("False None True and as assert async await break class continue def del elif else except finally for from global if import in is lambda nonlocal not or pass raise return try while with yield self cls print len range type str int float bool list dict set tuple"),
	Rust: wordSet("as async await break const continue crate dyn else enum extern fn for if impl in let loop match mod move mut pub ref return self Self static struct super trait type unsafe use where while true false Some None Ok Err String Vec Box"),
	Java: wordSet("abstract assert boolean break byte case catch char class const continue default do double else enum extends final finally float for goto if implements import instanceof int interface long native new package private protected public return short static strictfp super switch synchronized this throw throws transient try void volatile while true false null var record String System"),
	Kotlin: wordSet("as break class continue do else false for fun if in interface is null object package return super this throw true try typealias typeof val var when while by catch constructor delegate dynamic field file finally get import init param property receiver set setparam where data sealed open override private public internal protected lateinit companion"),
	Ruby: wordSet("alias and begin break case class def defined do else elsif end ensure false for if in module next nil not or redo rescue retry return self super then true undef unless until when while yield require require_relative attr_accessor attr_reader attr_writer puts"),
	PHP: wordSet("abstract and array as break callable case catch class clone const continue declare default do echo else elseif empty enddeclare endfor endforeach endif endswitch endwhile extends final finally fn for foreach function global goto if implements include instanceof insteadof interface isset list match namespace new or print private protected public readonly require return static switch throw trait try unset use var while xor yield true false null this self parent"),
	C: wordSet("auto break case char const continue default do double else enum extern float for goto if inline int long register restrict return short signed sizeof static struct switch typedef union unsigned void volatile while NULL printf size_t"),
	CPP: wordSet("alignas alignof auto bool break case catch char class const constexpr const_cast continue decltype default delete do double dynamic_cast else enum explicit export extern false float for friend goto if inline int long mutable namespace new noexcept nullptr operator private protected public register reinterpret_cast return short signed sizeof static static_cast struct switch template this throw true try typedef typeid typename union unsigned using virtual void volatile while std cout cin endl string vector"),
	CSharp: wordSet("abstract as base bool break byte case catch char checked class const continue decimal default delegate do double else enum event explicit extern false finally fixed float for foreach goto if implicit in int interface internal is lock long namespace new null object operator out override params private protected public readonly ref return sbyte sealed short sizeof stackalloc static string struct switch this throw true try typeof uint ulong unchecked unsafe ushort using var virtual void volatile while async await record"),
	Shell: wordSet("if then else elif fi case esac for while until do done in function select time coproc echo exit return local export readonly declare unset shift source true false"),
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// IsKeyword reports whether name is a reserved or builtin word in lang.
func IsKeyword(l Language, name string) bool {
	return keywords[l][name]
}
