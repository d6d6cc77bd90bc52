package buffer

import "fmt"

// Syntax is the category a span of text is highlighted as.
type Syntax uint8

const (
	Default Syntax = iota
	Column         // Not produced by the Highlighter; useful for Colorscheming the editor column
	Comment
	String
	Keyword
	Builtin
	Number
	Function
)

var syntaxNames = [...]string{
	Default:  "default",
	Column:   "column",
	Comment:  "comment",
	String:   "string",
	Keyword:  "keyword",
	Builtin:  "builtin",
	Number:   "number",
	Function: "function",
}

// String returns the tag name of the Syntax, like "keyword".
func (s Syntax) String() string {
	if int(s) < len(syntaxNames) {
		return syntaxNames[s]
	}
	return fmt.Sprintf("Syntax(%d)", uint8(s))
}

// ParseSyntax returns the Syntax with the given tag name.
func ParseSyntax(name string) (Syntax, error) {
	for i, n := range syntaxNames {
		if n == name {
			return Syntax(i), nil
		}
	}
	return Default, fmt.Errorf("unknown syntax %q", name)
}

// A Language describes how text in one source language is highlighted. The
// Keywords and Builtins tables are matched as whole words. The patterns are
// regexp2 expressions; FunctionPattern must have one capture group holding the
// function name.
type Language struct {
	Name string

	Keywords []string
	Builtins []string

	CommentPattern  string
	StringPattern   string
	NumberPattern   string
	FunctionPattern string
}

// Python is the only language the editor highlights.
var Python = &Language{
	Name: "Python",
	Keywords: []string{
		"def", "class", "if", "else", "elif", "for", "while", "return", "import",
		"from", "try", "except", "finally", "with", "as", "assert", "break",
		"continue", "del", "global", "nonlocal", "in", "is", "lambda", "pass",
		"raise", "yield",
	},
	Builtins: []string{
		"print", "len", "range", "str", "int", "float", "bool", "list", "tuple",
		"dict", "set", "open", "file", "input", "exit", "help", "dir", "type",
		"object",
	},
	CommentPattern:  `#.*`,
	StringPattern:   `(".*")|('.*')`,
	NumberPattern:   `\b\d+\b`,
	FunctionPattern: `def\s+(\w+)\s*\(`,
}
