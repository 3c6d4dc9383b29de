package sexp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// sexpLexer defines the lexical structure of KiCad s-expression files.
// Rules are tried in order at the current input position; token positions
// carry the byte offset used to build the span tree.
//
// Strings handle escapes inside the pattern so an escaped '"' does not close
// the string. BadString catches a quote that never closes before EOF — it
// must come after String so it only matches when String cannot.
var sexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - Lisp style (; to end of line). Kept as inter-node bytes,
	// never as tree nodes.
	{Name: "Comment", Pattern: `;[^\n]*`},

	// Whitespace between tokens
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Parentheses
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Quoted strings with escape sequences (\n \r \t \\ \")
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "BadString", Pattern: `"(?:\\.|[^"\\])*`},

	// Symbols: everything up to the next delimiter. Numbers are lexed as
	// symbols; numeric interpretation is deferred to consumers.
	{Name: "Symbol", Pattern: `[^ \t\r\n();"]+`},
})

// Token types resolved once from the lexer definition.
var (
	tokComment    = sexpLexer.Symbols()["Comment"]
	tokWhitespace = sexpLexer.Symbols()["Whitespace"]
	tokLParen     = sexpLexer.Symbols()["LParen"]
	tokRParen     = sexpLexer.Symbols()["RParen"]
	tokString     = sexpLexer.Symbols()["String"]
	tokBadString  = sexpLexer.Symbols()["BadString"]
	tokSymbol     = sexpLexer.Symbols()["Symbol"]
)
