package sexp

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Parse tokenizes src and builds the span-annotated tree in a single linear
// pass. The returned slice holds every top-level form in source order; KiCad
// files have exactly one (the kicad_sch list).
//
// Parse failures are fatal: no partial tree is returned.
func Parse(src []byte) ([]*Node, error) {
	if !utf8.Valid(src) {
		return nil, &ParseError{Kind: InvalidUTF8, Offset: invalidUTF8Offset(src)}
	}

	lex, err := sexpLexer.Lex("", bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	var (
		tops  []*Node
		stack []*Node // open lists, innermost last
	)

	attach := func(n *Node) {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		} else {
			tops = append(tops, n)
		}
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, fmt.Errorf("lexing failed: %w", err)
		}
		if tok.EOF() {
			break
		}

		switch tok.Type {
		case tokWhitespace, tokComment:
			// Inter-node bytes; preserved by never being edited.

		case tokLParen:
			stack = append(stack, &Node{kind: KindList, start: tok.Pos.Offset})

		case tokRParen:
			if len(stack) == 0 {
				return nil, &ParseError{Kind: UnmatchedClose, Offset: tok.Pos.Offset}
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n.end = tok.Pos.Offset + 1
			attach(n)

		case tokString:
			attach(&Node{
				kind:  KindString,
				start: tok.Pos.Offset,
				end:   tok.Pos.Offset + len(tok.Value),
				raw:   tok.Value,
				text:  DecodeString(tok.Value),
			})

		case tokBadString:
			return nil, &ParseError{Kind: UnterminatedString, Offset: tok.Pos.Offset}

		case tokSymbol:
			attach(&Node{
				kind:  KindSymbol,
				start: tok.Pos.Offset,
				end:   tok.Pos.Offset + len(tok.Value),
				raw:   tok.Value,
				text:  tok.Value,
			})

		default:
			return nil, fmt.Errorf("unexpected token type %d at byte %d", tok.Type, tok.Pos.Offset)
		}
	}

	if len(stack) > 0 {
		return nil, &ParseError{Kind: UnmatchedOpen, Offset: stack[len(stack)-1].start}
	}

	if firstList(tops) == nil {
		return nil, &ParseError{Kind: EmptyInput, Offset: 0}
	}

	return tops, nil
}

// firstList returns the first top-level list node, or nil.
func firstList(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.IsList() {
			return n
		}
	}
	return nil
}

// invalidUTF8Offset finds the byte offset of the first invalid sequence.
func invalidUTF8Offset(src []byte) int {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}
