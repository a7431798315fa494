// Package token defines the shape of the values the parser consumes from
// its upstream collaborator, the lexer. Like esbuild's css_lexer.Token, a single
// struct represents every variant instead of an interface tree, because
// the stream is homogeneous and memory layout matters more than type
// safety here: the parser inspects Kind and nothing else unless the kind
// says it should.
package token

import "github.com/styleistf/istf/internal/logger"

type Kind uint8

const (
	Word Kind = iota
	AtWord
	Str
	Interpolation
	Quote
	Brace
	Paren
	Colon
	Semicolon
	Comma
	Arrow
	Plus
	Tilde
	Asterisk
	Ampersand
	Exclamation
	WordCombinator
)

var kindToString = []string{
	"word",
	"at-word",
	"string fragment",
	"interpolation",
	"quote",
	"brace",
	"paren",
	"\":\"",
	"\";\"",
	"\",\"",
	"\"->\"",
	"\"+\"",
	"\"~\"",
	"\"*\"",
	"\"&\"",
	"\"!\"",
	"word combinator",
}

func (k Kind) String() string {
	if int(k) < len(kindToString) {
		return kindToString[k]
	}
	return "unknown token"
}

// Side distinguishes the open and close halves of a Brace or Paren token.
type Side uint8

const (
	Open Side = iota
	Close
)

// QuoteKind distinguishes double and single quoted strings.
type QuoteKind uint8

const (
	Double QuoteKind = iota
	Single
)

// Rune returns the literal quote character for this kind.
func (q QuoteKind) Rune() byte {
	if q == Single {
		return '\''
	}
	return '"'
}

// Handle is an opaque identifier for a host-supplied interpolated value.
// The parser never inspects it; it is threaded verbatim into the
// corresponding *Ref node.
type Handle any

// Token is one item pulled from the upstream lexer stream. Only the
// fields relevant to Kind are populated; the rest are left at their zero
// value, mirroring the convention css_lexer.Token uses for its Text/
// UnitOffset payload fields.
type Token struct {
	Range  logger.Range
	Kind   Kind
	Text   string // Word, AtWord, Str
	Handle Handle // Interpolation
	Side   Side   // Brace, Paren
	Quote  QuoteKind
}
