// Package fixture is a stand-in for the real lexer, which lives upstream
// of this module and is out of scope here. It
// reads a tiny line-oriented token description and turns it into the
// same Token stream a real lexer would hand the parser, purely so
// cmd/istfdump has something to drive the parser with end to end.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/styleistf/istf/internal/logger"
	"github.com/styleistf/istf/internal/streams"
	"github.com/styleistf/istf/internal/token"
)

// Parse reads token descriptions from r, one line per row; several
// tokens may share a line when separated by "||". Each token is a
// keyword followed by an optional argument:
//
//	word <text>        atword <text>       str <text>
//	interp <handle>     quote double|single brace open|close
//	paren open|close    colon               semicolon
//	comma               arrow               plus
//	tilde               asterisk            ampersand
//	exclamation         wordcombinator
//
// Blank lines and lines starting with "#" are ignored. Every token is
// given a Range on its line's row whose width is the length of its text
// (1 for interp and single-character punctuation, 2 for arrow, 0 for
// wordcombinator); the next token on the same line starts one column
// after the previous one ends. That gap is not wide enough for the
// parser's adjacency test, so tokens from one fixture line never produce
// a SpaceCombinator.
func Parse(r io.Reader) ([]token.Token, error) {
	var tokens []token.Token
	scanner := bufio.NewScanner(r)
	line := int32(0)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		col := int32(1)
		for _, field := range strings.Split(text, "||") {
			tok, width, err := parseOne(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("fixture: line %d: %w", line, err)
			}
			tok.Range = logger.Range{
				Start: logger.Loc{Line: line, Column: col},
				End:   logger.Loc{Line: line, Column: col + width},
			}
			tokens = append(tokens, tok)
			col += width + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func parseOne(field string) (token.Token, int32, error) {
	keyword, arg, _ := strings.Cut(field, " ")
	arg = strings.TrimSpace(arg)

	switch keyword {
	case "word":
		return token.Token{Kind: token.Word, Text: arg}, int32(len(arg)), nil
	case "atword":
		return token.Token{Kind: token.AtWord, Text: arg}, int32(len(arg)), nil
	case "str":
		return token.Token{Kind: token.Str, Text: arg}, int32(len(arg)), nil
	case "interp":
		return token.Token{Kind: token.Interpolation, Handle: arg}, 1, nil
	case "quote":
		q := token.Double
		if arg == "single" {
			q = token.Single
		}
		return token.Token{Kind: token.Quote, Quote: q}, 1, nil
	case "brace":
		return token.Token{Kind: token.Brace, Side: side(arg)}, 1, nil
	case "paren":
		return token.Token{Kind: token.Paren, Side: side(arg)}, 1, nil
	case "colon":
		return token.Token{Kind: token.Colon}, 1, nil
	case "semicolon":
		return token.Token{Kind: token.Semicolon}, 1, nil
	case "comma":
		return token.Token{Kind: token.Comma}, 1, nil
	case "arrow":
		return token.Token{Kind: token.Arrow}, 2, nil
	case "plus":
		return token.Token{Kind: token.Plus}, 1, nil
	case "tilde":
		return token.Token{Kind: token.Tilde}, 1, nil
	case "asterisk":
		return token.Token{Kind: token.Asterisk}, 1, nil
	case "ampersand":
		return token.Token{Kind: token.Ampersand}, 1, nil
	case "exclamation":
		return token.Token{Kind: token.Exclamation}, 1, nil
	case "wordcombinator":
		return token.Token{Kind: token.WordCombinator}, 0, nil
	default:
		return token.Token{}, 0, fmt.Errorf("unknown token keyword %q", keyword)
	}
}

func side(arg string) token.Side {
	if arg == "close" {
		return token.Close
	}
	return token.Open
}

// Stream wraps a decoded token slice in the pull iterator the parser
// expects, so a caller only has to call Parse once and hand the result
// straight to parser.New.
func Stream(tokens []token.Token) *streams.Lazy[token.Token] {
	i := 0
	return streams.New(func() (token.Token, bool) {
		if i >= len(tokens) {
			return token.Token{}, false
		}
		tok := tokens[i]
		i++
		return tok, true
	})
}

// HandleLabel renders a fixture-sourced Handle (always a string, since
// fixture files have no way to embed a real host value) back to text for
// display purposes.
func HandleLabel(h token.Handle) string {
	if h == nil {
		return ""
	}
	if s, ok := h.(string); ok {
		return s
	}
	return strconv.Quote(fmt.Sprint(h))
}
