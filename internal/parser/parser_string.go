package parser

import (
	"strings"

	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/nodebuf"
	"github.com/styleistf/istf/internal/token"
)

// parseString consumes tokens until the matching closing Quote(kind),
// A bare string (one raw fragment, no interpolations) collapses
// to a single Value node with the quote characters concatenated around
// the text; anything richer is wrapped in StringStart/StringEnd.
func (p *Parser) parseString(quote token.QuoteKind) (*nodebuf.List[istf.Node], error) {
	buf := nodebuf.New[istf.Node]()
	var raw strings.Builder
	fragments := 0
	sawInterpolation := false

	for {
		tok, ok := p.up.Next()
		if !ok {
			return nil, p.errAt(p.cur, "unexpected end in string")
		}
		p.cur = tok.Range

		switch tok.Kind {
		case token.Str:
			fragments++
			raw.WriteString(tok.Text)

		case token.Interpolation:
			sawInterpolation = true
			if raw.Len() > 0 {
				buf.Add(istf.Node{Kind: istf.Value, Text: raw.String()})
				raw.Reset()
			}
			buf.Add(istf.Node{Kind: istf.ValueRef, Handle: tok.Handle})

		case token.Quote:
			if tok.Quote != quote {
				return nil, p.errAt(tok.Range, "unexpected token in string")
			}
			quoteChar := string(quote.Rune())

			if fragments > 1 || sawInterpolation {
				if raw.Len() > 0 {
					buf.Add(istf.Node{Kind: istf.Value, Text: raw.String()})
				}
				buf.Unshift(istf.Node{Kind: istf.StringStart, Text: quoteChar})
				buf.Add(istf.Node{Kind: istf.StringEnd})
				return buf, nil
			}

			out := nodebuf.New[istf.Node]()
			out.Add(istf.Node{Kind: istf.Value, Text: quoteChar + raw.String() + quoteChar})
			return out, nil

		default:
			return nil, p.errAt(tok.Range, "unexpected token in string")
		}
	}
}
