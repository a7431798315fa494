package parser

import (
	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/nodebuf"
	"github.com/styleistf/istf/internal/token"
)

// parseValues is the recursive descent value parser.
// level tracks parenthesis nesting so a function call's arguments parse
// at level+1 and a top-level comma list knows when a close-paren belongs
// to an enclosing function instead of terminating the value.
func (p *Parser) parseValues(level int) (*nodebuf.List[istf.Node], error) {
	buf := nodebuf.New[istf.Node]()
	items := 0

	for {
		tok, ok := p.up.Peek()
		if !ok {
			if level > 0 {
				return nil, p.errAt(p.cur, "unexpected end in values")
			}
			return wrapCompound(buf, items, istf.CompoundValueStart, istf.CompoundValueEnd), nil
		}

		switch tok.Kind {
		case token.WordCombinator:
			p.up.Next()

		case token.Word:
			p.up.Next()
			p.cur = tok.Range
			items++
			if nx, ok2 := p.up.Peek(); ok2 && nx.Kind == token.Paren && nx.Side == token.Open {
				p.up.Next()
				inner, err := p.parseValues(level + 1)
				if err != nil {
					return nil, err
				}
				buf.Add(istf.Node{Kind: istf.FunctionStart, Text: tok.Text})
				buf = nodebuf.Concat(buf, inner)
				buf.Add(istf.Node{Kind: istf.FunctionEnd})
			} else {
				buf.Add(istf.Node{Kind: istf.Value, Text: tok.Text})
			}

		case token.Quote:
			p.up.Next()
			p.cur = tok.Range
			items++
			strBuf, err := p.parseString(tok.Quote)
			if err != nil {
				return nil, err
			}
			buf = nodebuf.Concat(buf, strBuf)

		case token.Str:
			if level == 0 {
				return nil, p.errAt(tok.Range, "unexpected token in values")
			}
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.Value, Text: tok.Text})

		case token.Interpolation:
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.ValueRef, Handle: tok.Handle})

		case token.Comma:
			p.up.Next()
			p.cur = tok.Range
			wrapped := wrapCompound(buf, items, istf.CompoundValueStart, istf.CompoundValueEnd)
			cont, err := p.parseValues(level)
			if err != nil {
				return nil, err
			}
			return nodebuf.Concat(wrapped, cont), nil

		case token.Paren:
			if tok.Side == token.Close && level > 0 {
				p.up.Next()
				p.cur = tok.Range
				return wrapCompound(buf, items, istf.CompoundValueStart, istf.CompoundValueEnd), nil
			}
			return nil, p.errAt(tok.Range, "unexpected token in values")

		case token.Brace:
			if tok.Side == token.Close && level == 0 {
				return wrapCompound(buf, items, istf.CompoundValueStart, istf.CompoundValueEnd), nil
			}
			return nil, p.errAt(tok.Range, "unexpected token in values")

		case token.Semicolon:
			if level == 0 {
				return wrapCompound(buf, items, istf.CompoundValueStart, istf.CompoundValueEnd), nil
			}
			return nil, p.errAt(tok.Range, "unexpected token in values")

		default:
			return nil, p.errAt(tok.Range, "unexpected token in values")
		}
	}
}
