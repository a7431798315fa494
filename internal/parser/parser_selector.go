package parser

import (
	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/logger"
	"github.com/styleistf/istf/internal/nodebuf"
	"github.com/styleistf/istf/internal/token"
)

// parseSelectors mirrors parseValues but with combinator insertion and
// pseudo-class handling. The opening brace of the rule body is
// consumed here, not by the caller: SelectorLoop hands control back to
// BufferLoop with the rule body's opening brace already behind it.
func (p *Parser) parseSelectors(level int) (*nodebuf.List[istf.Node], error) {
	buf := nodebuf.New[istf.Node]()
	items := 0

	for {
		tok, ok := p.up.Peek()
		if ok && tok.Kind == token.WordCombinator {
			p.up.Next()
			continue
		}
		if !ok {
			if level > 0 {
				return nil, p.errAt(p.cur, "unexpected end in selectors")
			}
			return wrapCompound(buf, items, istf.CompoundSelectorStart, istf.CompoundSelectorEnd), nil
		}

		switch tok.Kind {
		case token.Colon:
			p.up.Next()
			p.cur = tok.Range
			items++
			nxt, ok2 := p.up.Peek()
			if !ok2 {
				return nil, p.errAt(p.cur, "unexpected end in selectors")
			}
			switch nxt.Kind {
			case token.Word:
				p.up.Next()
				p.cur = nxt.Range
				if after, ok3 := p.up.Peek(); ok3 && after.Kind == token.Paren && after.Side == token.Open {
					p.up.Next()
					inner, err := p.parseSelectors(level + 1)
					if err != nil {
						return nil, err
					}
					buf.Add(istf.Node{Kind: istf.FunctionStart, Text: ":" + nxt.Text})
					buf = nodebuf.Concat(buf, inner)
					buf.Add(istf.Node{Kind: istf.FunctionEnd})
					if err := p.appendCombinator(buf, p.cur); err != nil {
						return nil, err
					}
				} else {
					buf.Add(istf.Node{Kind: istf.Selector, Text: ":" + nxt.Text})
					if err := p.appendCombinator(buf, nxt.Range); err != nil {
						return nil, err
					}
				}
			case token.Interpolation:
				p.up.Next()
				p.cur = nxt.Range
				buf.Add(istf.Node{Kind: istf.Selector, Text: ":"})
				buf.Add(istf.Node{Kind: istf.SelectorRef, Handle: nxt.Handle})
				if err := p.appendCombinator(buf, nxt.Range); err != nil {
					return nil, err
				}
			default:
				return nil, p.errAt(nxt.Range, "unexpected token in selectors")
			}

		case token.Asterisk:
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.UniversalSelector})
			if err := p.appendCombinator(buf, tok.Range); err != nil {
				return nil, err
			}

		case token.Ampersand:
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.ParentSelector})
			if err := p.appendCombinator(buf, tok.Range); err != nil {
				return nil, err
			}

		case token.Word:
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.Selector, Text: tok.Text})
			if err := p.appendCombinator(buf, tok.Range); err != nil {
				return nil, err
			}

		case token.Interpolation:
			p.up.Next()
			p.cur = tok.Range
			items++
			buf.Add(istf.Node{Kind: istf.SelectorRef, Handle: tok.Handle})
			if err := p.appendCombinator(buf, tok.Range); err != nil {
				return nil, err
			}

		case token.Comma:
			p.up.Next()
			p.cur = tok.Range
			wrapped := wrapCompound(buf, items, istf.CompoundSelectorStart, istf.CompoundSelectorEnd)
			cont, err := p.parseSelectors(level)
			if err != nil {
				return nil, err
			}
			return nodebuf.Concat(wrapped, cont), nil

		case token.Paren:
			if tok.Side == token.Close && level > 0 {
				p.up.Next()
				p.cur = tok.Range
				return wrapCompound(buf, items, istf.CompoundSelectorStart, istf.CompoundSelectorEnd), nil
			}
			return nil, p.errAt(tok.Range, "unexpected token in selectors")

		case token.Brace:
			if tok.Side == token.Open && level == 0 {
				p.up.Next()
				p.cur = tok.Range
				return wrapCompound(buf, items, istf.CompoundSelectorStart, istf.CompoundSelectorEnd), nil
			}
			return nil, p.errAt(tok.Range, "unexpected token in selectors")

		default:
			return nil, p.errAt(tok.Range, "unexpected token in selectors")
		}
	}
}

// appendCombinator peeks past the token just appended to buf and decides
// whether a combinator belongs between it and whatever comes next, per
// the table below. WordCombinator tokens are skipped over: they are an
// advisory lexer hint and carry no range information of their own,
// so adjacency is judged purely from the surrounding tokens' ranges.
func (p *Parser) appendCombinator(buf *nodebuf.List[istf.Node], prevEnd logger.Range) error {
	for {
		tok, ok := p.up.Peek()
		if !ok {
			return nil
		}
		if tok.Kind == token.WordCombinator {
			p.up.Next()
			continue
		}

		switch tok.Kind {
		case token.Arrow:
			p.up.Next()
			if nxt, ok2 := p.up.Peek(); ok2 && nxt.Kind == token.Arrow {
				p.up.Next()
				buf.Add(istf.Node{Kind: istf.DoubledChildCombinator})
			} else {
				buf.Add(istf.Node{Kind: istf.ChildCombinator})
			}
			return p.expectSelectorNext()

		case token.Plus:
			p.up.Next()
			buf.Add(istf.Node{Kind: istf.NextSiblingCombinator})
			return p.expectSelectorNext()

		case token.Tilde:
			p.up.Next()
			buf.Add(istf.Node{Kind: istf.SubsequentSiblingCombinator})
			return p.expectSelectorNext()

		case token.Comma, token.Paren, token.Brace:
			return nil

		default:
			if rangeImpliesSpace(prevEnd, tok.Range) {
				buf.Add(istf.Node{Kind: istf.SpaceCombinator})
			}
			return nil
		}
	}
}

// expectSelectorNext enforces that the token right after an explicit
// combinator can actually start a selector: combinators never sit next
// to a comma, an opening brace, a closing paren, or a pseudo-class colon.
func (p *Parser) expectSelectorNext() error {
	tok, ok := p.up.Peek()
	if !ok {
		return p.errAt(p.cur, "unexpected end in selectors")
	}
	switch tok.Kind {
	case token.Colon, token.Comma:
		return p.errAt(tok.Range, "unexpected token in selectors")
	case token.Paren:
		if tok.Side == token.Close {
			return p.errAt(tok.Range, "unexpected token in selectors")
		}
	case token.Brace:
		if tok.Side == token.Open {
			return p.errAt(tok.Range, "unexpected token in selectors")
		}
	}
	return nil
}

// rangeImpliesSpace implements the combinator
// table: a SpaceCombinator is only warranted when the previous token's
// end and the next token's start differ by more than one column on the
// same source row.
func rangeImpliesSpace(prevEnd logger.Range, next logger.Range) bool {
	if prevEnd.End.Line != next.Start.Line {
		return false
	}
	return next.Start.Column-prevEnd.End.Column > 1
}
