// Package parser implements the mode-dispatched pull driver that turns a
// token stream into an ISTF node stream: the recursive descent routines
// for selectors, values, strings, and functions, plus the declaration/
// selector disambiguation buffer, all driven one token at a time from a
// BufferStream wrapping the lexer's output.
//
// The parser is strictly single-threaded and pull-driven. It holds no
// resources that need releasing; a caller that stops pulling can just
// abandon it. Once it reports an error it is poisoned: further pulls are
// undefined.
package parser

import (
	"strings"

	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/logger"
	"github.com/styleistf/istf/internal/nodebuf"
	"github.com/styleistf/istf/internal/ruleconfig"
	"github.com/styleistf/istf/internal/streams"
	"github.com/styleistf/istf/internal/token"
)

type mode uint8

const (
	modeMain mode = iota
	modeProperty
	modeSelector
	modeBuffer
	modeDone
)

// Parser is a single mode-dispatched pull driver. It owns the upstream
// token stream, the push-back buffer in front of it, the pre-parsed node
// buffer BufferLoop drains, and nothing else.
type Parser struct {
	up    *streams.Buffer[token.Token]
	mode  mode
	depth int
	cur   logger.Range
	buf   *nodebuf.List[istf.Node]
	err   error
}

// New builds a parser over a token stream. Call Nodes to get the output
// iterator; the parser itself does no work until something pulls from it.
func New(tokens *streams.Lazy[token.Token]) *Parser {
	return &Parser{up: streams.NewBuffer(tokens), mode: modeMain}
}

// Nodes returns a pull iterator over the parser's output. It is backed
// directly by the parser's internal state; calling Nodes more than once
// returns independent iterators over the same underlying driver, which
// is only meaningful if used from a single consumer at a time as the
// rest of the package assumes.
func (p *Parser) Nodes() *streams.Lazy[istf.Node] {
	return streams.New(p.pull)
}

// Err returns the poisoning error, if the stream ended because of one.
// It is only meaningful after Nodes' iterator has reported done.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) pull() (istf.Node, bool) {
	for {
		if p.err != nil {
			return istf.Node{}, false
		}

		var n istf.Node
		var emitted bool

		switch p.mode {
		case modeMain:
			n, emitted = p.stepMain()
		case modeSelector:
			n, emitted = p.stepSelector()
		case modeProperty:
			n, emitted = p.stepProperty()
		case modeBuffer:
			n, emitted = p.stepBuffer()
		case modeDone:
			return istf.Node{}, false
		}

		if p.err != nil {
			return istf.Node{}, false
		}
		if emitted {
			return n, true
		}
	}
}

// stepMain is the MainLoop dispatcher.
func (p *Parser) stepMain() (istf.Node, bool) {
	tok, ok := p.up.Peek()
	if !ok {
		if p.depth != 0 {
			p.err = p.errAt(p.cur, "unexpected end, rules unclosed")
			return istf.Node{}, false
		}
		p.mode = modeDone
		return istf.Node{}, false
	}

	switch tok.Kind {
	case token.WordCombinator:
		p.up.Next()
		return istf.Node{}, false

	case token.Semicolon:
		p.up.Next()
		p.cur = tok.Range
		return istf.Node{}, false

	case token.Word, token.Interpolation:
		first, _ := p.up.Next()
		p.cur = first.Range
		if second, ok2 := p.up.Peek(); ok2 && second.Kind == token.Colon {
			p.up.Next()
			p.cur = second.Range
			return p.disambiguate(first, second)
		}
		p.up.Push(first)
		return p.beginSelectorRule()

	case token.AtWord:
		return p.stepAtRule()

	case token.Brace:
		if tok.Side == token.Close {
			p.up.Next()
			p.cur = tok.Range
			if p.depth == 0 {
				p.err = p.errAt(tok.Range, "unexpected token")
				return istf.Node{}, false
			}
			p.depth--
			return istf.Node{Kind: istf.RuleEnd}, true
		}
		return p.beginSelectorRule()

	default:
		return p.beginSelectorRule()
	}
}

// disambiguate resolves the declaration-vs-selector ambiguity once a
// colon has been seen after a word or interpolation. first and second
// ("word|interpolation", "colon") have already been consumed; it
// buffers further tokens while peeking, without
// feeding them to either sub-parser, until it sees a token that decides
// the construct one way or the other, then replays everything it looked
// at onto the upstream buffer so the chosen sub-parser sees it from the
// start.
func (p *Parser) disambiguate(first, second token.Token) (istf.Node, bool) {
	held := []token.Token{first, second}

	for {
		tok, ok := p.up.Peek()
		if !ok {
			p.err = p.errAt(p.cur, "unexpected end, expected selector or declaration")
			return istf.Node{}, false
		}

		isSelector, isDeclaration := false, false
		switch tok.Kind {
		case token.Brace:
			if tok.Side == token.Open {
				isSelector = true
			} else {
				isDeclaration = true
			}
		case token.Ampersand, token.Plus, token.Arrow, token.Tilde, token.Asterisk, token.Colon:
			isSelector = true
		case token.Semicolon:
			isDeclaration = true
		}

		if isSelector || isDeclaration {
			for _, t := range held {
				p.up.Push(t)
			}
			if isSelector {
				p.depth++
				p.mode = modeSelector
				return istf.Node{Kind: istf.RuleStart, RuleKind: istf.Style}, true
			}
			p.mode = modeProperty
			return p.stepProperty()
		}

		p.up.Next()
		p.cur = tok.Range
		held = append(held, tok)
	}
}

func (p *Parser) beginSelectorRule() (istf.Node, bool) {
	p.depth++
	p.mode = modeSelector
	return istf.Node{Kind: istf.RuleStart, RuleKind: istf.Style}, true
}

func (p *Parser) stepSelector() (istf.Node, bool) {
	buf, err := p.parseSelectors(0)
	if err != nil {
		p.err = err
		return istf.Node{}, false
	}
	p.buf = buf
	p.mode = modeBuffer
	return istf.Node{}, false
}

func (p *Parser) stepProperty() (istf.Node, bool) {
	tok, ok := p.up.Next()
	if !ok {
		p.err = p.errAt(p.cur, "expected property")
		return istf.Node{}, false
	}
	p.cur = tok.Range

	var propNode istf.Node
	switch tok.Kind {
	case token.Word:
		propNode = istf.Node{Kind: istf.Property, Text: tok.Text}
	case token.Interpolation:
		propNode = istf.Node{Kind: istf.PropertyRef, Handle: tok.Handle}
	default:
		p.err = p.errAt(tok.Range, "expected property")
		return istf.Node{}, false
	}

	colon, ok := p.up.Next()
	if !ok {
		p.err = p.errAt(p.cur, "expected property")
		return istf.Node{}, false
	}
	p.cur = colon.Range
	if colon.Kind != token.Colon {
		p.err = p.errAt(colon.Range, "expected property")
		return istf.Node{}, false
	}

	buf, err := p.parseValues(0)
	if err != nil {
		p.err = err
		return istf.Node{}, false
	}

	p.buf = buf
	p.mode = modeBuffer
	return propNode, true
}

func (p *Parser) stepBuffer() (istf.Node, bool) {
	n, ok := p.buf.Take()
	if !ok {
		p.mode = modeMain
		return istf.Node{}, false
	}
	return n, true
}

// atRuleKinds maps a recognized @-keyword to its stable RuleKind
// discriminant, loaded from internal/ruleconfig's embedded table.
// Unrecognized at-keywords still frame a balanced rule (falling back to
// Style) so nesting depth stays correct; the body grammar itself remains
// out of scope.
var atRuleKinds = mustLoadAtRuleKinds()

func mustLoadAtRuleKinds() map[string]istf.RuleKind {
	kinds, err := ruleconfig.AtRuleKinds()
	if err != nil {
		panic(err)
	}
	return kinds
}

// stepAtRule frames an at-rule. It resolves the at-keyword to a RuleKind,
// collects the prelude (words and raw string fragments as Condition nodes,
// interpolations as PartialRef nodes, quoted strings as parseString
// output; any other prelude token is dropped), and frames either a
// braced body (nested rules parse normally inside it) or a
// semicolon-terminated body-less rule.
func (p *Parser) stepAtRule() (istf.Node, bool) {
	tok, _ := p.up.Next()
	p.cur = tok.Range

	name := strings.ToLower(strings.TrimPrefix(tok.Text, "@"))
	kind, ok := atRuleKinds[name]
	if !ok {
		kind = istf.Style
	}

	prelude := nodebuf.New[istf.Node]()
	for {
		nx, ok := p.up.Peek()
		if !ok {
			p.err = p.errAt(p.cur, "unexpected end, unclosed rules")
			return istf.Node{}, false
		}

		switch nx.Kind {
		case token.WordCombinator:
			p.up.Next()

		case token.Brace:
			if nx.Side != token.Open {
				p.err = p.errAt(nx.Range, "unexpected token")
				return istf.Node{}, false
			}
			p.up.Next()
			p.depth++
			p.buf = prelude
			p.mode = modeBuffer
			return istf.Node{Kind: istf.RuleStart, RuleKind: kind}, true

		case token.Semicolon:
			p.up.Next()
			prelude.Add(istf.Node{Kind: istf.RuleEnd})
			p.buf = prelude
			p.mode = modeBuffer
			return istf.Node{Kind: istf.RuleStart, RuleKind: kind}, true

		case token.Word, token.Str:
			p.up.Next()
			prelude.Add(istf.Node{Kind: istf.Condition, Text: nx.Text})

		case token.Quote:
			p.up.Next()
			strBuf, err := p.parseString(nx.Quote)
			if err != nil {
				p.err = err
				return istf.Node{}, false
			}
			prelude = nodebuf.Concat(prelude, strBuf)

		case token.Interpolation:
			p.up.Next()
			prelude.Add(istf.Node{Kind: istf.PartialRef, Handle: nx.Handle})

		default:
			p.up.Next()
		}
	}
}

// wrapCompound wraps buf in start/end framing iff it holds two or more
// atomic items, per the compound-wrapping rule shared by selectors and
// values. items is the count of atomic items buf was built from, not
// buf.Size(): a single item can still expand to several nodes (an
// interpolated string, a function call), so node count alone would
// over-wrap.
func wrapCompound(buf *nodebuf.List[istf.Node], items int, start, end istf.Kind) *nodebuf.List[istf.Node] {
	if items < 2 {
		return buf
	}
	buf.Unshift(istf.Node{Kind: start})
	buf.Add(istf.Node{Kind: end})
	return buf
}
