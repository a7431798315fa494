package parser

import (
	"fmt"
	"testing"

	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/logger"
	"github.com/styleistf/istf/internal/streams"
	"github.com/styleistf/istf/internal/test"
	"github.com/styleistf/istf/internal/token"
)

// loc builds a one-column-wide range on row, starting at col.
func loc(row, col int32) logger.Range {
	return logger.Range{Start: logger.Loc{Line: row, Column: col}, End: logger.Loc{Line: row, Column: col + 1}}
}

// wideLoc builds a range wide enough to cover a multi-character word, so
// adjacency tests between words land where the scenario expects.
func wideLoc(row, startCol int32, width int32) logger.Range {
	return logger.Range{Start: logger.Loc{Line: row, Column: startCol}, End: logger.Loc{Line: row, Column: startCol + width}}
}

func tok(kind token.Kind, r logger.Range) token.Token {
	return token.Token{Kind: kind, Range: r}
}

func word(text string, r logger.Range) token.Token {
	return token.Token{Kind: token.Word, Text: text, Range: r}
}

func interp(h token.Handle, r logger.Range) token.Token {
	return token.Token{Kind: token.Interpolation, Handle: h, Range: r}
}

func side(kind token.Kind, s token.Side, r logger.Range) token.Token {
	return token.Token{Kind: kind, Side: s, Range: r}
}

func runParser(t *testing.T, tokens []token.Token) ([]istf.Node, error) {
	t.Helper()
	i := 0
	up := streams.New(func() (token.Token, bool) {
		if i >= len(tokens) {
			return token.Token{}, false
		}
		tk := tokens[i]
		i++
		return tk, true
	})
	p := New(up)
	nodes := p.Nodes()

	var out []istf.Node
	for {
		n, ok := nodes.Next()
		if !ok {
			break
		}
		out = append(out, n)
	}
	return out, p.Err()
}

func assertNodes(t *testing.T, tokens []token.Token, want []istf.Node) {
	t.Helper()
	got, err := runParser(t, tokens)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	test.AssertEqualWithDiff(t, formatNodes(got), formatNodes(want))
}

func formatNodes(nodes []istf.Node) string {
	s := ""
	for _, n := range nodes {
		s += n.Kind.String()
		if n.Text != "" {
			s += "(" + n.Text + ")"
		}
		if n.Kind == istf.RuleStart {
			s += "(" + n.RuleKind.String() + ")"
		}
		if n.Handle != nil {
			s += fmt.Sprintf("<%v>", n.Handle)
		}
		s += "\n"
	}
	return s
}

// Scenario 1: .test {} -> RuleStart(Style), Selector(".test"), RuleEnd.
func TestScenarioBareSelector(t *testing.T) {
	tokens := []token.Token{
		word(".test", wideLoc(1, 1, 5)),
		side(token.Brace, token.Open, loc(1, 7)),
		side(token.Brace, token.Close, loc(1, 8)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.Selector, Text: ".test"},
		{Kind: istf.RuleEnd},
	})
}

// Scenario 2: .first<interp> {} with an explicit WordCombinator and no
// gap between the tokens -> no SpaceCombinator.
func TestScenarioCompoundSelectorNoSpace(t *testing.T) {
	tokens := []token.Token{
		word(".first", wideLoc(1, 1, 6)),
		tok(token.WordCombinator, loc(1, 7)),
		interp("h1", loc(1, 7)),
		side(token.Brace, token.Open, loc(1, 8)),
		side(token.Brace, token.Close, loc(1, 9)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.CompoundSelectorStart},
		{Kind: istf.Selector, Text: ".first"},
		{Kind: istf.SelectorRef, Handle: "h1"},
		{Kind: istf.CompoundSelectorEnd},
		{Kind: istf.RuleEnd},
	})
}

// Scenario 3: .first .second<interp> {} -> a SpaceCombinator between the
// two words (a real column gap), none before the interpolation (adjacent,
// bridged by WordCombinator).
func TestScenarioCompoundSelectorWithSpace(t *testing.T) {
	tokens := []token.Token{
		word(".first", wideLoc(1, 1, 6)),
		word(".second", wideLoc(1, 9, 7)),
		tok(token.WordCombinator, loc(1, 16)),
		interp("h1", loc(1, 16)),
		side(token.Brace, token.Open, loc(1, 17)),
		side(token.Brace, token.Close, loc(1, 18)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.CompoundSelectorStart},
		{Kind: istf.Selector, Text: ".first"},
		{Kind: istf.SpaceCombinator},
		{Kind: istf.Selector, Text: ".second"},
		{Kind: istf.SelectorRef, Handle: "h1"},
		{Kind: istf.CompoundSelectorEnd},
		{Kind: istf.RuleEnd},
	})
}

// Scenario 4: color: papayawhip; -> Property("color"), Value("papayawhip").
func TestScenarioDeclaration(t *testing.T) {
	tokens := []token.Token{
		word("color", wideLoc(1, 1, 5)),
		tok(token.Colon, loc(1, 6)),
		word("papayawhip", wideLoc(1, 8, 10)),
		tok(token.Semicolon, loc(1, 18)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.Property, Text: "color"},
		{Kind: istf.Value, Text: "papayawhip"},
	})
}

// Scenario 5: color: "hello "<interp>" world"; -> a wrapped string since
// it has both multiple fragments and an interpolation.
func TestScenarioQuotedStringWithInterpolation(t *testing.T) {
	tokens := []token.Token{
		word("color", wideLoc(1, 1, 5)),
		tok(token.Colon, loc(1, 6)),
		side(token.Quote, token.Open, loc(1, 8)),
		{Kind: token.Str, Text: "hello ", Range: loc(1, 9)},
		interp("h1", loc(1, 15)),
		{Kind: token.Str, Text: " world", Range: loc(1, 16)},
		side(token.Quote, token.Open, loc(1, 22)),
		tok(token.Semicolon, loc(1, 23)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.Property, Text: "color"},
		{Kind: istf.StringStart, Text: "\""},
		{Kind: istf.Value, Text: "hello "},
		{Kind: istf.ValueRef, Handle: "h1"},
		{Kind: istf.Value, Text: " world"},
		{Kind: istf.StringEnd},
	})
}

// Scenario 6: .test:not(.first) {} -> a FunctionStart(":not") nested
// inside the compound selector.
func TestScenarioPseudoFunctionSelector(t *testing.T) {
	tokens := []token.Token{
		word(".test", wideLoc(1, 1, 5)),
		tok(token.Colon, loc(1, 6)),
		word("not", wideLoc(1, 7, 3)),
		side(token.Paren, token.Open, loc(1, 10)),
		word(".first", wideLoc(1, 11, 6)),
		side(token.Paren, token.Close, loc(1, 17)),
		side(token.Brace, token.Open, loc(1, 18)),
		side(token.Brace, token.Close, loc(1, 19)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.CompoundSelectorStart},
		{Kind: istf.Selector, Text: ".test"},
		{Kind: istf.FunctionStart, Text: ":not"},
		{Kind: istf.Selector, Text: ".first"},
		{Kind: istf.FunctionEnd},
		{Kind: istf.CompoundSelectorEnd},
		{Kind: istf.RuleEnd},
	})
}

func TestBareStringWithoutInterpolation(t *testing.T) {
	tokens := []token.Token{
		word("content", wideLoc(1, 1, 7)),
		tok(token.Colon, loc(1, 8)),
		side(token.Quote, token.Open, loc(1, 10)),
		{Kind: token.Str, Text: "hi", Range: loc(1, 11)},
		side(token.Quote, token.Open, loc(1, 13)),
		tok(token.Semicolon, loc(1, 14)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.Property, Text: "content"},
		{Kind: istf.Value, Text: `"hi"`},
	})
}

func TestCommaSeparatedValues(t *testing.T) {
	tokens := []token.Token{
		word("font-family", wideLoc(1, 1, 11)),
		tok(token.Colon, loc(1, 12)),
		word("Arial", wideLoc(1, 14, 5)),
		tok(token.Comma, loc(1, 19)),
		word("sans-serif", wideLoc(1, 21, 10)),
		tok(token.Semicolon, loc(1, 31)),
	}
	// Each comma-separated segment here holds a single atom, so neither
	// segment individually crosses the compound-wrap threshold; the
	// join is a flat run of bare Values with no wrapper (wrapping
	// is decided per segment before the comma, not on the joined whole).
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.Property, Text: "font-family"},
		{Kind: istf.Value, Text: "Arial"},
		{Kind: istf.Value, Text: "sans-serif"},
	})
}

func TestCommaSeparatedValuesWithMultiWordSegment(t *testing.T) {
	tokens := []token.Token{
		word("border", wideLoc(1, 1, 6)),
		tok(token.Colon, loc(1, 7)),
		word("1px", wideLoc(1, 9, 3)),
		word("solid", wideLoc(1, 13, 5)),
		tok(token.Comma, loc(1, 18)),
		word("red", wideLoc(1, 20, 3)),
		tok(token.Semicolon, loc(1, 23)),
	}
	// The first segment ("1px solid") has two atoms and crosses the
	// wrap threshold on its own; the second ("red") does not.
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.Property, Text: "border"},
		{Kind: istf.CompoundValueStart},
		{Kind: istf.Value, Text: "1px"},
		{Kind: istf.Value, Text: "solid"},
		{Kind: istf.CompoundValueEnd},
		{Kind: istf.Value, Text: "red"},
	})
}

func TestCommaSeparatedSelectors(t *testing.T) {
	tokens := []token.Token{
		word(".a", wideLoc(1, 1, 2)),
		tok(token.Comma, loc(1, 3)),
		word(".b", wideLoc(1, 5, 2)),
		side(token.Brace, token.Open, loc(1, 8)),
		side(token.Brace, token.Close, loc(1, 9)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.Selector, Text: ".a"},
		{Kind: istf.Selector, Text: ".b"},
		{Kind: istf.RuleEnd},
	})
}

func TestNestedSelectorFunctions(t *testing.T) {
	tokens := []token.Token{
		word(".a", wideLoc(1, 1, 2)),
		tok(token.Colon, loc(1, 3)),
		word("not", wideLoc(1, 4, 3)),
		side(token.Paren, token.Open, loc(1, 7)),
		word(".b", wideLoc(1, 8, 2)),
		tok(token.Colon, loc(1, 10)),
		word("hover", wideLoc(1, 11, 5)),
		side(token.Paren, token.Close, loc(1, 16)),
		side(token.Brace, token.Open, loc(1, 17)),
		side(token.Brace, token.Close, loc(1, 18)),
	}
	assertNodes(t, tokens, []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.CompoundSelectorStart},
		{Kind: istf.Selector, Text: ".a"},
		{Kind: istf.FunctionStart, Text: ":not"},
		{Kind: istf.CompoundSelectorStart},
		{Kind: istf.Selector, Text: ".b"},
		{Kind: istf.Selector, Text: ":hover"},
		{Kind: istf.CompoundSelectorEnd},
		{Kind: istf.FunctionEnd},
		{Kind: istf.CompoundSelectorEnd},
		{Kind: istf.RuleEnd},
	})
}

func TestUnclosedRuleAtEOFFails(t *testing.T) {
	tokens := []token.Token{
		word(".test", wideLoc(1, 1, 5)),
		side(token.Brace, token.Open, loc(1, 7)),
	}
	_, err := runParser(t, tokens)
	if err == nil {
		t.Fatal("expected an error for an unclosed rule, got none")
	}
}

func TestPrematureEndMidDeclarationFails(t *testing.T) {
	tokens := []token.Token{
		word("color", wideLoc(1, 1, 5)),
		tok(token.Colon, loc(1, 6)),
	}
	_, err := runParser(t, tokens)
	if err == nil {
		t.Fatal("expected an error for a declaration cut off mid-value, got none")
	}
}

func TestAtRuleWithBracedBody(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.AtWord, Text: "@media", Range: wideLoc(1, 1, 6)},
		word("screen", wideLoc(1, 8, 6)),
		side(token.Brace, token.Open, loc(1, 15)),
		word(".a", wideLoc(2, 1, 2)),
		side(token.Brace, token.Open, loc(2, 4)),
		side(token.Brace, token.Close, loc(2, 5)),
		side(token.Brace, token.Close, loc(3, 1)),
	}
	got, err := runParser(t, tokens)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Media},
		{Kind: istf.Condition, Text: "screen"},
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.Selector, Text: ".a"},
		{Kind: istf.RuleEnd},
		{Kind: istf.RuleEnd},
	}
	test.AssertEqualWithDiff(t, formatNodes(got), formatNodes(want))
}

func TestAtRuleWithoutBody(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.AtWord, Text: "@import", Range: wideLoc(1, 1, 7)},
		side(token.Quote, token.Open, loc(1, 9)),
		{Kind: token.Str, Text: "./reset.css", Range: loc(1, 10)},
		side(token.Quote, token.Open, loc(1, 21)),
		tok(token.Semicolon, loc(1, 22)),
	}
	got, err := runParser(t, tokens)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Import},
		{Kind: istf.Value, Text: `"./reset.css"`},
		{Kind: istf.RuleEnd},
	}
	test.AssertEqualWithDiff(t, formatNodes(got), formatNodes(want))
}
