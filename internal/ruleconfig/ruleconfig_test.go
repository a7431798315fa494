package ruleconfig

import (
	"testing"

	"github.com/styleistf/istf/internal/istf"
)

func TestAtRuleKindsCoversCommonKeywords(t *testing.T) {
	kinds, err := AtRuleKinds()
	if err != nil {
		t.Fatalf("AtRuleKinds: %s", err)
	}

	cases := map[string]istf.RuleKind{
		"media":             istf.Media,
		"charset":           istf.Charset,
		"import":            istf.Import,
		"keyframes":         istf.Keyframes,
		"-webkit-keyframes": istf.Keyframes,
		"supports":          istf.Supports,
	}
	for keyword, want := range cases {
		got, ok := kinds[keyword]
		if !ok {
			t.Fatalf("AtRuleKinds missing keyword %q", keyword)
		}
		if got != want {
			t.Fatalf("AtRuleKinds[%q] = %s, want %s", keyword, got, want)
		}
	}
}
