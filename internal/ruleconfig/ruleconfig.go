// Package ruleconfig loads the @-keyword-to-RuleKind table the parser
// uses to frame at-rules (see parser.stepAtRule). The table is data, not
// code, so it lives in an embedded YAML file decoded with
// go.yaml.in/yaml/v2 rather than as a Go literal, the same shape tunaq
// uses for its own on-disk configuration.
package ruleconfig

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v2"

	"github.com/styleistf/istf/internal/istf"
)

//go:embed atrules.yaml
var atRulesYAML []byte

var nameToRuleKind = map[string]istf.RuleKind{
	"Style":             istf.Style,
	"Charset":           istf.Charset,
	"Import":            istf.Import,
	"Media":             istf.Media,
	"FontFace":          istf.FontFace,
	"Page":              istf.Page,
	"Keyframes":         istf.Keyframes,
	"Keyframe":          istf.Keyframe,
	"Margin":            istf.Margin,
	"Namespace":         istf.Namespace,
	"CounterStyle":      istf.CounterStyle,
	"Supports":          istf.Supports,
	"Document":          istf.Document,
	"FontFeatureValues": istf.FontFeatureValues,
	"Viewport":          istf.Viewport,
	"RegionStyle":       istf.RegionStyle,
}

// AtRuleKinds decodes the embedded at-rule table into a keyword ->
// RuleKind map.
func AtRuleKinds() (map[string]istf.RuleKind, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(atRulesYAML, &raw); err != nil {
		return nil, fmt.Errorf("ruleconfig: decode atrules.yaml: %w", err)
	}

	out := make(map[string]istf.RuleKind, len(raw))
	for keyword, kindName := range raw {
		kind, ok := nameToRuleKind[kindName]
		if !ok {
			return nil, fmt.Errorf("ruleconfig: atrules.yaml: unknown rule kind %q for @%s", kindName, keyword)
		}
		out[keyword] = kind
	}
	return out, nil
}
