// Package istf defines the Intermediate Style Token Format: the flat,
// self-delimiting node stream the parser emits. As with esbuild's
// css_ast.Token, one struct covers every variant; Kind says which
// fields are meaningful.
package istf

import "github.com/styleistf/istf/internal/token"

type Kind uint8

const (
	// Rule framing.
	RuleStart Kind = iota
	RuleEnd
	RuleName

	// Selector tokens.
	Selector
	ParentSelector
	UniversalSelector
	CompoundSelectorStart
	CompoundSelectorEnd
	SelectorRef
	SpaceCombinator
	ChildCombinator
	DoubledChildCombinator
	NextSiblingCombinator
	SubsequentSiblingCombinator

	// Declarations.
	Property
	PropertyRef
	Value
	ValueRef
	CompoundValueStart
	CompoundValueEnd

	// Functions and strings.
	FunctionStart
	FunctionEnd
	StringStart
	StringEnd

	// Auxiliary.
	Condition
	AnimationName
	PartialRef

	// eof is an internal sentinel. It is never handed to a caller; see
	// Parser.Nodes, which stops pulling before it would have to.
	eof
)

var kindToString = []string{
	"RuleStart", "RuleEnd", "RuleName",
	"Selector", "ParentSelector", "UniversalSelector",
	"CompoundSelectorStart", "CompoundSelectorEnd", "SelectorRef",
	"SpaceCombinator", "ChildCombinator", "DoubledChildCombinator",
	"NextSiblingCombinator", "SubsequentSiblingCombinator",
	"Property", "PropertyRef", "Value", "ValueRef",
	"CompoundValueStart", "CompoundValueEnd",
	"FunctionStart", "FunctionEnd", "StringStart", "StringEnd",
	"Condition", "AnimationName", "PartialRef",
	"EOF",
}

func (k Kind) String() string {
	if int(k) < len(kindToString) {
		return kindToString[k]
	}
	return "unknown node"
}

// RuleKind discriminates the kind of rule a RuleStart opens. The explicit
// ordering gives each variant a stable small-integer discriminant so a
// downstream wire encoder (see internal/wire) never has to ship rule
// names as strings.
type RuleKind uint8

const (
	Style RuleKind = iota
	Charset
	Import
	Media
	FontFace
	Page
	Keyframes
	Keyframe
	Margin
	Namespace
	CounterStyle
	Supports
	Document
	FontFeatureValues
	Viewport
	RegionStyle
)

var ruleKindToString = []string{
	"Style", "Charset", "Import", "Media", "FontFace", "Page",
	"Keyframes", "Keyframe", "Margin", "Namespace", "CounterStyle",
	"Supports", "Document", "FontFeatureValues", "Viewport", "RegionStyle",
}

func (k RuleKind) String() string {
	if int(k) < len(ruleKindToString) {
		return ruleKindToString[k]
	}
	return "Unknown"
}

// Node is one item of the emitted ISTF stream.
type Node struct {
	Kind     Kind
	Text     string       // Selector, Property, Value, FunctionStart, StringStart, Condition, AnimationName, RuleName
	Handle   token.Handle // SelectorRef, PropertyRef, ValueRef, PartialRef
	RuleKind RuleKind     // RuleStart
}
