// Package wire gives the ISTF node stream a binary wire form. Node and
// RuleKind carry stable small-integer discriminants meant for downstream
// wire encoding, but the parser itself stops at the in-memory node
// stream, and the encoder is an external collaborator. The discriminants
// only pay for themselves once something actually serializes them, so
// this package is that something: a minimal binary encoder/decoder for
// one Node at a time, built on REZI (github.com/dekarrin/rezi), the same
// binary serialization library tunaq uses for its session state.
package wire

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/styleistf/istf/internal/istf"
)

// EncodeNode serializes a single node to its REZI wire form. Handle
// values are opaque to the parser and to this encoder too: interpolation
// handles never leave the process that produced them, so PartialRef,
// SelectorRef, PropertyRef, and ValueRef nodes are encoded as a bare
// discriminant with no handle payload; a host wrapper that needs the
// handle back out-of-band must still carry its own side-table keyed by
// position.
func EncodeNode(n istf.Node) ([]byte, error) {
	kindBytes, err := rezi.Enc(uint8(n.Kind))
	if err != nil {
		return nil, fmt.Errorf("wire: encode kind: %w", err)
	}
	textBytes, err := rezi.Enc(n.Text)
	if err != nil {
		return nil, fmt.Errorf("wire: encode text: %w", err)
	}
	ruleKindBytes, err := rezi.Enc(uint8(n.RuleKind))
	if err != nil {
		return nil, fmt.Errorf("wire: encode rule kind: %w", err)
	}

	out := make([]byte, 0, len(kindBytes)+len(textBytes)+len(ruleKindBytes))
	out = append(out, kindBytes...)
	out = append(out, textBytes...)
	out = append(out, ruleKindBytes...)
	return out, nil
}

// DecodeNode reads a single node back out of data, returning the number
// of bytes consumed so a caller can walk a concatenated run of encoded
// nodes one at a time.
func DecodeNode(data []byte) (istf.Node, int, error) {
	var kind uint8
	n1, err := rezi.Dec(data, &kind)
	if err != nil {
		return istf.Node{}, 0, fmt.Errorf("wire: decode kind: %w", err)
	}

	var text string
	n2, err := rezi.Dec(data[n1:], &text)
	if err != nil {
		return istf.Node{}, 0, fmt.Errorf("wire: decode text: %w", err)
	}

	var ruleKind uint8
	n3, err := rezi.Dec(data[n1+n2:], &ruleKind)
	if err != nil {
		return istf.Node{}, 0, fmt.Errorf("wire: decode rule kind: %w", err)
	}

	return istf.Node{
		Kind:     istf.Kind(kind),
		Text:     text,
		RuleKind: istf.RuleKind(ruleKind),
	}, n1 + n2 + n3, nil
}

// EncodeStream encodes a full slice of nodes back to back.
func EncodeStream(nodes []istf.Node) ([]byte, error) {
	var out []byte
	for i, n := range nodes {
		b, err := EncodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("wire: node %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// DecodeStream decodes a full byte slice produced by EncodeStream back
// into a slice of nodes.
func DecodeStream(data []byte) ([]istf.Node, error) {
	var nodes []istf.Node
	for len(data) > 0 {
		n, consumed, err := DecodeNode(data)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		data = data[consumed:]
	}
	return nodes, nil
}
