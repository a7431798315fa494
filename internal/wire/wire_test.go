package wire

import (
	"testing"

	"github.com/styleistf/istf/internal/istf"
)

func TestEncodeDecodeNodeRoundTrip(t *testing.T) {
	n := istf.Node{Kind: istf.RuleStart, RuleKind: istf.Media, Text: "screen"}

	encoded, err := EncodeNode(n)
	if err != nil {
		t.Fatalf("EncodeNode: %s", err)
	}
	decoded, consumed, err := DecodeNode(encoded)
	if err != nil {
		t.Fatalf("DecodeNode: %s", err)
	}
	if consumed != len(encoded) {
		t.Fatalf("DecodeNode consumed %d bytes, want %d", consumed, len(encoded))
	}
	if decoded.Kind != n.Kind || decoded.RuleKind != n.RuleKind || decoded.Text != n.Text {
		t.Fatalf("DecodeNode = %+v, want %+v", decoded, n)
	}
}

func TestEncodeDecodeStreamRoundTrip(t *testing.T) {
	nodes := []istf.Node{
		{Kind: istf.RuleStart, RuleKind: istf.Style},
		{Kind: istf.Selector, Text: ".test"},
		{Kind: istf.RuleEnd},
	}

	encoded, err := EncodeStream(nodes)
	if err != nil {
		t.Fatalf("EncodeStream: %s", err)
	}
	decoded, err := DecodeStream(encoded)
	if err != nil {
		t.Fatalf("DecodeStream: %s", err)
	}
	if len(decoded) != len(nodes) {
		t.Fatalf("DecodeStream returned %d nodes, want %d", len(decoded), len(nodes))
	}
	for i := range nodes {
		if decoded[i].Kind != nodes[i].Kind || decoded[i].Text != nodes[i].Text {
			t.Fatalf("node %d = %+v, want %+v", i, decoded[i], nodes[i])
		}
	}
}
