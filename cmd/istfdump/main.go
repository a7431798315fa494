/*
Istfdump runs the ISTF parser against a fixture token file and prints or
wire-encodes the resulting node stream.

It reads its input from stdin, a tiny line-oriented token description
standing in for a real lexer (see internal/fixture), and drives the
parser exactly the way a host pipeline's parser stage would: pull one
token at a time, pull nodes back out, stop at the first error.

Usage:

	istfdump [flags] < fixture.tokens

The flags are:

	-w, --wire
		Emit the node stream in its REZI wire form instead of a
		human-readable listing.

	-q, --quiet
		Suppress the per-node listing; only report success/failure.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/styleistf/istf/internal/fixture"
	"github.com/styleistf/istf/internal/istf"
	"github.com/styleistf/istf/internal/parser"
	"github.com/styleistf/istf/internal/wire"
)

const (
	exitSuccess = iota
	exitParseError
	exitInputError
)

var (
	flagWire  = pflag.BoolP("wire", "w", false, "Emit the node stream in REZI wire form instead of a listing")
	flagQuiet = pflag.BoolP("quiet", "q", false, "Suppress the per-node listing")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	tokens, err := fixture.Parse(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "istfdump: %s\n", err)
		return exitInputError
	}

	p := parser.New(fixture.Stream(tokens))
	nodes := p.Nodes()

	var collected []istf.Node
	for {
		n, ok := nodes.Next()
		if !ok {
			break
		}
		collected = append(collected, n)
	}
	if err := p.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "istfdump: %s\n", err)
		return exitParseError
	}

	if *flagWire {
		encoded, err := wire.EncodeStream(collected)
		if err != nil {
			fmt.Fprintf(os.Stderr, "istfdump: %s\n", err)
			return exitParseError
		}
		os.Stdout.Write(encoded)
		return exitSuccess
	}

	if !*flagQuiet {
		for _, n := range collected {
			printNode(n)
		}
	}
	return exitSuccess
}

func printNode(n istf.Node) {
	switch {
	case n.Text != "" && n.Handle != nil:
		fmt.Printf("%s(%q, %s)\n", n.Kind, n.Text, fixture.HandleLabel(n.Handle))
	case n.Text != "":
		fmt.Printf("%s(%q)\n", n.Kind, n.Text)
	case n.Handle != nil:
		fmt.Printf("%s(%s)\n", n.Kind, fixture.HandleLabel(n.Handle))
	case n.Kind == istf.RuleStart:
		fmt.Printf("%s(%s)\n", n.Kind, n.RuleKind)
	default:
		fmt.Println(n.Kind)
	}
}
