// Package logger holds the small set of location and diagnostic types
// shared by the token and node packages. It plays the same role as
// esbuild's internal/logger package, trimmed down to what a single
// in-memory token stream needs: there is no source file, no terminal
// width detection, and no multi-file summary table, because the parser
// never reads raw text and never owns more than one diagnostic at a time.
package logger

import "fmt"

// Loc is a row/column position in the original tag-literal source, as
// reported by the upstream lexer. Rows and columns are both 1-based.
type Loc struct {
	Line   int32
	Column int32
}

// Range is a half-open-by-convention span: Start is inclusive, End is the
// position immediately after the last character of the token.
type Range struct {
	Start Loc
	End   Loc
}

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

func (k MsgKind) String() string {
	if k == Warning {
		return "warning"
	}
	return "error"
}

// Msg is a structured diagnostic. The parser never recovers from an Error;
// Warning exists for the rest of the ambient stack (e.g. a host wrapper
// that wants to note a lossy fallback without failing the stream).
type Msg struct {
	Kind  MsgKind
	Range Range
	Text  string
	Notes []string
}

func (m Msg) String() string {
	s := fmt.Sprintf("%d:%d: %s: %s", m.Range.Start.Line, m.Range.Start.Column, m.Kind, m.Text)
	for _, note := range m.Notes {
		s += "\n  " + note
	}
	return s
}

// Log collects messages for a single parse. It is deliberately not
// goroutine-safe, matching the parser's single-consumer contract.
type Log struct {
	msgs *[]Msg
}

func NewDeferLog() Log {
	msgs := make([]Msg, 0, 4)
	return Log{msgs: &msgs}
}

func (l Log) AddError(r Range, text string) {
	*l.msgs = append(*l.msgs, Msg{Kind: Error, Range: r, Text: text})
}

func (l Log) AddErrorWithNotes(r Range, text string, notes []string) {
	*l.msgs = append(*l.msgs, Msg{Kind: Error, Range: r, Text: text, Notes: notes})
}

func (l Log) AddWarning(r Range, text string) {
	*l.msgs = append(*l.msgs, Msg{Kind: Warning, Range: r, Text: text})
}

func (l Log) HasErrors() bool {
	for _, msg := range *l.msgs {
		if msg.Kind == Error {
			return true
		}
	}
	return false
}

func (l Log) Done() []Msg {
	return *l.msgs
}

type Colors struct {
	Reset string
	Dim   string
	Red   string
	Green string
}

var TerminalColors = Colors{
	Reset: "\033[0m",
	Dim:   "\033[37m",
	Red:   "\033[31m",
	Green: "\033[32m",
}
