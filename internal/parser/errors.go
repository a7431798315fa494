package parser

import "github.com/styleistf/istf/internal/logger"

// Error is the structured failure the parser surfaces at the pull
// boundary: fail-fast, no recovery, carrying the last observed token's
// range so callers can report it against source.
type Error struct {
	Message string
	Range   logger.Range
}

func (e *Error) Error() string {
	msg := logger.Msg{Kind: logger.Error, Range: e.Range, Text: e.Message}
	return msg.String()
}

func (p *Parser) errAt(r logger.Range, text string) error {
	return &Error{Message: text, Range: r}
}
