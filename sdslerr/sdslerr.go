// Package sdslerr defines the error type raised by sub-parsers when they
// cannot recognise the tokens in front of them: a technical message for
// logs paired with a longer one for display.
package sdslerr

import "fmt"

// SyntaxError is returned by a sub-parser when it fails to recognise the
// current token run. The top-level and block parsers convert it into a
// diag.Diagnostic and then drive panic-mode recovery; SyntaxError itself
// carries no recovery behaviour.
type SyntaxError struct {
	// Msg is a short technical description, e.g. "expected person name".
	Msg string

	// Detail, if non-empty, elaborates Msg with enough context to build an
	// editor-style marker (what was expected vs. found).
	Detail string

	// Expected and Found record the token kinds involved, when known. They
	// are plain strings rather than lex.Kind to avoid an import cycle
	// between lex and sdslerr; the parser is responsible for populating
	// them from lex.Kind values.
	Expected string
	Found    string

	wrap error
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// Unwrap gives the error that e wraps, if any.
func (e *SyntaxError) Unwrap() error {
	return e.wrap
}

// New returns a SyntaxError with only a technical message.
func New(msg string) *SyntaxError {
	return &SyntaxError{Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(format string, a ...interface{}) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, a...)}
}

// Expectedf builds a SyntaxError describing a token mismatch: it expected
// `expected` but found `found`.
func Expectedf(expected, found, detailFormat string, a ...interface{}) *SyntaxError {
	return &SyntaxError{
		Msg:      fmt.Sprintf("expected %s, found %s", expected, found),
		Detail:   fmt.Sprintf(detailFormat, a...),
		Expected: expected,
		Found:    found,
	}
}

// Wrap returns a new SyntaxError that wraps err, keeping err available via
// errors.Unwrap/errors.Is/errors.As.
func Wrap(err error, msg string) *SyntaxError {
	return &SyntaxError{Msg: msg, wrap: err}
}
