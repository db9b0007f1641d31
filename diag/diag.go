// Package diag implements an Error Reporter: an accumulator for parse
// diagnostics with a configurable cap, used by every sub-parser instead of
// throwing across API boundaries.
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/hallna/structurizr-dsl/pos"
	"github.com/hallna/structurizr-dsl/sdslerr"
)

// Severity classifies a Diagnostic. Warnings are recoverable, errors
// invalidate the containing sub-tree, and fatal diagnostics force the
// top-level parse to stop and return whatever partial tree exists.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string

	// Position is the source location the diagnostic refers to, if any.
	Position pos.Position
	HasPos   bool

	// ContextPath is a slash-joined dump of the Context Stack at report
	// time, e.g. "workspace/model/softwareSystem[banking]/container[api]".
	ContextPath string

	// FilePath names the included file the diagnostic originated in, when
	// reporting from within include expansion. Empty for the root source.
	FilePath string

	// SourceSnippet is the offending line plus up to two lines of
	// surrounding context (see Snippet), when the reporting code had the
	// source text at hand.
	SourceSnippet string

	Expected string
	Found    string
}

// String renders a Diagnostic the way an editor-style marker would: the
// file/position, the message, the context path, and the snippet, if any are
// present.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	if d.FilePath != "" {
		sb.WriteString(d.FilePath)
		sb.WriteString(":")
	}
	if d.HasPos {
		sb.WriteString(d.Position.String())
		sb.WriteString(": ")
	}
	sb.WriteString(d.Message)
	if d.ContextPath != "" {
		sb.WriteString(fmt.Sprintf(" (in %s)", d.ContextPath))
	}
	if d.SourceSnippet != "" {
		sb.WriteString("\n")
		sb.WriteString(rosed.Edit(d.SourceSnippet).Wrap(100).String())
	}
	return sb.String()
}

// Reporter accumulates Diagnostics up to a configurable maximum and answers
// summary queries about them. It neither formats to a sink nor aborts
// execution; callers decide what to do with the returned bool and with the
// accumulated Diagnostics.
type Reporter struct {
	max   int
	diags []Diagnostic
}

// DefaultMaxErrorCount is the cap applied when NewReporter is given a
// non-positive max.
const DefaultMaxErrorCount = 100

// NewReporter returns a Reporter capped at max diagnostics of severity
// Error or Fatal. A max <= 0 is replaced with DefaultMaxErrorCount.
func NewReporter(max int) *Reporter {
	if max <= 0 {
		max = DefaultMaxErrorCount
	}
	return &Reporter{max: max}
}

// Report records d and returns whether it was accepted. Reports of severity
// below Error are never subject to the cap; only Error and Fatal
// diagnostics count against max.
func (r *Reporter) Report(d Diagnostic) bool {
	if d.Severity >= Error && r.errorAndFatalCount() >= r.max {
		return false
	}
	r.diags = append(r.diags, d)
	return true
}

func (r *Reporter) errorAndFatalCount() int {
	n := 0
	for _, d := range r.diags {
		if d.Severity >= Error {
			n++
		}
	}
	return n
}

// All returns every recorded Diagnostic in report order.
func (r *Reporter) All() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Errors returns diagnostics of severity Error or Fatal.
func (r *Reporter) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.diags {
		if d.Severity >= Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns diagnostics of severity exactly Warning.
func (r *Reporter) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.diags {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any Error or Fatal diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// HasFatalErrors reports whether any Fatal diagnostic was recorded.
func (r *Reporter) HasFatalErrors() bool {
	for _, d := range r.diags {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Count returns the total number of recorded diagnostics of any severity.
func (r *Reporter) Count() int {
	return len(r.diags)
}

// Reset drops all accumulated diagnostics, leaving max unchanged.
func (r *Reporter) Reset() {
	r.diags = nil
}

// FromSyntaxError converts the lightweight control-flow error a sub-parser
// raises when it fails to recognise the current token run into
// a reportable Diagnostic of severity Error, attaching position, context
// path, and source snippet the sub-parser itself has no access to.
func FromSyntaxError(err *sdslerr.SyntaxError, at pos.Position, contextPath, snippet string) Diagnostic {
	msg := err.Msg
	if err.Detail != "" {
		msg = msg + ": " + err.Detail
	}
	return Diagnostic{
		Severity:      Error,
		Message:       msg,
		Position:      at,
		HasPos:        true,
		ContextPath:   contextPath,
		SourceSnippet: snippet,
		Expected:      err.Expected,
		Found:         err.Found,
	}
}

// Snippet renders the line containing pos plus up to two lines of context
// from source, for use as Diagnostic.SourceSnippet.
func Snippet(source string, p pos.Position) string {
	lines := strings.Split(source, "\n")
	if p.Line < 1 || p.Line > len(lines) {
		return ""
	}
	start := p.Line - 1
	if start < 1 {
		start = 1
	}
	end := p.Line + 1
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		sb.WriteString(lines[i-1])
		if i < end {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
