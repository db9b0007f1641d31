package diag

import (
	"testing"

	"github.com/hallna/structurizr-dsl/pos"
	"github.com/hallna/structurizr-dsl/sdslerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_capsErrorsButNotWarnings(t *testing.T) {
	rep := NewReporter(2)
	assert.True(t, rep.Report(Diagnostic{Severity: Error, Message: "e1"}))
	assert.True(t, rep.Report(Diagnostic{Severity: Error, Message: "e2"}))
	assert.False(t, rep.Report(Diagnostic{Severity: Error, Message: "e3"}))
	assert.True(t, rep.Report(Diagnostic{Severity: Warning, Message: "w1"}))

	require.Equal(t, 3, rep.Count())
	assert.Len(t, rep.Errors(), 2)
	assert.Len(t, rep.Warnings(), 1)
	assert.True(t, rep.HasErrors())
	assert.False(t, rep.HasFatalErrors())
}

func TestReporter_defaultMaxAppliedWhenNonPositive(t *testing.T) {
	rep := NewReporter(0)
	assert.Equal(t, DefaultMaxErrorCount, rep.max)
}

func TestReporter_reset(t *testing.T) {
	rep := NewReporter(0)
	rep.Report(Diagnostic{Severity: Error, Message: "boom"})
	require.Equal(t, 1, rep.Count())
	rep.Reset()
	assert.Equal(t, 0, rep.Count())
	assert.False(t, rep.HasErrors())
}

func TestDiagnostic_stringIncludesContextAndSnippet(t *testing.T) {
	d := Diagnostic{
		Severity:      Error,
		Message:       "expected '}'",
		Position:      pos.Position{Line: 3, Column: 1},
		HasPos:        true,
		ContextPath:   "workspace/model/softwareSystem[banking]",
		SourceSnippet: "softwareSystem \"Banking\" {",
	}
	s := d.String()
	assert.Contains(t, s, "error:")
	assert.Contains(t, s, "expected '}'")
	assert.Contains(t, s, "workspace/model/softwareSystem[banking]")
	assert.Contains(t, s, "softwareSystem \"Banking\"")
}

func TestFromSyntaxError_carriesExpectedAndFound(t *testing.T) {
	err := sdslerr.Expectedf("'}'", "EOF", "while closing workspace body")
	d := FromSyntaxError(err, pos.Position{Line: 4, Column: 1}, "workspace", "")
	assert.Equal(t, Error, d.Severity)
	assert.Equal(t, "'}'", d.Expected)
	assert.Equal(t, "EOF", d.Found)
	assert.Contains(t, d.Message, "expected '}', found EOF")
	assert.Contains(t, d.Message, "while closing workspace body")
}

func TestSnippet_clampsToSourceBounds(t *testing.T) {
	source := "line1\nline2\nline3"
	assert.Equal(t, "line1\nline2", Snippet(source, pos.Position{Line: 1}))
	assert.Equal(t, "line2\nline3", Snippet(source, pos.Position{Line: 3}))
	assert.Equal(t, "", Snippet(source, pos.Position{Line: 99}))
}
