package lex

import (
	"testing"

	"github.com/hallna/structurizr-dsl/diag"
	"github.com/stretchr/testify/assert"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScan_structuralPunctuation(t *testing.T) {
	toks := New(`{ } = -> * , ; !`, nil).Scan()
	assert.Equal(t, []Kind{
		KindLBrace, KindRBrace, KindEquals, KindArrow, KindStar, KindComma, KindSemi, KindBang, KindEOF,
	}, kinds(toks))
}

func TestScan_keywordsClassifiedOverIdentifiers(t *testing.T) {
	toks := New(`person softwareSystem myPerson`, nil).Scan()
	assert.Equal(t, KindPerson, toks[0].Kind)
	assert.Equal(t, KindSoftwareSystem, toks[1].Kind)
	assert.Equal(t, KindIdentifier, toks[2].Kind)
}

func TestScan_stringEscapes(t *testing.T) {
	toks := New(`"line one\nline two\t\"quoted\"\\"`, nil).Scan()
	assert.Equal(t, KindString, toks[0].Kind)
	assert.Equal(t, "line one\nline two\t\"quoted\"\\", toks[0].Lexeme)
}

func TestScan_unterminatedStringReportsAndRecovers(t *testing.T) {
	rep := diag.NewReporter(0)
	toks := New("\"oops\nidentifier", rep).Scan()
	assert.Equal(t, KindError, toks[0].Kind)
	assert.True(t, rep.HasErrors())
	assert.Equal(t, KindIdentifier, toks[1].Kind)
}

func TestScan_numberLiteralsIncludingNegative(t *testing.T) {
	toks := New(`300 -150 0`, nil).Scan()
	assert.Equal(t, 300, toks[0].Literal)
	assert.Equal(t, -150, toks[1].Literal)
	assert.Equal(t, 0, toks[2].Literal)
}

func TestScan_identifierTrailingDotIsNotConsumed(t *testing.T) {
	toks := New(`foo.bar. ->`, nil).Scan()
	assert.Equal(t, "foo.bar", toks[0].Lexeme)
	assert.Equal(t, KindArrow, toks[2].Kind)
}

func TestScan_commentsAreSkipped(t *testing.T) {
	toks := New("person // a human\n# also a comment\n/* block\ncomment */softwareSystem", nil).Scan()
	assert.Equal(t, []Kind{KindPerson, KindSoftwareSystem, KindEOF}, kinds(toks))
}

func TestScan_positionsTrackLineAndColumn(t *testing.T) {
	toks := New("a\nb", nil).Scan()
	assert.Equal(t, 1, toks[0].Position.Line)
	assert.Equal(t, 2, toks[1].Position.Line)
	assert.Equal(t, 1, toks[1].Position.Column)
}

func TestScan_unexpectedCharacterReportsButContinues(t *testing.T) {
	rep := diag.NewReporter(0)
	toks := New(`person @ softwareSystem`, rep).Scan()
	assert.True(t, rep.HasErrors())
	assert.Equal(t, []Kind{KindPerson, KindError, KindSoftwareSystem, KindEOF}, kinds(toks))
}

func TestScan_relationshipVerbsClassified(t *testing.T) {
	toks := New(`uses delivers consists of`, nil).Scan()
	assert.True(t, RelationshipVerbs[toks[0].Kind])
	assert.True(t, RelationshipVerbs[toks[1].Kind])
	assert.Equal(t, KindConsists, toks[2].Kind)
	assert.Equal(t, KindOf, toks[3].Kind)
}
