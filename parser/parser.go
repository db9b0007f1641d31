// Package parser implements the top-level Parser and its cooperating
// sub-parsers: a recursive-descent parser over a master token cursor,
// dispatching to Element, Relationship, Model,
// Views, and Include sub-parsers that each push/pop a pctx.Context.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/config"
	"github.com/hallna/structurizr-dsl/diag"
	"github.com/hallna/structurizr-dsl/include"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/internal/version"
	"github.com/hallna/structurizr-dsl/pctx"
	"github.com/hallna/structurizr-dsl/pos"
	"github.com/hallna/structurizr-dsl/sdslerr"
)

// Version returns the parser's version string, suitable for inclusion in a
// diagnostic report or a host application's "about" output.
func Version() string {
	return version.Current
}

// topLevelKeywords synchronises panic-mode recovery at the outermost
// (workspace-body) level: these are the tokens a recovering parser treats
// as a fresh start.
var topLevelKeywords = map[lex.Kind]bool{
	lex.KindModel: true, lex.KindViews: true, lex.KindStyles: true,
	lex.KindThemes: true, lex.KindBranding: true, lex.KindTerminology: true,
	lex.KindConfiguration: true, lex.KindDocumentation: true, lex.KindDecisions: true,
	lex.KindBang: true,
}

// Parser is the top-level recursive-descent Structurizr DSL parser.
// A single Parser instance is not safe for concurrent
// use; distinct instances on distinct sources may run in parallel.
type Parser struct {
	cfg config.Config

	toks []lex.Token
	pos  int // index into toks, the master token cursor

	src string // current source text, for diag.Snippet

	reporter *diag.Reporter
	stack    pctx.Stack
	resolver *include.Resolver

	// includeDepth guards against include expansion recursing through a
	// nested Parser indefinitely even when the Loader itself misbehaves.
	includeDepth int
}

const maxIncludeDepth = 64

// New returns a Parser configured by cfg. Zero-valued fields of cfg fall
// back to config.Default()'s values; FileLoader is never defaulted (nil
// means "no include expansion").
func New(cfg config.Config) *Parser {
	if cfg.IdentifierScheme == "" {
		cfg.IdentifierScheme = config.Default().IdentifierScheme
	}
	p := &Parser{cfg: cfg}
	p.reporter = diag.NewReporter(cfg.MaxErrorCount)
	p.resolver = include.NewResolver(cfg.FileLoader)
	return p
}

// Errors returns every diagnostic accumulated across all parse() calls
// since construction or the last Reset.
func (p *Parser) Errors() []diag.Diagnostic {
	return p.reporter.All()
}

// Reset drops all accumulated diagnostics and include-resolution state so
// the Parser can be reused for a new top-level source.
func (p *Parser) Reset() {
	p.reporter.Reset()
	p.resolver = include.NewResolver(p.cfg.FileLoader)
	p.stack.Clear()
}

// Parse lexes and parses source into a WorkspaceNode. It never panics
// across this API boundary and never returns an error: failures are
// recorded as diagnostics retrievable via Errors(), and Parse returns the
// best partial tree it could build.
func (p *Parser) Parse(source string) ast.WorkspaceNode {
	depthBefore := p.stack.Size()
	defer func() {
		// Guarantee the invariant that stack depth equals the
		// pre-call depth after any parse* call, even on a bug-induced
		// panic inside a sub-parser.
		if r := recover(); r != nil {
			p.reporter.Report(diag.Diagnostic{
				Severity: diag.Fatal,
				Message:  "internal parser error; returning partial tree",
			})
		}
		for p.stack.Size() > depthBefore {
			p.stack.Pop()
		}
	}()

	p.src = source
	scanner := lex.New(source, p.reporter)
	p.toks = scanner.Scan()
	p.pos = 0

	w := p.parseWorkspace()
	return w
}

// --- token cursor -----------------------------------------------------

func (p *Parser) peek() lex.Token {
	if p.pos >= len(p.toks) {
		return lex.Token{Kind: lex.KindEOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) lex.Token {
	i := p.pos + offset
	if i >= len(p.toks) || i < 0 {
		return lex.Token{Kind: lex.KindEOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() lex.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lex.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atEOF() bool {
	return p.check(lex.KindEOF)
}

// match advances and returns true if the current token has kind k.
func (p *Parser) match(k lex.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect advances past a token of kind k, or reports a diagnostic and
// returns false, leaving the cursor unmoved. The mismatch is raised as a
// sdslerr.SyntaxError first and converted at the reporting
// boundary, where position, context path, and snippet are available.
func (p *Parser) expect(k lex.Kind, context string) (lex.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	t := p.peek()
	err := sdslerr.Expectedf(fmt.Sprintf("%s %s", k, context), describeToken(t), "")
	p.reportSyntaxError(err, t.Position)
	return t, false
}

// reportSyntaxError converts err into a Diagnostic and records it through
// the Reporter.
func (p *Parser) reportSyntaxError(err *sdslerr.SyntaxError, at pos.Position) {
	d := diag.FromSyntaxError(err, at, p.stack.Path(), diag.Snippet(p.src, at))
	p.reporter.Report(d)
}

func describeToken(t lex.Token) string {
	if t.Kind == lex.KindEOF {
		return "end of input"
	}
	return t.String()
}

// --- diagnostics --------------------------------------------------------

func (p *Parser) errorf(at pos.Position, format string, a ...interface{}) {
	p.report(diag.Error, at, fmt.Sprintf(format, a...))
}

func (p *Parser) warnf(at pos.Position, format string, a ...interface{}) {
	p.report(diag.Warning, at, fmt.Sprintf(format, a...))
}

func (p *Parser) report(sev diag.Severity, at pos.Position, msg string) {
	p.reporter.Report(diag.Diagnostic{
		Severity:      sev,
		Message:       msg,
		Position:      at,
		HasPos:        true,
		ContextPath:   p.stack.Path(),
		SourceSnippet: diag.Snippet(p.src, at),
	})
}

// --- panic-mode recovery -------------------------------------------------

// syncToTopLevel skips tokens until a top-level keyword, a "!" directive
// marker, or EOF: errors at any top-level transition invoke panic-mode
// recovery, synchronising on the next recognisable delimiter.
func (p *Parser) syncToTopLevel() {
	for !p.atEOF() {
		if topLevelKeywords[p.peek().Kind] {
			return
		}
		p.advance()
	}
}

// syncToBraceOrTopLevel skips tokens until a "}" at the current brace
// depth (depth starts at 1, counting the opening brace already consumed),
// a top-level keyword, or EOF.
func (p *Parser) syncToBraceOrTopLevel() {
	depth := 1
	for !p.atEOF() {
		switch p.peek().Kind {
		case lex.KindLBrace:
			depth++
		case lex.KindRBrace:
			depth--
			if depth <= 0 {
				p.advance()
				return
			}
		default:
			if depth == 1 && topLevelKeywords[p.peek().Kind] {
				return
			}
		}
		p.advance()
	}
}

// --- identifier derivation -----------------------------------------------

// deriveID implements the default identifier-derivation rule: when no
// explicit variable assignment precedes an element, its id is the literal
// name with all Unicode whitespace removed.
func deriveID(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// titleCase upper-cases the first rune of s and lower-cases nothing else,
// used to default an implicit relationship's description to its verb
// (e.g. "uses" becomes "Uses").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
