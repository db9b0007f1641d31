package parser

import (
	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/pctx"
)

// parseWorkspace recognises the "workspace [name] [description] { … }"
// envelope and dispatches its body. It is the sole public
// entry point's implementation and is therefore responsible for the
// top-level Context Stack invariant: empty before and after.
func (p *Parser) parseWorkspace() ast.WorkspaceNode {
	w := ast.WorkspaceNode{
		Properties:    map[string]string{},
		Configuration: map[string]string{},
	}

	if !p.check(lex.KindWorkspace) {
		p.errorf(p.peek().Position, "expected workspace declaration, found %s", describeToken(p.peek()))
		return w
	}
	kwPos := p.advance().Position
	w.SourcePosition = kwPos

	if p.check(lex.KindString) {
		w.Name = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		w.Description = p.advance().Lexeme
	}

	if _, ok := p.expect(lex.KindLBrace, "to open workspace body"); !ok {
		return w
	}

	pop := p.stack.Scope(pctx.Context{Name: "workspace"})
	defer pop()

	p.parseWorkspaceBody(&w)

	if _, ok := p.expect(lex.KindRBrace, "to close workspace body"); !ok {
		// best effort: consume to EOF so a missing brace doesn't leave
		// garbage tokens unconsidered by a caller inspecting p.pos.
		p.syncToTopLevel()
	}

	p.expandIncludes(&w)

	return w
}

func (p *Parser) parseWorkspaceBody(w *ast.WorkspaceNode) {
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindBang:
			p.parseDirective(w)
		case lex.KindModel:
			w.Model = p.parseModel()
		case lex.KindViews:
			w.Views = p.parseViews(w)
		case lex.KindStyles:
			w.Styles = p.parseStyles()
		case lex.KindThemes:
			w.Themes = p.parseThemes()
		case lex.KindBranding:
			w.Branding = p.parseBranding()
		case lex.KindTerminology:
			w.Terminology = p.parseTerminology()
		case lex.KindConfiguration:
			p.parseConfiguration(w)
		case lex.KindDocumentation:
			w.Documentation = p.parseDocumentation()
		case lex.KindDecisions:
			w.Decisions = p.parseDecisions()
		case lex.KindIdentifier, lex.KindString:
			// a bare "name = value" at workspace scope is treated as a
			// workspace property, the same shape the property block of
			// an element body recognises.
			p.parseWorkspaceProperty(w)
		default:
			p.errorf(p.peek().Position, "unexpected token %s at workspace scope", describeToken(p.peek()))
			p.advance()
		}
	}
}

func (p *Parser) parseWorkspaceProperty(w *ast.WorkspaceNode) {
	nameTok := p.advance()
	if !p.match(lex.KindEquals) {
		p.warnf(nameTok.Position, "expected '=' after %q, ignoring", nameTok.Lexeme)
		return
	}
	valTok := p.advance()
	w.Properties[nameTok.Lexeme] = valTok.Lexeme
}

// parseDirective recognises "!include <path>" and "!identifiers <scheme>".
func (p *Parser) parseDirective(w *ast.WorkspaceNode) {
	bangPos := p.advance().Position
	if !p.check(lex.KindIdentifier) && !p.check(lex.KindInclude) {
		p.errorf(bangPos, "expected directive name after '!'")
		p.syncToTopLevel()
		return
	}
	name := p.advance().Lexeme
	switch name {
	case "include":
		if !p.check(lex.KindString) {
			p.errorf(bangPos, "expected file path string after !include")
			return
		}
		pathTok := p.advance()
		d := ast.IncludeDirective{Path: pathTok.Lexeme, Kind: ast.IncludeKindFile, SourcePosition: bangPos}
		w.Directives = append(w.Directives, d)
	case "identifiers":
		// consumed, recorded on the model once parsed; stash on the
		// context stack so a subsequent "model" block picks it up.
		if p.check(lex.KindIdentifier) {
			scheme := p.advance().Lexeme
			if ctx := p.stack.CurrentPtr(); ctx != nil {
				ctx.Set("identifierScheme", scheme)
			} else {
				p.stack.Push(pctx.Context{Name: "directive", Data: map[string]any{"identifierScheme": scheme}})
			}
		}
	default:
		p.warnf(bangPos, "unknown directive !%s, ignoring", name)
	}
}

func (p *Parser) parseStyles() *ast.StylesNode {
	kwPos := p.advance().Position
	s := &ast.StylesNode{SourcePosition: kwPos}
	if _, ok := p.expect(lex.KindLBrace, "to open styles body"); !ok {
		return s
	}
	pop := p.stack.Scope(pctx.Context{Name: "styles"})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindElement, lex.KindRelationship:
			isRel := p.peek().Kind == lex.KindRelationship
			elPos := p.advance().Position
			tagTok, ok := p.expect(lex.KindString, "style tag")
			if !ok {
				p.syncToBraceOrTopLevel()
				continue
			}
			se := ast.StyleElement{Tag: tagTok.Lexeme, IsRelationship: isRel, Properties: map[string]string{}, SourcePosition: elPos}
			if p.match(lex.KindLBrace) {
				for !p.atEOF() && !p.check(lex.KindRBrace) {
					if !p.check(lex.KindIdentifier) {
						p.advance()
						continue
					}
					key := p.advance().Lexeme
					if p.match(lex.KindEquals) {
						se.Properties[key] = p.advance().Lexeme
					}
				}
				p.expect(lex.KindRBrace, "to close style block")
			}
			s.Elements = append(s.Elements, se)
		default:
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close styles body")
	return s
}

func (p *Parser) parseThemes() []ast.Theme {
	kwPos := p.advance().Position
	_ = kwPos
	var themes []ast.Theme
	if !p.match(lex.KindLBrace) {
		// "themes <url>" single-line form
		if p.check(lex.KindString) || p.check(lex.KindIdentifier) {
			t := p.advance()
			themes = append(themes, ast.Theme{Reference: t.Lexeme, SourcePosition: t.Position})
		}
		return themes
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		t := p.advance()
		if t.Kind == lex.KindString || t.Kind == lex.KindIdentifier {
			themes = append(themes, ast.Theme{Reference: t.Lexeme, SourcePosition: t.Position})
		}
	}
	p.expect(lex.KindRBrace, "to close themes body")
	return themes
}

func (p *Parser) parseBranding() *ast.BrandingNode {
	kwPos := p.advance().Position
	b := &ast.BrandingNode{Properties: map[string]string{}, SourcePosition: kwPos}
	if !p.match(lex.KindLBrace) {
		return b
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if !p.check(lex.KindIdentifier) {
			p.advance()
			continue
		}
		key := p.advance().Lexeme
		if !p.match(lex.KindEquals) {
			continue
		}
		val := p.advance().Lexeme
		if key == "logo" {
			b.Logo = val
		} else {
			b.Properties[key] = val
		}
	}
	p.expect(lex.KindRBrace, "to close branding body")
	return b
}

func (p *Parser) parseTerminology() *ast.TerminologyNode {
	kwPos := p.advance().Position
	t := &ast.TerminologyNode{Replacements: map[string]string{}, SourcePosition: kwPos}
	if !p.match(lex.KindLBrace) {
		return t
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if !p.check(lex.KindIdentifier) {
			p.advance()
			continue
		}
		key := p.advance().Lexeme
		if p.check(lex.KindString) {
			t.Replacements[key] = p.advance().Lexeme
		}
	}
	p.expect(lex.KindRBrace, "to close terminology body")
	return t
}

func (p *Parser) parseConfiguration(w *ast.WorkspaceNode) {
	p.advance() // "configuration"
	if !p.match(lex.KindLBrace) {
		return
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if !p.check(lex.KindIdentifier) {
			p.advance()
			continue
		}
		key := p.advance().Lexeme
		if p.match(lex.KindEquals) {
			w.Configuration[key] = p.advance().Lexeme
		}
	}
	p.expect(lex.KindRBrace, "to close configuration body")
}

func (p *Parser) parseDocumentation() []ast.DocumentationSection {
	p.advance() // "documentation"
	var sections []ast.DocumentationSection
	if !p.match(lex.KindLBrace) {
		return sections
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if !p.check(lex.KindString) {
			p.advance()
			continue
		}
		titleTok := p.advance()
		sec := ast.DocumentationSection{Title: titleTok.Lexeme, SourcePosition: titleTok.Position}
		if p.check(lex.KindString) {
			sec.Content = p.advance().Lexeme
		}
		if p.check(lex.KindString) {
			sec.Format = p.advance().Lexeme
		}
		sections = append(sections, sec)
	}
	p.expect(lex.KindRBrace, "to close documentation body")
	return sections
}

func (p *Parser) parseDecisions() []ast.Decision {
	p.advance() // "decisions"
	var decisions []ast.Decision
	if !p.match(lex.KindLBrace) {
		return decisions
	}
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if !p.check(lex.KindString) && !p.check(lex.KindIdentifier) {
			p.advance()
			continue
		}
		idTok := p.advance()
		d := ast.Decision{ID: idTok.Lexeme, SourcePosition: idTok.Position}
		if p.check(lex.KindString) {
			d.Title = p.advance().Lexeme
		}
		if p.check(lex.KindString) {
			d.Content = p.advance().Lexeme
		}
		decisions = append(decisions, d)
	}
	p.expect(lex.KindRBrace, "to close decisions body")
	return decisions
}
