package parser

import (
	"strings"

	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/pctx"
	"github.com/hallna/structurizr-dsl/pos"
)

// looksLikeRelationship reports whether the cursor is positioned at either
// relationship surface form that names its own source explicitly: an
// explicit "id -> id" or an implicit "id VERB id" / "id consists of id"
//. It does not match the nested "-> dest" form, which callers
// detect directly via KindArrow.
func (p *Parser) looksLikeRelationship() bool {
	if !p.check(lex.KindIdentifier) && !p.check(lex.KindThis) {
		return false
	}
	next := p.peekAt(1)
	if next.Kind == lex.KindArrow {
		return true
	}
	if lex.RelationshipVerbs[next.Kind] {
		return true
	}
	if next.Kind == lex.KindConsists && p.peekAt(2).Kind == lex.KindOf {
		return true
	}
	return false
}

// parseRelationshipStatement parses a fully-spelled-out relationship whose
// source is given explicitly, in either the explicit ("->") or implicit
// (verb) surface form.
func (p *Parser) parseRelationshipStatement() (ast.RelationshipNode, bool) {
	srcTok := p.advance()
	startPos := srcTok.Position

	if p.check(lex.KindArrow) {
		p.advance()
		return p.finishExplicitRelationship(srcTok.Lexeme, startPos)
	}

	verb, verbOK := p.consumeVerb()
	if !verbOK {
		p.errorf(startPos, "expected '->' or a relationship verb after %q", srcTok.Lexeme)
		return ast.RelationshipNode{}, false
	}
	return p.finishImplicitRelationship(srcTok.Lexeme, verb, startPos)
}

func (p *Parser) finishExplicitRelationship(sourceID string, startPos pos.Position) (ast.RelationshipNode, bool) {
	dest, ok := p.parseDestination()
	if !ok {
		p.errorf(p.peek().Position, "expected destination identifier after '->'")
		return ast.RelationshipNode{}, false
	}
	r := ast.RelationshipNode{
		SourceID: sourceID, DestinationID: dest,
		Properties: map[string]string{}, SourcePosition: startPos,
	}
	if p.check(lex.KindString) {
		r.Description = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		r.Technology = p.advance().Lexeme
	}
	if p.check(lex.KindLBrace) {
		r = p.parseRelationshipBlock(r)
	}
	return r, true
}

func (p *Parser) finishImplicitRelationship(sourceID, verb string, startPos pos.Position) (ast.RelationshipNode, bool) {
	dest, ok := p.parseDestination()
	if !ok {
		p.errorf(p.peek().Position, "expected destination identifier after %q", verb)
		return ast.RelationshipNode{}, false
	}
	r := ast.RelationshipNode{
		SourceID: sourceID, DestinationID: dest,
		Properties: map[string]string{}, SourcePosition: startPos,
	}
	if p.check(lex.KindString) {
		r.Description = p.advance().Lexeme
	} else {
		// implicit relationships default their description to the
		// title-cased verb when none is given.
		r.Description = titleCase(verb)
	}
	if p.check(lex.KindString) {
		r.Technology = p.advance().Lexeme
	}
	return r, true
}

// consumeVerb consumes either a single relationship-verb token or the
// two-token "consists of" and returns its canonical lowercase spelling.
func (p *Parser) consumeVerb() (string, bool) {
	if lex.RelationshipVerbs[p.peek().Kind] {
		return string(p.advance().Kind), true
	}
	if p.check(lex.KindConsists) && p.peekAt(1).Kind == lex.KindOf {
		p.advance()
		p.advance()
		return "consists of", true
	}
	return "", false
}

// parseNestedRelationship parses the nested form "-> destId […]" whose
// source is implied to be the enclosing element's id.
func (p *Parser) parseNestedRelationship(sourceID string) (ast.RelationshipNode, bool) {
	p.advance() // '->'
	return p.finishExplicitRelationship(sourceID, p.peek().Position)
}

// parseDestination consumes one or more consecutive identifier-ish tokens
// and concatenates them with single spaces, supporting multi-word
// destination names.
func (p *Parser) parseDestination() (string, bool) {
	if !p.check(lex.KindIdentifier) && !p.check(lex.KindThis) {
		return "", false
	}
	var parts []string
	parts = append(parts, p.advance().Lexeme)
	for p.check(lex.KindIdentifier) {
		parts = append(parts, p.advance().Lexeme)
	}
	return strings.Join(parts, " "), true
}

func (p *Parser) parseRelationshipBlock(r ast.RelationshipNode) ast.RelationshipNode {
	p.advance() // '{'
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		if p.isPropertyAssignment() {
			k, v := p.parsePropertyAssignment()
			if k == "tags" {
				r.Tags = splitTags(v)
			} else {
				r.Properties[k] = v
			}
			continue
		}
		p.advance()
	}
	p.expect(lex.KindRBrace, "to close relationship block")
	return r
}

// parseGroup parses "group \"Name\" { … }",
// recursing into nested groups, elements, and relationships. Groups may
// nest arbitrarily.
func (p *Parser) parseGroup(parentID string) (ast.Group, bool) {
	kwPos := p.advance().Position
	nameTok, ok := p.expect(lex.KindString, "group name")
	if !ok {
		return ast.Group{}, false
	}
	g := ast.Group{Name: nameTok.Lexeme, SourcePosition: kwPos}

	if _, ok := p.expect(lex.KindLBrace, "to open group body"); !ok {
		return g, true
	}
	pop := p.stack.Scope(pctx.Context{Name: "group", Label: g.Name})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch {
		case p.check(lex.KindGroup):
			if nested, ok := p.parseGroup(parentID); ok {
				g.Groups = append(g.Groups, nested)
			}
		case p.check(lex.KindPerson):
			if el, ok := p.parsePerson("", parentID); ok {
				g.Elements = append(g.Elements, el)
			}
		case p.check(lex.KindSoftwareSystem):
			if el, ok := p.parseSoftwareSystem("", parentID); ok {
				g.Elements = append(g.Elements, el)
			}
		case p.isIdentifierAssignment():
			idTok := p.advance()
			p.advance() // '='
			switch p.peek().Kind {
			case lex.KindPerson:
				if el, ok := p.parsePerson(idTok.Lexeme, parentID); ok {
					g.Elements = append(g.Elements, el)
				}
			case lex.KindSoftwareSystem:
				if el, ok := p.parseSoftwareSystem(idTok.Lexeme, parentID); ok {
					g.Elements = append(g.Elements, el)
				}
			default:
				p.errorf(p.peek().Position, "unexpected element kind %s after assignment", describeToken(p.peek()))
			}
		case p.looksLikeRelationship():
			if r, ok := p.parseRelationshipStatement(); ok {
				g.Relationships = append(g.Relationships, r)
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in group body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close group body")
	return g, true
}

// parseGroupInto handles a group written inside an element body. This
// parser attaches a group's relationships to the nearest enclosing element
// context (here, relsOut);
// nested elements within such a group are discarded with a warning, since
// an element body has no slot for a sibling-owned element list.
func (p *Parser) parseGroupInto(relsOut *[]ast.RelationshipNode, parentID string) {
	g, ok := p.parseGroup(parentID)
	if !ok {
		return
	}
	*relsOut = append(*relsOut, g.Relationships...)
	if len(g.Elements) > 0 {
		p.warnf(g.SourcePosition, "group %q inside an element body declares elements; nested-group elements are only supported at model scope", g.Name)
	}
}
