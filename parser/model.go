package parser

import (
	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/pctx"
)

// parseModel parses the "model { … }" block, dispatching on
// each top-level token kind: person/softwareSystem/enterprise/group/
// deploymentEnvironment, explicit relationship blocks, "id = keyword …"
// assignments, and inline "id -> id" relationships.
func (p *Parser) parseModel() *ast.ModelNode {
	kwPos := p.advance().Position
	m := &ast.ModelNode{SourcePosition: kwPos, IdentifierScheme: ast.IdentifierSchemeFlat}
	if p.cfg.IdentifierScheme == string(ast.IdentifierSchemeHierarchical) {
		m.IdentifierScheme = ast.IdentifierSchemeHierarchical
	}

	if ctx, ok := p.stack.Current(); ok {
		if scheme, ok := ctx.Get("identifierScheme"); ok {
			if s, ok := scheme.(string); ok && s == string(ast.IdentifierSchemeHierarchical) {
				m.IdentifierScheme = ast.IdentifierSchemeHierarchical
			}
		}
	}

	if _, ok := p.expect(lex.KindLBrace, "to open model body"); !ok {
		return m
	}
	pop := p.stack.Scope(pctx.Context{Name: "model"})
	defer pop()

	p.parseModelBody(m)
	p.expect(lex.KindRBrace, "to close model body")
	return m
}

// parseModelBody parses statements into m until a closing brace or EOF,
// the loop shared by a model block's own body, an enterprise block's body,
// and a model-scoped include fragment's body.
func (p *Parser) parseModelBody(m *ast.ModelNode) {
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		p.parseModelStatement(m)
	}
}

func (p *Parser) parseModelStatement(m *ast.ModelNode) {
	switch {
	case p.check(lex.KindBang):
		p.parseModelDirective(m)
	case p.check(lex.KindEnterprise):
		p.parseEnterprise(m)
	case p.check(lex.KindPerson):
		if el, ok := p.parsePerson("", ""); ok {
			m.People = append(m.People, el)
		}
	case p.check(lex.KindSoftwareSystem):
		if el, ok := p.parseSoftwareSystem("", ""); ok {
			m.SoftwareSystems = append(m.SoftwareSystems, el)
		}
	case p.check(lex.KindDeploymentEnvironment):
		if el, ok := p.parseDeploymentEnvironment("", ""); ok {
			m.DeploymentEnvironments = append(m.DeploymentEnvironments, el)
		}
	case p.check(lex.KindGroup):
		if g, ok := p.parseGroup(""); ok {
			m.Groups = append(m.Groups, g)
		}
	case p.check(lex.KindRelationship):
		p.parseExplicitRelationshipBlock(m)
	case p.isIdentifierAssignment():
		p.parseModelAssignment(m)
	case p.looksLikeRelationship():
		if r, ok := p.parseRelationshipStatement(); ok {
			m.Relationships = append(m.Relationships, r)
		}
	default:
		p.errorf(p.peek().Position, "unexpected token %s in model body", describeToken(p.peek()))
		p.advance()
		p.syncToStatementOrBrace()
	}
}

func (p *Parser) parseEnterprise(m *ast.ModelNode) {
	kwPos := p.advance().Position
	nameTok, ok := p.expect(lex.KindString, "enterprise name")
	if !ok {
		return
	}
	e := &ast.Enterprise{Name: nameTok.Lexeme, SourcePosition: kwPos}
	if p.match(lex.KindLBrace) {
		pop := p.stack.Scope(pctx.Context{Name: "enterprise", Label: e.Name})
		defer pop()
		p.parseModelBody(m)
		p.expect(lex.KindRBrace, "to close enterprise body")
	}
	m.Enterprise = e
}

// isIdentifierAssignment reports whether the cursor is at
// "identifier = <element keyword>", the variable-binding form of an
// element declaration.
func (p *Parser) isIdentifierAssignment() bool {
	if !p.check(lex.KindIdentifier) {
		return false
	}
	if p.peekAt(1).Kind != lex.KindEquals {
		return false
	}
	switch p.peekAt(2).Kind {
	case lex.KindPerson, lex.KindSoftwareSystem, lex.KindContainer, lex.KindComponent,
		lex.KindDeploymentEnvironment, lex.KindDeploymentNode, lex.KindInfrastructureNode,
		lex.KindContainerInstance, lex.KindElement:
		return true
	}
	return false
}

func (p *Parser) parseModelAssignment(m *ast.ModelNode) {
	idTok := p.advance()
	p.advance() // '='

	switch p.peek().Kind {
	case lex.KindPerson:
		if el, ok := p.parsePerson(idTok.Lexeme, ""); ok {
			m.People = append(m.People, el)
		}
	case lex.KindSoftwareSystem:
		if el, ok := p.parseSoftwareSystem(idTok.Lexeme, ""); ok {
			m.SoftwareSystems = append(m.SoftwareSystems, el)
		}
	case lex.KindDeploymentEnvironment:
		if el, ok := p.parseDeploymentEnvironment(idTok.Lexeme, ""); ok {
			m.DeploymentEnvironments = append(m.DeploymentEnvironments, el)
		}
	case lex.KindElement:
		// generic "id = element \"Name\"" form, default to a Person
		// since a bare "element" statement carries no family info of its
		// own; downstream builders that need a different kind should use
		// the typed keyword instead.
		p.advance()
		h := p.parseElementHeader("element")
		if h.ok {
			m.People = append(m.People, ast.Person{Base: ast.Base{
				ID: idTok.Lexeme, Name: h.name, Description: h.description,
				Properties: map[string]string{}, SourcePosition: idTok.Position,
			}})
		}
	default:
		p.errorf(p.peek().Position, "unexpected element kind %s after assignment", describeToken(p.peek()))
		p.syncToStatementOrBrace()
	}
}

// parseExplicitRelationshipBlock parses a standalone
// "relationship sourceId destinationId [...]" statement that attaches
// directly to the model rather than to a containing element.
func (p *Parser) parseExplicitRelationshipBlock(m *ast.ModelNode) {
	kwPos := p.advance().Position
	srcTok, ok := p.expect(lex.KindIdentifier, "relationship source")
	if !ok {
		p.syncToStatementOrBrace()
		return
	}
	dest, ok := p.parseDestination()
	if !ok {
		p.errorf(p.peek().Position, "expected relationship destination")
		p.syncToStatementOrBrace()
		return
	}
	r := ast.RelationshipNode{
		SourceID: srcTok.Lexeme, DestinationID: dest,
		Properties: map[string]string{}, SourcePosition: kwPos,
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
	m.Relationships = append(m.Relationships, r)
}

// parseModelDirective recognises "!include <path>" and "!identifiers
// <scheme>" inside a model body. A file include's content is parsed and
// merged as model statements directly into m, rather than as a workspace
// body, since a model-scoped include carries no workspace/model envelope
// of its own.
func (p *Parser) parseModelDirective(m *ast.ModelNode) {
	bangPos := p.advance().Position
	if !p.check(lex.KindIdentifier) && !p.check(lex.KindInclude) {
		p.errorf(bangPos, "expected directive name after '!'")
		p.syncToStatementOrBrace()
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
		p.expandModelInclude(m, d)
	case "identifiers":
		if p.check(lex.KindIdentifier) {
			scheme := p.advance().Lexeme
			if scheme == string(ast.IdentifierSchemeHierarchical) {
				m.IdentifierScheme = ast.IdentifierSchemeHierarchical
			} else {
				m.IdentifierScheme = ast.IdentifierSchemeFlat
			}
		}
	default:
		p.warnf(bangPos, "unknown directive !%s, ignoring", name)
	}
}

// syncToStatementOrBrace is panic-mode recovery for the model body: skip to
// the next top-level keyword, a directive, a bare identifier that may begin
// a new assignment or relationship statement, the closing brace of the
// model, or EOF.
func (p *Parser) syncToStatementOrBrace() {
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindPerson, lex.KindSoftwareSystem, lex.KindDeploymentEnvironment,
			lex.KindGroup, lex.KindEnterprise, lex.KindRelationship,
			lex.KindBang, lex.KindInclude, lex.KindIdentifier:
			return
		}
		p.advance()
	}
}
