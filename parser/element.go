package parser

import (
	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/pctx"
	"github.com/hallna/structurizr-dsl/sdslerr"
)

// elementHeader is the shared shape every element family parses before its
// optional block: keyword, name, optional description, optional third
// positional string whose meaning (technology vs. tags) depends on the
// element kind.
type elementHeader struct {
	ok          bool
	name        string
	description string
	third       string // raw third string literal, if any
	hasThird    bool
}

// parseElementHeader consumes `name := require(<kind name>, "Expected <kind>
// name")`, then up to two further optional string literals, reporting a
// warning and ignoring anything beyond that.
func (p *Parser) parseElementHeader(kindHuman string) elementHeader {
	if !p.check(lex.KindString) {
		t := p.peek()
		p.reportSyntaxError(sdslerr.Expectedf(kindHuman+" name", describeToken(t), ""), t.Position)
		return elementHeader{}
	}
	nameTok := p.advance()
	if nameTok.Lexeme == "" {
		p.errorf(nameTok.Position, "empty identifier: %s name must not be empty", kindHuman)
		return elementHeader{}
	}
	h := elementHeader{ok: true, name: nameTok.Lexeme}

	if p.check(lex.KindString) {
		h.description = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		h.third = p.advance().Lexeme
		h.hasThird = true
	}
	// any further positional strings are extra: warn and ignore.
	for p.check(lex.KindString) {
		extra := p.advance()
		p.warnf(extra.Position, "unexpected extra argument %q, ignoring", extra.Lexeme)
	}
	return h
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	start := 0
	for i, r := range s {
		if r == ',' {
			tags = append(tags, trimSpace(s[start:i]))
			start = i + 1
		}
	}
	tags = append(tags, trimSpace(s[start:]))
	return tags
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parsePerson parses "person \"Name\" [\"Desc\"] [\"tag,tag\"] [{ … }]".
func (p *Parser) parsePerson(overrideID, parentID string) (ast.Person, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("person")
	if !h.ok {
		return ast.Person{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.Person{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Tags: splitTags(h.third), Properties: map[string]string{},
		ParentID: parentID, SourcePosition: kwPos,
	}}
	if p.check(lex.KindLBrace) {
		el.Base = p.parseElementBlock(el.Base, &el, nil)
	}
	return el, true
}

// parseSoftwareSystem parses the softwareSystem family, including nested
// container children.
func (p *Parser) parseSoftwareSystem(overrideID, parentID string) (ast.SoftwareSystem, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("softwareSystem")
	if !h.ok {
		return ast.SoftwareSystem{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.SoftwareSystem{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Tags: splitTags(h.third), Properties: map[string]string{},
		ParentID: parentID, SourcePosition: kwPos,
	}}
	if p.check(lex.KindLBrace) {
		el.Base = p.parseElementBlock(el.Base, nil, &el)
	}
	return el, true
}

// parseContainer parses "container \"Name\" [\"Desc\"] [\"Tech\"] [{ … }]".
// For container the third string is Technology, not tags.
func (p *Parser) parseContainer(overrideID, parentID string) (ast.Container, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("container")
	if !h.ok {
		return ast.Container{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.Container{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Properties: map[string]string{}, ParentID: parentID, SourcePosition: kwPos,
	}}
	el.Technology = h.third
	if p.check(lex.KindLBrace) {
		el.Base, el.Components = p.parseContainerBlock(el.Base)
	}
	return el, true
}

func (p *Parser) parseComponent(overrideID, parentID string) (ast.Component, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("component")
	if !h.ok {
		return ast.Component{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.Component{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Properties: map[string]string{}, ParentID: parentID, SourcePosition: kwPos,
	}}
	el.Technology = h.third
	if p.check(lex.KindLBrace) {
		el.Base = p.parseLeafElementBlock(el.Base, el.ID)
	}
	return el, true
}

func (p *Parser) parseInfrastructureNode(overrideID, parentID string) (ast.InfrastructureNode, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("infrastructureNode")
	if !h.ok {
		return ast.InfrastructureNode{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.InfrastructureNode{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Properties: map[string]string{}, ParentID: parentID, SourcePosition: kwPos,
	}}
	el.Technology = h.third
	if p.check(lex.KindLBrace) {
		el.Base = p.parseLeafElementBlock(el.Base, el.ID)
	}
	return el, true
}

func (p *Parser) parseContainerInstance(overrideID, parentID string) (ast.ContainerInstance, bool) {
	kwPos := p.advance().Position
	refTok, ok := p.expect(lex.KindIdentifier, "container reference")
	if !ok {
		return ast.ContainerInstance{}, false
	}
	id := overrideID
	if id == "" {
		id = refTok.Lexeme + "_instance"
	}
	el := ast.ContainerInstance{
		ContainerID: refTok.Lexeme,
		Base: ast.Base{
			ID: id, Name: refTok.Lexeme, Properties: map[string]string{},
			ParentID: parentID, SourcePosition: kwPos,
		},
	}
	if p.check(lex.KindLBrace) {
		el.Base = p.parseLeafElementBlock(el.Base, el.ID)
	}
	return el, true
}

func (p *Parser) parseDeploymentNode(overrideID, parentID string) (ast.DeploymentNode, bool) {
	kwPos := p.advance().Position
	h := p.parseElementHeader("deploymentNode")
	if !h.ok {
		return ast.DeploymentNode{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(h.name)
	}
	el := ast.DeploymentNode{Base: ast.Base{
		ID: id, Name: h.name, Description: h.description,
		Properties: map[string]string{}, ParentID: parentID, SourcePosition: kwPos,
	}}
	el.Technology = h.third
	if p.check(lex.KindLBrace) {
		el.Base, el.DeploymentNodes, el.InfrastructureNodes, el.ContainerInstances = p.parseDeploymentNodeBlock(el.Base, el.ID)
	}
	return el, true
}

func (p *Parser) parseDeploymentEnvironment(overrideID, parentID string) (ast.DeploymentEnvironment, bool) {
	kwPos := p.advance().Position
	nameTok, ok := p.expect(lex.KindString, "name")
	if !ok {
		return ast.DeploymentEnvironment{}, false
	}
	id := overrideID
	if id == "" {
		id = deriveID(nameTok.Lexeme)
	}
	el := ast.DeploymentEnvironment{Base: ast.Base{
		ID: id, Name: nameTok.Lexeme, Properties: map[string]string{},
		ParentID: parentID, SourcePosition: kwPos,
	}}
	if _, ok := p.expect(lex.KindLBrace, "to open deploymentEnvironment body"); !ok {
		return el, true
	}
	pop := p.stack.Scope(pctx.Context{Name: "deploymentEnvironment", Label: el.ID})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindDeploymentNode:
			if n, ok := p.parseDeploymentNode("", el.ID); ok {
				el.DeploymentNodes = append(el.DeploymentNodes, n)
			}
		case lex.KindRBrace:
		default:
			p.errorf(p.peek().Position, "unexpected token %s in deploymentEnvironment body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close deploymentEnvironment body")
	return el, true
}

// parseElementBlock implements parseParentChild for person/softwareSystem
//: property assignments, nested elements (software systems
// only nest containers), and relationships. The *ast.Person argument is not
// used; systemOut is non-nil only for a softwareSystem, whose nested
// containers are appended to it.
func (p *Parser) parseElementBlock(base ast.Base, _ *ast.Person, systemOut *ast.SoftwareSystem) ast.Base {
	p.advance() // '{'
	pop := p.stack.Scope(pctx.Context{Name: "element", Label: base.ID, Data: map[string]any{"currentElementID": base.ID}})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch {
		case p.check(lex.KindContainer) && systemOut != nil:
			if c, ok := p.parseContainer("", base.ID); ok {
				systemOut.Containers = append(systemOut.Containers, c)
			}
		case p.check(lex.KindGroup):
			p.parseGroupInto(&base.Relationships, base.ID)
		case p.check(lex.KindArrow):
			if r, ok := p.parseNestedRelationship(base.ID); ok {
				base.Relationships = append(base.Relationships, r)
			}
		case p.isIdentifierAssignment() && systemOut != nil:
			p.parseAssignedContainer(systemOut, base.ID)
		case p.isPropertyAssignment():
			k, v := p.parsePropertyAssignment()
			base.Properties[k] = v
		case p.looksLikeRelationship():
			if r, ok := p.parseRelationshipStatement(); ok {
				base.Relationships = append(base.Relationships, r)
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in element body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close element body")
	return base
}

// parseAssignedContainer handles "id = container …" inside a softwareSystem
// body, the variable-binding counterpart of a bare "container …" statement.
func (p *Parser) parseAssignedContainer(systemOut *ast.SoftwareSystem, parentID string) {
	idTok := p.advance()
	p.advance() // '='
	if !p.check(lex.KindContainer) {
		p.errorf(p.peek().Position, "expected container after %q =", idTok.Lexeme)
		return
	}
	if c, ok := p.parseContainer(idTok.Lexeme, parentID); ok {
		systemOut.Containers = append(systemOut.Containers, c)
	}
}

// parseContainerBlock is parseElementBlock specialised for container,
// which nests components rather than containers.
func (p *Parser) parseContainerBlock(base ast.Base) (ast.Base, []ast.Component) {
	p.advance() // '{'
	var components []ast.Component
	pop := p.stack.Scope(pctx.Context{Name: "container", Label: base.ID})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch {
		case p.check(lex.KindComponent):
			if c, ok := p.parseComponent("", base.ID); ok {
				components = append(components, c)
			}
		case p.check(lex.KindGroup):
			p.parseGroupInto(&base.Relationships, base.ID)
		case p.check(lex.KindArrow):
			if r, ok := p.parseNestedRelationship(base.ID); ok {
				base.Relationships = append(base.Relationships, r)
			}
		case p.isIdentifierAssignment():
			idTok := p.advance()
			p.advance() // '='
			if !p.check(lex.KindComponent) {
				p.errorf(p.peek().Position, "expected component after %q =", idTok.Lexeme)
				break
			}
			if c, ok := p.parseComponent(idTok.Lexeme, base.ID); ok {
				components = append(components, c)
			}
		case p.isPropertyAssignment():
			k, v := p.parsePropertyAssignment()
			base.Properties[k] = v
		case p.looksLikeRelationship():
			if r, ok := p.parseRelationshipStatement(); ok {
				base.Relationships = append(base.Relationships, r)
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in container body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close container body")
	return base, components
}

// parseLeafElementBlock handles the body of element kinds with no typed
// child collection (component, infrastructureNode, containerInstance):
// only properties and relationships are legal.
func (p *Parser) parseLeafElementBlock(base ast.Base, selfID string) ast.Base {
	p.advance() // '{'
	pop := p.stack.Scope(pctx.Context{Name: "element", Label: selfID})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch {
		case p.check(lex.KindArrow):
			if r, ok := p.parseNestedRelationship(selfID); ok {
				base.Relationships = append(base.Relationships, r)
			}
		case p.isPropertyAssignment():
			k, v := p.parsePropertyAssignment()
			base.Properties[k] = v
		case p.looksLikeRelationship():
			if r, ok := p.parseRelationshipStatement(); ok {
				base.Relationships = append(base.Relationships, r)
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in element body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close element body")
	return base
}

// parseDeploymentNodeBlock handles nested deploymentNode/infrastructureNode/
// containerInstance children plus properties and relationships.
func (p *Parser) parseDeploymentNodeBlock(base ast.Base, selfID string) (ast.Base, []ast.DeploymentNode, []ast.InfrastructureNode, []ast.ContainerInstance) {
	p.advance() // '{'
	var nodes []ast.DeploymentNode
	var infra []ast.InfrastructureNode
	var instances []ast.ContainerInstance
	pop := p.stack.Scope(pctx.Context{Name: "deploymentNode", Label: selfID})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch {
		case p.check(lex.KindDeploymentNode):
			if n, ok := p.parseDeploymentNode("", selfID); ok {
				nodes = append(nodes, n)
			}
		case p.check(lex.KindInfrastructureNode):
			if n, ok := p.parseInfrastructureNode("", selfID); ok {
				infra = append(infra, n)
			}
		case p.check(lex.KindContainerInstance):
			if n, ok := p.parseContainerInstance("", selfID); ok {
				instances = append(instances, n)
			}
		case p.check(lex.KindArrow):
			if r, ok := p.parseNestedRelationship(selfID); ok {
				base.Relationships = append(base.Relationships, r)
			}
		case p.isIdentifierAssignment():
			idTok := p.advance()
			p.advance() // '='
			switch p.peek().Kind {
			case lex.KindDeploymentNode:
				if n, ok := p.parseDeploymentNode(idTok.Lexeme, selfID); ok {
					nodes = append(nodes, n)
				}
			case lex.KindInfrastructureNode:
				if n, ok := p.parseInfrastructureNode(idTok.Lexeme, selfID); ok {
					infra = append(infra, n)
				}
			case lex.KindContainerInstance:
				if n, ok := p.parseContainerInstance(idTok.Lexeme, selfID); ok {
					instances = append(instances, n)
				}
			default:
				p.errorf(p.peek().Position, "expected deploymentNode, infrastructureNode, or containerInstance after %q =", idTok.Lexeme)
			}
		case p.isPropertyAssignment():
			k, v := p.parsePropertyAssignment()
			base.Properties[k] = v
		case p.looksLikeRelationship():
			if r, ok := p.parseRelationshipStatement(); ok {
				base.Relationships = append(base.Relationships, r)
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in deploymentNode body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close deploymentNode body")
	return base, nodes, infra, instances
}

// isPropertyAssignment reports whether the cursor is at "identifier = …".
func (p *Parser) isPropertyAssignment() bool {
	return (p.check(lex.KindIdentifier)) && p.peekAt(1).Kind == lex.KindEquals
}

func (p *Parser) parsePropertyAssignment() (string, string) {
	key := p.advance().Lexeme
	p.advance() // '='
	val := p.advance()
	return key, val.Lexeme
}
