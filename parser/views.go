package parser

import (
	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/lex"
	"github.com/hallna/structurizr-dsl/pctx"
)

// parseViews parses the "views { … }" block, dispatching on
// each view-type keyword and collecting shared "configuration { … }" entries.
func (p *Parser) parseViews(w *ast.WorkspaceNode) *ast.ViewsNode {
	kwPos := p.advance().Position
	v := &ast.ViewsNode{Configuration: map[string]string{}, SourcePosition: kwPos}

	if _, ok := p.expect(lex.KindLBrace, "to open views body"); !ok {
		return v
	}
	pop := p.stack.Scope(pctx.Context{Name: "views"})
	defer pop()

	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindSystemLandscape:
			v.SystemLandscapeViews = append(v.SystemLandscapeViews, p.parseSystemLandscapeView())
		case lex.KindSystemContext:
			v.SystemContextViews = append(v.SystemContextViews, p.parseSystemContextView())
		case lex.KindContainerView:
			v.ContainerViews = append(v.ContainerViews, p.parseContainerView())
		case lex.KindComponentView:
			v.ComponentViews = append(v.ComponentViews, p.parseComponentView())
		case lex.KindDynamic:
			v.DynamicViews = append(v.DynamicViews, p.parseDynamicView())
		case lex.KindDeployment:
			v.DeploymentViews = append(v.DeploymentViews, p.parseDeploymentView())
		case lex.KindFiltered:
			v.FilteredViews = append(v.FilteredViews, p.parseFilteredView())
		case lex.KindCustom:
			v.CustomViews = append(v.CustomViews, p.parseCustomView())
		case lex.KindImage:
			v.ImageViews = append(v.ImageViews, p.parseImageView())
		case lex.KindStyles:
			w.Styles = p.parseStyles()
		case lex.KindThemes:
			w.Themes = p.parseThemes()
		case lex.KindBranding:
			w.Branding = p.parseBranding()
		case lex.KindConfiguration:
			p.advance()
			if p.match(lex.KindLBrace) {
				for !p.atEOF() && !p.check(lex.KindRBrace) {
					if !p.check(lex.KindIdentifier) {
						p.advance()
						continue
					}
					key := p.advance().Lexeme
					if p.match(lex.KindEquals) {
						v.Configuration[key] = p.advance().Lexeme
					}
				}
				p.expect(lex.KindRBrace, "to close views configuration body")
			}
		default:
			p.errorf(p.peek().Position, "unexpected token %s in views body", describeToken(p.peek()))
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close views body")
	return v
}

// parseViewBody consumes the shared ViewBase clauses:
// include/exclude, autoLayout, animation blocks, title/description
// assignments, properties blocks, and generic "name = value" entries.
func (p *Parser) parseViewBody(vb *ast.ViewBase) {
	if vb.Properties == nil {
		vb.Properties = map[string]string{}
	}
	if !p.match(lex.KindLBrace) {
		return
	}
	animOrder := 1
	for !p.atEOF() && !p.check(lex.KindRBrace) {
		switch p.peek().Kind {
		case lex.KindInclude:
			incPos := p.advance().Position
			expr := p.parseViewExpression()
			vb.Includes = append(vb.Includes, ast.IncludeNode{Expression: expr, SourcePosition: incPos})
		case lex.KindExclude:
			excPos := p.advance().Position
			expr := p.parseViewExpression()
			vb.Excludes = append(vb.Excludes, ast.ExcludeNode{Expression: expr, SourcePosition: excPos})
		case lex.KindAutoLayout:
			p.advance()
			al := &ast.AutoLayout{}
			if p.check(lex.KindIdentifier) {
				al.Direction = p.advance().Lexeme
			}
			if p.check(lex.KindNumber) {
				al.RankSeparation = intLiteral(p.advance())
			}
			if p.check(lex.KindNumber) {
				al.NodeSeparation = intLiteral(p.advance())
			}
			vb.AutoLayout = al
		case lex.KindAnimation:
			animPos := p.advance().Position
			anim := ast.Animation{Order: animOrder, SourcePosition: animPos}
			animOrder++
			if p.match(lex.KindLBrace) {
				for !p.atEOF() && !p.check(lex.KindRBrace) {
					if p.check(lex.KindIdentifier) {
						anim.ElementIDs = append(anim.ElementIDs, p.advance().Lexeme)
						continue
					}
					p.advance()
				}
				p.expect(lex.KindRBrace, "to close animation block")
			}
			vb.Animations = append(vb.Animations, anim)
		case lex.KindBaseOn:
			p.advance()
			if p.check(lex.KindString) {
				vb.Properties["baseOn"] = p.advance().Lexeme
			}
		case lex.KindTitle:
			p.advance()
			if p.match(lex.KindEquals) {
				vb.Title = p.advance().Lexeme
			}
		case lex.KindDescription:
			p.advance()
			if p.match(lex.KindEquals) {
				vb.Description = p.advance().Lexeme
			}
		case lex.KindIdentifier:
			key := p.advance().Lexeme
			if !p.match(lex.KindEquals) {
				continue
			}
			vb.Properties[key] = p.advance().Lexeme
		case lex.KindProperties:
			p.advance()
			if p.match(lex.KindLBrace) {
				for !p.atEOF() && !p.check(lex.KindRBrace) {
					if !p.check(lex.KindIdentifier) {
						p.advance()
						continue
					}
					k := p.advance().Lexeme
					if p.match(lex.KindEquals) {
						vb.Properties[k] = p.advance().Lexeme
					}
				}
				p.expect(lex.KindRBrace, "to close properties block")
			}
		default:
			p.advance()
		}
	}
	p.expect(lex.KindRBrace, "to close view body")
}

// parseViewExpression consumes a view include/exclude operand: "*", an
// identifier, or a quoted pattern string.
func (p *Parser) parseViewExpression() string {
	t := p.peek()
	switch t.Kind {
	case lex.KindStar, lex.KindIdentifier, lex.KindString, lex.KindThis:
		return p.advance().Lexeme
	default:
		p.errorf(t.Position, "expected include/exclude expression, found %s", describeToken(t))
		return ""
	}
}

func intLiteral(t lex.Token) int {
	if n, ok := t.Literal.(int); ok {
		return n
	}
	if n, ok := t.Literal.(float64); ok {
		return int(n)
	}
	return 0
}

func (p *Parser) parseSystemLandscapeView() ast.SystemLandscapeView {
	kwPos := p.advance().Position
	v := ast.SystemLandscapeView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseSystemContextView() ast.SystemContextView {
	kwPos := p.advance().Position
	v := ast.SystemContextView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if sysTok, ok := p.expect(lex.KindIdentifier, "systemContext scope identifier"); ok {
		v.SystemID = sysTok.Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseContainerView() ast.ContainerView {
	kwPos := p.advance().Position
	v := ast.ContainerView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if sysTok, ok := p.expect(lex.KindIdentifier, "containerView scope identifier"); ok {
		v.SystemID = sysTok.Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseComponentView() ast.ComponentView {
	kwPos := p.advance().Position
	v := ast.ComponentView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if conTok, ok := p.expect(lex.KindIdentifier, "componentView scope identifier"); ok {
		v.ContainerID = conTok.Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseDynamicView() ast.DynamicView {
	kwPos := p.advance().Position
	v := ast.DynamicView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if p.check(lex.KindIdentifier) {
		v.ScopeID = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseDeploymentView() ast.DeploymentView {
	kwPos := p.advance().Position
	v := ast.DeploymentView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if sysTok, ok := p.expect(lex.KindIdentifier, "deployment scope identifier"); ok {
		v.SystemID = sysTok.Lexeme
	}
	if envTok, ok := p.expect(lex.KindString, "deployment environment name"); ok {
		v.Environment = envTok.Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseFilteredView() ast.FilteredView {
	kwPos := p.advance().Position
	v := ast.FilteredView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if baseTok, ok := p.expect(lex.KindString, "filtered view base key"); ok {
		v.BaseViewKey = baseTok.Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	// a "baseOn" clause inside the body is an alternate spelling of the
	// base-view reference; parseViewBody stores it in
	// Properties["baseOn"], so pick it back up here.
	if baseOn, ok := v.Properties["baseOn"]; ok && v.BaseViewKey == "" {
		v.BaseViewKey = baseOn
		delete(v.Properties, "baseOn")
	}
	return v
}

func (p *Parser) parseCustomView() ast.CustomView {
	kwPos := p.advance().Position
	v := ast.CustomView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}

func (p *Parser) parseImageView() ast.ImageView {
	kwPos := p.advance().Position
	v := ast.ImageView{ViewBase: ast.ViewBase{SourcePosition: kwPos, Properties: map[string]string{}}}
	if p.check(lex.KindIdentifier) {
		v.ImagePath = p.advance().Lexeme
	} else if p.check(lex.KindString) {
		v.ImagePath = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Key = p.advance().Lexeme
	}
	if p.check(lex.KindString) {
		v.Title = p.advance().Lexeme
	}
	p.parseViewBody(&v.ViewBase)
	return v
}
