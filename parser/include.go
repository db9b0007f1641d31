package parser

import (
	"errors"

	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/diag"
	"github.com/hallna/structurizr-dsl/include"
	"github.com/hallna/structurizr-dsl/lex"
)

// expandIncludes resolves every "!include" directive gathered while parsing
// w's body, merging each included file's statements into w.
// When no FileLoader was configured, directives are left unexpanded in
// w.Directives with no diagnostic.
func (p *Parser) expandIncludes(w *ast.WorkspaceNode) {
	if !p.resolver.HasLoader() {
		return
	}
	for _, d := range w.Directives {
		if d.Kind != ast.IncludeKindFile {
			continue
		}
		p.expandOneInclude(w, d)
	}
}

func (p *Parser) expandOneInclude(w *ast.WorkspaceNode, d ast.IncludeDirective) {
	if p.includeDepth >= maxIncludeDepth {
		p.report(diag.Error, d.SourcePosition, "include depth exceeded, possible runaway expansion at "+d.Path)
		return
	}

	content, ok, leave, err := p.resolver.Enter(d.Path)
	defer leave()
	if err != nil {
		var cycleErr *include.CycleError
		if errors.As(err, &cycleErr) {
			p.report(diag.Error, d.SourcePosition, cycleErr.Error())
		} else {
			p.report(diag.Error, d.SourcePosition, err.Error())
		}
		return
	}
	if !ok {
		// either already fully visited (first-definition-wins) or the
		// loader declined the load silently.
		return
	}

	savedToks, savedPos, savedSrc := p.toks, p.pos, p.src
	savedScopeDepth := p.stack.Size()

	scanner := lex.New(content, p.reporter)
	p.toks = scanner.Scan()
	p.pos = 0
	p.src = content
	p.includeDepth++

	frag := ast.WorkspaceNode{Properties: map[string]string{}, Configuration: map[string]string{}}
	p.parseWorkspaceBody(&frag)
	p.expandIncludes(&frag)

	p.includeDepth--
	p.toks, p.pos, p.src = savedToks, savedPos, savedSrc
	for p.stack.Size() > savedScopeDepth {
		p.stack.Pop()
	}

	p.mergeWorkspace(w, &frag, d)
	w.Includes = append(w.Includes, d)
}

// mergeWorkspace folds frag's parsed statements into w, first-definition-wins
// for scalar fields and block pointers, append for every collection. d anchors duplicate-id diagnostics at the include
// directive that pulled frag in.
func (p *Parser) mergeWorkspace(w, frag *ast.WorkspaceNode, d ast.IncludeDirective) {
	if w.Name == "" {
		w.Name = frag.Name
	}
	if w.Description == "" {
		w.Description = frag.Description
	}
	if w.Model == nil {
		w.Model = frag.Model
	} else if frag.Model != nil {
		p.mergeModel(w.Model, frag.Model, d)
	}
	if w.Views == nil {
		w.Views = frag.Views
	} else if frag.Views != nil {
		mergeViews(w.Views, frag.Views)
	}
	if w.Styles == nil {
		w.Styles = frag.Styles
	} else if frag.Styles != nil {
		w.Styles.Elements = append(w.Styles.Elements, frag.Styles.Elements...)
	}
	w.Themes = append(w.Themes, frag.Themes...)
	if w.Branding == nil {
		w.Branding = frag.Branding
	}
	if w.Terminology == nil {
		w.Terminology = frag.Terminology
	} else if frag.Terminology != nil {
		for k, v := range frag.Terminology.Replacements {
			if _, exists := w.Terminology.Replacements[k]; !exists {
				w.Terminology.Replacements[k] = v
			}
		}
	}
	for k, v := range frag.Properties {
		if _, exists := w.Properties[k]; !exists {
			w.Properties[k] = v
		}
	}
	for k, v := range frag.Configuration {
		if _, exists := w.Configuration[k]; !exists {
			w.Configuration[k] = v
		}
	}
	w.Documentation = append(w.Documentation, frag.Documentation...)
	w.Decisions = append(w.Decisions, frag.Decisions...)
}

// expandModelInclude resolves a "!include" directive encountered inside a
// model body: the included file's content is parsed as a sequence of model
// statements (it carries no enclosing "model { … }" of its own) and merged
// directly into m via the same first-definition-wins rule expandOneInclude
// applies at workspace scope.
func (p *Parser) expandModelInclude(m *ast.ModelNode, d ast.IncludeDirective) {
	if !p.resolver.HasLoader() {
		return
	}
	if p.includeDepth >= maxIncludeDepth {
		p.report(diag.Error, d.SourcePosition, "include depth exceeded, possible runaway expansion at "+d.Path)
		return
	}

	content, ok, leave, err := p.resolver.Enter(d.Path)
	defer leave()
	if err != nil {
		var cycleErr *include.CycleError
		if errors.As(err, &cycleErr) {
			p.report(diag.Error, d.SourcePosition, cycleErr.Error())
		} else {
			p.report(diag.Error, d.SourcePosition, err.Error())
		}
		return
	}
	if !ok {
		return
	}

	savedToks, savedPos, savedSrc := p.toks, p.pos, p.src
	savedScopeDepth := p.stack.Size()

	scanner := lex.New(content, p.reporter)
	p.toks = scanner.Scan()
	p.pos = 0
	p.src = content
	p.includeDepth++

	frag := &ast.ModelNode{}
	p.parseModelBody(frag)

	p.includeDepth--
	p.toks, p.pos, p.src = savedToks, savedPos, savedSrc
	for p.stack.Size() > savedScopeDepth {
		p.stack.Pop()
	}

	p.mergeModel(m, frag, d)
}

// mergeModel appends frag's elements into m, skipping any whose id already
// exists in m (first-definition-wins) and reporting a warning for each skip.
func (p *Parser) mergeModel(m, frag *ast.ModelNode, d ast.IncludeDirective) {
	if m.Enterprise == nil {
		m.Enterprise = frag.Enterprise
	}
	seen := map[string]bool{}
	for _, el := range m.People {
		seen[el.ID] = true
	}
	for _, el := range m.SoftwareSystems {
		seen[el.ID] = true
	}
	for _, el := range m.DeploymentEnvironments {
		seen[el.ID] = true
	}

	for _, el := range frag.People {
		if seen[el.ID] {
			p.report(diag.Warning, d.SourcePosition, "duplicate element id "+el.ID+" from included file "+d.Path+", keeping first definition")
			continue
		}
		seen[el.ID] = true
		m.People = append(m.People, el)
	}
	for _, el := range frag.SoftwareSystems {
		if seen[el.ID] {
			p.report(diag.Warning, d.SourcePosition, "duplicate element id "+el.ID+" from included file "+d.Path+", keeping first definition")
			continue
		}
		seen[el.ID] = true
		m.SoftwareSystems = append(m.SoftwareSystems, el)
	}
	for _, el := range frag.DeploymentEnvironments {
		if seen[el.ID] {
			p.report(diag.Warning, d.SourcePosition, "duplicate element id "+el.ID+" from included file "+d.Path+", keeping first definition")
			continue
		}
		seen[el.ID] = true
		m.DeploymentEnvironments = append(m.DeploymentEnvironments, el)
	}
	m.Groups = append(m.Groups, frag.Groups...)
	m.Relationships = append(m.Relationships, frag.Relationships...)
}

func mergeViews(v, frag *ast.ViewsNode) {
	v.SystemLandscapeViews = append(v.SystemLandscapeViews, frag.SystemLandscapeViews...)
	v.SystemContextViews = append(v.SystemContextViews, frag.SystemContextViews...)
	v.ContainerViews = append(v.ContainerViews, frag.ContainerViews...)
	v.ComponentViews = append(v.ComponentViews, frag.ComponentViews...)
	v.DynamicViews = append(v.DynamicViews, frag.DynamicViews...)
	v.DeploymentViews = append(v.DeploymentViews, frag.DeploymentViews...)
	v.FilteredViews = append(v.FilteredViews, frag.FilteredViews...)
	v.CustomViews = append(v.CustomViews, frag.CustomViews...)
	v.ImageViews = append(v.ImageViews, frag.ImageViews...)
	for k, val := range frag.Configuration {
		if _, exists := v.Configuration[k]; !exists {
			v.Configuration[k] = val
		}
	}
}
