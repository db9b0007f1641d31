package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
)

// Source renders w back into Structurizr DSL source text: the workspace
// header, the model block and the views block. Styles, themes, branding,
// terminology, configuration, documentation, decisions and directives are
// not written. Elements are written without an "id =" binding and
// relationships without their tags and properties, so re-parsing the
// output does not in general reproduce w.
func (w WorkspaceNode) Source() string {
	var sb strings.Builder
	sb.WriteString("workspace ")
	sb.WriteString(quote(w.Name))
	if w.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(quote(w.Description))
	}
	sb.WriteString(" {\n")

	if w.Model != nil {
		sb.WriteString(indent(w.Model.source(), 1))
		sb.WriteString("\n")
	}
	if w.Views != nil {
		sb.WriteString(indent(w.Views.source(), 1))
		sb.WriteString("\n")
	}

	sb.WriteString("}")
	return rosed.Edit(sb.String()).String()
}

func (m ModelNode) source() string {
	var sb strings.Builder
	sb.WriteString("model {\n")
	if m.Enterprise != nil {
		sb.WriteString(indent(fmt.Sprintf("enterprise %s {\n}", quote(m.Enterprise.Name)), 1))
		sb.WriteString("\n")
	}
	for _, p := range m.People {
		sb.WriteString(indent(elementSource(p), 1))
		sb.WriteString("\n")
	}
	for _, s := range m.SoftwareSystems {
		sb.WriteString(indent(elementSource(s), 1))
		sb.WriteString("\n")
	}
	for _, d := range m.DeploymentEnvironments {
		sb.WriteString(indent(elementSource(d), 1))
		sb.WriteString("\n")
	}
	for _, g := range m.Groups {
		sb.WriteString(indent(groupSource(g), 1))
		sb.WriteString("\n")
	}
	for _, r := range m.Relationships {
		sb.WriteString(indent(relationshipSource(r), 1))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func groupSource(g Group) string {
	var parts []string
	for _, e := range g.Elements {
		parts = append(parts, elementSource(e))
	}
	for _, nested := range g.Groups {
		parts = append(parts, groupSource(nested))
	}
	for _, r := range g.Relationships {
		parts = append(parts, relationshipSource(r))
	}
	return fmt.Sprintf("group %s {\n%s\n}", quote(g.Name), indent(strings.Join(parts, "\n"), 1))
}

func elementSource(e ModelElement) string {
	b := e.Common()
	var sb strings.Builder

	switch e.Kind() {
	case KindPerson:
		sb.WriteString("person ")
	case KindSoftwareSystem:
		sb.WriteString("softwareSystem ")
	case KindContainer:
		sb.WriteString("container ")
	case KindComponent:
		sb.WriteString("component ")
	case KindDeploymentEnvironment:
		sb.WriteString("deploymentEnvironment ")
	case KindDeploymentNode:
		sb.WriteString("deploymentNode ")
	case KindInfrastructureNode:
		sb.WriteString("infrastructureNode ")
	case KindContainerInstance:
		sb.WriteString("containerInstance ")
	}

	sb.WriteString(quote(b.Name))
	tech := technologyOf(e)
	hasTagsThird := (e.Kind() == KindPerson || e.Kind() == KindSoftwareSystem) && len(b.Tags) > 0
	hasThirdPositional := tech != "" || hasTagsThird
	if b.Description != "" || hasThirdPositional {
		sb.WriteString(" ")
		sb.WriteString(quote(b.Description))
	}
	if tech != "" {
		sb.WriteString(" ")
		sb.WriteString(quote(tech))
	} else if hasTagsThird {
		// third positional string: tags for person/softwareSystem,
		// technology for every other kind. An
		// empty second-string placeholder above keeps this in the third
		// position even when Description is empty.
		sb.WriteString(" ")
		sb.WriteString(quote(strings.Join(b.Tags, ",")))
	}

	body := elementBodySource(e)
	if body == "" {
		return sb.String()
	}
	sb.WriteString(" {\n")
	sb.WriteString(indent(body, 1))
	sb.WriteString("\n}")
	return sb.String()
}

func technologyOf(e ModelElement) string {
	switch e.Kind() {
	case KindContainer:
		return e.AsContainer().Technology
	case KindComponent:
		return e.AsComponent().Technology
	case KindDeploymentNode:
		return e.AsDeploymentNode().Technology
	case KindInfrastructureNode:
		return e.AsInfrastructureNode().Technology
	default:
		return ""
	}
}

func elementBodySource(e ModelElement) string {
	var parts []string
	b := e.Common()
	for _, key := range sortedKeys(b.Properties) {
		parts = append(parts, fmt.Sprintf("%s = %s", key, quote(b.Properties[key])))
	}
	for _, r := range b.Relationships {
		parts = append(parts, relationshipSource(r))
	}

	switch e.Kind() {
	case KindSoftwareSystem:
		for _, c := range e.AsSoftwareSystem().Containers {
			parts = append(parts, elementSource(c))
		}
	case KindContainer:
		for _, c := range e.AsContainer().Components {
			parts = append(parts, elementSource(c))
		}
	case KindDeploymentEnvironment:
		for _, n := range e.AsDeploymentEnvironment().DeploymentNodes {
			parts = append(parts, elementSource(n))
		}
	case KindDeploymentNode:
		dn := e.AsDeploymentNode()
		for _, n := range dn.DeploymentNodes {
			parts = append(parts, elementSource(n))
		}
		for _, n := range dn.InfrastructureNodes {
			parts = append(parts, elementSource(n))
		}
		for _, n := range dn.ContainerInstances {
			parts = append(parts, elementSource(n))
		}
	}

	return strings.Join(parts, "\n")
}

func relationshipSource(r RelationshipNode) string {
	var sb strings.Builder
	sb.WriteString(r.SourceID)
	sb.WriteString(" -> ")
	sb.WriteString(r.DestinationID)
	if r.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(quote(r.Description))
	}
	if r.Technology != "" {
		sb.WriteString(" ")
		sb.WriteString(quote(r.Technology))
	}
	return sb.String()
}

func (v ViewsNode) source() string {
	var sb strings.Builder
	sb.WriteString("views {\n")
	writeView := func(keyword, scope string, vb ViewBase) {
		header := keyword
		if scope != "" {
			header += " " + scope
		}
		header += " " + quote(vb.Key)
		body := viewBodySource(vb)
		if body == "" {
			sb.WriteString(indent(header, 1))
		} else {
			sb.WriteString(indent(fmt.Sprintf("%s {\n%s\n}", header, indent(body, 1)), 1))
		}
		sb.WriteString("\n")
	}
	for _, sl := range v.SystemLandscapeViews {
		writeView("systemLandscape", "", sl.ViewBase)
	}
	for _, sc := range v.SystemContextViews {
		writeView("systemContext", sc.SystemID, sc.ViewBase)
	}
	for _, cv := range v.ContainerViews {
		writeView("containerView", cv.SystemID, cv.ViewBase)
	}
	for _, cv := range v.ComponentViews {
		writeView("componentView", cv.ContainerID, cv.ViewBase)
	}
	for _, dv := range v.DynamicViews {
		writeView("dynamic", dv.ScopeID, dv.ViewBase)
	}
	for _, dv := range v.DeploymentViews {
		writeView("deployment", dv.SystemID+" "+quote(dv.Environment), dv.ViewBase)
	}
	for _, fv := range v.FilteredViews {
		writeView("filtered", quote(fv.BaseViewKey), fv.ViewBase)
	}
	for _, cv := range v.CustomViews {
		writeView("custom", "", cv.ViewBase)
	}
	for _, iv := range v.ImageViews {
		writeView("image", iv.ImagePath, iv.ViewBase)
	}
	sb.WriteString("}")
	return sb.String()
}

func viewBodySource(b ViewBase) string {
	var parts []string
	if b.Title != "" {
		parts = append(parts, "title = "+quote(b.Title))
	}
	if b.Description != "" {
		parts = append(parts, "description = "+quote(b.Description))
	}
	for _, inc := range b.Includes {
		parts = append(parts, "include "+inc.Expression)
	}
	for _, exc := range b.Excludes {
		parts = append(parts, "exclude "+exc.Expression)
	}
	if b.AutoLayout != nil {
		parts = append(parts, fmt.Sprintf("autoLayout %s %d %d", b.AutoLayout.Direction, b.AutoLayout.RankSeparation, b.AutoLayout.NodeSeparation))
	}
	for _, anim := range b.Animations {
		parts = append(parts, fmt.Sprintf("animation {\n%s\n}", indent(strings.Join(anim.ElementIDs, ", "), 1)))
	}
	for _, key := range sortedKeys(b.Properties) {
		parts = append(parts, fmt.Sprintf("%s = %s", key, quote(b.Properties[key])))
	}
	return strings.Join(parts, "\n")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func indent(s string, levels int) string {
	if s == "" {
		return s
	}
	prefix := strings.Repeat("    ", levels)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
