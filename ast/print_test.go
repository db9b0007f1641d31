package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspaceNode_sourceIncludesModelAndViews(t *testing.T) {
	w := WorkspaceNode{
		Name:        "Big Bank",
		Description: "internal banking system",
		Model: &ModelNode{
			People: []Person{{Base: Base{ID: "user", Name: "User", Properties: map[string]string{}}}},
			SoftwareSystems: []SoftwareSystem{
				{Base: Base{ID: "banking", Name: "Banking System", Properties: map[string]string{}}},
			},
			Relationships: []RelationshipNode{
				{SourceID: "user", DestinationID: "banking", Description: "Uses"},
			},
		},
		Views: &ViewsNode{
			SystemContextViews: []SystemContextView{
				{
					ViewBase: ViewBase{Key: "SC", Properties: map[string]string{}, Includes: []IncludeNode{{Expression: "*"}}},
					SystemID: "banking",
				},
			},
		},
	}

	src := w.Source()
	assert.True(t, strings.HasPrefix(src, `workspace "Big Bank" "internal banking system" {`))
	assert.Contains(t, src, `person "User"`)
	assert.Contains(t, src, `softwareSystem "Banking System"`)
	assert.Contains(t, src, "user -> banking \"Uses\"")
	assert.Contains(t, src, `systemContext banking "SC"`)
	assert.Contains(t, src, "include *")
}

func TestElementSource_nestsContainersAndComponents(t *testing.T) {
	sys := SoftwareSystem{
		Base: Base{ID: "banking", Name: "Banking", Properties: map[string]string{}},
		Containers: []Container{
			{
				Base:       Base{ID: "api", Name: "API", Properties: map[string]string{}},
				Technology: "Go",
				Components: []Component{
					{Base: Base{ID: "ctrl", Name: "Controller", Properties: map[string]string{}}},
				},
			},
		},
	}
	src := elementSource(sys)
	assert.Contains(t, src, `container "API" "" "Go"`)
	assert.Contains(t, src, `component "Controller"`)
}

func TestGroupSource_nestsElementsAndSubgroups(t *testing.T) {
	g := Group{
		Name: "Internal",
		Elements: []ModelElement{
			Person{Base: Base{ID: "admin", Name: "Admin", Properties: map[string]string{}}},
		},
		Groups: []Group{
			{Name: "Nested", Elements: []ModelElement{}},
		},
	}
	src := groupSource(g)
	assert.Contains(t, src, `group "Internal"`)
	assert.Contains(t, src, `person "Admin"`)
	assert.Contains(t, src, `group "Nested"`)
}

func TestElementSource_emitsTagsAsThirdPositionalForPersonAndSystem(t *testing.T) {
	p := Person{Base: Base{ID: "user", Name: "User", Tags: []string{"External", "Customer"}, Properties: map[string]string{}}}
	src := elementSource(p)
	assert.Contains(t, src, `person "User" "" "External,Customer"`)
}

func TestViewBodySource_writesTitleAndDescriptionAsAssignments(t *testing.T) {
	v := SystemContextView{
		ViewBase: ViewBase{Key: "SC", Title: "Context", Description: "A diagram", Properties: map[string]string{}},
		SystemID: "banking",
	}
	body := viewBodySource(v.ViewBase)
	assert.Contains(t, body, `title = "Context"`)
	assert.Contains(t, body, `description = "A diagram"`)
}

func TestQuote_escapesSpecialCharacters(t *testing.T) {
	assert.Equal(t, `"line\nbreak"`, quote("line\nbreak"))
	assert.Equal(t, `"quote \" here"`, quote(`quote " here`))
}
