package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/hallna/structurizr-dsl/ast"
	"github.com/hallna/structurizr-dsl/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_fullWorkspaceProducesExpectedTree(t *testing.T) {
	src := `
workspace "Big Bank" "internal banking system" {
    model {
        user = person "User" "A bank customer"
        banking = softwareSystem "Banking System" "Handles accounts" {
            api = container "API Application" "" "Go" {
                -> user "Sends confirmation email"
            }
        }
        user uses banking "Checks balance"
    }
    views {
        systemContext banking "SystemContext" "Context diagram" {
            include *
            autoLayout tb 300 150
        }
    }
}
`
	p := New(config.Default())
	w := p.Parse(src)

	require.Empty(t, p.Errors())
	assert.Equal(t, "Big Bank", w.Name)
	assert.Equal(t, "internal banking system", w.Description)

	require.NotNil(t, w.Model)
	require.Len(t, w.Model.People, 1)
	assert.Equal(t, "user", w.Model.People[0].ID)
	assert.Equal(t, "User", w.Model.People[0].Name)

	require.Len(t, w.Model.SoftwareSystems, 1)
	sys := w.Model.SoftwareSystems[0]
	assert.Equal(t, "banking", sys.ID)
	require.Len(t, sys.Containers, 1)
	assert.Equal(t, "api", sys.Containers[0].ID)
	assert.Equal(t, "Go", sys.Containers[0].Technology)
	require.Len(t, sys.Containers[0].Relationships, 1)
	assert.Equal(t, "user", sys.Containers[0].Relationships[0].DestinationID)

	require.Len(t, w.Model.Relationships, 1)
	rel := w.Model.Relationships[0]
	assert.Equal(t, "user", rel.SourceID)
	assert.Equal(t, "banking", rel.DestinationID)
	assert.Equal(t, "Checks balance", rel.Description)

	require.NotNil(t, w.Views)
	require.Len(t, w.Views.SystemContextViews, 1)
	sc := w.Views.SystemContextViews[0]
	assert.Equal(t, "banking", sc.SystemID)
	assert.Equal(t, "SystemContext", sc.Key)
	assert.Equal(t, "Context diagram", sc.Title)
	require.NotNil(t, sc.AutoLayout)
	assert.Equal(t, "tb", sc.AutoLayout.Direction)
	assert.Equal(t, 300, sc.AutoLayout.RankSeparation)
	require.Len(t, sc.Includes, 1)
	assert.Equal(t, "*", sc.Includes[0].Expression)
}

func TestParse_implicitRelationshipDefaultsDescriptionToTitleCasedVerb(t *testing.T) {
	src := `
workspace "W" {
    model {
        a = person "A"
        b = person "B"
        a uses b
    }
}
`
	p := New(config.Default())
	w := p.Parse(src)
	require.Empty(t, p.Errors())
	require.Len(t, w.Model.Relationships, 1)
	assert.Equal(t, "Uses", w.Model.Relationships[0].Description)
}

func TestParse_malformedElementRecoversAndContinues(t *testing.T) {
	src := `
workspace "W" {
    model {
        person
        b = person "B"
    }
}
`
	p := New(config.Default())
	w := p.Parse(src)
	assert.NotEmpty(t, p.Errors())
	require.Len(t, w.Model.People, 1)
	assert.Equal(t, "b", w.Model.People[0].ID)
}

func TestParse_contextStackReturnsToZeroDepthAfterError(t *testing.T) {
	src := `
workspace "W" {
    model {
        banking = softwareSystem "Banking" {
            container "Broken
        }
    }
}
`
	p := New(config.Default())
	p.Parse(src)
	assert.Equal(t, 0, p.stack.Size())
}

func TestParse_deploymentEnvironmentAndGroup(t *testing.T) {
	src := `
workspace "W" {
    model {
        group "Internal Team" {
            admin = person "Admin"
        }
        live = deploymentEnvironment "Live" {
            deploymentNode "AWS" {
                deploymentNode "EC2"
            }
        }
    }
}
`
	p := New(config.Default())
	w := p.Parse(src)
	require.Empty(t, p.Errors())
	require.Len(t, w.Model.Groups, 1)
	assert.Equal(t, "Internal Team", w.Model.Groups[0].Name)
	require.Len(t, w.Model.Groups[0].Elements, 1)

	require.Len(t, w.Model.DeploymentEnvironments, 1)
	env := w.Model.DeploymentEnvironments[0]
	assert.Equal(t, "live", env.ID)
	require.Len(t, env.DeploymentNodes, 1)
	assert.Equal(t, "AWS", env.DeploymentNodes[0].Name)
	require.Len(t, env.DeploymentNodes[0].DeploymentNodes, 1)
	assert.Equal(t, "EC2", env.DeploymentNodes[0].DeploymentNodes[0].Name)
}

func TestParse_styleAndConfigurationBlocks(t *testing.T) {
	src := `
workspace "W" {
    model {
    }
    views {
        styles {
            element "Person" {
                shape = Person
            }
        }
        configuration {
            lastModifiedDate = today
        }
    }
}
`
	p := New(config.Default())
	w := p.Parse(src)
	require.Empty(t, p.Errors())
	require.NotNil(t, w.Styles)
	require.Len(t, w.Styles.Elements, 1)
	assert.Equal(t, "Person", w.Styles.Elements[0].Tag)
	assert.Equal(t, "Person", w.Styles.Elements[0].Properties["shape"])
	require.NotNil(t, w.Views)
	assert.Equal(t, "today", w.Views.Configuration["lastModifiedDate"])
}

// TestParse_bigbankFixtureProducesFullTree exercises every construct in one
// pass against a file-backed fixture too large to justify as an inline
// string literal: enterprise nesting, multi-level containers/components,
// deployment environments, and all four core view kinds.
func TestParse_bigbankFixtureProducesFullTree(t *testing.T) {
	src, err := os.ReadFile("testdata/bigbank.dsl")
	require.NoError(t, err)

	p := New(config.Default())
	w := p.Parse(string(src))
	require.Empty(t, p.Errors())

	assert.Equal(t, "Big Bank plc", w.Name)
	require.NotNil(t, w.Model.Enterprise)
	assert.Equal(t, "Big Bank plc", w.Model.Enterprise.Name)

	require.Len(t, w.Model.People, 2)
	require.Len(t, w.Model.SoftwareSystems, 1)
	banking := w.Model.SoftwareSystems[0]
	require.Len(t, banking.Containers, 3)

	var api ast.Container
	for _, c := range banking.Containers {
		if c.ID == "api" {
			api = c
		}
	}
	require.Len(t, api.Components, 2)

	require.Len(t, w.Model.Relationships, 2)
	require.Len(t, w.Model.DeploymentEnvironments, 1)
	live := w.Model.DeploymentEnvironments[0]
	require.Len(t, live.DeploymentNodes, 2)

	require.NotNil(t, w.Views)
	assert.Len(t, w.Views.SystemContextViews, 1)
	assert.Len(t, w.Views.ContainerViews, 1)
	assert.Len(t, w.Views.ComponentViews, 1)
	assert.Len(t, w.Views.DeploymentViews, 1)
	require.NotNil(t, w.Styles)
	assert.Len(t, w.Styles.Elements, 2)
}

func TestVersion_returnsNonEmptyString(t *testing.T) {
	assert.NotEmpty(t, Version())
}

type fakeLoader struct {
	files map[string]string
}

func (f *fakeLoader) Load(path string) (string, bool, error) {
	content, ok := f.files[path]
	return content, ok, nil
}

func (f *fakeLoader) Canonicalize(path string) string {
	return path
}

// TestParse_includeExpandsAndMergesChild: a file
// include is resolved, lexed, parsed, and merged into the parent tree.
func TestParse_includeExpandsAndMergesChild(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"people.dsl": `admin = person "Admin"`,
	}}
	src := `
workspace "W" {
    model {
        !include "people.dsl"
        user = person "User"
    }
}
`
	p := New(config.Config{FileLoader: loader})
	w := p.Parse(src)
	require.Empty(t, p.Errors())
	require.Len(t, w.Model.People, 2)

	ids := map[string]bool{}
	for _, person := range w.Model.People {
		ids[person.ID] = true
	}
	assert.True(t, ids["admin"])
	assert.True(t, ids["user"])
}

// TestParse_circularIncludeDetectedAndTerminates covers a two-file include
// cycle (a.dsl and b.dsl include each other): the resolver must detect it
// and the parser must still terminate.
func TestParse_circularIncludeDetectedAndTerminates(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"a.dsl": `!include "b.dsl"`,
		"b.dsl": `!include "a.dsl"`,
	}}
	src := `
workspace "X" {
    !include "a.dsl"
}
`
	p := New(config.Config{FileLoader: loader})
	w := p.Parse(src)

	var found bool
	for _, d := range p.Errors() {
		if strings.Contains(strings.ToLower(d.Message), "circular include detected") {
			found = true
		}
	}
	assert.True(t, found, "expected a circular include diagnostic, got %+v", p.Errors())
	assert.Equal(t, "X", w.Name)
	assert.Equal(t, 0, p.stack.Size())
}

// TestParse_duplicateIdOnIncludeKeepsFirstDefinition covers the
// first-definition-wins merge rule for ids that collide across includes.
func TestParse_duplicateIdOnIncludeKeepsFirstDefinition(t *testing.T) {
	loader := &fakeLoader{files: map[string]string{
		"dup.dsl": `user = person "Duplicate User"`,
	}}
	src := `
workspace "W" {
    model {
        user = person "Original User"
        !include "dup.dsl"
    }
}
`
	p := New(config.Config{FileLoader: loader})
	w := p.Parse(src)
	require.Len(t, w.Model.People, 1)
	assert.Equal(t, "Original User", w.Model.People[0].Name)

	var warned bool
	for _, d := range p.Errors() {
		if strings.Contains(d.Message, "duplicate element id") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a duplicate-id warning, got %+v", p.Errors())
}
