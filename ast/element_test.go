package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelElement_asAccessorsPanicOnWrongKind(t *testing.T) {
	p := Person{Base: Base{ID: "user", Name: "User"}}
	assert.Equal(t, KindPerson, p.Kind())
	assert.NotPanics(t, func() { p.AsPerson() })
	assert.Panics(t, func() { p.AsSoftwareSystem() })
	assert.Panics(t, func() { p.AsContainer() })
}

func TestSoftwareSystem_addContainerDoesNotMutateOriginal(t *testing.T) {
	sys := SoftwareSystem{Base: Base{ID: "banking", Name: "Banking"}}
	withContainer := sys.AddContainer(Container{Base: Base{ID: "api", Name: "API"}})

	assert.Len(t, sys.Containers, 0)
	assert.Len(t, withContainer.Containers, 1)
	assert.Equal(t, "api", withContainer.Containers[0].ID)
}

func TestContainer_addComponentDoesNotMutateOriginal(t *testing.T) {
	c := Container{Base: Base{ID: "api", Name: "API"}}
	withComponent := c.AddComponent(Component{Base: Base{ID: "controller", Name: "Controller"}})

	assert.Len(t, c.Components, 0)
	assert.Len(t, withComponent.Components, 1)
}

func TestRelationshipNode_setSourceAndDestinationReturnCopies(t *testing.T) {
	r := RelationshipNode{SourceID: "a", DestinationID: "b", Description: "uses"}
	moved := r.SetSource("c").SetDestination("d")

	assert.Equal(t, "a", r.SourceID)
	assert.Equal(t, "b", r.DestinationID)
	assert.Equal(t, "c", moved.SourceID)
	assert.Equal(t, "d", moved.DestinationID)
	assert.Equal(t, "uses", moved.Description)
}

func TestElementKind_stringIsHumanReadable(t *testing.T) {
	assert.Equal(t, "person", KindPerson.String())
	assert.Equal(t, "deploymentNode", KindDeploymentNode.String())
	assert.Equal(t, "unknown", ElementKind(99).String())
}
