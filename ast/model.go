package ast

import "github.com/hallna/structurizr-dsl/pos"

// Enterprise names the enclosing organisation for a model.
type Enterprise struct {
	Name           string
	SourcePosition pos.Position
}

// Group is a named visual grouping of elements.
// Groups may nest arbitrarily.
type Group struct {
	Name           string
	Elements       []ModelElement
	Groups         []Group
	Relationships  []RelationshipNode
	SourcePosition pos.Position
}

// IdentifierScheme selects how model identifiers are written and resolved,
// set by a "!identifiers" directive preceding the model block. Resolution of hierarchical identifiers ("a.b.c") is the
// downstream workspace builder's job; the parser only records the scheme.
type IdentifierScheme string

const (
	IdentifierSchemeFlat         IdentifierScheme = "flat"
	IdentifierSchemeHierarchical IdentifierScheme = "hierarchical"
)

// ModelNode is the parsed "model { … }" block.
type ModelNode struct {
	Enterprise     *Enterprise
	People         []Person
	SoftwareSystems []SoftwareSystem
	DeploymentEnvironments []DeploymentEnvironment
	Groups         []Group
	Relationships  []RelationshipNode
	IdentifierScheme IdentifierScheme
	SourcePosition pos.Position
}
