package ast

import "github.com/hallna/structurizr-dsl/pos"

// ElementKind tags the ModelElement sum type. Downstream code must switch on Kind() rather
// than type-assert a concrete struct.
type ElementKind int

const (
	KindPerson ElementKind = iota
	KindSoftwareSystem
	KindContainer
	KindComponent
	KindDeploymentEnvironment
	KindDeploymentNode
	KindInfrastructureNode
	KindContainerInstance
)

func (k ElementKind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindSoftwareSystem:
		return "softwareSystem"
	case KindContainer:
		return "container"
	case KindComponent:
		return "component"
	case KindDeploymentEnvironment:
		return "deploymentEnvironment"
	case KindDeploymentNode:
		return "deploymentNode"
	case KindInfrastructureNode:
		return "infrastructureNode"
	case KindContainerInstance:
		return "containerInstance"
	default:
		return "unknown"
	}
}

// Base carries the fields common to every ModelElement variant. It is embedded, never used standalone.
type Base struct {
	ID             string
	Name           string
	Description    string
	Tags           []string
	Properties     map[string]string
	URL            string
	ParentID       string
	Relationships  []RelationshipNode
	SourcePosition pos.Position
}

// ModelElement is the sum type of every element family a workspace model
// can hold. Callers dispatch on Kind(), not by type-asserting a concrete
// type; the As* accessors panic if called against the wrong Kind.
type ModelElement interface {
	Kind() ElementKind
	Common() Base

	AsPerson() Person
	AsSoftwareSystem() SoftwareSystem
	AsContainer() Container
	AsComponent() Component
	AsDeploymentEnvironment() DeploymentEnvironment
	AsDeploymentNode() DeploymentNode
	AsInfrastructureNode() InfrastructureNode
	AsContainerInstance() ContainerInstance
}

func wrongKind(have ElementKind, want string) string {
	return "element is a " + have.String() + ", not a " + want
}

// Person is a human user of the modelled systems.
type Person struct{ Base }

func (p Person) Kind() ElementKind { return KindPerson }
func (p Person) Common() Base      { return p.Base }
func (p Person) AsPerson() Person  { return p }
func (p Person) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(p.Kind(), "softwareSystem"))
}
func (p Person) AsContainer() Container { panic(wrongKind(p.Kind(), "container")) }
func (p Person) AsComponent() Component { panic(wrongKind(p.Kind(), "component")) }
func (p Person) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(p.Kind(), "deploymentEnvironment"))
}
func (p Person) AsDeploymentNode() DeploymentNode { panic(wrongKind(p.Kind(), "deploymentNode")) }
func (p Person) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(p.Kind(), "infrastructureNode"))
}
func (p Person) AsContainerInstance() ContainerInstance {
	panic(wrongKind(p.Kind(), "containerInstance"))
}

// SoftwareSystem owns a list of Containers.
type SoftwareSystem struct {
	Base
	Containers []Container
}

func (s SoftwareSystem) Kind() ElementKind          { return KindSoftwareSystem }
func (s SoftwareSystem) Common() Base               { return s.Base }
func (s SoftwareSystem) AsPerson() Person           { panic(wrongKind(s.Kind(), "person")) }
func (s SoftwareSystem) AsSoftwareSystem() SoftwareSystem { return s }
func (s SoftwareSystem) AsContainer() Container     { panic(wrongKind(s.Kind(), "container")) }
func (s SoftwareSystem) AsComponent() Component     { panic(wrongKind(s.Kind(), "component")) }
func (s SoftwareSystem) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(s.Kind(), "deploymentEnvironment"))
}
func (s SoftwareSystem) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(s.Kind(), "deploymentNode"))
}
func (s SoftwareSystem) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(s.Kind(), "infrastructureNode"))
}
func (s SoftwareSystem) AsContainerInstance() ContainerInstance {
	panic(wrongKind(s.Kind(), "containerInstance"))
}

// AddContainer returns a copy of s with c appended to Containers, leaving s
// untouched.
func (s SoftwareSystem) AddContainer(c Container) SoftwareSystem {
	next := s
	next.Containers = append(append([]Container{}, s.Containers...), c)
	return next
}

// Container owns a list of Components and optionally records its
// technology.
type Container struct {
	Base
	Technology string
	Components []Component
}

func (c Container) Kind() ElementKind       { return KindContainer }
func (c Container) Common() Base            { return c.Base }
func (c Container) AsPerson() Person        { panic(wrongKind(c.Kind(), "person")) }
func (c Container) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(c.Kind(), "softwareSystem"))
}
func (c Container) AsContainer() Container { return c }
func (c Container) AsComponent() Component { panic(wrongKind(c.Kind(), "component")) }
func (c Container) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(c.Kind(), "deploymentEnvironment"))
}
func (c Container) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(c.Kind(), "deploymentNode"))
}
func (c Container) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(c.Kind(), "infrastructureNode"))
}
func (c Container) AsContainerInstance() ContainerInstance {
	panic(wrongKind(c.Kind(), "containerInstance"))
}

// AddComponent returns a copy of c with child appended to Components.
func (c Container) AddComponent(child Component) Container {
	next := c
	next.Components = append(append([]Component{}, c.Components...), child)
	return next
}

// Component is a leaf element inside a Container.
type Component struct {
	Base
	Technology string
}

func (c Component) Kind() ElementKind { return KindComponent }
func (c Component) Common() Base      { return c.Base }
func (c Component) AsPerson() Person  { panic(wrongKind(c.Kind(), "person")) }
func (c Component) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(c.Kind(), "softwareSystem"))
}
func (c Component) AsContainer() Container { panic(wrongKind(c.Kind(), "container")) }
func (c Component) AsComponent() Component { return c }
func (c Component) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(c.Kind(), "deploymentEnvironment"))
}
func (c Component) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(c.Kind(), "deploymentNode"))
}
func (c Component) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(c.Kind(), "infrastructureNode"))
}
func (c Component) AsContainerInstance() ContainerInstance {
	panic(wrongKind(c.Kind(), "containerInstance"))
}

// DeploymentEnvironment is the top-level deployment grouping, owning
// DeploymentNodes.
type DeploymentEnvironment struct {
	Base
	DeploymentNodes []DeploymentNode
}

func (d DeploymentEnvironment) Kind() ElementKind { return KindDeploymentEnvironment }
func (d DeploymentEnvironment) Common() Base      { return d.Base }
func (d DeploymentEnvironment) AsPerson() Person  { panic(wrongKind(d.Kind(), "person")) }
func (d DeploymentEnvironment) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(d.Kind(), "softwareSystem"))
}
func (d DeploymentEnvironment) AsContainer() Container { panic(wrongKind(d.Kind(), "container")) }
func (d DeploymentEnvironment) AsComponent() Component { panic(wrongKind(d.Kind(), "component")) }
func (d DeploymentEnvironment) AsDeploymentEnvironment() DeploymentEnvironment { return d }
func (d DeploymentEnvironment) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(d.Kind(), "deploymentNode"))
}
func (d DeploymentEnvironment) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(d.Kind(), "infrastructureNode"))
}
func (d DeploymentEnvironment) AsContainerInstance() ContainerInstance {
	panic(wrongKind(d.Kind(), "containerInstance"))
}

// DeploymentNode nests arbitrarily: a DeploymentNode owns
// further DeploymentNodes, InfrastructureNodes, and ContainerInstances.
type DeploymentNode struct {
	Base
	Technology          string
	Instances           string
	DeploymentNodes     []DeploymentNode
	InfrastructureNodes []InfrastructureNode
	ContainerInstances  []ContainerInstance
}

func (d DeploymentNode) Kind() ElementKind { return KindDeploymentNode }
func (d DeploymentNode) Common() Base      { return d.Base }
func (d DeploymentNode) AsPerson() Person  { panic(wrongKind(d.Kind(), "person")) }
func (d DeploymentNode) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(d.Kind(), "softwareSystem"))
}
func (d DeploymentNode) AsContainer() Container { panic(wrongKind(d.Kind(), "container")) }
func (d DeploymentNode) AsComponent() Component { panic(wrongKind(d.Kind(), "component")) }
func (d DeploymentNode) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(d.Kind(), "deploymentEnvironment"))
}
func (d DeploymentNode) AsDeploymentNode() DeploymentNode { return d }
func (d DeploymentNode) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(d.Kind(), "infrastructureNode"))
}
func (d DeploymentNode) AsContainerInstance() ContainerInstance {
	panic(wrongKind(d.Kind(), "containerInstance"))
}

// InfrastructureNode represents non-software deployment infrastructure
// (load balancers, firewalls, etc).
type InfrastructureNode struct {
	Base
	Technology string
}

func (n InfrastructureNode) Kind() ElementKind { return KindInfrastructureNode }
func (n InfrastructureNode) Common() Base      { return n.Base }
func (n InfrastructureNode) AsPerson() Person  { panic(wrongKind(n.Kind(), "person")) }
func (n InfrastructureNode) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(n.Kind(), "softwareSystem"))
}
func (n InfrastructureNode) AsContainer() Container { panic(wrongKind(n.Kind(), "container")) }
func (n InfrastructureNode) AsComponent() Component { panic(wrongKind(n.Kind(), "component")) }
func (n InfrastructureNode) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(n.Kind(), "deploymentEnvironment"))
}
func (n InfrastructureNode) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(n.Kind(), "deploymentNode"))
}
func (n InfrastructureNode) AsInfrastructureNode() InfrastructureNode { return n }
func (n InfrastructureNode) AsContainerInstance() ContainerInstance {
	panic(wrongKind(n.Kind(), "containerInstance"))
}

// ContainerInstance represents a deployed instance of a Container,
// referencing it by id.
type ContainerInstance struct {
	Base
	ContainerID string
}

func (c ContainerInstance) Kind() ElementKind { return KindContainerInstance }
func (c ContainerInstance) Common() Base      { return c.Base }
func (c ContainerInstance) AsPerson() Person  { panic(wrongKind(c.Kind(), "person")) }
func (c ContainerInstance) AsSoftwareSystem() SoftwareSystem {
	panic(wrongKind(c.Kind(), "softwareSystem"))
}
func (c ContainerInstance) AsContainer() Container { panic(wrongKind(c.Kind(), "container")) }
func (c ContainerInstance) AsComponent() Component { panic(wrongKind(c.Kind(), "component")) }
func (c ContainerInstance) AsDeploymentEnvironment() DeploymentEnvironment {
	panic(wrongKind(c.Kind(), "deploymentEnvironment"))
}
func (c ContainerInstance) AsDeploymentNode() DeploymentNode {
	panic(wrongKind(c.Kind(), "deploymentNode"))
}
func (c ContainerInstance) AsInfrastructureNode() InfrastructureNode {
	panic(wrongKind(c.Kind(), "infrastructureNode"))
}
func (c ContainerInstance) AsContainerInstance() ContainerInstance { return c }
