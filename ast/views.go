package ast

import "github.com/hallna/structurizr-dsl/pos"

// IncludeNode is a view-level "include <expr>" statement. The expression is
// preserved verbatim: "*" stays "*", identifiers stay as-is, and quoted
// strings are stripped of their quotes. It is never expanded
// by this parser (that is the downstream filter evaluator's job).
type IncludeNode struct {
	Expression     string
	SourcePosition pos.Position
}

// ExcludeNode is the exclude-side counterpart of IncludeNode.
type ExcludeNode struct {
	Expression     string
	SourcePosition pos.Position
}

// AutoLayout is the parsed "autoLayout [direction] [rankSep] [nodeSep]"
// clause. Direction defaults to "" (unspecified) and the separations
// default to 0 when omitted; the downstream renderer applies its own
// defaults for zero values.
type AutoLayout struct {
	Direction       string
	RankSeparation  int
	NodeSeparation  int
}

// Animation is one "animation { id[,id…] }" block; Order is assigned
// sequentially starting at 1 in declaration order.
type Animation struct {
	Order          int
	ElementIDs     []string
	SourcePosition pos.Position
}

// ViewBase carries the fields common to every view kind.
type ViewBase struct {
	Key            string
	Title          string
	Description    string
	Includes       []IncludeNode
	Excludes       []ExcludeNode
	AutoLayout     *AutoLayout
	Animations     []Animation
	Properties     map[string]string
	SourcePosition pos.Position
}

// SystemLandscapeView shows every software system and person in the model.
type SystemLandscapeView struct {
	ViewBase
}

// SystemContextView shows a single software system and its immediate
// relationships.
type SystemContextView struct {
	ViewBase
	SystemID string
}

// ContainerView shows the containers within a single software system.
type ContainerView struct {
	ViewBase
	SystemID string
}

// ComponentView shows the components within a single container.
type ComponentView struct {
	ViewBase
	ContainerID string
}

// DynamicView shows a sequence of interactions scoped to a software system
// or container.
type DynamicView struct {
	ViewBase
	ScopeID string
}

// DeploymentView shows the deployment nodes of a software system within a
// named deployment environment.
type DeploymentView struct {
	ViewBase
	SystemID    string
	Environment string
}

// FilteredView derives from another view by further include/exclude
// filtering; BaseViewKey references that view's Key (resolved downstream).
type FilteredView struct {
	ViewBase
	BaseViewKey string
}

// CustomView is a free-form view type with no implied scope.
type CustomView struct {
	ViewBase
}

// ImageView embeds a static image as a view.
type ImageView struct {
	ViewBase
	ImagePath string
}

// ViewsNode is the parsed "views { … }" block.
type ViewsNode struct {
	SystemLandscapeViews []SystemLandscapeView
	SystemContextViews   []SystemContextView
	ContainerViews       []ContainerView
	ComponentViews       []ComponentView
	DynamicViews         []DynamicView
	DeploymentViews      []DeploymentView
	FilteredViews        []FilteredView
	CustomViews          []CustomView
	ImageViews           []ImageView
	Configuration        map[string]string
	SourcePosition       pos.Position
}
