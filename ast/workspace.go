package ast

import "github.com/hallna/structurizr-dsl/pos"

// IncludeDirectiveKind classifies an IncludeDirective. The parser records
// every "!include" as IncludeKindFile; "!identifiers" is not recorded as an
// IncludeDirective.
type IncludeDirectiveKind int

const (
	IncludeKindFile IncludeDirectiveKind = iota
	IncludeKindUnexpanded
)

// IncludeDirective is a "!include <path>" directive encountered anywhere a
// top-level statement is legal. Path is the raw string as
// written; resolution to file contents is the include.Resolver's job.
type IncludeDirective struct {
	Path           string
	Kind           IncludeDirectiveKind
	SourcePosition pos.Position
}

// StyleElement customises the rendering of elements or relationships
// matching a tag, parsed from a "styles { element "tag" { … } }" or
// "styles { relationship "tag" { … } }" block. Properties are stored
// verbatim; the parser does not interpret style property names (colors,
// shapes, …) since that is a rendering concern, not a parsing one.
type StyleElement struct {
	Tag            string
	IsRelationship bool
	Properties     map[string]string
	SourcePosition pos.Position
}

// StylesNode is the parsed "styles { … }" block.
type StylesNode struct {
	Elements       []StyleElement
	SourcePosition pos.Position
}

// Theme is one URL or path entry from a "themes { … }" block.
type Theme struct {
	Reference      string
	SourcePosition pos.Position
}

// BrandingNode is the parsed "branding { … }" block: logo and font
// properties, stored as opaque key/value pairs.
type BrandingNode struct {
	Logo           string
	Properties     map[string]string
	SourcePosition pos.Position
}

// TerminologyNode is the parsed "terminology { … }" block: a set of
// replacement labels for the built-in vocabulary (e.g. renaming
// "Software System" to "Service").
type TerminologyNode struct {
	Replacements   map[string]string
	SourcePosition pos.Position
}

// Decision is a single entry from a "decisions { … }" block (architecture
// decision records).
type Decision struct {
	ID             string
	Title          string
	Content        string
	SourcePosition pos.Position
}

// DocumentationSection is one section from a "documentation { … }" block.
type DocumentationSection struct {
	Title          string
	Content        string
	Format         string
	SourcePosition pos.Position
}

// WorkspaceNode is the structural root of the AST.
type WorkspaceNode struct {
	Name           string
	Description    string
	Model          *ModelNode
	Views          *ViewsNode
	Styles         *StylesNode
	Themes         []Theme
	Branding       *BrandingNode
	Terminology    *TerminologyNode
	Properties     map[string]string
	Configuration  map[string]string
	Documentation  []DocumentationSection
	Decisions      []Decision
	Directives     []IncludeDirective
	Includes       []IncludeDirective // file includes, post-expansion bookkeeping
	SourcePosition pos.Position
}
