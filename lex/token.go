package lex

import "github.com/hallna/structurizr-dsl/pos"

// Kind identifies what a Token is. The set of kinds is closed: structural
// punctuation, the three literal kinds, the fixed DSL keyword set, and the
// two sentinel kinds (EOF, Error) the scanner itself never fails to produce.
type Kind string

const (
	KindEOF   Kind = "eof"
	KindError Kind = "error"

	// Structural
	KindLBrace Kind = "{"
	KindRBrace Kind = "}"
	KindEquals Kind = "="
	KindArrow  Kind = "->"
	KindStar   Kind = "*"
	KindComma  Kind = ","
	KindSemi   Kind = ";"
	KindBang   Kind = "!" // leading token of a !include / !identifiers directive

	// Literals
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindIdentifier Kind = "identifier"
)

// Keyword kinds. Every lexeme in this set is recognised case-sensitively
// ahead of generic identifier classification.
const (
	KindWorkspace             Kind = "workspace"
	KindModel                 Kind = "model"
	KindPerson                Kind = "person"
	KindSoftwareSystem        Kind = "softwareSystem"
	KindContainer             Kind = "container"
	KindComponent             Kind = "component"
	KindDeploymentEnvironment Kind = "deploymentEnvironment"
	KindDeploymentNode        Kind = "deploymentNode"
	KindInfrastructureNode    Kind = "infrastructureNode"
	KindContainerInstance     Kind = "containerInstance"
	KindGroup                 Kind = "group"
	KindEnterprise            Kind = "enterprise"
	KindViews                 Kind = "views"
	KindSystemLandscape       Kind = "systemLandscape"
	KindSystemContext         Kind = "systemContext"
	KindContainerView         Kind = "containerView"
	KindComponentView         Kind = "componentView"
	KindDynamic               Kind = "dynamic"
	KindDeployment            Kind = "deployment"
	KindFiltered              Kind = "filtered"
	KindCustom                Kind = "custom"
	KindImage                 Kind = "image"
	KindStyles                Kind = "styles"
	KindElement               Kind = "element"
	KindRelationship          Kind = "relationship"
	KindThemes                Kind = "themes"
	KindBranding              Kind = "branding"
	KindTerminology           Kind = "terminology"
	KindConfiguration         Kind = "configuration"
	KindDocumentation         Kind = "documentation"
	KindDecisions             Kind = "decisions"
	KindInclude               Kind = "include"
	KindExclude               Kind = "exclude"
	KindAutoLayout            Kind = "autoLayout"
	KindAnimation             Kind = "animation"
	KindBaseOn                Kind = "baseOn"
	KindThis                  Kind = "this"
	KindProperties            Kind = "properties"
	KindTitle                 Kind = "title"
	KindDescription           Kind = "description"

	// Relationship verbs (implicit relationship form: "a uses b").
	KindUses        Kind = "uses"
	KindDelivers    Kind = "delivers"
	KindInfluences  Kind = "influences"
	KindConsists    Kind = "consists" // first word of the two-word "consists of"
	KindOf          Kind = "of"
	KindCalls       Kind = "calls"
	KindSends       Kind = "sends"
	KindReceives    Kind = "receives"
	KindReads       Kind = "reads"
	KindWrites      Kind = "writes"
	KindFollows     Kind = "follows"
	KindManages     Kind = "manages"
	KindServes      Kind = "serves"
	KindSubscribes  Kind = "subscribes"
	KindDepends     Kind = "depends"
	KindExtends     Kind = "extends"
)

// keywords maps a case-sensitive lexeme to the Kind the scanner must emit
// for it instead of the generic KindIdentifier.
var keywords = map[string]Kind{
	"workspace":             KindWorkspace,
	"model":                 KindModel,
	"person":                KindPerson,
	"softwareSystem":        KindSoftwareSystem,
	"container":             KindContainer,
	"component":             KindComponent,
	"deploymentEnvironment": KindDeploymentEnvironment,
	"deploymentNode":        KindDeploymentNode,
	"infrastructureNode":    KindInfrastructureNode,
	"containerInstance":     KindContainerInstance,
	"group":                 KindGroup,
	"enterprise":            KindEnterprise,
	"views":                 KindViews,
	"systemLandscape":       KindSystemLandscape,
	"systemContext":         KindSystemContext,
	"containerView":         KindContainerView,
	"componentView":         KindComponentView,
	"dynamic":               KindDynamic,
	"deployment":            KindDeployment,
	"filtered":              KindFiltered,
	"custom":                KindCustom,
	"image":                 KindImage,
	"styles":                KindStyles,
	"element":               KindElement,
	"relationship":          KindRelationship,
	"themes":                KindThemes,
	"branding":              KindBranding,
	"terminology":           KindTerminology,
	"configuration":         KindConfiguration,
	"documentation":         KindDocumentation,
	"decisions":             KindDecisions,
	"include":               KindInclude,
	"exclude":               KindExclude,
	"autoLayout":            KindAutoLayout,
	"animation":             KindAnimation,
	"baseOn":                KindBaseOn,
	"this":                  KindThis,
	"properties":            KindProperties,
	"title":                 KindTitle,
	"description":           KindDescription,
	"uses":                  KindUses,
	"delivers":              KindDelivers,
	"influences":            KindInfluences,
	"consists":              KindConsists,
	"of":                    KindOf,
	"calls":                 KindCalls,
	"sends":                 KindSends,
	"receives":              KindReceives,
	"reads":                 KindReads,
	"writes":                KindWrites,
	"follows":               KindFollows,
	"manages":               KindManages,
	"serves":                KindServes,
	"subscribes":            KindSubscribes,
	"depends":               KindDepends,
	"extends":               KindExtends,
}

// RelationshipVerbs is the fixed set of single-token verbs recognised by the
// implicit relationship form. "consists of" is matched by the parser as the
// two adjacent tokens KindConsists, KindOf.
var RelationshipVerbs = map[Kind]bool{
	KindUses: true, KindDelivers: true, KindInfluences: true, KindCalls: true,
	KindSends: true, KindReceives: true, KindReads: true, KindWrites: true,
	KindFollows: true, KindManages: true, KindServes: true, KindSubscribes: true,
	KindDepends: true, KindExtends: true,
}

// classify returns the Kind that lexeme should be tokenized as: the keyword
// Kind if lexeme matches one case-sensitively, otherwise KindIdentifier.
func classify(lexeme string) Kind {
	if k, ok := keywords[lexeme]; ok {
		return k
	}
	return KindIdentifier
}

// Token is a single lexeme together with its Kind, optional literal value
// (populated for KindString and KindNumber), and source position.
type Token struct {
	Kind     Kind
	Lexeme   string
	Literal  any
	Position pos.Position
}

// IsKeyword reports whether t was classified as one of the fixed DSL
// keywords rather than a generic identifier, string, or number.
func (t Token) IsKeyword() bool {
	_, ok := keywords[t.Lexeme]
	return ok && t.Kind != KindString
}

// String renders the token for diagnostics and test failure output.
func (t Token) String() string {
	if t.Kind == KindString {
		return `"` + t.Lexeme + `"`
	}
	return t.Lexeme
}
