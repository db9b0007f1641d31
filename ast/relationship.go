package ast

import "github.com/hallna/structurizr-dsl/pos"

// RelationshipNode is a uses/-> edge between two elements, attached either
// to the containing element or to the top-level model.
type RelationshipNode struct {
	SourceID       string
	DestinationID  string
	Description    string
	Technology     string
	Tags           []string
	Properties     map[string]string
	SourcePosition pos.Position
}

// SetSource returns a copy of r with SourceID replaced by newID, all other
// fields preserved.
func (r RelationshipNode) SetSource(newID string) RelationshipNode {
	next := r
	next.SourceID = newID
	return next
}

// SetDestination returns a copy of r with DestinationID replaced by newID,
// all other fields preserved.
func (r RelationshipNode) SetDestination(newID string) RelationshipNode {
	next := r
	next.DestinationID = newID
	return next
}
