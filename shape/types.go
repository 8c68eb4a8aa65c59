// Package shape turns raw SPARQL result rows into typed connectivity entities.
//
// Each query has one adapter. Adapters are total over optional bindings and
// return a *ShapingError only when a binding the query always projects is
// missing, in which case the caller skips the row.
package shape

import (
	"github.com/c360studio/sckan2json/enrich"
	"github.com/c360studio/sckan2json/vocabulary/npo"
)

// LabeledEntity is any named graph resource: a neuron, a location or an organ.
// Two entities are the same resource iff their IDs are equal.
type LabeledEntity struct {
	ID    string // CURIE form of IRI
	IRI   string
	Label *string
}

func newEntity(iri string, label *string) LabeledEntity {
	return LabeledEntity{ID: npo.ToCurie(iri), IRI: iri, Label: label}
}

// ConnectivityEdge states that a neuron population projects from Origin to
// Destination, optionally via an intermediate structure and into a target organ.
type ConnectivityEdge struct {
	Neuron      LabeledEntity
	Origin      LabeledEntity
	Destination LabeledEntity
	Via         *LabeledEntity
	TargetOrgan *LabeledEntity

	// Metadata is the neuron's metadata record, when one was shaped.
	Metadata *NeuronMetadata
}

// NeuronMetadata holds the annotations of one neuron population.
// Scalar fields are nil when unknown. List fields are never nil.
type NeuronMetadata struct {
	ID  string
	IRI string

	Label          *string
	PreferredLabel *string
	Sex            *string
	Alert          *string
	Reference      *string
	DiagramLink    *string
	ModelID        *string
	ModelCategory  *string

	Species               []string
	Phenotypes            []string
	CategorizedPhenotypes []string
	ForwardConnections    []string
	Citation              []string

	// ReferenceDOIs lists the DOI URLs found in Reference.
	ReferenceDOIs []string

	// DOIs carries the parsed form of ReferenceDOIs.
	DOIs []enrich.DOI
}

// DisplayLabel returns the preferred label if set, else the label.
func (m *NeuronMetadata) DisplayLabel() *string {
	if m == nil {
		return nil
	}
	if m.PreferredLabel != nil {
		return m.PreferredLabel
	}
	return m.Label
}

// SegmentNode is one endpoint of a pathway segment.
type SegmentNode struct {
	LabeledEntity
	// Type is the bare name of the locational relation linking the neuron to
	// this node, e.g. hasAxonLocation.
	Type *string
}

// PathwaySegment is one directed hop of a neuron's axonal path.
type PathwaySegment struct {
	Neuron     LabeledEntity
	Nodes      [2]SegmentNode
	IsSynaptic bool
}

// Location is an anatomical structure reached through a locational relation.
type Location struct {
	LabeledEntity
	// LocationType is soma, via, terminal or sensory; nil for other relations.
	LocationType *string

	// ConnectionType is the relation CURIE.
	ConnectionType string
}

// Synonym is an alternate label of a location.
type Synonym struct {
	ID    string
	IRI   string
	Label string
}
