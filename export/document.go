// Package export assembles shaped connectivity entities and the label
// dictionary into the SCKAN JSON document.
//
// The document is self-describing: its metadata section embeds a JSON Schema
// reflected from the Go types in this file and a field guide rendered from
// that schema, so neither can drift from the data model.
//
// Assembly happens in two steps. Assemble builds a typed Document, and
// Document.Tree marshals it to a generic JSON tree and prunes null, empty
// string and empty object values from every section. Empty arrays are kept.
package export

import "time"

// SchemaVersion changes whenever a field is renamed, removed or retyped.
const SchemaVersion = "2.0"

// Description is written to metadata.description.
const Description = "SCKAN neuron population connectivity with labels and metadata"

// Document is the exported JSON object.
type Document struct {
	Metadata           Metadata                  `json:"metadata" jsonschema:"required,description=Export provenance and self-description"`
	NeuralConnectivity []Connection              `json:"neural_connectivity" jsonschema:"required,description=One entry per neuron population projection from origin to destination"`
	NeuronMetadata     map[string]NeuronMetadata `json:"neuron_metadata" jsonschema:"required,description=Neuron population annotations keyed by neuron CURIE"`
	NeuralSegments     []Segment                 `json:"neural_segments" jsonschema:"required,description=Directed hops of each neuron population's axonal path"`
	Locations          []Location                `json:"locations" jsonschema:"required,description=Distinct anatomical locations and the relation that reaches them"`
	Labels             map[string]Label          `json:"labels" jsonschema:"required,description=Display label and synonyms keyed by CURIE or relation name"`
	DOIMetadata        map[string]DOIMetadata    `json:"doi_metadata" jsonschema:"required,description=DOIs cited by neuron references keyed by DOI URL"`
}

// Metadata describes the export itself.
type Metadata struct {
	QueryDate     time.Time      `json:"query_date" jsonschema:"required,description=UTC time the source queries were issued"`
	Version       string         `json:"version" jsonschema:"required,description=Schema version of this document"`
	Description   string         `json:"description" jsonschema:"required,description=Summary of the document contents"`
	Documentation string         `json:"documentation" jsonschema:"required,description=Field guide generated from json_schema"`
	JSONSchema    map[string]any `json:"json_schema" jsonschema:"required,description=JSON Schema (draft 2020-12) describing this document"`
}

// Connection is one projection of a neuron population.
type Connection struct {
	ID          string  `json:"id" jsonschema:"required,description=Neuron population CURIE"`
	Origin      string  `json:"origin" jsonschema:"required,description=CURIE of the soma location"`
	Destination string  `json:"destination" jsonschema:"required,description=CURIE of the axon terminal or sensory location"`
	Via         *string `json:"via" jsonschema:"description=CURIE of an axon location between origin and destination"`
	TargetOrgan *string `json:"target_organ" jsonschema:"description=CURIE of the organ the destination is part of"`
}

// NeuronMetadata annotates one neuron population.
type NeuronMetadata struct {
	Label                 *string  `json:"label" jsonschema:"description=rdfs:label of the neuron population"`
	PreferredLabel        *string  `json:"preferred_label" jsonschema:"description=skos:prefLabel of the neuron population"`
	Sex                   *string  `json:"sex" jsonschema:"description=Phenotypic sex the population was observed in"`
	Alert                 *string  `json:"alert" jsonschema:"description=Curator alert note"`
	Reference             *string  `json:"reference" jsonschema:"description=Free-text literature reference"`
	DiagramLink           *string  `json:"diagram_link" jsonschema:"description=URL of a connectivity diagram"`
	ModelID               *string  `json:"model_id" jsonschema:"description=Identifier of the connectivity model the population belongs to"`
	ModelCategory         *string  `json:"model_category" jsonschema:"description=Name of the connectivity model"`
	Species               []string `json:"species" jsonschema:"required,description=Species the population was observed in"`
	Phenotypes            []string `json:"phenotypes" jsonschema:"required,description=Raw phenotype labels"`
	CategorizedPhenotypes []string `json:"categorized_phenotypes" jsonschema:"required,description=Phenotype display categories aligned with phenotypes"`
	ForwardConnections    []string `json:"forward_connections" jsonschema:"required,description=CURIEs of populations this one synapses onto"`
	Citation              []string `json:"citation" jsonschema:"required,description=Literature citation identifiers"`
	ReferenceDOIs         []string `json:"reference_dois" jsonschema:"required,description=DOI URLs found in reference; keys into doi_metadata"`
}

// Segment is one directed hop of a neuron population's path.
type Segment struct {
	ID         string        `json:"id" jsonschema:"required,description=Neuron population CURIE"`
	Nodes      []SegmentNode `json:"nodes" jsonschema:"required,minItems=2,maxItems=2,description=Start and end node of the hop"`
	IsSynaptic bool          `json:"is_synaptic" jsonschema:"required,description=True when the hop ends in a synapse onto a forward connection"`
}

// SegmentNode is one end of a segment.
type SegmentNode struct {
	ID   string  `json:"id" jsonschema:"required,description=Location CURIE"`
	Type *string `json:"type" jsonschema:"description=Locational relation name; a key into labels"`
}

// Location is a distinct (id, location_type, connection_type) triple.
type Location struct {
	ID             string  `json:"id" jsonschema:"required,description=Location CURIE"`
	LocationType   *string `json:"location_type" jsonschema:"enum=soma,enum=via,enum=terminal,enum=sensory,description=Location category derived from connection_type"`
	ConnectionType string  `json:"connection_type" jsonschema:"description=CURIE of the locational relation"`
}

// Label is one label dictionary entry.
type Label struct {
	IRI      string   `json:"iri" jsonschema:"description=Full IRI"`
	Label    *string  `json:"label" jsonschema:"description=Display label"`
	Synonyms []string `json:"synonyms" jsonschema:"description=Alternate labels in source order"`
}

// DOIMetadata describes one cited DOI.
type DOIMetadata struct {
	DOI   string  `json:"doi" jsonschema:"required,description=DOI name such as 10.1159/000060678"`
	Label *string `json:"label" jsonschema:"description=Reference text of the first neuron population citing the DOI"`
}
