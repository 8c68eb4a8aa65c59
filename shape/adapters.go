package shape

import (
	"github.com/c360studio/sckan2json/enrich"
	"github.com/c360studio/sckan2json/sparql"
	"github.com/c360studio/sckan2json/vocabulary/npo"
)

const synapticFlag = "YES"

// required returns the value of a binding the query always projects.
// A bound but empty value counts as missing.
func required(row sparql.Row, query, field string) (string, error) {
	v, ok := row.Value(field)
	if !ok || v == "" {
		return "", &ShapingError{Query: query, Field: field}
	}
	return v, nil
}

// optional returns nil for an unbound or empty binding.
func optional(row sparql.Row, field string) *string {
	v, ok := row.Value(field)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func optionalEntity(row sparql.Row, iriField, labelField string) *LabeledEntity {
	iri := optional(row, iriField)
	if iri == nil {
		return nil
	}
	e := newEntity(*iri, optional(row, labelField))
	return &e
}

func multi(row sparql.Row, field string) []string {
	v, _ := row.Value(field)
	return npo.SplitMultiValued(v)
}

// NeuronMetadataFromRow shapes a neuron_metadata row and derives its model
// category, categorized phenotypes and reference DOIs.
func NeuronMetadataFromRow(row sparql.Row) (*NeuronMetadata, error) {
	iri, err := required(row, sparql.NeuronMetadata.Name, "Neuron_IRI")
	if err != nil {
		return nil, err
	}

	m := &NeuronMetadata{
		ID:                 npo.ToCurie(iri),
		IRI:                iri,
		Label:              optional(row, "Neuron_Label"),
		PreferredLabel:     optional(row, "Preferred_Label"),
		Sex:                optional(row, "Sex"),
		Alert:              optional(row, "Alert"),
		Reference:          optional(row, "Reference"),
		// Diagram_Link is not projected by the shipped metadata query; reserved
		// for releases that publish diagram URLs.
		DiagramLink:        optional(row, "Diagram_Link"),
		Species:            multi(row, "Species"),
		Phenotypes:         multi(row, "Phenotypes"),
		ForwardConnections: multi(row, "Forward_Connections"),
		Citation:           multi(row, "Citations"),
	}

	if model, ok := enrich.ModelCategory(m.ID); ok {
		m.ModelID = &model.ID
		m.ModelCategory = &model.Category
	}
	m.CategorizedPhenotypes = enrich.CategorizePhenotypes(m.Phenotypes)

	if m.Reference != nil {
		m.DOIs = enrich.ExtractDOIs(*m.Reference)
	} else {
		m.DOIs = []enrich.DOI{}
	}
	m.ReferenceDOIs = make([]string, 0, len(m.DOIs))
	for _, d := range m.DOIs {
		m.ReferenceDOIs = append(m.ReferenceDOIs, d.URL)
	}
	return m, nil
}

// ConnectivityFromRow shapes a connectivity row and links the neuron's
// metadata record from index, which may be nil.
func ConnectivityFromRow(row sparql.Row, index *MetadataIndex) (ConnectivityEdge, error) {
	q := sparql.Connectivity.Name
	neuronIRI, err := required(row, q, "Neuron_ID")
	if err != nil {
		return ConnectivityEdge{}, err
	}
	originIRI, err := required(row, q, "A_IRI")
	if err != nil {
		return ConnectivityEdge{}, err
	}
	destIRI, err := required(row, q, "B_IRI")
	if err != nil {
		return ConnectivityEdge{}, err
	}

	edge := ConnectivityEdge{
		Neuron:      newEntity(neuronIRI, nil),
		Origin:      newEntity(originIRI, optional(row, "A_Label")),
		Destination: newEntity(destIRI, optional(row, "B_Label")),
		Via:         optionalEntity(row, "C_IRI", "C_Label"),
		TargetOrgan: optionalEntity(row, "Target_Organ_IRI", "Target_Organ_Label"),
	}
	if m, ok := index.Get(edge.Neuron.ID); ok {
		edge.Metadata = m
	}
	return edge, nil
}

// SegmentFromRow shapes a pathway_segments row.
func SegmentFromRow(row sparql.Row) (PathwaySegment, error) {
	q := sparql.PathwaySegments.Name
	neuronIRI, err := required(row, q, "Neuron_IRI")
	if err != nil {
		return PathwaySegment{}, err
	}
	v1, err := required(row, q, "V1")
	if err != nil {
		return PathwaySegment{}, err
	}
	v2, err := required(row, q, "V2")
	if err != nil {
		return PathwaySegment{}, err
	}

	flag, _ := row.Value("IsSynapse")
	return PathwaySegment{
		Neuron: newEntity(neuronIRI, optional(row, "Neuron_Label")),
		Nodes: [2]SegmentNode{
			{LabeledEntity: newEntity(v1, optional(row, "V1_Label")), Type: optional(row, "V1_Type")},
			{LabeledEntity: newEntity(v2, optional(row, "V2_Label")), Type: optional(row, "V2_Type")},
		},
		IsSynaptic: flag == synapticFlag,
	}, nil
}

// LocationFromRow shapes a locations row. Relations without a location
// category yield a nil LocationType.
func LocationFromRow(row sparql.Row) (Location, error) {
	q := sparql.Locations.Name
	relation, err := required(row, q, "Connection_Type")
	if err != nil {
		return Location{}, err
	}
	iri, err := required(row, q, "Location_IRI")
	if err != nil {
		return Location{}, err
	}

	loc := Location{
		LabeledEntity:  newEntity(iri, optional(row, "Location_Label")),
		ConnectionType: npo.ToCurie(relation),
	}
	if t, ok := npo.LocationTypeFor(loc.ConnectionType); ok {
		loc.LocationType = &t
	}
	return loc, nil
}

// SynonymFromRow shapes a synonyms row.
func SynonymFromRow(row sparql.Row) (Synonym, error) {
	q := sparql.Synonyms.Name
	iri, err := required(row, q, "Location_IRI")
	if err != nil {
		return Synonym{}, err
	}
	label, err := required(row, q, "Location_Label")
	if err != nil {
		return Synonym{}, err
	}
	return Synonym{ID: npo.ToCurie(iri), IRI: iri, Label: label}, nil
}

// Rows applies fn to every row in order. Rejected rows are skipped and
// reported with their position.
func Rows[T any](rows []sparql.Row, fn func(sparql.Row) (T, error)) ([]T, []RowError) {
	out := make([]T, 0, len(rows))
	var rejected []RowError
	for i, row := range rows {
		v, err := fn(row)
		if err != nil {
			rejected = append(rejected, RowError{Row: i, Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, rejected
}
