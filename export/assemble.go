package export

import (
	"time"

	"github.com/c360studio/sckan2json/labels"
	"github.com/c360studio/sckan2json/shape"
)

// Input holds everything Assemble reads.
type Input struct {
	Connectivity []shape.ConnectivityEdge
	Metadata     *shape.MetadataIndex
	Segments     []shape.PathwaySegment
	Locations    []shape.Location
	Labels       labels.Dictionary

	// QueryDate is stored in UTC. Zero means now.
	QueryDate time.Time
}

// Assemble builds the export document. Every section is non-nil.
func Assemble(in Input) (*Document, error) {
	schema := Schema()
	tree, err := schemaTree(schema)
	if err != nil {
		return nil, err
	}

	queryDate := in.QueryDate
	if queryDate.IsZero() {
		queryDate = time.Now()
	}

	doc := &Document{
		Metadata: Metadata{
			QueryDate:     queryDate.UTC(),
			Version:       SchemaVersion,
			Description:   Description,
			Documentation: Documentation(schema),
			JSONSchema:    tree,
		},
		NeuralConnectivity: connections(in.Connectivity),
		NeuronMetadata:     make(map[string]NeuronMetadata, in.Metadata.Len()),
		NeuralSegments:     segments(in.Segments),
		Locations:          DedupLocations(locations(in.Locations)),
		Labels:             labelEntries(in.Labels),
		DOIMetadata:        make(map[string]DOIMetadata),
	}

	for _, m := range in.Metadata.All() {
		doc.NeuronMetadata[m.ID] = neuronMetadata(m)
		for _, d := range m.DOIs {
			if _, seen := doc.DOIMetadata[d.URL]; seen {
				continue
			}
			doc.DOIMetadata[d.URL] = DOIMetadata{DOI: d.DOI, Label: m.Reference}
		}
	}

	return doc, nil
}

// DedupLocations drops locations structurally equal to an earlier one,
// keeping order of first occurrence.
func DedupLocations(locs []Location) []Location {
	type key struct {
		id             string
		locationType   string
		hasType        bool
		connectionType string
	}
	seen := make(map[key]bool, len(locs))
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		k := key{id: l.ID, connectionType: l.ConnectionType}
		if l.LocationType != nil {
			k.locationType, k.hasType = *l.LocationType, true
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}

func connections(edges []shape.ConnectivityEdge) []Connection {
	out := make([]Connection, 0, len(edges))
	for _, e := range edges {
		c := Connection{
			ID:          e.Neuron.ID,
			Origin:      e.Origin.ID,
			Destination: e.Destination.ID,
		}
		if e.Via != nil {
			c.Via = &e.Via.ID
		}
		if e.TargetOrgan != nil {
			c.TargetOrgan = &e.TargetOrgan.ID
		}
		out = append(out, c)
	}
	return out
}

func neuronMetadata(m *shape.NeuronMetadata) NeuronMetadata {
	return NeuronMetadata{
		Label:                 m.Label,
		PreferredLabel:        m.PreferredLabel,
		Sex:                   m.Sex,
		Alert:                 m.Alert,
		Reference:             m.Reference,
		DiagramLink:           m.DiagramLink,
		ModelID:               m.ModelID,
		ModelCategory:         m.ModelCategory,
		Species:               nonNil(m.Species),
		Phenotypes:            nonNil(m.Phenotypes),
		CategorizedPhenotypes: nonNil(m.CategorizedPhenotypes),
		ForwardConnections:    nonNil(m.ForwardConnections),
		Citation:              nonNil(m.Citation),
		ReferenceDOIs:         nonNil(m.ReferenceDOIs),
	}
}

func segments(segs []shape.PathwaySegment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		out = append(out, Segment{
			ID: s.Neuron.ID,
			Nodes: []SegmentNode{
				{ID: s.Nodes[0].ID, Type: s.Nodes[0].Type},
				{ID: s.Nodes[1].ID, Type: s.Nodes[1].Type},
			},
			IsSynaptic: s.IsSynaptic,
		})
	}
	return out
}

func locations(locs []shape.Location) []Location {
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, Location{
			ID:             l.ID,
			LocationType:   l.LocationType,
			ConnectionType: l.ConnectionType,
		})
	}
	return out
}

func labelEntries(d labels.Dictionary) map[string]Label {
	out := make(map[string]Label, d.Len())
	for _, id := range d.IDs() {
		e, _ := d.Lookup(id)
		out[id] = Label{IRI: e.IRI, Label: e.Label, Synonyms: e.Synonyms}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
