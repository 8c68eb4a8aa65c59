// Package labels builds the label dictionary: one display label, IRI and
// synonym list per identifier seen anywhere in the export.
//
// The dictionary is built by a fixed sequence of passes. Each pass returns a
// new Dictionary and leaves its receiver untouched, so every stage can be
// inspected on its own:
//
//	d := labels.Seed().
//		WithConnectivity(edges).
//		WithSegments(segments, index).
//		WithLocations(locations).
//		WithSynonyms(synonyms)
//
// The connectivity, segment and location passes refresh entries: the IRI is
// always replaced, and the label is replaced whenever the incoming label is
// known. The synonym pass never touches a primary label.
package labels

import (
	"slices"

	"github.com/c360studio/sckan2json/shape"
	"github.com/c360studio/sckan2json/vocabulary/npo"
)

// Entry is the dictionary record for one identifier.
type Entry struct {
	IRI   string
	Label *string

	// Synonyms is nil until a synonym is recorded for an existing entry.
	// Entries created from a synonym start with an empty list.
	Synonyms []string
}

// Dictionary maps identifiers to entries. The zero value is empty and usable.
type Dictionary struct {
	entries map[string]Entry
	order   []string
}

// Sources bundles the shaped entities consumed by Build.
type Sources struct {
	Connectivity []shape.ConnectivityEdge
	Segments     []shape.PathwaySegment
	Metadata     *shape.MetadataIndex
	Locations    []shape.Location
	Synonyms     []shape.Synonym
}

// Build runs every pass in order starting from Seed.
func Build(src Sources) Dictionary {
	return Seed().
		WithConnectivity(src.Connectivity).
		WithSegments(src.Segments, src.Metadata).
		WithLocations(src.Locations).
		WithSynonyms(src.Synonyms)
}

// Seed returns a dictionary holding the labels of the locational relations
// that pathway nodes report as their type.
func Seed() Dictionary {
	d := Dictionary{}.clone()
	for _, r := range npo.RelationLabels {
		label := r.Label
		d.put(r.Key, Entry{IRI: r.IRI, Label: &label})
	}
	return d
}

// WithConnectivity refreshes every neuron, origin, via, destination and
// target organ. Each neuron's label is then overridden by its metadata's
// preferred label, or failing that its metadata label.
func (d Dictionary) WithConnectivity(edges []shape.ConnectivityEdge) Dictionary {
	next := d.clone()
	for _, e := range edges {
		next.refresh(e.Neuron)
		next.override(e.Neuron.ID, e.Metadata)
		next.refresh(e.Origin)
		if e.Via != nil {
			next.refresh(*e.Via)
		}
		next.refresh(e.Destination)
		if e.TargetOrgan != nil {
			next.refresh(*e.TargetOrgan)
		}
	}
	return next
}

// WithSegments refreshes every segment neuron and node. Neurons with a
// metadata record in index get the same override as in WithConnectivity, so
// a segment's raw neuron label cannot demote a preferred label.
func (d Dictionary) WithSegments(segments []shape.PathwaySegment, index *shape.MetadataIndex) Dictionary {
	next := d.clone()
	for _, s := range segments {
		next.refresh(s.Neuron)
		if m, ok := index.Get(s.Neuron.ID); ok {
			next.override(s.Neuron.ID, m)
		}
		next.refresh(s.Nodes[0].LabeledEntity)
		next.refresh(s.Nodes[1].LabeledEntity)
	}
	return next
}

// WithLocations refreshes every location with an ID.
func (d Dictionary) WithLocations(locations []shape.Location) Dictionary {
	next := d.clone()
	for _, l := range locations {
		if l.ID == "" {
			continue
		}
		next.refresh(l.LabeledEntity)
	}
	return next
}

// WithSynonyms appends each synonym to its entry's synonym list, in order and
// without deduplication. A synonym for an unknown ID creates an entry labeled
// with the synonym and an empty synonym list.
func (d Dictionary) WithSynonyms(synonyms []shape.Synonym) Dictionary {
	next := d.clone()
	for _, s := range synonyms {
		if s.ID == "" {
			continue
		}
		e, ok := next.entries[s.ID]
		if !ok {
			label := s.Label
			next.put(s.ID, Entry{IRI: s.IRI, Label: &label, Synonyms: []string{}})
			continue
		}
		// Clip so the append never writes into a slice shared with d.
		e.Synonyms = append(slices.Clip(e.Synonyms), s.Label)
		next.entries[s.ID] = e
	}
	return next
}

// Lookup returns the entry for id.
func (d Dictionary) Lookup(id string) (Entry, bool) {
	e, ok := d.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return len(d.order)
}

// IDs returns the identifiers in order of first insertion.
func (d Dictionary) IDs() []string {
	return slices.Clone(d.order)
}

func (d Dictionary) clone() Dictionary {
	entries := make(map[string]Entry, len(d.entries))
	for k, v := range d.entries {
		entries[k] = v
	}
	return Dictionary{entries: entries, order: slices.Clip(d.order)}
}

func (d *Dictionary) put(id string, e Entry) {
	if _, ok := d.entries[id]; !ok {
		d.order = append(d.order, id)
	}
	d.entries[id] = e
}

func (d *Dictionary) refresh(le shape.LabeledEntity) {
	e := d.entries[le.ID]
	e.IRI = le.IRI
	if le.Label != nil {
		e.Label = le.Label
	}
	d.put(le.ID, e)
}

func (d *Dictionary) override(id string, m *shape.NeuronMetadata) {
	label := m.DisplayLabel()
	if label == nil {
		return
	}
	e := d.entries[id]
	e.Label = label
	d.entries[id] = e
}
