package shape

// MetadataIndex holds at most one metadata record per neuron ID, in order of
// first appearance. A later record for the same ID replaces the earlier one.
type MetadataIndex struct {
	order []string
	byID  map[string]*NeuronMetadata
}

// NewMetadataIndex creates an empty index.
func NewMetadataIndex() *MetadataIndex {
	return &MetadataIndex{byID: make(map[string]*NeuronMetadata)}
}

// Put stores m and reports whether it replaced an existing record.
func (x *MetadataIndex) Put(m *NeuronMetadata) bool {
	_, replaced := x.byID[m.ID]
	if !replaced {
		x.order = append(x.order, m.ID)
	}
	x.byID[m.ID] = m
	return replaced
}

// Get returns the record for id. It is safe on a nil index.
func (x *MetadataIndex) Get(id string) (*NeuronMetadata, bool) {
	if x == nil {
		return nil, false
	}
	m, ok := x.byID[id]
	return m, ok
}

// All returns the records in order of first appearance.
func (x *MetadataIndex) All() []*NeuronMetadata {
	if x == nil {
		return nil
	}
	out := make([]*NeuronMetadata, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.byID[id])
	}
	return out
}

// Len returns the number of distinct neurons.
func (x *MetadataIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}
