package shape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sckan2json/enrich"
	"github.com/c360studio/sckan2json/sparql"
)

const (
	uberon   = "http://purl.obolibrary.org/obo/UBERON_"
	readable = "http://uri.interlex.org/tgbugs/uris/readable/"
)

func uri(v string) sparql.Binding { return sparql.Binding{Type: "uri", Value: v} }
func lit(v string) sparql.Binding { return sparql.Binding{Type: "literal", Value: v} }

func ptr(s string) *string { return &s }

func TestNeuronMetadataFromRow(t *testing.T) {
	row := sparql.Row{
		"Neuron_IRI":          uri(readable + "neuron-type-keast-5"),
		"Neuron_Label":        lit("L6-S1 parasympathetic"),
		"Preferred_Label":     lit("pelvic ganglion neuron"),
		"Species":             lit("Rattus norvegicus|" + "http://purl.obolibrary.org/obo/NCBITaxon_10116"),
		"Phenotypes":          lit("Parasympathetic phenotype|Pre ganglionic phenotype"),
		"Forward_Connections": lit(readable + "neuron-type-keast-7|" + readable + "neuron-type-keast-8"),
		"Reference":           lit("Keast 1995, https://doi.org/10.1159/000060678"),
		"Sex":                 lit(""),
	}

	m, err := NeuronMetadataFromRow(row)
	require.NoError(t, err)

	assert.Equal(t, "ilxtr:neuron-type-keast-5", m.ID)
	assert.Equal(t, readable+"neuron-type-keast-5", m.IRI)
	assert.Equal(t, ptr("L6-S1 parasympathetic"), m.Label)
	assert.Equal(t, ptr("pelvic ganglion neuron"), m.PreferredLabel)
	assert.Nil(t, m.Sex, "empty binding is treated as unbound")
	assert.Nil(t, m.Alert)
	assert.Nil(t, m.DiagramLink)

	assert.Equal(t, ptr("keast"), m.ModelID)
	assert.Equal(t, ptr("Keast Model of Bladder Innervation"), m.ModelCategory)

	assert.Equal(t, []string{"Rattus norvegicus", "NCBITaxon:10116"}, m.Species)
	assert.Equal(t, []string{"Parasympathetic phenotype", "Pre ganglionic phenotype"}, m.Phenotypes)
	assert.Equal(t, []string{"ANS: Parasympathetic", "Pre ganglionic phenotype"}, m.CategorizedPhenotypes)
	assert.Equal(t, []string{"ilxtr:neuron-type-keast-7", "ilxtr:neuron-type-keast-8"}, m.ForwardConnections)
	assert.Equal(t, []string{}, m.Citation)

	assert.Equal(t, []string{"https://doi.org/10.1159/000060678"}, m.ReferenceDOIs)
	assert.Equal(t, []enrich.DOI{{URL: "https://doi.org/10.1159/000060678", DOI: "10.1159/000060678"}}, m.DOIs)
	assert.Equal(t, ptr("pelvic ganglion neuron"), m.DisplayLabel())
}

func TestNeuronMetadataFromRow_DiagramLink(t *testing.T) {
	row := sparql.Row{
		"Neuron_IRI":   uri(readable + "neuron-type-keast-5"),
		"Diagram_Link": lit("https://scicrunch.org/sawg/keast-5.svg"),
	}

	m, err := NeuronMetadataFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, ptr("https://scicrunch.org/sawg/keast-5.svg"), m.DiagramLink)
}

func TestNeuronMetadataFromRow_MinimalRow(t *testing.T) {
	m, err := NeuronMetadataFromRow(sparql.Row{"Neuron_IRI": uri("http://uri.interlex.org/tgbugs/uris/readable/sparc-nlp/1")})
	require.NoError(t, err)

	assert.Nil(t, m.Label)
	assert.Nil(t, m.ModelID)
	for name, list := range map[string][]string{
		"species":                m.Species,
		"phenotypes":             m.Phenotypes,
		"categorized_phenotypes": m.CategorizedPhenotypes,
		"forward_connections":    m.ForwardConnections,
		"citation":               m.Citation,
		"reference_dois":         m.ReferenceDOIs,
	} {
		assert.NotNil(t, list, name)
		assert.Empty(t, list, name)
	}
	assert.NotNil(t, m.DOIs)
	assert.Nil(t, m.DisplayLabel())
}

func TestNeuronMetadataFromRow_MissingIRI(t *testing.T) {
	_, err := NeuronMetadataFromRow(sparql.Row{"Neuron_Label": lit("orphan")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingBinding)

	var se *ShapingError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "neuron_metadata", se.Query)
	assert.Equal(t, "Neuron_IRI", se.Field)
}

func TestConnectivityFromRow(t *testing.T) {
	index := NewMetadataIndex()
	meta := &NeuronMetadata{ID: "ilxtr:neuron-type-keast-5", Label: ptr("Neuron A")}
	index.Put(meta)

	row := sparql.Row{
		"Neuron_ID":          uri(readable + "neuron-type-keast-5"),
		"A_IRI":              uri(uberon + "0006448"),
		"A_Label":            lit("L1 segment of lumbar spinal cord"),
		"B_IRI":              uri(uberon + "0016508"),
		"B_Label":            lit("pelvic ganglion"),
		"C_IRI":              uri(uberon + "0001759"),
		"C_Label":            lit("vagus nerve"),
		"Target_Organ_IRI":   uri(uberon + "0001255"),
		"Target_Organ_Label": lit("urinary bladder"),
	}

	edge, err := ConnectivityFromRow(row, index)
	require.NoError(t, err)

	assert.Equal(t, "ilxtr:neuron-type-keast-5", edge.Neuron.ID)
	assert.Nil(t, edge.Neuron.Label)
	assert.Equal(t, LabeledEntity{ID: "UBERON:0006448", IRI: uberon + "0006448", Label: ptr("L1 segment of lumbar spinal cord")}, edge.Origin)
	assert.Equal(t, "UBERON:0016508", edge.Destination.ID)
	require.NotNil(t, edge.Via)
	assert.Equal(t, "UBERON:0001759", edge.Via.ID)
	require.NotNil(t, edge.TargetOrgan)
	assert.Equal(t, ptr("urinary bladder"), edge.TargetOrgan.Label)
	assert.Same(t, meta, edge.Metadata)
}

func TestConnectivityFromRow_OptionalAbsent(t *testing.T) {
	row := sparql.Row{
		"Neuron_ID": uri(readable + "neuron-type-aacar-1"),
		"A_IRI":     uri(uberon + "0002440"),
		"B_IRI":     uri(uberon + "0002349"),
	}
	edge, err := ConnectivityFromRow(row, nil)
	require.NoError(t, err)
	assert.Nil(t, edge.Via)
	assert.Nil(t, edge.TargetOrgan)
	assert.Nil(t, edge.Metadata)
	assert.Nil(t, edge.Origin.Label)
}

func TestConnectivityFromRow_RequiredBindings(t *testing.T) {
	full := sparql.Row{
		"Neuron_ID": uri(readable + "neuron-type-aacar-1"),
		"A_IRI":     uri(uberon + "0002440"),
		"B_IRI":     uri(uberon + "0002349"),
	}
	for _, field := range []string{"Neuron_ID", "A_IRI", "B_IRI"} {
		t.Run(field, func(t *testing.T) {
			row := sparql.Row{}
			for k, v := range full {
				if k != field {
					row[k] = v
				}
			}
			_, err := ConnectivityFromRow(row, nil)
			var se *ShapingError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "connectivity", se.Query)
			assert.Equal(t, field, se.Field)
		})
	}
}

func TestSegmentFromRow(t *testing.T) {
	tests := []struct {
		name    string
		flag    *sparql.Binding
		wantSyn bool
	}{
		{"yes", &sparql.Binding{Type: "literal", Value: "YES"}, true},
		{"no", &sparql.Binding{Type: "literal", Value: "NO"}, false},
		{"lowercase is not yes", &sparql.Binding{Type: "literal", Value: "yes"}, false},
		{"unbound", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := sparql.Row{
				"Neuron_IRI":   uri(readable + "neuron-type-sstom-6"),
				"Neuron_Label": lit("stomach neuron"),
				"V1":           uri(uberon + "0002440"),
				"V1_Label":     lit("inferior cervical ganglion"),
				"V1_Type":      lit("hasSomaLocation"),
				"V2":           uri(uberon + "0000945"),
				"V2_Label":     lit("stomach"),
			}
			if tt.flag != nil {
				row["IsSynapse"] = *tt.flag
			}

			seg, err := SegmentFromRow(row)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSyn, seg.IsSynaptic)
			assert.Equal(t, "ilxtr:neuron-type-sstom-6", seg.Neuron.ID)
			assert.Equal(t, "UBERON:0002440", seg.Nodes[0].ID)
			assert.Equal(t, ptr("hasSomaLocation"), seg.Nodes[0].Type)
			assert.Equal(t, "UBERON:0000945", seg.Nodes[1].ID)
			assert.Nil(t, seg.Nodes[1].Type)
		})
	}
}

func TestSegmentFromRow_MissingNode(t *testing.T) {
	_, err := SegmentFromRow(sparql.Row{
		"Neuron_IRI": uri(readable + "neuron-type-sstom-6"),
		"V1":         uri(uberon + "0002440"),
	})
	var se *ShapingError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "V2", se.Field)
}

func TestLocationFromRow(t *testing.T) {
	tests := []struct {
		name         string
		relation     string
		wantConnType string
		wantLocType  *string
	}{
		{"soma", readable + "hasSomaLocation", "ilxtr:hasSomaLocation", ptr("soma")},
		{"via", readable + "hasAxonLocation", "ilxtr:hasAxonLocation", ptr("via")},
		{"terminal", readable + "hasAxonTerminalLocation", "ilxtr:hasAxonTerminalLocation", ptr("terminal")},
		{"sensory", readable + "hasAxonSensoryLocation", "ilxtr:hasAxonSensoryLocation", ptr("sensory")},
		{"unmapped relation", readable + "hasDendriteLocation", "ilxtr:hasDendriteLocation", nil},
		{"unmapped namespace", "http://example.org/rel", "http://example.org/rel", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LocationFromRow(sparql.Row{
				"Connection_Type": uri(tt.relation),
				"Location_IRI":    uri(uberon + "0001759"),
				"Location_Label":  lit("vagus nerve"),
			})
			require.NoError(t, err)
			assert.Equal(t, "UBERON:0001759", loc.ID)
			assert.Equal(t, ptr("vagus nerve"), loc.Label)
			assert.Equal(t, tt.wantConnType, loc.ConnectionType)
			assert.Equal(t, tt.wantLocType, loc.LocationType)
		})
	}
}

func TestSynonymFromRow(t *testing.T) {
	syn, err := SynonymFromRow(sparql.Row{
		"Location_IRI":   uri(uberon + "0001759"),
		"Location_Label": lit("tenth cranial nerve"),
	})
	require.NoError(t, err)
	assert.Equal(t, Synonym{ID: "UBERON:0001759", IRI: uberon + "0001759", Label: "tenth cranial nerve"}, syn)

	_, err = SynonymFromRow(sparql.Row{"Location_IRI": uri(uberon + "0001759")})
	assert.ErrorIs(t, err, ErrMissingBinding)
}

func TestRows_SkipsRejected(t *testing.T) {
	rows := []sparql.Row{
		{"Location_IRI": uri(uberon + "1"), "Location_Label": lit("a")},
		{"Location_IRI": uri(uberon + "2")},
		{"Location_IRI": uri(uberon + "3"), "Location_Label": lit("c")},
	}
	got, rejected := Rows(rows, SynonymFromRow)
	require.Len(t, got, 2)
	assert.Equal(t, "UBERON:1", got[0].ID)
	assert.Equal(t, "UBERON:3", got[1].ID)

	require.Len(t, rejected, 1)
	assert.Equal(t, 1, rejected[0].Row)
	assert.ErrorIs(t, rejected[0], ErrMissingBinding)
	assert.Contains(t, rejected[0].Error(), "row 1")
}
