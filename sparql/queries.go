package sparql

// Query is a named, pre-authored SPARQL query.
type Query struct {
	// Name identifies the query in logs, metrics and recordings.
	Name string

	// Vars lists the projected variables in SELECT order.
	Vars []string

	// Text is the SPARQL source.
	Text string
}

const prologue = `PREFIX owl: <http://www.w3.org/2002/07/owl#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX partOf: <http://purl.obolibrary.org/obo/BFO_0000050>
PREFIX ilxtr: <http://uri.interlex.org/tgbugs/uris/readable/>
PREFIX NIFRID: <http://uri.neuinfo.org/nif/nifstd/readable/>
PREFIX oboInOwl: <http://www.geneontology.org/formats/oboInOwl#>
`

// neuronPattern restricts ?Neuron_IRI to neuron populations that have a soma
// and at least one terminal or sensory location.
const neuronPattern = `
    ?Neuron_IRI rdfs:subClassOf*/rdfs:label 'Neuron'.
    ?Neuron_IRI ilxtr:hasSomaLocation ?A_IRI. ?A_IRI rdfs:label ?A_Label.
    ?Neuron_IRI (ilxtr:hasAxonTerminalLocation | ilxtr:hasAxonSensoryLocation) ?B_IRI. ?B_IRI rdfs:label ?B_Label.
`

// NeuronMetadata selects one row per neuron with its scalar annotations and
// "|"-joined species, phenotype, forward connection and citation lists.
var NeuronMetadata = Query{
	Name: "neuron_metadata",
	Vars: []string{
		"Neuron_IRI", "Neuron_Label", "Preferred_Label", "Species", "Sex", "Phenotypes",
		"Forward_Connections", "Citations", "Alert", "Reference",
	},
	Text: prologue + `
SELECT DISTINCT ?Neuron_IRI ?Neuron_Label ?Preferred_Label ?Species ?Sex ?Phenotypes
                ?Forward_Connections ?Citations ?Alert ?Reference
WHERE
{
    {
        SELECT DISTINCT ?Neuron_IRI ?Neuron_Label ?Preferred_Label ?Sex ?Alert ?Reference
        WHERE
        {` + neuronPattern + `
            OPTIONAL {?Neuron_IRI rdfs:label ?Neuron_Label.}
            OPTIONAL {?Neuron_IRI skos:prefLabel ?Preferred_Label.}
            OPTIONAL {?Neuron_IRI ilxtr:hasPhenotypicSex/rdfs:label ?Sex.}
            OPTIONAL {?Neuron_IRI ilxtr:reference ?Reference.}
            OPTIONAL {?Neuron_IRI ilxtr:alertNote ?Alert.}
        }
    }
    {
        SELECT ?Neuron_IRI (group_concat(distinct ?ObservedIn; separator="|") as ?Species)
        WHERE
        {` + neuronPattern + `
            OPTIONAL {?Neuron_IRI ilxtr:isObservedInSpecies/rdfs:label ?ObservedIn.}
        }
        GROUP BY ?Neuron_IRI
    }
    {
        SELECT ?Neuron_IRI (group_concat(distinct ?ForwardConnection; separator="|") as ?Forward_Connections)
        WHERE
        {` + neuronPattern + `
            OPTIONAL {?Neuron_IRI ilxtr:hasForwardConnection ?ForwardConnection.}
        }
        GROUP BY ?Neuron_IRI
    }
    {
        SELECT ?Neuron_IRI (group_concat(distinct ?Phenotype; separator="|") as ?Phenotypes)
        WHERE
        {` + neuronPattern + `
            OPTIONAL {?Neuron_IRI (ilxtr:hasNeuronalPhenotype | ilxtr:hasFunctionalCircuitRole |
                                   ilxtr:hasCircuitRole | ilxtr:hasProjection)/rdfs:label ?Phenotype.}
        }
        GROUP BY ?Neuron_IRI
    }
    {
        SELECT ?Neuron_IRI (group_concat(distinct ?Citation; separator="|") as ?Citations)
        WHERE
        {` + neuronPattern + `
            OPTIONAL {?Neuron_IRI ilxtr:literatureCitation ?Citation.}
        }
        GROUP BY ?Neuron_IRI
    }
}
ORDER BY ?Neuron_IRI
LIMIT 100000`,
}

// Connectivity selects neuron populations projecting from A to B, optionally
// via C, with the target organ B is part of when it is one of the curated organs.
var Connectivity = Query{
	Name: "connectivity",
	Vars: []string{
		"Neuron_ID", "A_IRI", "A_Label", "B_IRI", "B_Label",
		"C_IRI", "C_Label", "Target_Organ_IRI", "Target_Organ_Label",
	},
	Text: prologue + `
SELECT DISTINCT ?Neuron_ID ?A_IRI ?A_Label ?B_IRI ?B_Label ?C_IRI ?C_Label ?Target_Organ_IRI ?Target_Organ_Label
{
    ?Neuron_ID rdfs:subClassOf*/rdfs:label 'Neuron'.
    ?Neuron_ID ilxtr:hasSomaLocation ?A_IRI. ?A_IRI rdfs:label ?A_Label.
    OPTIONAL {?Neuron_ID ilxtr:hasAxonLocation ?C_IRI. ?C_IRI rdfs:label ?C_Label.}
    ?Neuron_ID (ilxtr:hasAxonTerminalLocation | ilxtr:hasAxonSensoryLocation) ?B_IRI. ?B_IRI rdfs:label ?B_Label.

    OPTIONAL {
        ?B_IRI rdfs:subClassOf+ [rdf:type owl:Restriction; owl:onProperty partOf:; owl:someValuesFrom ?Target_Organ_IRI].
        ?Target_Organ_IRI rdfs:label ?Target_Organ_Label.
        FILTER (?Target_Organ_Label in ('heart', 'ovary', 'brain', 'urethra', 'esophagus', 'skin of body', 'lung',
                                        'liver', 'lower urinary tract', 'urinary tract', 'muscle organ', 'gallbladder',
                                        'colon', 'kidney', 'large intestine', 'small intestine', 'stomach', 'spleen',
                                        'urinary bladder', 'penis', 'clitoris', 'pancreas'))
    }
}
ORDER BY ?Neuron_ID ?A_Label ?B_IRI ?C_Label
LIMIT 120000`,
}

// PathwaySegments selects each directed hop of a neuron's axonal path with the
// locational relation of both endpoints and whether the hop ends in a synapse.
var PathwaySegments = Query{
	Name: "pathway_segments",
	Vars: []string{
		"Neuron_IRI", "Neuron_Label", "V1", "V1_Label", "V2", "V2_Label", "V1_Type", "V2_Type", "IsSynapse",
	},
	Text: prologue + `
SELECT DISTINCT ?Neuron_IRI ?Neuron_Label ?V1 ?V1_Label ?V2 ?V2_Label ?V1_Type ?V2_Type ?IsSynapse
WHERE
{
    ?V1 ilxtr:hasNextNode{ilxtr:isConnectedBy ?Neuron_IRI} ?V2.
    ?V1 rdfs:label ?V1_Label. ?V2 rdfs:label ?V2_Label.
    OPTIONAL {?Neuron_IRI rdfs:label ?Neuron_Label.}

    ?Neuron_IRI ?V1_Location_Type_IRI ?V1. ?V1_Location_Type_IRI rdfs:label ?V1_Type.
    ?Neuron_IRI ?V2_Location_Type_IRI ?V2. ?V2_Location_Type_IRI rdfs:label ?V2_Type.
    FILTER (ilxtr:hasConnectedLocation not in (?V1_Location_Type_IRI, ?V2_Location_Type_IRI))

    OPTIONAL {
        ?Neuron_IRI ilxtr:hasForwardConnection/ilxtr:hasSomaLocation ?Synapse.
        FILTER (?V2 = ?Synapse)
        FILTER (?V2_Type = "hasAxonTerminalLocation")
    }
    BIND (IF(BOUND(?Synapse), "YES", "NO") AS ?IsSynapse)
}
ORDER BY ?Neuron_IRI ?V1_Label ?V2_Label
LIMIT 20000`,
}

// Locations selects every anatomical location connected to a neuron through a
// locational relation, with its rdfs:label.
var Locations = Query{
	Name: "locations",
	Vars: []string{"Connection_Type", "Location_IRI", "Location_Label"},
	Text: prologue + `
SELECT DISTINCT ?Connection_Type ?Location_IRI ?Location_Label
{
    ?Neuron_ID ?Connection_Type ?Location_IRI.
    ?Connection_Type rdfs:subPropertyOf+ ilxtr:hasConnectedLocation.
    ?Neuron_ID ilxtr:hasSomaLocation ?s;
               (ilxtr:hasAxonTerminalLocation | ilxtr:hasAxonSensoryLocation) ?x.
    ?Location_IRI rdfs:label ?Location_Label.
}
ORDER BY ?Neuron_ID DESC(?Location_IRI) ?Location_Label
LIMIT 100000`,
}

// Synonyms selects the alternate labels of the connected locations.
var Synonyms = Query{
	Name: "synonyms",
	Vars: []string{"Location_IRI", "Location_Label"},
	Text: prologue + `
SELECT DISTINCT ?Location_IRI ?Location_Label
{
    ?Neuron_ID ?Connection_Type ?Location_IRI.
    ?Connection_Type rdfs:subPropertyOf+ ilxtr:hasConnectedLocation.
    ?Neuron_ID ilxtr:hasSomaLocation ?s;
               (ilxtr:hasAxonTerminalLocation | ilxtr:hasAxonSensoryLocation) ?x.
    ?Location_IRI (NIFRID:synonym | oboInOwl:hasExactSynonym) ?Location_Label.
}
ORDER BY DESC(?Location_IRI) ?Location_Label
LIMIT 100000`,
}

// All returns the export queries in fetch order. Metadata comes first because
// connectivity shaping cross-references it.
func All() []Query {
	return []Query{NeuronMetadata, Connectivity, PathwaySegments, Locations, Synonyms}
}
