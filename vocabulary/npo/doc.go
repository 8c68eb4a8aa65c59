// Package npo provides the vocabulary of the Neuron Phenotype Ontology (NPO) as
// exported by SCKAN: namespace prefixes, relation IRIs and the curated lookup
// tables applied while shaping query results.
//
// # Identifiers
//
// Graph resources arrive as full IRIs. The export uses compact identifiers
// (CURIEs) wherever a registered namespace matches:
//
//	npo.ToCurie("http://purl.obolibrary.org/obo/UBERON_0001759") // "UBERON:0001759"
//	npo.ToCurie("http://example.org/unknown")                    // returned unchanged
//
// Namespaces are scanned in table order and the first match wins. The table is
// ordered so that a namespace always precedes any shorter namespace it extends
// (mmset1 before ilxtr, BIRNLEX before NIFSTD), which makes first match and
// longest match the same thing.
//
// # Curated tables
//
// ModelCategories, PhenotypeCategories, LocationTypes and RelationLabels cannot
// be derived from the graph. They are defined exactly once, here, and versioned
// together by TablesVersion.
package npo
