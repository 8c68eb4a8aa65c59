package npo

// Mapping pairs a CURIE prefix (including its trailing colon) with the IRI
// namespace it abbreviates.
type Mapping struct {
	Prefix    string
	Namespace string
}

// Prefixes is the ordered prefix table used for canonicalization.
// Entries whose namespace extends another entry's namespace must come first.
var Prefixes = []Mapping{
	{Prefix: "BIRNLEX:", Namespace: "http://uri.neuinfo.org/nif/nifstd/birnlex_"},
	{Prefix: "UBERON:", Namespace: "http://purl.obolibrary.org/obo/UBERON_"},
	{Prefix: "NCBITaxon:", Namespace: "http://purl.obolibrary.org/obo/NCBITaxon_"},
	{Prefix: "PATO:", Namespace: "http://purl.obolibrary.org/obo/PATO_"},
	{Prefix: "ILX:", Namespace: "http://uri.interlex.org/base/ilx_"},
	{Prefix: "mmset1:", Namespace: "http://uri.interlex.org/tgbugs/uris/readable/sparc-nlp/mmset1/"},
	{Prefix: "mmset2cn:", Namespace: "http://uri.interlex.org/tgbugs/uris/readable/sparc-nlp/mmset2cn/"},
	{Prefix: "mmset4:", Namespace: "http://uri.interlex.org/tgbugs/uris/readable/sparc-nlp/mmset4/"},
	{Prefix: "ilxtr:", Namespace: ILXTRNamespace},
	{Prefix: "npokb:", Namespace: "http://uri.interlex.org/npo/uris/neurons/"},
	{Prefix: "PAXRAT:", Namespace: "http://uri.interlex.org/paxinos/uris/rat/labels/"},
	{Prefix: "MBA:", Namespace: "http://api.brain-map.org/api/v2/data/Structure/"},
	{Prefix: "NLX:", Namespace: "http://uri.neuinfo.org/nif/nifstd/nlx_"},
	{Prefix: "NIFSTD:", Namespace: "http://uri.neuinfo.org/nif/nifstd/"},
}

// ILXTRNamespace is the namespace of the readable InterLex relations used by NPO.
const ILXTRNamespace = "http://uri.interlex.org/tgbugs/uris/readable/"

// Locational phenotype relations.
const (
	// HasConnectedLocation is the super-property of every locational relation.
	HasConnectedLocation = ILXTRNamespace + "hasConnectedLocation"

	// HasSomaLocation relates a neuron to the location of its cell bodies.
	HasSomaLocation = ILXTRNamespace + "hasSomaLocation"

	// HasAxonLocation relates a neuron to a structure its axon passes through.
	HasAxonLocation = ILXTRNamespace + "hasAxonLocation"

	// HasAxonTerminalLocation relates a neuron to where its axon terminates.
	HasAxonTerminalLocation = ILXTRNamespace + "hasAxonTerminalLocation"

	// HasAxonSensoryLocation relates a sensory neuron to its receptive location.
	HasAxonSensoryLocation = ILXTRNamespace + "hasAxonSensoryLocation"

	// HasAxonLeadingToSensoryTerminal relates a neuron to axon segments leading to a sensory terminal.
	HasAxonLeadingToSensoryTerminal = ILXTRNamespace + "hasAxonLeadingToSensoryTerminal"

	// HasSensoryAxonTerminalLocation relates a neuron to its sensory axon terminal.
	HasSensoryAxonTerminalLocation = ILXTRNamespace + "hasSensoryAxonTerminalLocation"
)
