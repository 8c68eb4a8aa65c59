package npo

// TablesVersion identifies the revision of the curated tables below. Bump it
// whenever an entry is added, removed or reordered.
const TablesVersion = "2024.3"

// Model is a curated connectivity model that neuron populations belong to.
type Model struct {
	// ID is the substring that identifies the model inside a neuron CURIE.
	ID string
	// Category is the human-readable model name.
	Category string
}

// ModelCategories is scanned in order and the first ID found in a neuron CURIE
// wins. The order is curated; do not sort it.
var ModelCategories = []Model{
	{ID: "bolew", Category: "Bolser-Lewis Model of Defensive Breathing"},
	{ID: "keast", Category: "Keast Model of Bladder Innervation"},
	{ID: "bromo", Category: "SAWG Model of Bronchomotor Control"},
	{ID: "sdcol", Category: "SAWG Model of the Descending Colon"},
	{ID: "pancr", Category: "SAWG Model of the Pancreas"},
	{ID: "splen", Category: "SAWG Model of the Spleen"},
	{ID: "sstom", Category: "SAWG Model of the Stomach"},
	{ID: "aacar", Category: "UCLA Model of the Heart"},
	{ID: "mmset2cn", Category: "Cranial Nerve Connections"},
	{ID: "femrep", Category: "Female Reproductive System"},
	{ID: "kidney", Category: "Kidney Connections"},
	{ID: "liver", Category: "Liver Connections"},
	{ID: "prostate", Category: "Male Reproductive System (Prostate)"},
	{ID: "semves", Category: "Male Reproductive System (Seminal Vesicles)"},
	{ID: "senmot", Category: "Sensory-Motor Connections"},
	{ID: "swglnd", Category: "Sweat Gland Connections"},
	{ID: "mmset1", Category: "Uncategorized Connections (Set 1)"},
	{ID: "mmset4", Category: "Uncategorized Connections (Set 4)"},
}

// PhenotypeCategories maps raw phenotype labels to display categories.
// Composite keys cover sources that join two phenotype labels with ", ".
var PhenotypeCategories = map[string]string{
	"Parasympathetic phenotype":                            "ANS: Parasympathetic",
	"Pre ganglionic phenotype, Parasympathetic phenotype":  "ANS: Parasympathetic Pre-Ganglionic",
	"Parasympathetic phenotype, Pre ganglionic phenotype":  "ANS: Parasympathetic Pre-Ganglionic",
	"Post ganglionic phenotype, Parasympathetic phenotype": "ANS: Parasympathetic Post-Ganglionic",
	"Parasympathetic phenotype, Post ganglionic phenotype": "ANS: Parasympathetic Post-Ganglionic",
	"Sympathetic phenotype":                                "ANS: Sympathetic",
	"Pre ganglionic phenotype, Sympathetic phenotype":      "ANS: Sympathetic Pre-Ganglionic",
	"Sympathetic phenotype, Pre ganglionic phenotype":      "ANS: Sympathetic Pre-Ganglionic",
	"Post ganglionic phenotype, Sympathetic phenotype":     "ANS: Sympathetic Post-Ganglionic",
	"Sympathetic phenotype, Post ganglionic phenotype":     "ANS: Sympathetic Post-Ganglionic",
	"Enteric phenotype":                                    "ANS: Enteric",
	"Sensory phenotype":                                    "Circuit Role: Sensory",
	"Motor phenotype":                                      "Circuit Role: Motor",
	"Intrinsic phenotype":                                  "Circuit Role: Intrinsic",
	"Inhibitory phenotype":                                 "Functional Circuit Role: Inhibitory",
	"Excitatory phenotype":                                 "Functional Circuit Role: Excitatory",
	"Spinal cord ascending projection phenotype":           "Projection: Spinal cord ascending projection phenotype",
	"Spinal cord descending projection phenotype":          "Projection: Spinal cord descending projection phenotype",
	"Anterior projecting phenotype":                        "Projection: Anterior projecting",
	"Posterior projecting phenotype":                       "Projection: Posterior projecting",
	"Intestino fugal projection phenotype":                 "Projection: Intestino fugal projection phenotype",
}

// Location type categories.
const (
	LocationSoma     = "soma"
	LocationVia      = "via"
	LocationTerminal = "terminal"
	LocationSensory  = "sensory"
)

// LocationTypes maps a locational relation CURIE to its location category.
// Relations not listed here have no category.
var LocationTypes = map[string]string{
	"ilxtr:hasSomaLocation":         LocationSoma,
	"ilxtr:hasAxonLocation":         LocationVia,
	"ilxtr:hasAxonTerminalLocation": LocationTerminal,
	"ilxtr:hasAxonSensoryLocation":  LocationSensory,
}

// RelationLabel is a seed entry for the label dictionary.
type RelationLabel struct {
	// Key is the bare relation name, which is how pathway nodes report their type.
	Key   string
	IRI   string
	Label string
}

// RelationLabels are always present in the label dictionary, whether or not the
// query results reference them.
var RelationLabels = []RelationLabel{
	{Key: "hasSomaLocation", IRI: HasSomaLocation, Label: "soma"},
	{Key: "hasAxonLocation", IRI: HasAxonLocation, Label: "axon"},
	{Key: "hasAxonLeadingToSensoryTerminal", IRI: HasAxonLeadingToSensoryTerminal, Label: "axon to sensory"},
	{Key: "hasSensoryAxonTerminalLocation", IRI: HasSensoryAxonTerminalLocation, Label: "sensory terminal"},
	{Key: "hasAxonTerminalLocation", IRI: HasAxonTerminalLocation, Label: "axon terminal"},
}

// LocationTypeFor returns the location category of a relation CURIE.
func LocationTypeFor(relation string) (string, bool) {
	t, ok := LocationTypes[relation]
	return t, ok
}
