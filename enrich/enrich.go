// Package enrich derives categorical annotations for neuron metadata from the
// curated tables in vocabulary/npo.
package enrich

import (
	"regexp"
	"strings"

	"github.com/c360studio/sckan2json/vocabulary/npo"
)

// ModelCategory returns the first model whose ID occurs in curie, ignoring
// case. Models are tried in npo.ModelCategories order.
func ModelCategory(curie string) (npo.Model, bool) {
	lower := strings.ToLower(curie)
	for _, m := range npo.ModelCategories {
		if strings.Contains(lower, strings.ToLower(m.ID)) {
			return m, true
		}
	}
	return npo.Model{}, false
}

// CategorizePhenotypes maps each label through npo.PhenotypeCategories.
// Unmapped labels are passed through unchanged. The result has the same
// length and order as labels and is never nil.
func CategorizePhenotypes(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if c, ok := npo.PhenotypeCategories[l]; ok {
			out = append(out, c)
			continue
		}
		out = append(out, l)
	}
	return out
}

// DOI is a DOI reference found in free text.
type DOI struct {
	// URL is the full https://doi.org/ link as it appeared in the text.
	URL string `json:"url"`

	// DOI is the registrant and suffix, e.g. 10.1159/000060678.
	DOI string `json:"doi"`
}

var doiPattern = regexp.MustCompile(`https://doi\.org/([0-9]+\.[0-9]+/[^\s,]+)`)

// ExtractDOIs returns every non-overlapping DOI link in text, in order of
// appearance. The suffix ends at whitespace or a comma.
func ExtractDOIs(text string) []DOI {
	matches := doiPattern.FindAllStringSubmatch(text, -1)
	out := make([]DOI, 0, len(matches))
	for _, m := range matches {
		out = append(out, DOI{URL: m[0], DOI: m[1]})
	}
	return out
}
