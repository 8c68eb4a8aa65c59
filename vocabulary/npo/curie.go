package npo

import (
	"fmt"
	"strings"
)

// MultiValueSeparator joins multiple IRIs in aggregated (group_concat) bindings.
const MultiValueSeparator = "|"

// ToCurie compacts iri using the first matching namespace in Prefixes.
// Strings that match no namespace, including strings that are already CURIEs,
// are returned unchanged.
func ToCurie(iri string) string {
	for _, m := range Prefixes {
		if strings.HasPrefix(iri, m.Namespace) {
			return m.Prefix + iri[len(m.Namespace):]
		}
	}
	return iri
}

// ToIRI expands a CURIE. It splits on the first colon only, so local parts
// may themselves contain colons.
func ToIRI(curie string) (string, error) {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return "", fmt.Errorf("expand %q: %w", curie, ErrUnknownPrefix)
	}
	ns, ok := NamespaceFor(prefix)
	if !ok {
		return "", fmt.Errorf("expand %q: prefix %q: %w", curie, prefix, ErrUnknownPrefix)
	}
	return ns + local, nil
}

// NamespaceFor returns the namespace registered for prefix. The prefix may be
// given with or without its trailing colon.
func NamespaceFor(prefix string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, ":") + ":"
	for _, m := range Prefixes {
		if m.Prefix == prefix {
			return m.Namespace, true
		}
	}
	return "", false
}

// SplitMultiValued splits a "|"-joined binding, drops empty segments and
// canonicalizes each one. Order and duplicates are preserved. An empty input
// yields an empty, non-nil slice.
func SplitMultiValued(raw string) []string {
	return SplitMultiValuedSep(raw, MultiValueSeparator)
}

// SplitMultiValuedSep is SplitMultiValued with an explicit separator.
func SplitMultiValuedSep(raw, sep string) []string {
	out := make([]string, 0)
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, sep) {
		if part == "" {
			continue
		}
		out = append(out, ToCurie(part))
	}
	return out
}
