package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Prune removes null, empty string and empty object values from v,
// recursively. Arrays are never removed for being empty, but elements that
// prune to an empty value are dropped from them. v is expected to be a
// decoded JSON value.
func Prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			p := Prune(val)
			if isEmpty(p) {
				continue
			}
			out[k] = p
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, el := range t {
			p := Prune(el)
			if isEmpty(p) {
				continue
			}
			out = append(out, p)
		}
		return out
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// Tree converts the document to a generic JSON tree and prunes each top-level
// section. The sections themselves are always kept, so an empty section is
// emitted as {} or [] rather than dropped.
func (d *Document) Tree() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	tree := make(map[string]any, len(raw))
	for section, v := range raw {
		p := Prune(v)
		if p == nil {
			return nil, fmt.Errorf("section %s is null", section)
		}
		tree[section] = p
	}
	return tree, nil
}
