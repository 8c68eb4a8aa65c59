// Package sparql executes read-only SPARQL queries against the SCKAN triple
// store and decodes SPARQL 1.1 JSON results into rows.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Binding is one bound variable in a result row.
type Binding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Row maps variable names to their bindings. Unbound optional variables are
// absent from the map.
type Row map[string]Binding

// Value returns the lexical value bound to name.
func (r Row) Value(name string) (string, bool) {
	b, ok := r[name]
	if !ok {
		return "", false
	}
	return b.Value, true
}

// Results is the SPARQL 1.1 Query Results JSON document.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Row `json:"bindings"`
	} `json:"results"`
}

// Executor runs a query and returns its rows in result order.
type Executor interface {
	Execute(ctx context.Context, q Query) ([]Row, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, q Query) ([]Row, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, q Query) ([]Row, error) {
	return f(ctx, q)
}

// DecodeResults reads a SPARQL JSON results document.
func DecodeResults(r io.Reader) ([]Row, error) {
	var res Results
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if res.Results.Bindings == nil {
		return []Row{}, nil
	}
	return res.Results.Bindings, nil
}

// EncodeResults writes rows as a SPARQL JSON results document.
func EncodeResults(w io.Writer, vars []string, rows []Row) error {
	var res Results
	res.Head.Vars = vars
	res.Results.Bindings = rows
	if res.Results.Bindings == nil {
		res.Results.Bindings = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
