package sparql

import (
	"github.com/takatori/sbekms/internal/vocab"
)

// SelectResult mirrors the SPARQL 1.1 JSON results shape:
// {"results": {"bindings": [{"var": {"type": ..., "value": ...}, ...}]}}.
type SelectResult struct {
	Results struct {
		Bindings []BindingRow `json:"bindings"`
	} `json:"results"`
}

// Term is one bound value inside a binding row.
type Term struct {
	Type     string `json:"type"` // "uri", "literal", "bnode"
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
}

// BindingRow maps variable names to bound terms; unbound variables are
// simply absent. Accessors replace the ad hoc nil-checking that otherwise
// spreads through projection code.
type BindingRow map[string]Term

// Bound reports whether the variable is bound in this row.
func (r BindingRow) Bound(variable string) bool {
	_, ok := r[variable]
	return ok
}

// Value returns the raw bound value, or "" when unbound.
func (r BindingRow) Value(variable string) string {
	return r[variable].Value
}

// URI returns the bound value when it is IRI-shaped. Stores that omit the
// term type still get scheme-prefix detection.
func (r BindingRow) URI(variable string) (string, bool) {
	t, ok := r[variable]
	if !ok {
		return "", false
	}
	if t.Type == "uri" || (t.Type == "" && vocab.IsURI(t.Value)) {
		return t.Value, true
	}
	return "", false
}

// Literal returns the bound value when it is not IRI-shaped.
func (r BindingRow) Literal(variable string) (string, bool) {
	t, ok := r[variable]
	if !ok {
		return "", false
	}
	if t.Type == "uri" || (t.Type == "" && vocab.IsURI(t.Value)) {
		return "", false
	}
	return t.Value, true
}
