package sparql

import (
	"encoding/json"
	"testing"
)

func TestBindingRowAccessors(t *testing.T) {
	raw := `{
		"results": {
			"bindings": [
				{
					"s": {"type": "uri", "value": "http://x/a"},
					"o": {"type": "literal", "value": "1024", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}
				}
			]
		}
	}`

	var result SelectResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(result.Results.Bindings) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Results.Bindings))
	}
	row := result.Results.Bindings[0]

	if !row.Bound("s") || row.Bound("missing") {
		t.Error("Bound misreported variables")
	}

	if uri, ok := row.URI("s"); !ok || uri != "http://x/a" {
		t.Errorf("URI(s) = %q, %v", uri, ok)
	}
	if _, ok := row.URI("o"); ok {
		t.Error("literal term reported as URI")
	}
	if _, ok := row.URI("missing"); ok {
		t.Error("unbound variable reported as URI")
	}

	if lit, ok := row.Literal("o"); !ok || lit != "1024" {
		t.Errorf("Literal(o) = %q, %v", lit, ok)
	}
	if _, ok := row.Literal("s"); ok {
		t.Error("uri term reported as literal")
	}

	if row.Value("o") != "1024" || row.Value("missing") != "" {
		t.Error("Value misreported")
	}
}

func TestBindingRowUntypedTerms(t *testing.T) {
	// Some stores omit term types; scheme detection fills the gap.
	row := BindingRow{
		"a": {Value: "http://x/resource"},
		"b": {Value: "plain text"},
	}

	if uri, ok := row.URI("a"); !ok || uri != "http://x/resource" {
		t.Errorf("URI(a) = %q, %v", uri, ok)
	}
	if _, ok := row.Literal("a"); ok {
		t.Error("IRI-shaped untyped term reported as literal")
	}
	if lit, ok := row.Literal("b"); !ok || lit != "plain text" {
		t.Errorf("Literal(b) = %q, %v", lit, ok)
	}
}
