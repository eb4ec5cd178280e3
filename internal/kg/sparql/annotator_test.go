package sparql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateFullMetadata(t *testing.T) {
	exec := &fakeExecutor{}
	annotator := NewAnnotator(exec, testNS)

	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	assetURI, count, err := annotator.Annotate(context.Background(), AssetMetadata{
		ID:          "42",
		FileName:    "demo.py",
		FileSize:    1024,
		MimeType:    "text/x-python",
		LineCount:   57,
		Title:       "Demo Project",
		Description: "A demo",
		Author:      "alice",
		Tags:        []string{"web development"},
		CreatedAt:   created,
	})
	require.NoError(t, err)

	assert.Equal(t, "http://sbekms.example.org/instances/asset_42", assetURI)

	require.Len(t, exec.updates, 1)
	update := exec.updates[0]
	assert.True(t, strings.HasSuffix(strings.TrimSpace(update), "}"))
	assert.Contains(t, update, "INSERT DATA {")

	asset := "<http://sbekms.example.org/instances/asset_42>"
	tag := "<http://sbekms.example.org/instances/tag_web_development>"
	expected := []string{
		asset + " rdf:type wdo:DigitalInformationCarrier .",
		asset + ` rdfs:label "demo.py" .`,
		asset + ` wdo:hasFileSize "1024"^^xsd:integer .`,
		asset + ` wdo:hasMimeType "text/x-python" .`,
		asset + ` wdo:hasLineCount "57"^^xsd:integer .`,
		asset + " rdf:type wdo:PythonSourceCodeFile .",
		asset + " rdf:type wdo:SourceCodeFile .",
		asset + ` dcterms:title "Demo Project" .`,
		asset + ` dcterms:description "A demo" .`,
		asset + ` dcterms:creator "alice" .`,
		asset + " wdo:hasTag " + tag + " .",
		tag + " rdf:type wdo:Tag .",
		tag + ` rdfs:label "web development" .`,
		asset + ` dcterms:created "2024-03-01T10:30:00"^^xsd:dateTime .`,
	}
	for _, statement := range expected {
		assert.Contains(t, update, statement)
	}
	assert.Equal(t, len(expected), count)
}

func TestAnnotateGeneratesIDWhenAbsent(t *testing.T) {
	exec := &fakeExecutor{}
	annotator := NewAnnotator(exec, testNS)

	first, _, err := annotator.Annotate(context.Background(), AssetMetadata{FileName: "a.txt"})
	require.NoError(t, err)
	second, _, err := annotator.Annotate(context.Background(), AssetMetadata{FileName: "a.txt"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "http://sbekms.example.org/instances/asset_"))
	assert.NotEqual(t, first, second)
}

func TestAnnotateMinimalMetadata(t *testing.T) {
	exec := &fakeExecutor{}
	annotator := NewAnnotator(exec, testNS)

	_, count, err := annotator.Annotate(context.Background(), AssetMetadata{FileName: "README.md"})
	require.NoError(t, err)

	update := exec.updates[0]
	// Carrier type, label, and the extension-derived documentation class.
	assert.Equal(t, 3, count)
	assert.Contains(t, update, "rdf:type wdo:DigitalInformationCarrier .")
	assert.Contains(t, update, "rdf:type wdo:DocumentationFile .")
	assert.NotContains(t, update, "wdo:hasFileSize")
	assert.NotContains(t, update, "dcterms:created")
}

func TestAnnotateExplicitClassesSkipCarrierDuplicate(t *testing.T) {
	exec := &fakeExecutor{}
	annotator := NewAnnotator(exec, testNS)

	_, _, err := annotator.Annotate(context.Background(), AssetMetadata{
		FileName:   "style.css",
		WdoClasses: []string{"DigitalInformationCarrier", "CSSFile"},
	})
	require.NoError(t, err)

	update := exec.updates[0]
	assert.Equal(t, 1, strings.Count(update, "rdf:type wdo:DigitalInformationCarrier ."))
	assert.Contains(t, update, "rdf:type wdo:CSSFile .")
}

func TestAnnotateEscapesLiterals(t *testing.T) {
	exec := &fakeExecutor{}
	annotator := NewAnnotator(exec, testNS)

	_, _, err := annotator.Annotate(context.Background(), AssetMetadata{
		FileName: `weird"name.txt`,
		Title:    "line one\nline two",
	})
	require.NoError(t, err)

	update := exec.updates[0]
	assert.Contains(t, update, `rdfs:label "weird\"name.txt" .`)
	assert.Contains(t, update, `dcterms:title "line one\nline two" .`)
}

func TestAnnotateUpdateFailurePropagates(t *testing.T) {
	exec := &failingExecutor{}
	annotator := NewAnnotator(exec, testNS)

	_, _, err := annotator.Annotate(context.Background(), AssetMetadata{FileName: "a.txt"})
	require.Error(t, err)
}

type failingExecutor struct{}

func (f *failingExecutor) Select(context.Context, string) (*SelectResult, error) {
	return &SelectResult{}, nil
}

func (f *failingExecutor) Update(context.Context, string) error {
	return assert.AnError
}
