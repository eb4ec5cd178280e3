package sparql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/takatori/sbekms/internal/vocab"
)

// AssetMetadata is the uploaded-file metadata the annotator turns into
// triples. Only ID, FileName, and CreatedAt are expected; everything else
// is optional.
type AssetMetadata struct {
	ID            string    `json:"id,omitempty"`
	FileName      string    `json:"file_name"`
	FileExtension string    `json:"file_extension,omitempty"`
	FileSize      int64     `json:"file_size,omitempty"`
	MimeType      string    `json:"mime_type,omitempty"`
	LineCount     int       `json:"line_count,omitempty"`
	Title         string    `json:"title,omitempty"`
	Description   string    `json:"description,omitempty"`
	Author        string    `json:"author,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	WdoClasses    []string  `json:"wdo_classes,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Annotator generates RDF statements from asset metadata and writes them
// through the gateway's update path.
type Annotator struct {
	exec Executor
	ns   vocab.Namespaces
}

func NewAnnotator(exec Executor, ns vocab.Namespaces) *Annotator {
	return &Annotator{exec: exec, ns: ns}
}

// Annotate stores the asset's triples and returns the asset URI and the
// number of statements written.
func (a *Annotator) Annotate(ctx context.Context, meta AssetMetadata) (string, int, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	assetURI := a.ns.InstanceIRI("asset_" + localName(meta.ID))

	triples := a.buildTriples(assetURI, meta)
	update := renderInsert(a.ns, triples)
	if err := a.exec.Update(ctx, update); err != nil {
		return "", 0, err
	}
	return assetURI, len(triples), nil
}

type triple struct {
	subject   string // rendered term
	predicate string
	object    string
}

func (a *Annotator) buildTriples(assetURI string, meta AssetMetadata) []triple {
	asset := iriRef(assetURI)

	var triples []triple
	add := func(predicate, object string) {
		triples = append(triples, triple{subject: asset, predicate: predicate, object: object})
	}

	add("rdf:type", "wdo:"+vocab.ClassDigitalInformationCarrier)
	add("rdfs:label", quoted(meta.FileName))

	if meta.FileSize > 0 {
		add("wdo:"+vocab.PropHasFileSize, typedLiteral(fmt.Sprintf("%d", meta.FileSize), "xsd:integer"))
	}
	if meta.MimeType != "" {
		add("wdo:"+vocab.PropHasMimeType, quoted(meta.MimeType))
	}
	if meta.LineCount > 0 {
		add("wdo:"+vocab.PropHasLineCount, typedLiteral(fmt.Sprintf("%d", meta.LineCount), "xsd:integer"))
	}

	classes := meta.WdoClasses
	if len(classes) == 0 {
		classes = vocab.ClassesForFile(extensionOf(meta))
	}
	for _, class := range classes {
		if class == vocab.ClassDigitalInformationCarrier {
			continue
		}
		add("rdf:type", "wdo:"+localName(class))
	}

	if meta.Title != "" {
		add("dcterms:title", quoted(meta.Title))
	}
	if meta.Description != "" {
		add("dcterms:description", quoted(meta.Description))
	}
	if meta.Author != "" {
		add("dcterms:creator", quoted(meta.Author))
	}

	for _, tag := range meta.Tags {
		tagIRI := iriRef(a.ns.InstanceIRI("tag_" + localName(strings.ReplaceAll(tag, " ", "_"))))
		add("wdo:"+vocab.PropHasTag, tagIRI)
		triples = append(triples,
			triple{subject: tagIRI, predicate: "rdf:type", object: "wdo:" + vocab.ClassTag},
			triple{subject: tagIRI, predicate: "rdfs:label", object: quoted(tag)},
		)
	}

	if !meta.CreatedAt.IsZero() {
		created := meta.CreatedAt.UTC().Format("2006-01-02T15:04:05")
		add("dcterms:created", typedLiteral(created, "xsd:dateTime"))
	}

	return triples
}

func renderInsert(ns vocab.Namespaces, triples []triple) string {
	var b strings.Builder
	writePrefixes(&b, ns)
	b.WriteString("INSERT DATA {\n")
	for _, t := range triples {
		fmt.Fprintf(&b, "  %s %s %s .\n", t.subject, t.predicate, t.object)
	}
	b.WriteString("}\n")
	return b.String()
}

func quoted(value string) string {
	return `"` + escapeLiteral(value) + `"`
}

func typedLiteral(value, datatype string) string {
	return quoted(value) + "^^" + datatype
}

func extensionOf(meta AssetMetadata) string {
	if meta.FileExtension != "" {
		return meta.FileExtension
	}
	if i := strings.LastIndex(meta.FileName, "."); i >= 0 {
		return meta.FileName[i:]
	}
	return ""
}
