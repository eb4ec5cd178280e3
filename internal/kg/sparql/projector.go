package sparql

import (
	"strconv"
	"strings"

	"github.com/takatori/sbekms/internal/kg"
	"github.com/takatori/sbekms/internal/vocab"
)

// graphProjector accumulates nodes and edges from binding rows. Node
// identity is the URI; the first row mentioning a URI wins for label and
// type. Edges keep multigraph semantics and are never merged.
type graphProjector struct {
	includeLiterals bool
	order           []string
	nodes           map[string]*kg.GraphNode
	edges           []kg.GraphEdge
}

// ProjectGraph converts graph-mode binding rows into the node/edge model.
//
// Subjects always become nodes. Objects become nodes only when their value
// is IRI-shaped; literal objects fold into the subject's property bag keyed
// by the predicate's local name. When includeLiterals is false the literal
// triples are dropped entirely instead of folded.
func ProjectGraph(rows []BindingRow, includeLiterals bool) ([]kg.GraphNode, []kg.GraphEdge) {
	p := &graphProjector{
		includeLiterals: includeLiterals,
		nodes:           make(map[string]*kg.GraphNode),
	}
	for _, row := range rows {
		p.consume(row)
	}

	nodes := make([]kg.GraphNode, 0, len(p.order))
	for _, uri := range p.order {
		nodes = append(nodes, *p.nodes[uri])
	}
	return nodes, p.edges
}

func (p *graphProjector) consume(row BindingRow) {
	subject, ok := row.URI(varName(varSubject))
	if !ok {
		return
	}
	predicate, ok := row.URI(varName(varPredicate))
	if !ok {
		return
	}

	subjectNode := p.ensureNode(subject,
		row.Value(varName(varSubjectLabel)),
		row.Value(varName(varSubjectType)))

	relationship := vocab.LocalName(predicate)
	if object, isURI := row.URI(varName(varObject)); isURI {
		p.ensureNode(object,
			row.Value(varName(varObjectLabel)),
			row.Value(varName(varObjectType)))
		p.edges = append(p.edges, kg.GraphEdge{
			Source:       subject,
			Target:       object,
			Relationship: relationship,
		})
		return
	}

	if literal, isLiteral := row.Literal(varName(varObject)); isLiteral && p.includeLiterals {
		if subjectNode.Properties == nil {
			subjectNode.Properties = make(map[string]string)
		}
		if _, exists := subjectNode.Properties[relationship]; !exists {
			subjectNode.Properties[relationship] = literal
		}
	}
}

func (p *graphProjector) ensureNode(uri, label, typeURI string) *kg.GraphNode {
	if node, ok := p.nodes[uri]; ok {
		return node
	}

	if label == "" {
		label = vocab.LocalName(uri)
	}
	nodeType := "Resource"
	if typeURI != "" {
		nodeType = vocab.LocalName(typeURI)
	}

	node := &kg.GraphNode{ID: uri, Label: label, Type: nodeType}
	p.nodes[uri] = node
	p.order = append(p.order, uri)
	return node
}

// varName strips the leading "?" so builder variable constants double as
// binding keys.
func varName(variable string) string {
	return strings.TrimPrefix(variable, "?")
}

// ProjectSearchResults groups search-mode binding rows by asset URI into
// deduplicated results. The first row per asset wins for scalar fields;
// tags and ontology classes accumulate across rows.
func ProjectSearchResults(rows []BindingRow) []kg.SearchResult {
	var order []string
	byAsset := make(map[string]*kg.SearchResult)
	seenTag := make(map[string]map[string]bool)
	seenClass := make(map[string]map[string]bool)

	for _, row := range rows {
		assetURI, ok := row.URI("asset")
		if !ok {
			continue
		}

		result, exists := byAsset[assetURI]
		if !exists {
			fileName := row.Value("fileName")
			result = &kg.SearchResult{
				AssetID:     vocab.LocalName(assetURI),
				FileName:    fileName,
				Title:       row.Value("title"),
				Description: row.Value("description"),
				Author:      row.Value("author"),
				FileType:    fileTypeOf(fileName),
				MimeType:    row.Value("mimeType"),
				CreatedAt:   row.Value("created"),
			}
			if size, err := strconv.ParseInt(row.Value("fileSize"), 10, 64); err == nil {
				result.FileSize = size
			}
			byAsset[assetURI] = result
			order = append(order, assetURI)
			seenTag[assetURI] = make(map[string]bool)
			seenClass[assetURI] = make(map[string]bool)
		}

		if tag := row.Value("tagLabel"); tag != "" && !seenTag[assetURI][tag] {
			seenTag[assetURI][tag] = true
			result.Tags = append(result.Tags, tag)
		}
		if clsURI, ok := row.URI("cls"); ok {
			cls := vocab.LocalName(clsURI)
			if cls != "" && !seenClass[assetURI][cls] {
				seenClass[assetURI][cls] = true
				result.WdoClasses = append(result.WdoClasses, cls)
			}
		}
	}

	results := make([]kg.SearchResult, 0, len(order))
	for _, uri := range order {
		results = append(results, *byAsset[uri])
	}
	return results
}

// ProjectSuggestionCandidates flattens a suggestion result into its text
// values, preserving row order.
func ProjectSuggestionCandidates(rows []BindingRow) []string {
	candidates := make([]string, 0, len(rows))
	for _, row := range rows {
		if text := row.Value("text"); text != "" {
			candidates = append(candidates, text)
		}
	}
	return candidates
}

// fileTypeOf derives the file type from the filename extension.
func fileTypeOf(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		return strings.ToLower(fileName[i+1:])
	}
	return ""
}
