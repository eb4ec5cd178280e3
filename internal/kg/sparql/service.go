package sparql

import (
	"context"
	"log/slog"
	"time"

	"github.com/takatori/sbekms/internal/kg"
	"github.com/takatori/sbekms/internal/vocab"
)

const suggestionPrefixLength = 3

// Service composes the query builders, the triple-store gateway, and the
// projection/scoring stages into the two public operations. It holds no
// mutable state; concurrent requests need no coordination.
type Service struct {
	exec Executor
	ns   vocab.Namespaces
}

func NewService(exec Executor, ns vocab.Namespaces) *Service {
	return &Service{exec: exec, ns: ns}
}

// Explore runs one graph exploration request end to end. Reported time
// covers the store round trip plus local projection.
func (s *Service) Explore(ctx context.Context, query kg.GraphQuery) (*kg.ExploreResult, error) {
	query = query.WithDefaults()

	sparqlText, err := BuildGraphQuery(query, s.ns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.exec.Select(ctx, sparqlText)
	if err != nil {
		return nil, err
	}

	rows := result.Results.Bindings
	nodes, edges := ProjectGraph(rows, query.LiteralsIncluded())
	analytics := kg.Analytics(nodes, edges)
	elapsed := time.Since(start).Milliseconds()

	return &kg.ExploreResult{
		Graph:         kg.Graph{Nodes: nodes, Edges: edges},
		Analytics:     analytics,
		Visualization: visualizationFor(query, len(nodes)),
		QueryInfo: kg.QueryInfo{
			QueryType:      query.QueryType,
			CenterEntity:   query.CenterEntity,
			Depth:          query.Depth,
			ResponseTimeMs: elapsed,
			TotalResults:   len(rows),
		},
	}, nil
}

// Search runs one search request end to end: primary query, projection,
// scoring, and a best-effort suggestion lookup.
func (s *Service) Search(ctx context.Context, query kg.SearchQuery) (*kg.SearchResponse, error) {
	query = query.WithDefaults()

	sparqlText, err := BuildSearchQuery(query, s.ns)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.exec.Select(ctx, sparqlText)
	if err != nil {
		return nil, err
	}

	results := ProjectSearchResults(result.Results.Bindings)
	for i := range results {
		results[i].RelevanceScore = kg.Score(query.Query, results[i])
		results[i].Highlights = kg.Highlights(query.Query, results[i])
	}
	elapsed := time.Since(start).Milliseconds()

	return &kg.SearchResponse{
		Results:        results,
		TotalResults:   len(results),
		SearchTimeMs:   elapsed,
		Suggestions:    s.suggestions(ctx, query.Query),
		SearchMode:     query.SearchType,
		FiltersApplied: query.ActiveFilters(),
	}, nil
}

// suggestions looks up alternative terms for the query. A failure here must
// never fail the parent search; it degrades to an empty list.
func (s *Service) suggestions(ctx context.Context, query string) []string {
	runes := []rune(query)
	if len(runes) < suggestionPrefixLength {
		return []string{}
	}

	prefix := string(runes[:suggestionPrefixLength])
	result, err := s.exec.Select(ctx, BuildSuggestionQuery(prefix, s.ns))
	if err != nil {
		slog.Warn("suggestion lookup failed", "query", query, "error", err)
		return []string{}
	}

	candidates := ProjectSuggestionCandidates(result.Results.Bindings)
	return kg.FilterSuggestions(candidates, query)
}

// visualizationFor picks rendering hints by query shape. Physics layouts
// get too busy past a couple hundred nodes.
func visualizationFor(query kg.GraphQuery, nodeCount int) kg.VisualizationConfig {
	layout := "force-directed"
	if query.QueryType == kg.QueryPath {
		layout = "hierarchical"
	}
	return kg.VisualizationConfig{
		Layout:         layout,
		NodeColorField: "type",
		EdgeLabelField: "relationship",
		Physics:        nodeCount < 200,
	}
}
