package kg

import (
	"context"

	"github.com/morikuni/failure/v2"
	"github.com/takatori/sbekms/internal/errors"
)

type QueryType string

const (
	QueryNeighborhood QueryType = "neighborhood"
	QueryPath         QueryType = "path"
	QueryCluster      QueryType = "cluster"
	QueryFull         QueryType = "full"
)

type SearchType string

const (
	SearchSemantic SearchType = "semantic"
	SearchTextual  SearchType = "textual"
	SearchHybrid   SearchType = "hybrid"
)

const (
	defaultDepth    = 2
	defaultMaxNodes = 100
	defaultLimit    = 20
)

// GraphQuery is a request for graph exploration.
type GraphQuery struct {
	QueryType       QueryType `json:"query_type"`
	CenterEntity    string    `json:"center_entity,omitempty"`
	SourceEntity    string    `json:"source_entity,omitempty"`
	TargetEntity    string    `json:"target_entity,omitempty"`
	Depth           int       `json:"depth,omitempty"`     // 1..5, defaults to 2
	MaxNodes        int       `json:"max_nodes,omitempty"` // 10..1000, defaults to 100
	IncludeLiterals *bool     `json:"include_literals,omitempty"`
}

// WithDefaults fills unset numeric fields so validation and query building
// see concrete values.
func (q GraphQuery) WithDefaults() GraphQuery {
	if q.Depth == 0 {
		q.Depth = defaultDepth
	}
	if q.MaxNodes == 0 {
		q.MaxNodes = defaultMaxNodes
	}
	return q
}

// LiteralsIncluded reports whether literal objects should surface in the
// projected graph. Unset means included.
func (q GraphQuery) LiteralsIncluded() bool {
	return q.IncludeLiterals == nil || *q.IncludeLiterals
}

// Validate rejects malformed queries before any query text is generated.
// Path queries fail fast when either endpoint entity is absent.
func (q GraphQuery) Validate() error {
	switch q.QueryType {
	case QueryNeighborhood, QueryPath, QueryCluster, QueryFull:
	default:
		return failure.New(
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("unknown query type")),
			failure.Context{"query_type": string(q.QueryType)},
		)
	}
	if q.Depth < 1 || q.Depth > 5 {
		return failure.New(
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("depth out of range, expected 1-5")),
		)
	}
	if q.MaxNodes < 10 || q.MaxNodes > 1000 {
		return failure.New(
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("max_nodes out of range, expected 10-1000")),
		)
	}
	if q.QueryType == QueryPath && (q.SourceEntity == "" || q.TargetEntity == "") {
		return failure.New(
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("path query requires both source_entity and target_entity")),
			failure.Context{
				"source_entity": q.SourceEntity,
				"target_entity": q.TargetEntity,
			},
		)
	}
	return nil
}

// SearchQuery is the unified request for textual, semantic, and hybrid
// search, optionally narrowed by advanced filters.
type SearchQuery struct {
	Query      string     `json:"query"`
	SearchType SearchType `json:"search_type,omitempty"` // defaults to semantic
	Limit      int        `json:"limit,omitempty"`       // defaults to 20
	Offset     int        `json:"offset,omitempty"`

	// Advanced filters; all nil/empty means the basic query path runs.
	FileTypes   []string `json:"file_types,omitempty"`
	WdoClasses  []string `json:"wdo_classes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Author      string   `json:"author,omitempty"`
	DateFrom    string   `json:"date_from,omitempty"` // ISO 8601 date
	DateTo      string   `json:"date_to,omitempty"`   // ISO 8601 date
	MinFileSize *int64   `json:"min_file_size,omitempty"`
	MaxFileSize *int64   `json:"max_file_size,omitempty"`
	HasContent  *bool    `json:"has_content,omitempty"`
}

func (q SearchQuery) WithDefaults() SearchQuery {
	if q.SearchType == "" {
		q.SearchType = SearchSemantic
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	return q
}

// HasAdvancedFilters reports whether at least one optional filter field is
// set. It selects the advanced query-builder path and is a pure function of
// the filter fields.
func (q SearchQuery) HasAdvancedFilters() bool {
	return len(q.FileTypes) > 0 ||
		len(q.WdoClasses) > 0 ||
		len(q.Tags) > 0 ||
		q.Author != "" ||
		q.DateFrom != "" ||
		q.DateTo != "" ||
		q.MinFileSize != nil ||
		q.MaxFileSize != nil ||
		q.HasContent != nil
}

// ActiveFilters names the filters set on the query, in a fixed order.
func (q SearchQuery) ActiveFilters() []string {
	var active []string
	if len(q.FileTypes) > 0 {
		active = append(active, "file_types")
	}
	if len(q.WdoClasses) > 0 {
		active = append(active, "wdo_classes")
	}
	if len(q.Tags) > 0 {
		active = append(active, "tags")
	}
	if q.Author != "" {
		active = append(active, "author")
	}
	if q.DateFrom != "" {
		active = append(active, "date_from")
	}
	if q.DateTo != "" {
		active = append(active, "date_to")
	}
	if q.MinFileSize != nil {
		active = append(active, "min_file_size")
	}
	if q.MaxFileSize != nil {
		active = append(active, "max_file_size")
	}
	if q.HasContent != nil {
		active = append(active, "has_content")
	}
	return active
}

// GraphNode is identified by its URI. First occurrence of a URI in a result
// set wins for label and type; later rows only contribute properties.
type GraphNode struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// GraphEdge keeps multigraph semantics: repeated statements between the
// same pair are all preserved.
type GraphEdge struct {
	Source       string            `json:"source"`
	Target       string            `json:"target"`
	Relationship string            `json:"relationship"`
	Properties   map[string]string `json:"properties,omitempty"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphAnalytics is a derived snapshot over one projected graph.
type GraphAnalytics struct {
	TotalNodes          int            `json:"total_nodes"`
	TotalEdges          int            `json:"total_edges"`
	NodeTypes           map[string]int `json:"node_types"`
	RelationshipTypes   map[string]int `json:"relationship_types"`
	AvgDegree           float64        `json:"avg_degree"`
	MaxDegree           int            `json:"max_degree"`
	ConnectedComponents int            `json:"connected_components"`
	Density             float64        `json:"density"`
}

// VisualizationConfig carries rendering hints for the frontend visualizer.
type VisualizationConfig struct {
	Layout         string `json:"layout"`
	NodeColorField string `json:"node_color_field"`
	EdgeLabelField string `json:"edge_label_field"`
	Physics        bool   `json:"physics"`
}

type QueryInfo struct {
	QueryType      QueryType `json:"query_type"`
	CenterEntity   string    `json:"center_entity,omitempty"`
	Depth          int       `json:"depth"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	TotalResults   int       `json:"total_results"`
}

type ExploreResult struct {
	Graph         Graph               `json:"graph"`
	Analytics     GraphAnalytics      `json:"analytics"`
	Visualization VisualizationConfig `json:"visualization_config"`
	QueryInfo     QueryInfo           `json:"query_info"`
}

// SearchResult is one scored asset hit.
type SearchResult struct {
	AssetID        string   `json:"asset_id"`
	FileName       string   `json:"file_name"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Author         string   `json:"author,omitempty"`
	FileType       string   `json:"file_type,omitempty"`
	MimeType       string   `json:"mime_type,omitempty"`
	FileSize       int64    `json:"file_size,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	WdoClasses     []string `json:"wdo_classes,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	RelevanceScore float64  `json:"relevance_score"`
	Highlights     []string `json:"highlights,omitempty"`
}

type SearchResponse struct {
	Results        []SearchResult `json:"results"`
	TotalResults   int            `json:"total_results"`
	SearchTimeMs   int64          `json:"search_time_ms"`
	Suggestions    []string       `json:"suggestions"`
	SearchMode     SearchType     `json:"search_mode"`
	FiltersApplied []string       `json:"filters_applied"`
}

// GraphExplorer translates a GraphQuery into a projected graph with
// analytics attached.
type GraphExplorer interface {
	Explore(context.Context, GraphQuery) (*ExploreResult, error)
}

// AssetSearcher runs textual/semantic/hybrid search over annotated assets.
type AssetSearcher interface {
	Search(context.Context, SearchQuery) (*SearchResponse, error)
}
