package kg

import (
	"testing"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/takatori/sbekms/internal/errors"
)

func TestGraphQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   GraphQuery
		wantErr bool
	}{
		{
			name:  "valid neighborhood",
			query: GraphQuery{QueryType: QueryNeighborhood, Depth: 2, MaxNodes: 100},
		},
		{
			name: "valid path",
			query: GraphQuery{
				QueryType:    QueryPath,
				SourceEntity: "http://x/a",
				TargetEntity: "http://x/b",
				Depth:        2,
				MaxNodes:     50,
			},
		},
		{
			name:    "path missing source",
			query:   GraphQuery{QueryType: QueryPath, TargetEntity: "http://x/b", Depth: 2, MaxNodes: 50},
			wantErr: true,
		},
		{
			name:    "path missing target",
			query:   GraphQuery{QueryType: QueryPath, SourceEntity: "http://x/a", Depth: 2, MaxNodes: 50},
			wantErr: true,
		},
		{
			name:    "unknown type",
			query:   GraphQuery{QueryType: "galaxy", Depth: 2, MaxNodes: 50},
			wantErr: true,
		},
		{
			name:    "depth too deep",
			query:   GraphQuery{QueryType: QueryFull, Depth: 6, MaxNodes: 50},
			wantErr: true,
		},
		{
			name:    "max nodes too small",
			query:   GraphQuery{QueryType: QueryFull, Depth: 2, MaxNodes: 5},
			wantErr: true,
		},
		{
			name:    "max nodes too large",
			query:   GraphQuery{QueryType: QueryFull, Depth: 2, MaxNodes: 1001},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.query.Validate()
			if test.wantErr {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrInvalidQuery, failure.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGraphQueryWithDefaults(t *testing.T) {
	q := GraphQuery{QueryType: QueryNeighborhood}.WithDefaults()
	assert.Equal(t, 2, q.Depth)
	assert.Equal(t, 100, q.MaxNodes)
	assert.True(t, q.LiteralsIncluded())

	q = GraphQuery{QueryType: QueryNeighborhood, Depth: 4, MaxNodes: 500, IncludeLiterals: lo.ToPtr(false)}.WithDefaults()
	assert.Equal(t, 4, q.Depth)
	assert.Equal(t, 500, q.MaxNodes)
	assert.False(t, q.LiteralsIncluded())
}

func TestSearchQueryHasAdvancedFilters(t *testing.T) {
	assert.False(t, SearchQuery{Query: "demo"}.HasAdvancedFilters())
	assert.False(t, SearchQuery{Query: "demo", SearchType: SearchHybrid, Limit: 50, Offset: 10}.HasAdvancedFilters())

	tests := []struct {
		name  string
		query SearchQuery
	}{
		{"file types", SearchQuery{FileTypes: []string{"py"}}},
		{"wdo classes", SearchQuery{WdoClasses: []string{"SourceCodeFile"}}},
		{"tags", SearchQuery{Tags: []string{"backend"}}},
		{"author", SearchQuery{Author: "alice"}},
		{"date from", SearchQuery{DateFrom: "2024-01-01"}},
		{"date to", SearchQuery{DateTo: "2024-12-31"}},
		{"min size", SearchQuery{MinFileSize: lo.ToPtr(int64(10))}},
		{"max size", SearchQuery{MaxFileSize: lo.ToPtr(int64(1000))}},
		{"has content", SearchQuery{HasContent: lo.ToPtr(false)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, test.query.HasAdvancedFilters())
		})
	}
}

func TestSearchQueryActiveFilters(t *testing.T) {
	q := SearchQuery{
		Tags:        []string{"backend"},
		Author:      "alice",
		MinFileSize: lo.ToPtr(int64(10)),
	}
	assert.Equal(t, []string{"tags", "author", "min_file_size"}, q.ActiveFilters())
	assert.Nil(t, SearchQuery{}.ActiveFilters())
}
