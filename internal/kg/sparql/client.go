package sparql

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/takatori/sbekms/internal"
	"github.com/takatori/sbekms/internal/infra"
)

// Executor is the triple-store gateway contract consumed by the query
// engine: one read path, one write path. Retry and backoff, if any, live
// behind this interface, never in the core.
type Executor interface {
	Select(ctx context.Context, query string) (*SelectResult, error)
	Update(ctx context.Context, update string) error
}

// Client executes SPARQL against a GraphDB repository endpoint.
type Client struct {
	config     *internal.Config
	httpClient *infra.HttpClient
}

// NewClient creates a Client with the given config and a fresh HTTP client.
func NewClient(config *internal.Config) *Client {
	return &Client{
		config:     config,
		httpClient: infra.NewHttpClient(),
	}
}

// NewClientWithHttp creates a Client with the given config and HTTP client.
func NewClientWithHttp(config *internal.Config, httpClient *infra.HttpClient) *Client {
	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

func (c *Client) queryEndpoint() string {
	return fmt.Sprintf("%s/repositories/%s", c.config.TriplestoreUrl, c.config.TriplestoreRepo)
}

func (c *Client) updateEndpoint() string {
	return c.queryEndpoint() + "/statements"
}

func (c *Client) auth() *infra.BasicAuth {
	if c.config.TriplestoreUser == "" {
		return nil
	}
	return &infra.BasicAuth{
		Username: c.config.TriplestoreUser,
		Password: c.config.TriplestorePassword,
	}
}

// Select executes a read-only SPARQL SELECT and returns the decoded
// bindings.
func (c *Client) Select(ctx context.Context, query string) (*SelectResult, error) {
	var result SelectResult
	err := c.httpClient.PostRaw(
		ctx,
		infra.RawPostRequest{
			Request: infra.Request{
				Url: c.queryEndpoint(),
				Headers: map[string]string{
					"Accept": "application/sparql-results+json",
				},
				Auth: c.auth(),
			},
			Body:        []byte(query),
			ContentType: "application/sparql-query",
		},
		&result,
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Update executes a SPARQL UPDATE against the statements endpoint.
func (c *Client) Update(ctx context.Context, update string) error {
	return c.httpClient.PostRaw(
		ctx,
		infra.RawPostRequest{
			Request: infra.Request{
				Url:  c.updateEndpoint(),
				Auth: c.auth(),
			},
			Body:        []byte(update),
			ContentType: "application/sparql-update",
		},
		nil,
	)
}

// TestConnection checks that the GraphDB REST API answers at all.
func (c *Client) TestConnection(ctx context.Context) bool {
	var repos []map[string]any
	url := fmt.Sprintf("%s/rest/repositories", c.config.TriplestoreUrl)
	err := c.httpClient.Get(ctx, infra.Request{Url: url, Auth: c.auth()}, &repos)
	if err != nil {
		slog.Warn("triplestore connection test failed", "url", url, "error", err)
		return false
	}
	return true
}

// RepositoryExists checks whether the configured repository is present.
func (c *Client) RepositoryExists(ctx context.Context) bool {
	var repo map[string]any
	url := fmt.Sprintf("%s/rest/repositories/%s", c.config.TriplestoreUrl, c.config.TriplestoreRepo)
	return c.httpClient.Get(ctx, infra.Request{Url: url, Auth: c.auth()}, &repo) == nil
}

// CreateRepository creates the configured repository with RDFS ruleset and
// file storage.
func (c *Client) CreateRepository(ctx context.Context) error {
	repositoryConfig := map[string]any{
		"id":       c.config.TriplestoreRepo,
		"title":    "SBEKMS Knowledge Base",
		"type":     "graphdb",
		"location": "",
		"params": map[string]any{
			"ruleset": map[string]any{
				"label": "Ruleset",
				"name":  "ruleset",
				"value": "rdfs",
			},
			"storage": map[string]any{
				"label": "Storage",
				"name":  "storage",
				"value": "file",
			},
			"enable-context-index": map[string]any{
				"label": "Use context index",
				"name":  "enable-context-index",
				"value": "false",
			},
		},
	}

	return c.httpClient.Post(
		ctx,
		infra.PostRequest{
			Request: infra.Request{
				Url:  fmt.Sprintf("%s/rest/repositories", c.config.TriplestoreUrl),
				Auth: c.auth(),
			},
			Entity: repositoryConfig,
		},
		nil,
	)
}

// EnsureRepository creates the repository when absent. A freshly created
// repository needs a moment before it accepts queries.
func (c *Client) EnsureRepository(ctx context.Context) (created bool, err error) {
	if c.RepositoryExists(ctx) {
		return false, nil
	}
	if err := c.CreateRepository(ctx); err != nil {
		return false, err
	}
	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return true, ctx.Err()
	}
	return true, nil
}

// StoreStats reports repository identity and triple count.
type StoreStats struct {
	Repository  string `json:"repository"`
	Endpoint    string `json:"endpoint"`
	TripleCount int64  `json:"triple_count"`
	Status      string `json:"status"`
}

const tripleCountQuery = "SELECT (COUNT(*) AS ?triples) WHERE { ?s ?p ?o . }\n"

// Stats counts the stored triples.
func (c *Client) Stats(ctx context.Context) (*StoreStats, error) {
	result, err := c.Select(ctx, tripleCountQuery)
	if err != nil {
		return nil, err
	}

	stats := &StoreStats{
		Repository: c.config.TriplestoreRepo,
		Endpoint:   c.queryEndpoint(),
		Status:     "connected",
	}
	if rows := result.Results.Bindings; len(rows) > 0 {
		if count, err := strconv.ParseInt(rows[0].Value("triples"), 10, 64); err == nil {
			stats.TripleCount = count
		}
	}
	return stats, nil
}
