package sparql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/morikuni/failure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takatori/sbekms/internal"
	"github.com/takatori/sbekms/internal/errors"
	"github.com/takatori/sbekms/internal/infra"
)

func testClient(serverURL string) *Client {
	return NewClientWithHttp(
		&internal.Config{
			TriplestoreUrl:  serverURL,
			TriplestoreRepo: "sbekms",
		},
		infra.NewHttpClient(),
	)
}

func TestClientSelect(t *testing.T) {
	var gotPath, gotContentType, gotAccept, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"results":{"bindings":[{"s":{"type":"uri","value":"http://x/a"}}]}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o . }")
	require.NoError(t, err)

	assert.Equal(t, "/repositories/sbekms", gotPath)
	assert.Equal(t, "application/sparql-query", gotContentType)
	assert.Equal(t, "application/sparql-results+json", gotAccept)
	assert.Equal(t, "SELECT * WHERE { ?s ?p ?o . }", gotBody)

	require.Len(t, result.Results.Bindings, 1)
	uri, ok := result.Results.Bindings[0].URI("s")
	assert.True(t, ok)
	assert.Equal(t, "http://x/a", uri)
}

func TestClientSelectBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		_, _ = w.Write([]byte(`{"results":{"bindings":[]}}`))
	}))
	defer server.Close()

	client := NewClientWithHttp(
		&internal.Config{
			TriplestoreUrl:      server.URL,
			TriplestoreRepo:     "sbekms",
			TriplestoreUser:     "admin",
			TriplestorePassword: "root",
		},
		infra.NewHttpClient(),
	)
	_, err := client.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o . }")
	require.NoError(t, err)

	assert.True(t, gotAuth)
	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "root", gotPass)
}

func TestClientSelectUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Select(context.Background(), "not sparql")
	require.Error(t, err)
	assert.Equal(t, errors.ErrUpstream, failure.CodeOf(err))
}

func TestClientUpdate(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.Update(context.Background(), "INSERT DATA { <http://x/a> <http://x/p> \"v\" . }")
	require.NoError(t, err)

	assert.Equal(t, "/repositories/sbekms/statements", gotPath)
	assert.Equal(t, "application/sparql-update", gotContentType)
}

func TestClientStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"bindings":[{"triples":{"type":"literal","value":"12345"}}]}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sbekms", stats.Repository)
	assert.Equal(t, server.URL+"/repositories/sbekms", stats.Endpoint)
	assert.Equal(t, int64(12345), stats.TripleCount)
	assert.Equal(t, "connected", stats.Status)
}

func TestClientTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/repositories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"sbekms"}]`))
	}))
	defer server.Close()

	assert.True(t, testClient(server.URL).TestConnection(context.Background()))
	assert.False(t, testClient("http://127.0.0.1:1").TestConnection(context.Background()))
}

func TestClientEnsureRepositoryExisting(t *testing.T) {
	var createCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			createCalled = true
		}
		_, _ = w.Write([]byte(`{"id":"sbekms"}`))
	}))
	defer server.Close()

	created, err := testClient(server.URL).EnsureRepository(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.False(t, createCalled)
}

func TestClientEnsureRepositoryCreates(t *testing.T) {
	var createConfig map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rest/repositories/sbekms":
			http.NotFound(w, r)
		case r.Method == http.MethodPost && r.URL.Path == "/rest/repositories":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createConfig))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	created, err := testClient(server.URL).EnsureRepository(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	require.NotNil(t, createConfig)
	assert.Equal(t, "sbekms", createConfig["id"])
	params, ok := createConfig["params"].(map[string]any)
	require.True(t, ok)
	ruleset, ok := params["ruleset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rdfs", ruleset["value"])
}
