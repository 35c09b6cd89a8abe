package es

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/catalog"
)

// fakeCluster answers just enough of the REST API for the index helpers.
func fakeCluster(t *testing.T, searchIDs []string) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
		case r.Method == http.MethodHead && r.URL.Path == "/books":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut && r.URL.Path == "/books":
			_, _ = io.WriteString(w, `{"acknowledged":true}`)
		case strings.HasSuffix(r.URL.Path, "/_bulk"):
			_, _ = io.WriteString(w, `{"errors":false,"items":[]}`)
		case strings.HasSuffix(r.URL.Path, "/_search"):
			hits := make([]map[string]string, 0, len(searchIDs))
			for _, id := range searchIDs {
				hits = append(hits, map[string]string{"_id": id})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"unexpected"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestBookIndexAgainstFakeCluster(t *testing.T) {
	srv, calls := fakeCluster(t, []string{"9", "4", "not-a-number"})

	client, err := NewClient(Config{URL: srv.URL})
	require.NoError(t, err)

	idx := &BookIndex{Client: client, Index: "books"}
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx))
	require.NoError(t, idx.IndexBooks(ctx, catalog.Seed()))

	ids, err := idx.SearchIDs(ctx, "dune", 20)
	require.NoError(t, err)
	assert.Equal(t, []uint{9, 4}, ids)

	assert.Contains(t, *calls, "PUT /books")
	assert.Contains(t, *calls, "POST /books/_bulk")
}

func TestNewClientFailsOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"auth"}`)
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL})
	assert.Error(t, err)
}

func TestBulkBody(t *testing.T) {
	books := catalog.Seed()[:2]
	buf, err := BulkBody(books)
	require.NoError(t, err)

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"index":{"_id":"1"}}`, lines[0])
	assert.Contains(t, lines[1], `"title":"The Midnight Library"`)
}

func TestSearchBody(t *testing.T) {
	body := SearchBody("weir", 5)
	mm := body["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "weir", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
	assert.Equal(t, 5, body["size"])
}
