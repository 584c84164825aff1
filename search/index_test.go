package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/search-api-go/catalog"
)

func newFakeElastic(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestIndexUpsertSendsRefresh(t *testing.T) {
	var gotPath string
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	doc := NewProductDocument(catalog.Product{ID: "p1", VenueID: "v1", Name: "Pizza"}, nil)

	require.NoError(t, idx.Upsert(context.Background(), doc.ID, doc))
	assert.Equal(t, "/products/_doc/p1?refresh=true", gotPath)
}

func TestIndexDeleteMissingIsNoop(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	assert.NoError(t, idx.Delete(context.Background(), "ghost"))
}

func TestIndexDropMissingIsNoop(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	idx := NewIndex[VenueDocument](server.URL, VenuesIndexName, time.Second)
	assert.NoError(t, idx.Drop(context.Background()))
}

func TestIndexUnreachableMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	err := idx.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIndexBulkCollectsPartialFailures(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"errors": true,
			"items": [
				{"index": {"_id": "p1", "status": 201}},
				{"index": {"_id": "p2", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "failed to parse field [price]"}}},
				{"index": {"_id": "p3", "status": 201}}
			]
		}`))
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	report, err := idx.Bulk(context.Background(), []Item[ProductDocument]{
		{Id: "p1"}, {Id: "p2"}, {Id: "p3"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Indexed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "p2", report.Failures[0].ID)
	assert.Contains(t, report.Failures[0].Reason, "mapper_parsing_exception")
}

func TestIndexBulkEmptyInput(t *testing.T) {
	idx := NewIndex[ProductDocument]("http://127.0.0.1:1", ProductsIndexName, time.Second)
	report, err := idx.Bulk(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Indexed)
	assert.Empty(t, report.Failures)
}

func TestIndexSearchDecodesHits(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"took": 3,
			"hits": {
				"total": {"value": 42},
				"hits": [
					{
						"_id": "p1",
						"_score": 7.2,
						"_source": {"id": "p1", "venueId": "v1", "name": "Hamburguesa doble", "price": 9.5, "available": true},
						"highlight": {"name": ["<em>Hamburguesa</em> doble"]}
					}
				]
			}
		}`))
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	result, err := idx.Search(context.Background(), map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}})

	require.NoError(t, err)
	assert.Equal(t, 42, result.Hits.Total.Value)
	require.Len(t, result.Hits.Hits, 1)
	assert.Equal(t, "Hamburguesa doble", result.Hits.Hits[0].Source.Name)
	assert.Equal(t, 7.2, result.Hits.Hits[0].Score)
	assert.Equal(t, []string{"<em>Hamburguesa</em> doble"}, result.Hits.Hits[0].Highlight["name"])
}

func TestIndexSearchSurfacesEngineErrors(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"type": "parsing_exception", "reason": "unknown field"}, "status": 400}`))
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	_, err := idx.Search(context.Background(), map[string]interface{}{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing_exception")
}

func TestIndexSuggestDecodesOptions(t *testing.T) {
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"suggest": {
				"name-suggest": [
					{
						"options": [
							{"text": "Pizza Margarita", "_score": 3},
							{"text": "Pizza Napolitana", "_score": 2}
						]
					}
				]
			}
		}`))
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	suggestions, err := idx.Suggest(context.Background(), "piz", 10)

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Pizza Margarita", suggestions[0].Text)
	assert.Equal(t, 3.0, suggestions[0].Score)
}

func TestEnsureSchemaCreatesMissingIndex(t *testing.T) {
	var created bool
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method == http.MethodPut {
			created = true
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	require.NoError(t, ensureSchema(context.Background(), idx, productMapping("spanish"), 1))
	assert.True(t, created)
}

func TestEnsureSchemaSkipsExistingIndex(t *testing.T) {
	var putSeen bool
	server := newFakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			putSeen = true
		}
		w.WriteHeader(http.StatusOK)
	})

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, time.Second)
	require.NoError(t, ensureSchema(context.Background(), idx, productMapping("spanish"), 1))
	assert.False(t, putSeen)
}

func TestEnsureSchemaExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	idx := NewIndex[ProductDocument](server.URL, ProductsIndexName, 100*time.Millisecond)
	err := ensureSchema(context.Background(), idx, productMapping("spanish"), 1)
	assert.ErrorIs(t, err, ErrSchemaProvision)
}
