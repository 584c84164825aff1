package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceDecodesExports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/export/restaurants":
			w.Write([]byte(`{
				"count": 1,
				"results": [
					{"id": "v1", "name": "La Esquina", "cuisine": "mexicana", "rating": 4.5, "priceRange": 2}
				]
			}`))
		case "/export/menu-items":
			w.Write([]byte(`{
				"count": 2,
				"results": [
					{"id": "p1", "venueId": "v1", "name": "Tacos al pastor", "price": 7.5, "available": true},
					{"id": "p2", "venueId": "v1", "name": "Quesadilla", "price": 5.0, "available": false}
				]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, time.Second)

	venues, err := source.AllVenues(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "La Esquina", venues[0].Name)
	assert.Equal(t, 2, venues[0].PriceRange)

	products, err := source.AllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "v1", products[0].VenueID)
	assert.False(t, products[1].Available)
}

func TestHTTPSourceRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, time.Second)

	_, err := source.AllVenues(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestHTTPSourceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	source := NewHTTPSource(server.URL, time.Second)

	_, err := source.AllProducts(context.Background())
	assert.Error(t, err)
}
