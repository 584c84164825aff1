package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/tavolo/search-api-go/catalog"
)

// HTTPSource pulls the full catalog through the catalog service's export
// endpoints. Used when the search service has no direct database access.
type HTTPSource struct {
	baseURL string
	timeout time.Duration
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

type venueExport struct {
	Count   int             `json:"count"`
	Results []catalog.Venue `json:"results"`
}

type productExport struct {
	Count   int               `json:"count"`
	Results []catalog.Product `json:"results"`
}

func (s *HTTPSource) AllVenues(ctx context.Context) ([]catalog.Venue, error) {
	body, err := s.fetch(ctx, "/export/restaurants")
	if err != nil {
		return nil, err
	}

	var export venueExport
	if err := jsoniter.Unmarshal(body, &export); err != nil {
		return nil, fmt.Errorf("decode restaurants export: %w", err)
	}
	return export.Results, nil
}

func (s *HTTPSource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	body, err := s.fetch(ctx, "/export/menu-items")
	if err != nil {
		return nil, err
	}

	var export productExport
	if err := jsoniter.Unmarshal(body, &export); err != nil {
		return nil, fmt.Errorf("decode menu-items export: %w", err)
	}
	return export.Results, nil
}

func (s *HTTPSource) fetch(ctx context.Context, path string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(s.baseURL + path)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.timeout)
	}

	if err := fasthttp.DoDeadline(req, res, deadline); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}

	if res.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, res.StatusCode())
	}

	body := make([]byte, len(res.Body()))
	copy(body, res.Body())
	return body, nil
}
