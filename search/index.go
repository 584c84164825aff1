package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/tavolo/search-api-go/catalog"
)

// Index is a thin client for one Elasticsearch index of documents of type T.
// Every call is bounded by the configured request timeout; transport
// failures map to ErrUnavailable and deadline hits to ErrTimeout.
type Index[T any] struct {
	connStr string
	name    string
	timeout time.Duration
}

func NewIndex[T any](connStr, name string, timeout time.Duration) *Index[T] {
	return &Index[T]{
		connStr: strings.TrimRight(connStr, "/"),
		name:    name,
		timeout: timeout,
	}
}

func (i *Index[T]) Name() string {
	return i.name
}

func (i *Index[T]) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.SetRequestURI(i.connStr + path)
	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(i.timeout)
	}

	if err := fasthttp.DoDeadline(req, res, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return 0, nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return 0, nil, fmt.Errorf("%w: %s %s: %s", ErrUnavailable, method, path, err.Error())
	}

	// The response buffer is pooled, copy before release.
	out := make([]byte, len(res.Body()))
	copy(out, res.Body())
	return res.StatusCode(), out, nil
}

func statusError(op string, status int, body []byte) error {
	var resp errorResponse
	if err := jsoniter.Unmarshal(body, &resp); err == nil && resp.Error.Type != "" {
		return fmt.Errorf("%s: %s: %s", op, resp.Error.Type, resp.Error.Reason)
	}
	return fmt.Errorf("%s: unexpected status %d", op, status)
}

// Ping checks engine reachability.
func (i *Index[T]) Ping(ctx context.Context) error {
	status, body, err := i.do(ctx, fasthttp.MethodHead, "/", nil)
	if err != nil {
		return err
	}
	if status >= 400 {
		return statusError("elastic ping", status, body)
	}
	return nil
}

// Exists reports whether the index has been created.
func (i *Index[T]) Exists(ctx context.Context) (bool, error) {
	status, _, err := i.do(ctx, fasthttp.MethodHead, "/"+i.name, nil)
	if err != nil {
		return false, err
	}
	return status == fasthttp.StatusOK, nil
}

// Create provisions the index with the given mapping.
func (i *Index[T]) Create(ctx context.Context, mapping string) error {
	status, body, err := i.do(ctx, fasthttp.MethodPut, "/"+i.name, []byte(mapping))
	if err != nil {
		return err
	}
	if status >= 400 {
		return statusError("elastic create index "+i.name, status, body)
	}
	return nil
}

// Drop deletes the index. A missing index is not an error.
func (i *Index[T]) Drop(ctx context.Context) error {
	status, body, err := i.do(ctx, fasthttp.MethodDelete, "/"+i.name, nil)
	if err != nil {
		return err
	}
	if status >= 400 && status != fasthttp.StatusNotFound {
		return statusError("elastic drop index "+i.name, status, body)
	}
	return nil
}

// Upsert replaces the document with the given id wholesale.
func (i *Index[T]) Upsert(ctx context.Context, id string, doc T) error {
	payload, err := jsoniter.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", id, err)
	}

	status, body, err := i.do(ctx, fasthttp.MethodPut, "/"+i.name+"/_doc/"+id+"?refresh=true", payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return statusError("elastic upsert "+i.name+"/"+id, status, body)
	}
	return nil
}

// Delete removes a document by id. Deleting an absent id is a no-op.
func (i *Index[T]) Delete(ctx context.Context, id string) error {
	status, body, err := i.do(ctx, fasthttp.MethodDelete, "/"+i.name+"/_doc/"+id+"?refresh=true", nil)
	if err != nil {
		return err
	}
	if status >= 400 && status != fasthttp.StatusNotFound {
		return statusError("elastic delete "+i.name+"/"+id, status, body)
	}
	return nil
}

// Bulk writes many documents in one request. Per-document rejections are
// collected into the report instead of failing the whole call.
func (i *Index[T]) Bulk(ctx context.Context, items []Item[T]) (BulkReport, error) {
	if len(items) == 0 {
		return BulkReport{}, nil
	}

	var payload []byte
	for _, item := range items {
		payload = append(payload, []byte(`{"index":{"_index":"`+i.name+`","_id":"`+item.Id+`"}}`)...)
		payload = append(payload, '\n')
		source, err := jsoniter.Marshal(item.Source)
		if err != nil {
			return BulkReport{}, fmt.Errorf("marshal document %s: %w", item.Id, err)
		}
		payload = append(payload, source...)
		payload = append(payload, '\n')
	}

	status, body, err := i.do(ctx, fasthttp.MethodPost, "/_bulk?refresh=true", payload)
	if err != nil {
		return BulkReport{}, err
	}
	if status >= 400 {
		return BulkReport{}, statusError("elastic bulk "+i.name, status, body)
	}

	var response bulkResponse
	if err := jsoniter.Unmarshal(body, &response); err != nil {
		return BulkReport{}, fmt.Errorf("decode bulk response: %w", err)
	}

	report := BulkReport{}
	for _, actions := range response.Items {
		for _, item := range actions {
			if item.Error != nil {
				report.Failures = append(report.Failures, BulkFailure{
					ID:     item.ID,
					Reason: item.Error.Type + ": " + item.Error.Reason,
				})
				continue
			}
			report.Indexed++
		}
	}
	return report, nil
}

// Search executes a raw query against the index.
func (i *Index[T]) Search(ctx context.Context, query map[string]interface{}) (*Result[T], error) {
	payload, err := jsoniter.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	status, body, err := i.do(ctx, fasthttp.MethodPost, "/"+i.name+"/_search", payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, statusError("elastic search "+i.name, status, body)
	}

	var response Result[T]
	if err := jsoniter.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &response, nil
}

// Suggest runs a completion suggestion for the given prefix against the
// index's suggest field. No tokenization or fuzziness is involved.
func (i *Index[T]) Suggest(ctx context.Context, prefix string, size int) ([]catalog.Suggestion, error) {
	query := map[string]interface{}{
		"suggest": map[string]interface{}{
			"name-suggest": map[string]interface{}{
				"prefix": prefix,
				"completion": map[string]interface{}{
					"field":           "suggest",
					"size":            size,
					"skip_duplicates": true,
				},
			},
		},
	}

	payload, err := jsoniter.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal suggest query: %w", err)
	}

	status, body, err := i.do(ctx, fasthttp.MethodPost, "/"+i.name+"/_search", payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, statusError("elastic suggest "+i.name, status, body)
	}

	var response suggestResponse
	if err := jsoniter.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode suggest response: %w", err)
	}

	var suggestions []catalog.Suggestion
	for _, entry := range response.Suggest["name-suggest"] {
		for _, option := range entry.Options {
			suggestions = append(suggestions, catalog.Suggestion{
				Text:  option.Text,
				Score: option.Score,
			})
		}
	}
	return suggestions, nil
}
