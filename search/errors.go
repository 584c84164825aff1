package search

import (
	"errors"
	"fmt"
)

// Callers must be able to tell "no matches" from "search is down", so
// transport-level failures surface as typed conditions instead of empty
// results.
var (
	ErrUnavailable       = errors.New("search engine unreachable")
	ErrTimeout           = errors.New("search engine request timed out")
	ErrReindexInProgress = errors.New("reindex already in progress")
	ErrSchemaProvision   = errors.New("index schema provisioning failed")
)

// ValidationError marks a malformed request rejected at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BulkFailure identifies one rejected document of a bulk write.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkReport summarizes a bulk write. A partially failed bulk is not an
// error; the caller decides whether to retry.
type BulkReport struct {
	Indexed  int           `json:"indexed"`
	Failures []BulkFailure `json:"failures,omitempty"`
}
