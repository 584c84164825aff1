package search

import (
	"context"
	"fmt"
	"time"
)

// Options carries the relevance and transport knobs shared by both indices.
type Options struct {
	Language         string
	NameBoost        float64
	CategoryBoost    float64
	DescriptionBoost float64
	Fuzziness        string
	Timeout          time.Duration
	SchemaRetries    int
}

func (o *Options) setDefaults() {
	if o.Language == "" {
		o.Language = "spanish"
	}
	if o.NameBoost == 0 {
		o.NameBoost = 3
	}
	if o.CategoryBoost == 0 {
		o.CategoryBoost = 2
	}
	if o.DescriptionBoost == 0 {
		o.DescriptionBoost = 1
	}
	if o.Fuzziness == "" {
		o.Fuzziness = "AUTO"
	}
	if o.Timeout == 0 {
		o.Timeout = 10 * time.Second
	}
	if o.SchemaRetries == 0 {
		o.SchemaRetries = 5
	}
}

// ensureSchema creates the index if absent, retrying a bounded number of
// times with doubling backoff. The service cannot serve without its indices,
// so exhaustion surfaces as ErrSchemaProvision and the caller treats it as
// fatal at startup.
func ensureSchema[T any](ctx context.Context, idx *Index[T], mapping string, retries int) error {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s", ErrSchemaProvision, ctx.Err().Error())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		exists, err := idx.Exists(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if exists {
			return nil
		}
		if err := idx.Create(ctx, mapping); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("%w: index %s: %s", ErrSchemaProvision, idx.Name(), lastErr.Error())
}

func snippetFrom(highlight map[string][]string) string {
	for _, field := range []string{"name", "description"} {
		if fragments := highlight[field]; len(fragments) > 0 {
			return fragments[0]
		}
	}
	return ""
}

func boosted(field string, boost float64) string {
	return fmt.Sprintf("%s^%g", field, boost)
}
