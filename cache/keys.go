package cache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tavolo/search-api-go/catalog"
)

// Entity kinds used in cache key namespaces.
const (
	KindProducts    = "products"
	KindRestaurants = "restaurants"
)

// AllPattern matches every response-cache key.
const AllPattern = "search:*"

// ResponseKey builds a stable key from the normalized query signature. Two
// requests that differ only in whitespace or letter case share an entry.
func ResponseKey(kind, query, filterSignature string, page catalog.Page) string {
	raw := fmt.Sprintf("%s|%s|%s|%d|%d",
		kind,
		strings.ToLower(strings.TrimSpace(query)),
		filterSignature,
		page.Page,
		page.Size,
	)
	hash := uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw)).String()
	return "search:" + kind + ":" + hash
}

// KindPattern matches every cached response for one entity kind.
func KindPattern(kind string) string {
	return "search:" + kind + ":*"
}
