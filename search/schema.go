package search

import "fmt"

const (
	ProductsIndexName = "products"
	VenuesIndexName   = "venues"
)

// analysisSettings builds the shared text analysis block. The analyzer
// lowercases, folds diacritics, strips stopwords and stems for the configured
// language so "hamburguesa" matches "Hamburguesas".
func analysisSettings(language string) string {
	return fmt.Sprintf(`{
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "filter": {
        "lang_stop": { "type": "stop", "stopwords": "_%s_" },
        "lang_stemmer": { "type": "stemmer", "language": "%s" }
      },
      "analyzer": {
        "menu_text": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding", "lang_stop", "lang_stemmer"]
        }
      }
    }
  }`, language, language)
}

func productMapping(language string) string {
	return fmt.Sprintf(`{
  "settings": %s,
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "venueId":     { "type": "keyword" },
      "name":        { "type": "text", "analyzer": "menu_text", "fields": { "raw": { "type": "keyword", "ignore_above": 256 } } },
      "description": { "type": "text", "analyzer": "menu_text" },
      "category":    { "type": "keyword" },
      "price":       { "type": "float" },
      "featured":    { "type": "boolean" },
      "available":   { "type": "boolean" },
      "venue": {
        "properties": {
          "name":    { "type": "text", "analyzer": "menu_text" },
          "cuisine": { "type": "keyword" }
        }
      },
      "suggest":     { "type": "completion" }
    }
  }
}`, analysisSettings(language))
}

func venueMapping(language string) string {
	return fmt.Sprintf(`{
  "settings": %s,
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "name":        { "type": "text", "analyzer": "menu_text", "fields": { "raw": { "type": "keyword", "ignore_above": 256 } } },
      "description": { "type": "text", "analyzer": "menu_text" },
      "address":     { "type": "text", "analyzer": "menu_text" },
      "cuisine":     { "type": "keyword" },
      "rating":      { "type": "float" },
      "priceRange":  { "type": "integer" },
      "imageUrl":    { "type": "keyword", "index": false },
      "suggest":     { "type": "completion" }
    }
  }
}`, analysisSettings(language))
}
