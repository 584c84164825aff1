package search

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductMappingIsValidJSON(t *testing.T) {
	var mapping map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(productMapping("spanish")), &mapping))

	properties := mapping["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	for _, field := range []string{"id", "venueId", "name", "description", "category", "price", "featured", "available", "venue", "suggest"} {
		assert.Contains(t, properties, field)
	}

	suggest := properties["suggest"].(map[string]interface{})
	assert.Equal(t, "completion", suggest["type"])
}

func TestVenueMappingIsValidJSON(t *testing.T) {
	var mapping map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(venueMapping("spanish")), &mapping))

	properties := mapping["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	for _, field := range []string{"id", "name", "description", "address", "cuisine", "rating", "priceRange", "imageUrl", "suggest"} {
		assert.Contains(t, properties, field)
	}
}

func TestAnalysisSettingsUseConfiguredLanguage(t *testing.T) {
	var settings map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(analysisSettings("french")), &settings))

	analysis := settings["analysis"].(map[string]interface{})
	stop := analysis["filter"].(map[string]interface{})["lang_stop"].(map[string]interface{})
	assert.Equal(t, "_french_", stop["stopwords"])

	analyzer := analysis["analyzer"].(map[string]interface{})["menu_text"].(map[string]interface{})
	assert.Equal(t, []interface{}{"lowercase", "asciifolding", "lang_stop", "lang_stemmer"}, analyzer["filter"])
}
