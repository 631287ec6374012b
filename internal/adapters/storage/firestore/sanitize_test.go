package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeNormalizesTypedNils(t *testing.T) {
	var nilSlice []string
	var nilMap map[string]string
	var nilPtr *string

	in := map[string]interface{}{
		"slice":  nilSlice,
		"map":    nilMap,
		"ptr":    nilPtr,
		"plain":  "keep",
		"number": 42,
	}

	out, err := sanitizeMap(in)
	require.NoError(t, err)

	assert.Nil(t, out["slice"])
	assert.Nil(t, out["map"])
	assert.Nil(t, out["ptr"])
	assert.Equal(t, "keep", out["plain"])
	assert.Equal(t, 42, out["number"])
}

func TestSanitizeRecursesIntoNestedValues(t *testing.T) {
	var nilExpertise []string

	in := map[string]interface{}{
		"collaborators": []interface{}{
			map[string]interface{}{
				"name":      "Ada",
				"expertise": nilExpertise,
			},
		},
		"plan": map[string]interface{}{
			"Business Model": map[string]interface{}{
				"content":    "draft",
				"completion": 40.0,
			},
		},
	}

	out, err := sanitizeMap(in)
	require.NoError(t, err)

	collabs, ok := out["collaborators"].([]interface{})
	require.True(t, ok)
	first, ok := collabs[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada", first["name"])
	assert.Nil(t, first["expertise"])

	plan, ok := out["plan"].(map[string]interface{})
	require.True(t, ok)
	section, ok := plan["Business Model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "draft", section["content"])
}

func TestSanitizeIsIdempotent(t *testing.T) {
	var nilSlice []int
	in := map[string]interface{}{
		"a": nilSlice,
		"b": map[string]interface{}{"c": "v"},
		"t": time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	once, err := sanitizeMap(in)
	require.NoError(t, err)
	twice, err := sanitizeMap(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestStructToMapUsesFirestoreTags(t *testing.T) {
	doc := userDoc{
		Name:      "Ada",
		Country:   "Portugal",
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	m := structToMap(doc)

	assert.Equal(t, "Ada", m["name"])
	assert.Equal(t, "Portugal", m["country"])
	assert.Equal(t, doc.CreatedAt, m["created_at"])
	_, hasGoName := m["Name"]
	assert.False(t, hasGoName)
}

func TestStructToMapFlattensNestedStructs(t *testing.T) {
	doc := projectDoc{
		Name: "Forge",
		Collaborators: []collaboratorDoc{
			{Name: "Ada", Role: "CTO"},
		},
		Plan: map[string]sectionDoc{
			"Business Model": {Content: "draft", Completion: 30},
		},
	}

	m := structToMap(doc)

	collabs, ok := m["collaborators"].([]interface{})
	require.True(t, ok)
	first, ok := collabs[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CTO", first["role"])

	plan, ok := m["plan"].(map[string]interface{})
	require.True(t, ok)
	section, ok := plan["Business Model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(30), section["completion"])
}
