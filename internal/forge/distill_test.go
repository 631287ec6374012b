package forge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func TestDecodePlanDropsUnknownSections(t *testing.T) {
	raw := []byte(`{
		"Market & Target": {"content": "## Target\n- freelancers", "completion": 40},
		"Astrology": {"content": "irrelevant", "completion": 90}
	}`)

	delta, err := forge.DecodePlan(raw)
	require.NoError(t, err)
	require.Len(t, delta, 1)
	assert.Equal(t, 40.0, delta[domain.SectionMarket].Completion)
}

func TestDecodePlanClampsCompletion(t *testing.T) {
	raw := []byte(`{
		"Business Model": {"content": "## Model", "completion": 140},
		"Finance & ROI": {"content": "## Finance", "completion": -5}
	}`)

	delta, err := forge.DecodePlan(raw)
	require.NoError(t, err)
	assert.Equal(t, 100.0, delta[domain.SectionBusinessModel].Completion)
	assert.Equal(t, 0.0, delta[domain.SectionFinancials].Completion)
}

func TestDecodePlanBadJSON(t *testing.T) {
	_, err := forge.DecodePlan([]byte(`not json`))
	assert.Error(t, err)
}

func TestPlanSchemaCoversEverySection(t *testing.T) {
	schema := forge.PlanSchema()
	require.Equal(t, domain.SchemaObject, schema.Type)

	for _, s := range domain.PlanSections() {
		prop, ok := schema.Properties[string(s)]
		require.True(t, ok, "schema missing section %q", s)
		assert.Contains(t, prop.Properties, "content")
		assert.Contains(t, prop.Properties, "completion")
		// Sections stay optional so a sparse chat yields a sparse delta.
		assert.Empty(t, prop.Required)
	}
	assert.Empty(t, schema.Required)
}

func TestDistillInstructionNamesSectionsAndCrew(t *testing.T) {
	history := []*domain.ChatMessage{
		{Role: domain.RoleUser, Text: "We target freelancers first."},
	}
	u := &domain.UserProfile{Collaborators: []string{"Iris"}}

	out := forge.DistillInstruction(history, u)

	assert.Contains(t, out, `"Market & Target"`)
	assert.Contains(t, out, "Iris")
	assert.Contains(t, out, "We target freelancers first.")
}
