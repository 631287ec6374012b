package forge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func TestDecodeRefineResponse(t *testing.T) {
	r, err := forge.DecodeRefineResponse([]byte(`{"assistantMessage":"Done.","updatedContent":"## Revised\n- point"}`))
	require.NoError(t, err)
	assert.Equal(t, "Done.", r.AssistantMessage)
	assert.Equal(t, "## Revised\n- point", r.UpdatedContent)
}

func TestDecodeRefineResponseMissingFields(t *testing.T) {
	_, err := forge.DecodeRefineResponse([]byte(`{"updatedContent":"## Doc"}`))
	assert.Error(t, err)

	_, err = forge.DecodeRefineResponse([]byte(`{"assistantMessage":"   ","updatedContent":"## Doc"}`))
	assert.Error(t, err)

	_, err = forge.DecodeRefineResponse([]byte(`{"assistantMessage":"Done."}`))
	assert.Error(t, err)
}

func TestDecodeRefineResponseBadJSON(t *testing.T) {
	_, err := forge.DecodeRefineResponse([]byte(`Sure! Here is the update:`))
	assert.Error(t, err)
}

func TestRefineSchemaRequiresBothFields(t *testing.T) {
	schema := forge.RefineSchema()
	assert.ElementsMatch(t, []string{"assistantMessage", "updatedContent"}, schema.Required)
}

func TestRefineInstructionEmbedsStateAndHistory(t *testing.T) {
	history := []forge.Turn{
		{Role: domain.RoleUser, Text: "Tighten the pricing section."},
		{Role: domain.RoleAssistant, Text: "Done, see the new ranges."},
	}
	out := forge.RefineInstruction(
		domain.DocOffersPricing,
		"## Pricing\n- old ranges",
		"Now add a premium tier.",
		history,
		&domain.Project{Name: "Inkline"},
	)

	assert.Contains(t, out, "Inkline")
	assert.Contains(t, out, "## Pricing\n- old ranges")
	assert.Contains(t, out, "Tighten the pricing section.")
	assert.Contains(t, out, "Now add a premium tier.")
}
