package forge_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func TestPricingInstructionSparseProject(t *testing.T) {
	p := &domain.Project{
		Name:  "Inkline",
		Offer: "logo design and visual identity",
		ICP:   "early-stage startups",
	}
	u := &domain.UserProfile{Name: "Maya"}

	out := forge.PricingInstruction(p, u, "", "")

	// Missing fields are flagged, never invented.
	assert.Contains(t, out, forge.Placeholder)
	// "logo design" resolves the design archetype and pulls its module.
	assert.Contains(t, out, string(domain.AgencyDesignBranding))
	assert.Contains(t, out, "PRICING PATTERNS — DESIGN/BRANDING")
	// The three-pack ladder is always requested.
	assert.Contains(t, out, "PACK ALPHA")
	assert.Contains(t, out, "PACK CORE")
	assert.Contains(t, out, "PACK APEX")
}

func TestPricingInstructionOverridesBothAxes(t *testing.T) {
	p := &domain.Project{Name: "Inkline", Offer: "logo design"}
	u := &domain.UserProfile{}

	out := forge.PricingInstruction(p, u, domain.AgencyCybersecurity, domain.RevenueRetainer)

	assert.Contains(t, out, string(domain.AgencyCybersecurity))
	assert.Contains(t, out, string(domain.RevenueRetainer))
	assert.Contains(t, out, "PRICING PATTERNS — CYBER")
	assert.NotContains(t, out, "PRICING PATTERNS — DESIGN/BRANDING")
}

func TestOnePagerInstructionStampsDate(t *testing.T) {
	now := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	p := &domain.Project{Name: "Inkline", Country: "France"}
	u := &domain.UserProfile{Name: "Maya"}

	out := forge.OnePagerInstruction(p, u, "", now)

	assert.Contains(t, out, "9 March 2026")
	assert.Contains(t, out, "Inkline")
}

func TestPitchInstructionEmbedsContextBlock(t *testing.T) {
	p := &domain.Project{
		Name:    "Inkline",
		Offer:   "brand identity sprints",
		Problem: "founders launch with inconsistent branding",
	}
	u := &domain.UserProfile{Team: "1 designer, 15 days/month"}

	out := forge.PitchInstruction(p, u, "")

	assert.Contains(t, out, "CONTEXT (source of truth):")
	assert.Contains(t, out, "founders launch with inconsistent branding")
	assert.Contains(t, out, "1 designer, 15 days/month")
}

func TestProposalSignatoryFallsBackToName(t *testing.T) {
	now := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	p := &domain.Project{Name: "Inkline"}

	out := forge.ProposalInstruction(p, &domain.UserProfile{Name: "Maya"}, "", now)
	assert.Contains(t, out, "Maya")

	out = forge.ProposalInstruction(p, &domain.UserProfile{Name: "Maya", FullName: "Maya Duarte"}, "", now)
	assert.Contains(t, out, "Maya Duarte")

	out = forge.ProposalInstruction(p, &domain.UserProfile{}, "", now)
	assert.Contains(t, out, forge.Placeholder)
}

func TestSOWInstructionCarriesExclusions(t *testing.T) {
	p := &domain.Project{Name: "Inkline", Offer: "website redesign"}
	out := forge.SOWInstruction(p, &domain.UserProfile{}, "")

	assert.Contains(t, out, "Inkline")
	// The exclusions clause is the anti scope-creep backbone.
	assert.Contains(t, out, "ANTI SCOPE CREEP")
	assert.Contains(t, out, "RACI")
}

func TestEthicsInstructionDispatchesClauseModule(t *testing.T) {
	p := &domain.Project{Name: "Inkline", Offer: "SOC monitoring and pentest"}
	out := forge.EthicsInstruction(p, &domain.UserProfile{}, "")

	assert.Contains(t, out, string(domain.AgencyCybersecurity))
}

func TestBusinessModelInstructionKeyedByCategory(t *testing.T) {
	p := &domain.Project{Name: "Inkline", Description: "b2b saas with mrr goals"}
	u := &domain.UserProfile{}

	out := forge.BusinessModelInstruction(p, u, "")
	assert.Contains(t, out, "B2B SAAS ADJUSTMENTS")

	overridden := forge.BusinessModelInstruction(p, u, domain.CategoryMarketplace)
	assert.Contains(t, overridden, "MARKETPLACE / MATCHING ADJUSTMENTS")
	assert.NotEqual(t, out, overridden)
}

func TestDeliveryPlaybookInstruction(t *testing.T) {
	p := &domain.Project{Name: "Inkline"}
	out := forge.DeliveryPlaybookInstruction(p, &domain.UserProfile{})

	assert.Contains(t, out, "Inkline")
	assert.Contains(t, out, "Scope Gate")
}

func TestSimulationInstructionAndSchema(t *testing.T) {
	out := forge.SimulationInstruction("hiring a second designer in month 3", "France")
	assert.Contains(t, out, "hiring a second designer in month 3")
	assert.Contains(t, out, "France")

	schema := forge.SimulationSchema()
	require.Equal(t, domain.SchemaArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.ElementsMatch(t,
		[]string{"month", "revenue", "expenses", "stress", "stability"},
		schema.Items.Required,
	)
}

func TestDecodeSimulation(t *testing.T) {
	points, err := forge.DecodeSimulation([]byte(`[{"month":1,"revenue":1000,"expenses":800,"stress":40,"stability":60}]`))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].Month)
	assert.Equal(t, 1000.0, points[0].Revenue)

	_, err = forge.DecodeSimulation([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestMentorInstructionPersonalizesCrew(t *testing.T) {
	solo := forge.MentorInstruction(&domain.UserProfile{Name: "Maya"})
	assert.Contains(t, solo, "Maya")

	crewed := forge.MentorInstruction(&domain.UserProfile{
		Name:          "Maya",
		Collaborators: []string{"Iris", "Tom"},
	})
	assert.Contains(t, crewed, "Iris")
	assert.Contains(t, crewed, "Tom")
	assert.NotEqual(t, solo, crewed)
}

func TestSculptSchemaAndDecode(t *testing.T) {
	schema := forge.SculptSchema()
	assert.ElementsMatch(t, []string{"role", "bio", "expertise"}, schema.Required)

	profile, err := forge.DecodeSculptedProfile([]byte(`{"role":"CTO","bio":"Builds the product.","expertise":["Go","infra"]}`))
	require.NoError(t, err)
	assert.Equal(t, "CTO", profile.Role)
	assert.True(t, strings.Contains(profile.Bio, "product"))
}
