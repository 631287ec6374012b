package forge_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	}
}

func sampleInput() forge.BuildInput {
	return forge.BuildInput{
		Project: &domain.Project{
			ID:      "p1",
			Name:    "Atlas Forge",
			Country: "Portugal",
			Offer:   "custom software delivery for mid-market clients",
		},
		User: &domain.UserProfile{
			ID:   "u1",
			Name: "Ada",
			Team: "2 devs, 30 days/month",
		},
	}
}

func TestRegistryCoversWholeCatalog(t *testing.T) {
	r := forge.NewRegistry(fixedClock())
	in := sampleInput()

	for _, docType := range domain.DocTypes() {
		assert.True(t, r.Supports(docType), "missing builder for %s", docType)

		out := r.Build(docType, in)
		assert.NotEmpty(t, out, "empty instruction for %s", docType)

		// The founders agreement is built from the transcript and the
		// entrepreneur, not the project record.
		if docType != domain.DocFoundersAgreement {
			assert.Contains(t, out, "Atlas Forge", "instruction for %s does not name the project", docType)
		}
	}
}

func TestRegistryUnknownTypeFallsBack(t *testing.T) {
	r := forge.NewRegistry(fixedClock())

	out := r.Build(domain.DocType("EXOTIC_DOC"), sampleInput())
	assert.Contains(t, out, "EXOTIC_DOC")
	assert.Contains(t, out, "Atlas Forge")
	assert.False(t, r.Supports(domain.DocType("EXOTIC_DOC")))
}

func TestRegistryBuildsAreByteIdentical(t *testing.T) {
	r := forge.NewRegistry(fixedClock())
	in := sampleInput()

	for _, docType := range domain.DocTypes() {
		first := r.Build(docType, in)
		second := r.Build(docType, in)
		assert.Equal(t, first, second, "build for %s is not deterministic", docType)
	}
}

func TestRegistryStampsIssueDate(t *testing.T) {
	r := forge.NewRegistry(fixedClock())

	out := r.Build(domain.DocConceptOnePager, sampleInput())
	assert.Contains(t, out, "1 August 2026")
}

func TestRegistryAgencyOverrideChangesAngle(t *testing.T) {
	r := forge.NewRegistry(fixedClock())
	in := sampleInput()

	plain := r.Build(domain.DocPitchScript, in)
	assert.Contains(t, plain, string(domain.AgencyDevESN))

	in.AgencyOverride = domain.AgencyCybersecurity
	overridden := r.Build(domain.DocPitchScript, in)
	assert.Contains(t, overridden, string(domain.AgencyCybersecurity))
	assert.NotEqual(t, plain, overridden)
}

func TestRegistryFoundersAgreementUsesHistory(t *testing.T) {
	r := forge.NewRegistry(fixedClock())
	in := sampleInput()
	in.History = []*domain.ChatMessage{
		{Role: domain.RoleUser, Text: "We are three founders splitting equity 40/30/30."},
	}

	out := r.Build(domain.DocFoundersAgreement, in)
	assert.Contains(t, out, "40/30/30")
	assert.True(t, strings.Contains(out, "Article"), "legal skeleton missing")
}
