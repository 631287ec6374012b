package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanMergeReplacesWholeSections(t *testing.T) {
	current := PlanData{
		SectionFoundations: {Content: "## Idea v1", Completion: 40},
		SectionMarket:      {Content: "## Market", Completion: 20},
	}

	merged := current.Merge(PlanData{
		SectionFoundations: {Content: "## Idea v2", Completion: 60},
	})

	assert.Equal(t, "## Idea v2", merged[SectionFoundations].Content)
	assert.Equal(t, 60.0, merged[SectionFoundations].Completion)
	assert.Equal(t, "## Market", merged[SectionMarket].Content)

	// The receiver is never mutated.
	assert.Equal(t, "## Idea v1", current[SectionFoundations].Content)
}

func TestPlanMergeNilReceiverAndDelta(t *testing.T) {
	var empty PlanData

	merged := empty.Merge(PlanData{SectionGrowth: {Content: "## Growth", Completion: 10}})
	assert.Len(t, merged, 1)

	copied := merged.Merge(nil)
	assert.Equal(t, merged, copied)
}

func TestValidSection(t *testing.T) {
	for _, s := range PlanSections() {
		assert.True(t, ValidSection(s))
	}
	assert.False(t, ValidSection("Astrology"))
}

func TestDocTypesCoverCatalog(t *testing.T) {
	types := DocTypes()
	assert.Len(t, types, 22)

	seen := make(map[DocType]bool, len(types))
	for _, dt := range types {
		assert.False(t, seen[dt], "duplicate doc type %s", dt)
		seen[dt] = true
	}
	assert.True(t, seen[DocConceptOnePager])
	assert.True(t, seen[DocFoundersAgreement])
}
