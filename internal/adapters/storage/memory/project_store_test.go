package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/domain"
)

func TestProjectStoreRoundTrip(t *testing.T) {
	s := NewProjectStore()

	p := &domain.Project{ID: "p1", OwnerID: "u1", Name: "Inkline"}
	require.NoError(t, s.CreateProject(p))

	got, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "Inkline", got.Name)

	_, err = s.GetProject("ghost")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	assert.Error(t, s.CreateProject(p), "duplicate create must fail")
}

func TestProjectStoreReadsDoNotShareState(t *testing.T) {
	s := NewProjectStore()
	require.NoError(t, s.CreateProject(&domain.Project{ID: "p1", Name: "Inkline"}))
	require.NoError(t, s.SaveAsset("p1", domain.DocPitchScript, "## PITCH"))

	got, err := s.GetProject("p1")
	require.NoError(t, err)
	got.GeneratedAssets[domain.DocPitchScript] = "mutated"
	got.Name = "mutated"

	fresh, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "Inkline", fresh.Name)
	assert.Equal(t, "## PITCH", fresh.GeneratedAssets[domain.DocPitchScript])
}

func TestProjectStoreSaveAssetMergesByKey(t *testing.T) {
	s := NewProjectStore()
	require.NoError(t, s.CreateProject(&domain.Project{ID: "p1", Name: "Inkline"}))

	require.NoError(t, s.SaveAsset("p1", domain.DocPitchScript, "## PITCH"))
	require.NoError(t, s.SaveAsset("p1", domain.DocConceptOnePager, "## ONE PAGER"))
	require.NoError(t, s.SaveAsset("p1", domain.DocPitchScript, "## PITCH v2"))

	got, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "## PITCH v2", got.GeneratedAssets[domain.DocPitchScript])
	assert.Equal(t, "## ONE PAGER", got.GeneratedAssets[domain.DocConceptOnePager])

	assert.ErrorIs(t, s.SaveAsset("ghost", domain.DocPitchScript, "x"), domain.ErrProjectNotFound)
}

func TestProjectStoreMergePlanLeavesOtherSections(t *testing.T) {
	s := NewProjectStore()
	require.NoError(t, s.CreateProject(&domain.Project{ID: "p1", Name: "Inkline"}))

	require.NoError(t, s.MergePlan("p1", domain.PlanData{
		domain.SectionFoundations: {Content: "## Idea", Completion: 50},
	}))
	require.NoError(t, s.MergePlan("p1", domain.PlanData{
		domain.SectionMarket: {Content: "## Market", Completion: 20},
	}))

	got, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Len(t, got.Plan, 2)
	assert.Equal(t, 50.0, got.Plan[domain.SectionFoundations].Completion)
}

func TestProjectStoreListByOwnerNewestFirst(t *testing.T) {
	s := NewProjectStore()
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateProject(&domain.Project{ID: "old", OwnerID: "u1", Name: "Old", CreatedAt: base}))
	require.NoError(t, s.CreateProject(&domain.Project{ID: "new", OwnerID: "u1", Name: "New", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.CreateProject(&domain.Project{ID: "other", OwnerID: "u2", Name: "Other", CreatedAt: base}))

	got, err := s.ListProjectsByOwner("u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ProjectID("new"), got[0].ID)

	limited, err := s.ListProjectsByOwner("u1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
