package forge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/adapters/llm"
	"github.com/trigenys/apex-forge/internal/adapters/storage/memory"
	appforge "github.com/trigenys/apex-forge/internal/app/forge"
	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

type fixture struct {
	gen      *llm.MockGenerator
	projects *memory.ProjectStore
	messages *memory.MessageStore
	users    *memory.UserStore
	svc      *appforge.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		gen:      llm.NewMockGenerator(),
		projects: memory.NewProjectStore(),
		messages: memory.NewMessageStore(),
		users:    memory.NewUserStore(),
	}
	f.svc = appforge.NewService(f.gen, f.projects, f.messages, f.users, forge.NewRegistry(nil), "pro-model", "flash-model")

	require.NoError(t, f.projects.CreateProject(&domain.Project{
		ID:      "p1",
		OwnerID: "u1",
		Name:    "Inkline",
		Country: "France",
		Offer:   "brand identity sprints",
	}))
	require.NoError(t, f.users.SaveUser(&domain.UserProfile{
		ID:       "u1",
		Name:     "Maya",
		FullName: "Maya Duarte",
		Country:  "France",
	}))
	return f
}

func TestForgeAssetStoresDocument(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply("## ONE PAGER\n- Inkline at a glance")

	out, err := f.svc.ForgeAsset(context.Background(), appforge.ForgeAssetInput{
		ProjectID: "p1",
		DocType:   domain.DocConceptOnePager,
	})
	require.NoError(t, err)
	assert.False(t, out.Failed)
	assert.Equal(t, "## ONE PAGER\n- Inkline at a glance", out.Content)

	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, out.Content, p.GeneratedAssets[domain.DocConceptOnePager])
}

func TestForgeAssetFailureStoresPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueError(errors.New("model unavailable"))

	out, err := f.svc.ForgeAsset(context.Background(), appforge.ForgeAssetInput{
		ProjectID: "p1",
		DocType:   domain.DocPitchScript,
	})
	require.NoError(t, err)
	assert.True(t, out.Failed)
	assert.Contains(t, out.Content, "GENERATION FAILED")

	// The placeholder occupies the slot so a later refinement can
	// recover the document.
	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, out.Content, p.GeneratedAssets[domain.DocPitchScript])
}

func TestForgeAssetUnknownProject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ForgeAsset(context.Background(), appforge.ForgeAssetInput{
		ProjectID: "ghost",
		DocType:   domain.DocConceptOnePager,
	})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestForgeAssetFallsBackToProjectProfile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.projects.CreateProject(&domain.Project{
		ID:      "p2",
		OwnerID: "stranger",
		Name:    "Orphan",
	}))
	f.gen.QueueReply("## DOC")

	out, err := f.svc.ForgeAsset(context.Background(), appforge.ForgeAssetInput{
		ProjectID: "p2",
		DocType:   domain.DocConceptOnePager,
	})
	require.NoError(t, err)
	assert.False(t, out.Failed)
}

func TestForgeContractNotStored(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply("NON-DISCLOSURE AGREEMENT\n\nArticle 1 — Purpose")

	content, err := f.svc.ForgeContract(context.Background(), "p1", "NDA")
	require.NoError(t, err)
	assert.Contains(t, content, "Article 1")

	// Contracts outside the catalog are returned, never persisted.
	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Empty(t, p.GeneratedAssets)
}

func TestForgeContractPropagatesFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueError(errors.New("model unavailable"))

	_, err := f.svc.ForgeContract(context.Background(), "p1", "NDA")
	assert.Error(t, err)
}

func TestSculptCollaborator(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply(`{"role":"Creative Director","bio":"Leads every identity sprint.","expertise":["branding","typography"]}`)

	out, err := f.svc.SculptCollaborator(context.Background(), appforge.SculptInput{
		ProjectID:    "p1",
		Collaborator: domain.CollaboratorProfile{Name: "Iris", Role: "designer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Iris", out.Name)
	assert.Equal(t, "Creative Director", out.Role)
	assert.Equal(t, []string{"branding", "typography"}, out.Expertise)
}

func TestSculptCollaboratorKeepsOriginalOnBadPayload(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply(`Sure, here is the profile:`)

	original := domain.CollaboratorProfile{Name: "Iris", Role: "designer", Bio: "Draws."}
	out, err := f.svc.SculptCollaborator(context.Background(), appforge.SculptInput{
		ProjectID:    "p1",
		Collaborator: original,
	})
	require.NoError(t, err)
	assert.Equal(t, original, *out)
}

func TestSimulateFinancials(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply(`[{"month":1,"revenue":2000,"expenses":1500,"stress":30,"stability":70},{"month":2,"revenue":2600,"expenses":1500,"stress":25,"stability":75}]`)

	points, err := f.svc.SimulateFinancials(context.Background(), "p1", "hire a second designer")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 2, points[1].Month)
	assert.Equal(t, 2600.0, points[1].Revenue)
}

func TestSimulateFinancialsBadPayload(t *testing.T) {
	f := newFixture(t)
	f.gen.QueueReply(`{"oops":true}`)

	_, err := f.svc.SimulateFinancials(context.Background(), "p1", "hire a second designer")
	assert.Error(t, err)
}
