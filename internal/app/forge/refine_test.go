package forge_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appforge "github.com/trigenys/apex-forge/internal/app/forge"
	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
)

func seedAsset(t *testing.T, f *fixture, docType domain.DocType, content string) {
	t.Helper()
	require.NoError(t, f.projects.SaveAsset("p1", docType, content))
}

func TestRefineUpdatesDocumentAndPersists(t *testing.T) {
	f := newFixture(t)
	seedAsset(t, f, domain.DocOffersPricing, "## Pricing\n- old ranges")

	session, err := f.svc.OpenRefineSession("p1", domain.DocOffersPricing)
	require.NoError(t, err)
	assert.Equal(t, "## Pricing\n- old ranges", session.Content())

	f.gen.QueueReply(`{"assistantMessage":"Added a premium tier.","updatedContent":"## Pricing\n- new ranges\n- premium tier"}`)

	res, err := session.Refine(context.Background(), "Add a premium tier.")
	require.NoError(t, err)
	assert.False(t, res.Recovered)
	assert.Equal(t, "Added a premium tier.", res.AssistantMessage)
	assert.Equal(t, "## Pricing\n- new ranges\n- premium tier", res.Content)
	assert.Equal(t, res.Content, session.Content())

	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, res.Content, p.GeneratedAssets[domain.DocOffersPricing])
}

func TestRefineRecoversFromMalformedReply(t *testing.T) {
	f := newFixture(t)
	seedAsset(t, f, domain.DocOffersPricing, "## Pricing\n- old ranges")

	session, err := f.svc.OpenRefineSession("p1", domain.DocOffersPricing)
	require.NoError(t, err)

	f.gen.QueueReply(`Sure! Here is the update:`)

	res, err := session.Refine(context.Background(), "Add a premium tier.")
	require.NoError(t, err)
	assert.True(t, res.Recovered)
	assert.Equal(t, forge.RefineApology, res.AssistantMessage)
	assert.Equal(t, "## Pricing\n- old ranges", res.Content)

	// The stored document is untouched by a recovered turn.
	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "## Pricing\n- old ranges", p.GeneratedAssets[domain.DocOffersPricing])

	// The failed exchange stays in the conversation so the user can
	// rephrase with context.
	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, forge.RefineApology, history[1].Text)
}

func TestRefineTransportErrorLeavesSessionUntouched(t *testing.T) {
	f := newFixture(t)
	seedAsset(t, f, domain.DocOffersPricing, "## Pricing")

	session, err := f.svc.OpenRefineSession("p1", domain.DocOffersPricing)
	require.NoError(t, err)

	f.gen.QueueError(assert.AnError)

	_, err = session.Refine(context.Background(), "Add a premium tier.")
	require.Error(t, err)
	assert.Equal(t, "## Pricing", session.Content())
	assert.Empty(t, session.History())
}

func TestRefineFromScratchAllowed(t *testing.T) {
	f := newFixture(t)

	session, err := f.svc.OpenRefineSession("p1", domain.DocPitchScript)
	require.NoError(t, err)
	assert.Empty(t, session.Content())

	f.gen.QueueReply(`{"assistantMessage":"Drafted a first pitch.","updatedContent":"## Pitch\n- hook"}`)

	res, err := session.Refine(context.Background(), "Draft a pitch from nothing.")
	require.NoError(t, err)
	assert.Equal(t, "## Pitch\n- hook", res.Content)
}

func TestRefineRejectsConcurrentTurn(t *testing.T) {
	f := newFixture(t)
	seedAsset(t, f, domain.DocOffersPricing, "## Pricing")

	session, err := f.svc.OpenRefineSession("p1", domain.DocOffersPricing)
	require.NoError(t, err)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.gen.Gate = func() {
		close(inFlight)
		<-release
	}
	f.gen.QueueReply(`{"assistantMessage":"Done.","updatedContent":"## Pricing v2"}`)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := session.Refine(context.Background(), "first turn")
		assert.NoError(t, err)
	}()

	<-inFlight
	_, err = session.Refine(context.Background(), "second turn")
	assert.ErrorIs(t, err, appforge.ErrRefineInFlight)

	close(release)
	wg.Wait()

	// Once the first turn lands, the session accepts work again.
	f.gen.Gate = nil
	f.gen.QueueReply(`{"assistantMessage":"Done again.","updatedContent":"## Pricing v3"}`)
	res, err := session.Refine(context.Background(), "third turn")
	require.NoError(t, err)
	assert.Equal(t, "## Pricing v3", res.Content)
}
