package distill_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/adapters/llm"
	"github.com/trigenys/apex-forge/internal/adapters/storage/memory"
	"github.com/trigenys/apex-forge/internal/app/distill"
	"github.com/trigenys/apex-forge/internal/domain"
)

type distillFixture struct {
	gen      *llm.MockGenerator
	projects *memory.ProjectStore
	messages *memory.MessageStore
	d        *distill.Distiller
}

func newDistillFixture(t *testing.T, debounce time.Duration) *distillFixture {
	t.Helper()

	f := &distillFixture{
		gen:      llm.NewMockGenerator(),
		projects: memory.NewProjectStore(),
		messages: memory.NewMessageStore(),
	}
	users := memory.NewUserStore()

	require.NoError(t, f.projects.CreateProject(&domain.Project{
		ID:      "p1",
		OwnerID: "u1",
		Name:    "Inkline",
	}))
	require.NoError(t, users.SaveUser(&domain.UserProfile{ID: "u1", Name: "Maya"}))

	f.d = distill.NewDistiller(f.gen, f.projects, f.messages, users, "flash-model", debounce)
	t.Cleanup(f.d.Stop)
	return f
}

func appendMsg(t *testing.T, f *distillFixture, role domain.Role, text string) {
	t.Helper()
	require.NoError(t, f.messages.AppendMessage(&domain.ChatMessage{
		ID:        domain.MessageID(text),
		ProjectID: "p1",
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}))
}

func TestDistillNowMergesDecodedDelta(t *testing.T) {
	f := newDistillFixture(t, time.Hour)
	appendMsg(t, f, domain.RoleUser, "We target freelancers first.")
	appendMsg(t, f, domain.RoleAssistant, "Sharp. Freelancers churn fast, plan for that.")

	f.gen.QueueReply(`{"Market & Target": {"content": "## Target\n- freelancers", "completion": 35}}`)

	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))

	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	require.Contains(t, p.Plan, domain.SectionMarket)
	assert.Equal(t, 35.0, p.Plan[domain.SectionMarket].Completion)
}

func TestDistillNowPreservesOtherSections(t *testing.T) {
	f := newDistillFixture(t, time.Hour)
	appendMsg(t, f, domain.RoleAssistant, "Let's talk about the business model.")

	f.gen.QueueReply(`{"Foundations & Idea": {"content": "## Idea", "completion": 50}}`)
	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))

	f.gen.QueueReply(`{"Business Model": {"content": "## Model", "completion": 20}}`)
	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))

	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Contains(t, p.Plan, domain.SectionFoundations)
	assert.Contains(t, p.Plan, domain.SectionBusinessModel)
}

func TestDistillNowSkipsWhenLastMessageIsUser(t *testing.T) {
	f := newDistillFixture(t, time.Hour)
	appendMsg(t, f, domain.RoleUser, "What about pricing?")

	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))

	// No generation call happened at all.
	assert.Empty(t, f.gen.Calls)
}

func TestDistillNowEmptyHistoryIsNoop(t *testing.T) {
	f := newDistillFixture(t, time.Hour)
	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))
	assert.Empty(t, f.gen.Calls)
}

func TestDistillNowMalformedPayloadMergesNothing(t *testing.T) {
	f := newDistillFixture(t, time.Hour)
	appendMsg(t, f, domain.RoleAssistant, "Noted.")

	f.gen.QueueReply(`not json at all`)
	require.NoError(t, f.d.DistillNow(context.Background(), "p1"))

	p, err := f.projects.GetProject("p1")
	require.NoError(t, err)
	assert.Empty(t, p.Plan)
}

func TestNotifyDebounceCollapsesBursts(t *testing.T) {
	f := newDistillFixture(t, 30*time.Millisecond)
	appendMsg(t, f, domain.RoleAssistant, "Noted.")

	f.gen.QueueReply(`{"Foundations & Idea": {"content": "## Idea", "completion": 10}}`)

	// A burst of notifications re-arms the timer instead of stacking
	// passes.
	f.d.NotifyHistoryChanged("p1")
	f.d.NotifyHistoryChanged("p1")
	f.d.NotifyHistoryChanged("p1")

	require.Eventually(t, func() bool {
		p, err := f.projects.GetProject("p1")
		return err == nil && len(p.Plan) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, f.gen.CallCount())
}
