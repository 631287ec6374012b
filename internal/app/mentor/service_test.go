package mentor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigenys/apex-forge/internal/adapters/llm"
	"github.com/trigenys/apex-forge/internal/adapters/storage/memory"
	"github.com/trigenys/apex-forge/internal/app/mentor"
	"github.com/trigenys/apex-forge/internal/domain"
)

type recordingListener struct {
	notified []domain.ProjectID
}

func (l *recordingListener) NotifyHistoryChanged(id domain.ProjectID) {
	l.notified = append(l.notified, id)
}

type mentorFixture struct {
	gen      *llm.MockGenerator
	messages *memory.MessageStore
	listener *recordingListener
	svc      *mentor.Service
}

func newMentorFixture(t *testing.T) *mentorFixture {
	t.Helper()

	f := &mentorFixture{
		gen:      llm.NewMockGenerator(),
		messages: memory.NewMessageStore(),
		listener: &recordingListener{},
	}
	projects := memory.NewProjectStore()
	users := memory.NewUserStore()

	require.NoError(t, projects.CreateProject(&domain.Project{
		ID:      "p1",
		OwnerID: "u1",
		Name:    "Inkline",
	}))
	require.NoError(t, users.SaveUser(&domain.UserProfile{
		ID:       "u1",
		Name:     "Maya",
		Industry: "design",
		MainGoal: "brand identity sprints for startups",
	}))

	f.svc = mentor.NewService(f.gen, projects, f.messages, users, "flash-model")
	f.svc.SetHistoryListener(f.listener)
	return f
}

func TestStartConversationAppendsOpening(t *testing.T) {
	f := newMentorFixture(t)
	f.gen.QueueReply("Welcome aboard. Let's stress-test the problem first.")

	out, err := f.svc.StartConversation(context.Background(), mentor.StartConversationInput{
		ProjectID: "p1",
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, out.Opening.Role)
	assert.Equal(t, "Welcome aboard. Let's stress-test the problem first.", out.Opening.Text)

	history, err := f.messages.GetMessagesByProject("p1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleAssistant, history[0].Role)

	assert.Equal(t, []domain.ProjectID{"p1"}, f.listener.notified)
}

func TestSendMessageAppendsBothSides(t *testing.T) {
	f := newMentorFixture(t)
	f.gen.QueueReply("Good. Who exactly pays for this?")

	out, err := f.svc.SendMessage(context.Background(), mentor.SendMessageInput{
		ProjectID: "p1",
		UserID:    "u1",
		Text:      "The problem is inconsistent branding at launch.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, out.UserMessage.Role)
	assert.Equal(t, domain.RoleAssistant, out.MentorMessage.Role)

	history, err := f.messages.GetMessagesByProject("p1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "The problem is inconsistent branding at launch.", history[0].Text)
	assert.Equal(t, "Good. Who exactly pays for this?", history[1].Text)

	// One notification per appended message.
	assert.Equal(t, []domain.ProjectID{"p1", "p1"}, f.listener.notified)
}

func TestSendMessageKeepsUserMessageOnFailure(t *testing.T) {
	f := newMentorFixture(t)
	f.gen.QueueError(errors.New("model unavailable"))

	_, err := f.svc.SendMessage(context.Background(), mentor.SendMessageInput{
		ProjectID: "p1",
		UserID:    "u1",
		Text:      "Still here?",
	})
	require.Error(t, err)

	// The user's message survives so the turn can be retried.
	history, err := f.messages.GetMessagesByProject("p1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleUser, history[0].Role)
}

func TestSendMessageEmbedsTranscript(t *testing.T) {
	f := newMentorFixture(t)
	f.gen.QueueReply("Opening.")
	_, err := f.svc.StartConversation(context.Background(), mentor.StartConversationInput{
		ProjectID: "p1",
		UserID:    "u1",
	})
	require.NoError(t, err)

	f.gen.QueueReply("Reply.")
	_, err = f.svc.SendMessage(context.Background(), mentor.SendMessageInput{
		ProjectID: "p1",
		UserID:    "u1",
		Text:      "We charge per sprint.",
	})
	require.NoError(t, err)

	require.Len(t, f.gen.Calls, 2)
	assert.Contains(t, f.gen.Calls[1], "MENTOR: Opening.")
	assert.Contains(t, f.gen.Calls[1], "USER: We charge per sprint.")
}

func TestGetHistoryOrdersOldestFirst(t *testing.T) {
	f := newMentorFixture(t)
	f.gen.QueueReply("Opening.")
	_, err := f.svc.StartConversation(context.Background(), mentor.StartConversationInput{
		ProjectID: "p1",
		UserID:    "u1",
	})
	require.NoError(t, err)

	f.gen.QueueReply("Reply.")
	_, err = f.svc.SendMessage(context.Background(), mentor.SendMessageInput{
		ProjectID: "p1",
		UserID:    "u1",
		Text:      "Question.",
	})
	require.NoError(t, err)

	history, err := f.svc.GetHistory(context.Background(), "p1", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Opening.", history[0].Text)
	assert.Equal(t, "Reply.", history[2].Text)
}
