package mentor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
	"github.com/trigenys/apex-forge/internal/observability"
)

// HistoryListener is notified after each appended message. The plan
// distiller hangs off this hook.
type HistoryListener interface {
	NotifyHistoryChanged(projectID domain.ProjectID)
}

// Service runs the mentor conversation: kickoff, turns, transcript.
type Service struct {
	gen          domain.Generator
	projectStore domain.ProjectStore
	messageStore domain.MessageStore
	userStore    domain.UserStore
	listener     HistoryListener
	now          func() time.Time

	model string
}

func NewService(
	gen domain.Generator,
	projectStore domain.ProjectStore,
	messageStore domain.MessageStore,
	userStore domain.UserStore,
	model string,
) *Service {
	return &Service{
		gen:          gen,
		projectStore: projectStore,
		messageStore: messageStore,
		userStore:    userStore,
		now:          time.Now,
		model:        model,
	}
}

// SetHistoryListener attaches the transcript-change hook. Nil detaches.
func (s *Service) SetHistoryListener(l HistoryListener) {
	s.listener = l
}

type StartConversationInput struct {
	ProjectID domain.ProjectID
	UserID    domain.UserID
}

type StartConversationOutput struct {
	Opening *domain.ChatMessage
}

// StartConversation sends the kickoff and persists the mentor's opening
// message. The transcript starts with the assistant speaking first.
func (s *Service) StartConversation(ctx context.Context, in StartConversationInput) (*StartConversationOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"project_id", in.ProjectID,
		"user_id", in.UserID,
	)
	log.Info("starting mentor conversation")

	user, err := s.userStore.GetUser(in.UserID)
	if err != nil {
		return nil, err
	}

	instruction := forge.MentorInstruction(user) + "\n\nUSER: " + forge.MentorKickoff

	text, err := s.gen.GenerateText(ctx, instruction, domain.GenerateOptions{
		Model:       s.model,
		Temperature: 0.7,
	})
	if err != nil {
		log.Error("mentor kickoff failed", "error", err)
		return nil, fmt.Errorf("mentor kickoff: %w", err)
	}

	opening := &domain.ChatMessage{
		ID:        domain.MessageID(uuid.NewString()),
		ProjectID: in.ProjectID,
		Role:      domain.RoleAssistant,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(opening); err != nil {
		log.Error("failed to append opening message", "error", err)
		return nil, err
	}

	s.notify(in.ProjectID)
	log.Info("mentor conversation started")
	return &StartConversationOutput{Opening: opening}, nil
}

type SendMessageInput struct {
	ProjectID domain.ProjectID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage   *domain.ChatMessage
	MentorMessage *domain.ChatMessage
}

// SendMessage appends the user's message, generates the mentor's reply
// over the full transcript, and appends that too. The user's message
// survives even when generation fails, so the turn can be retried.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"project_id", in.ProjectID,
		"user_id", in.UserID,
	)

	user, err := s.userStore.GetUser(in.UserID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		ID:        domain.MessageID(uuid.NewString()),
		ProjectID: in.ProjectID,
		Role:      domain.RoleUser,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}
	s.notify(in.ProjectID)

	history, err := s.messageStore.GetMessagesByProject(in.ProjectID, 0)
	if err != nil {
		return nil, err
	}

	instruction := forge.MentorInstruction(user) + "\n\nTRANSCRIPT SO FAR:\n" + transcript(history) +
		"\n\nReply to the user's last message as the mentor."

	text, err := s.gen.GenerateText(ctx, instruction, domain.GenerateOptions{
		Model:       s.model,
		Temperature: 0.7,
	})
	if err != nil {
		log.Error("mentor reply failed", "error", err)
		return nil, fmt.Errorf("mentor reply: %w", err)
	}

	mentorMsg := &domain.ChatMessage{
		ID:        domain.MessageID(uuid.NewString()),
		ProjectID: in.ProjectID,
		Role:      domain.RoleAssistant,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.messageStore.AppendMessage(mentorMsg); err != nil {
		log.Error("failed to append mentor message", "error", err)
		return nil, err
	}
	s.notify(in.ProjectID)

	return &SendMessageOutput{UserMessage: userMsg, MentorMessage: mentorMsg}, nil
}

// GetHistory returns the transcript, oldest first.
func (s *Service) GetHistory(ctx context.Context, projectID domain.ProjectID, limit int) ([]*domain.ChatMessage, error) {
	return s.messageStore.GetMessagesByProject(projectID, limit)
}

func (s *Service) notify(projectID domain.ProjectID) {
	if s.listener != nil {
		s.listener.NotifyHistoryChanged(projectID)
	}
}

func transcript(history []*domain.ChatMessage) string {
	out := ""
	for _, m := range history {
		if out != "" {
			out += "\n\n"
		}
		switch m.Role {
		case domain.RoleUser:
			out += "USER: " + m.Text
		default:
			out += "MENTOR: " + m.Text
		}
	}
	return out
}
