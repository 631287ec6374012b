package memory

import (
	"sync"

	"github.com/trigenys/apex-forge/internal/domain"
)

// MessageStore keeps the mentor transcript per project, append-only and
// in arrival order.
type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.ProjectID][]*domain.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.ProjectID][]*domain.ChatMessage),
	}
}

func (s *MessageStore) AppendMessage(msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *msg
	s.messages[msg.ProjectID] = append(s.messages[msg.ProjectID], &copied)
	return nil
}

func (s *MessageStore) GetMessagesByProject(id domain.ProjectID, limit int) ([]*domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[id]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]*domain.ChatMessage, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}
