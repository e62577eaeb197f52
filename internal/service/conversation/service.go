package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plantpal/backend/internal/model/conversation"
	"github.com/plantpal/backend/internal/model/plant"
)

var ErrSessionNotFound = errors.New("session not found")

// session owns one identity's transcript. The mutex makes the two-message
// turn append atomic with respect to concurrent turns on the same identity.
type session struct {
	mu       sync.Mutex
	messages []conversation.Message
}

// Service keeps every pot's transcript in memory for the process lifetime.
// Transcripts grow without bound; pruning is deliberately out of scope.
type Service struct {
	mu       sync.RWMutex
	sessions map[plant.Key]*session
}

// NewService bootstraps the in-memory conversation store.
func NewService() *Service {
	return &Service{sessions: make(map[plant.Key]*session)}
}

// Snapshot returns a copy of the transcript for the identity, creating the
// session on first use with a single system message seeded from
// systemPrompt. The seed is written exactly once: profile updates after
// creation do not rewrite an existing session's system message.
func (s *Service) Snapshot(key plant.Key, systemPrompt string) []conversation.Message {
	entry := s.getOrCreate(key, systemPrompt)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	copied := make([]conversation.Message, len(entry.messages))
	copy(copied, entry.messages)
	return copied
}

// AppendExchange appends the user and assistant messages as one unit and
// returns the new transcript length. Called only after the model reply
// succeeded, so a failed turn never leaves a dangling user entry.
func (s *Service) AppendExchange(key plant.Key, userText, assistantText string) (int, error) {
	s.mu.RLock()
	entry, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrSessionNotFound
	}

	now := time.Now().UTC()
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.messages = append(entry.messages,
		conversation.Message{
			ID:        uuid.NewString(),
			Role:      conversation.RoleUser,
			Content:   userText,
			CreatedAt: now,
		},
		conversation.Message{
			ID:        uuid.NewString(),
			Role:      conversation.RoleAssistant,
			Content:   assistantText,
			CreatedAt: now,
		},
	)
	return len(entry.messages), nil
}

// Transcript returns a copy of the stored messages for the identity.
func (s *Service) Transcript(key plant.Key) ([]conversation.Message, error) {
	s.mu.RLock()
	entry, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	copied := make([]conversation.Message, len(entry.messages))
	copy(copied, entry.messages)
	return copied, nil
}

func (s *Service) getOrCreate(key plant.Key, systemPrompt string) *session {
	s.mu.RLock()
	entry, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok = s.sessions[key]; ok {
		return entry
	}

	entry = &session{
		messages: []conversation.Message{{
			ID:        uuid.NewString(),
			Role:      conversation.RoleSystem,
			Content:   systemPrompt,
			CreatedAt: time.Now().UTC(),
		}},
	}
	s.sessions[key] = entry
	return entry
}
