// Package stubs holds in-memory repository implementations for tests that do
// not want a running MongoDB.
package stubs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frekans/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageRepositoryStub implements repositories.MessageRepository over a slice.
type MessageRepositoryStub struct {
	mu       sync.Mutex
	messages []models.Message

	// InsertErr, when set, is returned by InsertMessage to simulate a
	// storage failure.
	InsertErr error
}

func NewMessageRepositoryStub() *MessageRepositoryStub {
	return &MessageRepositoryStub{}
}

func (s *MessageRepositoryStub) InsertMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	message.ID = primitive.NewObjectID()
	message.SentAt = time.Now().UTC()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *MessageRepositoryStub) GetConversation(_ context.Context, userA, userB uint, limit int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conv []models.Message
	for _, m := range s.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			conv = append(conv, m)
		}
	}
	sort.Slice(conv, func(i, j int) bool { return conv[i].SentAt.Before(conv[j].SentAt) })
	if limit > 0 && int64(len(conv)) > limit {
		conv = conv[int64(len(conv))-limit:]
	}
	return conv, nil
}

// Len reports how many messages the stub holds.
func (s *MessageRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
