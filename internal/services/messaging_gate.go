package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/repositories"
)

// DefaultConversationLimit bounds a conversation page when the caller does not
// ask for a specific size.
const DefaultConversationLimit = 50

// MessagingGate authorizes and persists direct messages. Sends are gated on
// FollowGraph's derived friendship state, re-checked on every call; reads are
// deliberately ungated.
type MessagingGate struct {
	messageRepository repositories.MessageRepository
	followGraph       *FollowGraph
}

// NewMessagingGate creates a new MessagingGate
func NewMessagingGate(messageRepo repositories.MessageRepository, followGraph *FollowGraph) *MessagingGate {
	return &MessagingGate{
		messageRepository: messageRepo,
		followGraph:       followGraph,
	}
}

// SendMessage persists a direct message from senderID to receiverID once the
// pair's mutual-follow state checks out. The message must carry content: text
// that is non-empty after trimming, or structured metadata.
func (m *MessagingGate) SendMessage(ctx context.Context, senderID, receiverID uint, text string, metadata map[string]any) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(metadata) == 0 {
		return nil, fmt.Errorf("%w: message requires text or metadata", ErrInvalidOperation)
	}

	friends, err := m.followGraph.AreFriends(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrUnauthorized
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Metadata:   metadata,
	}
	if err := m.messageRepository.InsertMessage(ctx, message); err != nil {
		return nil, storageErr("send message", err)
	}
	return message, nil
}

// GetConversation returns the most recent messages exchanged between userA and
// userB in chronological order. limit falls back to DefaultConversationLimit
// when not positive.
func (m *MessagingGate) GetConversation(ctx context.Context, userA, userB uint, limit int64) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultConversationLimit
	}
	messages, err := m.messageRepository.GetConversation(ctx, userA, userB, limit)
	if err != nil {
		return nil, storageErr("get conversation", err)
	}
	return messages, nil
}
