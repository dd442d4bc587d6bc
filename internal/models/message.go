package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one direct message in the append-only message log. Metadata
// carries a structured non-text payload such as a shared track reference.
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID   uint               `json:"sender_id" bson:"sender_id"`
	ReceiverID uint               `json:"receiver_id" bson:"receiver_id"`
	Text       string             `json:"text,omitempty" bson:"text,omitempty"`
	Metadata   map[string]any     `json:"metadata,omitempty" bson:"metadata,omitempty"`
	SentAt     time.Time          `json:"sent_at" bson:"sent_at"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	ReceiverID  uint           `json:"receiver_id" validate:"required"`
	MessageText string         `json:"message_text"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
