package repositories

import (
	"context"
	"time"

	"github.com/frekans/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for the append-only message log
type MessageRepository interface {
	InsertMessage(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, userA, userB uint, limit int64) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// InsertMessage appends a message to the log with a server-assigned id and timestamp
func (r *MongoMessageRepository) InsertMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.SentAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetConversation retrieves messages exchanged between userA and userB in either
// direction. The query walks the log newest-first so limit keeps the most recent
// messages, then the page is reversed to chronological order for display.
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userA, userB uint, limit int64) ([]models.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": userA, "receiver_id": userB},
			bson.M{"sender_id": userB, "receiver_id": userA},
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
