package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutboxEvent is a durable record of something the rest of the platform needs
// to hear about. Events are appended next to the state change that produced
// them and shipped to Kafka by the poller.
type OutboxEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Payload   []byte             `bson:"payload"`
	Processed bool               `bson:"processed"`
	CreatedAt time.Time          `bson:"created_at"`
}

type OutboxRepository interface {
	Append(ctx context.Context, eventType string, payload any) error
	GetUnprocessed(ctx context.Context, limit int64) ([]OutboxEvent, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID) error
}

type mongoOutbox struct {
	collection *mongo.Collection
}

func NewMongoOutbox(db *mongo.Database) OutboxRepository {
	return &mongoOutbox{collection: db.Collection("outbox_events")}
}

func (m *mongoOutbox) Append(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	event := OutboxEvent{
		Type:      eventType,
		Payload:   data,
		Processed: false,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := m.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return nil
}

func (m *mongoOutbox) GetUnprocessed(ctx context.Context, limit int64) ([]OutboxEvent, error) {
	filter := bson.M{"processed": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []OutboxEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}

	return events, nil
}

func (m *mongoOutbox) MarkProcessed(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"processed": true}}

	if _, err := m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark outbox event processed: %w", err)
	}
	return nil
}

func (m *mongoOutbox) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "processed", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create outbox indexes: %w", err)
	}

	return nil
}
