package checkout

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoIntents struct {
	collection *mongo.Collection
}

func NewMongoIntents(db *mongo.Database) IntentRepository {
	return &mongoIntents{collection: db.Collection("checkout_intents")}
}

func (m *mongoIntents) Create(ctx context.Context, intent *Intent) error {
	now := time.Now().UTC()
	intent.Status = IntentStatusCreated
	intent.CreatedAt = now
	intent.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, intent); err != nil {
		return fmt.Errorf("failed to create checkout intent: %w", err)
	}
	return nil
}

func (m *mongoIntents) MarkPurchaseWritten(ctx context.Context, intentID, purchaseID string) error {
	return m.setStatus(ctx, intentID, bson.M{
		"status":      IntentStatusPurchaseWritten,
		"purchase_id": purchaseID,
		"updated_at":  time.Now().UTC(),
	})
}

func (m *mongoIntents) Complete(ctx context.Context, intentID string) error {
	return m.setStatus(ctx, intentID, bson.M{
		"status":     IntentStatusCompleted,
		"updated_at": time.Now().UTC(),
	})
}

func (m *mongoIntents) setStatus(ctx context.Context, intentID string, fields bson.M) error {
	filter := bson.M{"_id": intentID}
	update := bson.M{"$set": fields}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update checkout intent: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("checkout intent %s not found", intentID)
	}
	return nil
}

func (m *mongoIntents) FindStuck(ctx context.Context, staleAfter time.Duration) ([]*Intent, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	filter := bson.M{
		"status":     IntentStatusPurchaseWritten,
		"updated_at": bson.M{"$lt": cutoff},
	}

	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query stuck intents: %w", err)
	}
	defer cursor.Close(ctx)

	var intents []*Intent
	if err := cursor.All(ctx, &intents); err != nil {
		return nil, fmt.Errorf("failed to decode stuck intents: %w", err)
	}

	return intents, nil
}
