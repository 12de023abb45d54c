package cart

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketbay/storefront/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("cart")}
}

func (m *mongoRepository) GetEntries(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	filter := bson.M{"user_id": userID}
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.CartEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart entries: %w", err)
	}

	return entries, nil
}

// AddItem relies on a single upserting $inc so two concurrent merges for the
// same (user, product) pair can't lose an update.
func (m *mongoRepository) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{
		"$inc": bson.M{"quantity": quantity},
		"$set": bson.M{"added_at": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (m *mongoRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{
		"$set": bson.M{
			"quantity": quantity,
			"added_at": time.Now().UTC(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set cart item quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	filter := bson.M{"user_id": userID, "product_id": productID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoRepository) Clear(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"user_id": userID}

	result, err := m.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	return result.DeletedCount, nil
}

func (m *mongoRepository) Count(ctx context.Context, userID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$quantity"}}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate cart count: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode cart count: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
