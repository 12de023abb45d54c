package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketbay/storefront/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("purchases")}
}

func (m *mongoRepository) Insert(ctx context.Context, purchase *domain.Purchase) (primitive.ObjectID, error) {
	result, err := m.collection.InsertOne(ctx, purchase)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert purchase: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

// ownerFilter builds the {_id, user_id} filter. A purchase id that isn't a
// well-formed ObjectId can't match anything, reported as not-found rather
// than a distinct error.
func ownerFilter(userID, purchaseID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(purchaseID)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func (m *mongoRepository) GetForUser(ctx context.Context, userID, purchaseID string) (*domain.Purchase, error) {
	filter, err := ownerFilter(userID, purchaseID)
	if err != nil {
		return nil, err
	}

	var purchase domain.Purchase
	if err := m.collection.FindOne(ctx, filter).Decode(&purchase); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	return &purchase, nil
}

func (m *mongoRepository) ListForUser(ctx context.Context, userID string, offset, limit int64) ([]*domain.Purchase, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "order_date", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer cursor.Close(ctx)

	var purchases []*domain.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, 0, fmt.Errorf("failed to decode purchases: %w", err)
	}

	return purchases, total, nil
}

func (m *mongoRepository) UpdateStatusForUser(ctx context.Context, userID, purchaseID string, status domain.PurchaseStatus) error {
	filter, err := ownerFilter(userID, purchaseID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update purchase status: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "order_date", Value: -1},
			},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create purchase indexes: %w", err)
	}

	return nil
}
