package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketbay/storefront/internal/domain"
)

// The products collection was bulk-loaded from an external feed: most
// documents keep the feed's product id (an arbitrary string) in _id, but
// records without one got a generated ObjectId. productDoc captures both.
type productDoc struct {
	ID      any            `bson:"_id"`
	Product domain.Product `bson:",inline"`
}

// canonicalID renders the stored _id the way every write path must refer to
// the product: strings verbatim, ObjectIds in hex form.
func (d *productDoc) canonicalID() string {
	switch id := d.ID.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprintf("%v", id)
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("products")}
}

func (m *mongoRepository) FindByNaturalKey(ctx context.Context, key string) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"_id": key})
}

func (m *mongoRepository) FindBySurrogateKey(ctx context.Context, key primitive.ObjectID) (*domain.Product, error) {
	return m.findOne(ctx, bson.M{"_id": key})
}

func (m *mongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var doc productDoc
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := doc.Product
	product.ID = doc.canonicalID()
	return &product, nil
}
