package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marketbay/storefront/internal/catalog"
	"github.com/marketbay/storefront/internal/domain"
)

type mockCatalog struct {
	byNatural   map[string]*domain.Product
	bySurrogate map[string]*domain.Product
	err         error
}

func (m *mockCatalog) FindByNaturalKey(_ context.Context, key string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.byNatural[key]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

func (m *mockCatalog) FindBySurrogateKey(_ context.Context, key primitive.ObjectID) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.bySurrogate[key.Hex()]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

func TestParseRefs_NaturalOnly(t *testing.T) {
	refs := ParseRefs("FEED-SKU-001")
	require.Len(t, refs, 1)
	assert.Equal(t, RefNatural, refs[0].Kind)
	assert.Equal(t, "FEED-SKU-001", refs[0].Natural)
}

func TestParseRefs_SurrogateForm(t *testing.T) {
	oid := primitive.NewObjectID()
	refs := ParseRefs(oid.Hex())
	require.Len(t, refs, 2)
	assert.Equal(t, RefNatural, refs[0].Kind)
	assert.Equal(t, RefSurrogate, refs[1].Kind)
	assert.Equal(t, oid, refs[1].Surrogate)
}

func TestParseRefs_MalformedSurrogateFallsThrough(t *testing.T) {
	// 24 chars but not hex: only the natural candidate remains
	refs := ParseRefs("zzzzzzzzzzzzzzzzzzzzzzzz")
	require.Len(t, refs, 1)
	assert.Equal(t, RefNatural, refs[0].Kind)
}

func TestResolve_NaturalKey(t *testing.T) {
	product := &domain.Product{ID: "FEED-SKU-001", Name: "Kettle", Price: 29.99}
	sut := NewResolver(&mockCatalog{
		byNatural: map[string]*domain.Product{"FEED-SKU-001": product},
	})

	got, err := sut.Resolve(context.Background(), "FEED-SKU-001")
	require.NoError(t, err)
	assert.Equal(t, "FEED-SKU-001", got.ID)
}

func TestResolve_SurrogateKey(t *testing.T) {
	oid := primitive.NewObjectID()
	product := &domain.Product{ID: oid.Hex(), Name: "Lamp", Price: 12.50}
	sut := NewResolver(&mockCatalog{
		bySurrogate: map[string]*domain.Product{oid.Hex(): product},
	})

	got, err := sut.Resolve(context.Background(), oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)
}

func TestResolve_NaturalWinsOverSurrogate(t *testing.T) {
	// A raw id that is both a stored natural key and a well-formed ObjectId
	// resolves by natural key first.
	oid := primitive.NewObjectID()
	natural := &domain.Product{ID: oid.Hex(), Name: "Natural"}
	surrogate := &domain.Product{ID: oid.Hex(), Name: "Surrogate"}
	sut := NewResolver(&mockCatalog{
		byNatural:   map[string]*domain.Product{oid.Hex(): natural},
		bySurrogate: map[string]*domain.Product{oid.Hex(): surrogate},
	})

	got, err := sut.Resolve(context.Background(), oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Natural", got.Name)
}

func TestResolve_CanonicalIDIsTheStoredOne(t *testing.T) {
	// The catalog stores the id it stores; callers get that back, not their
	// raw input.
	oid := primitive.NewObjectID()
	product := &domain.Product{ID: oid.Hex(), Name: "Mug", Price: 4.99}
	sut := NewResolver(&mockCatalog{
		bySurrogate: map[string]*domain.Product{oid.Hex(): product},
	})

	raw := oid.Hex()
	got, err := sut.Resolve(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
}

func TestResolve_NotFound(t *testing.T) {
	sut := NewResolver(&mockCatalog{})

	got, err := sut.Resolve(context.Background(), "missing-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, got)
}

func TestResolve_StructurallyInvalidInputDoesNotError(t *testing.T) {
	sut := NewResolver(&mockCatalog{})

	_, err := sut.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = sut.Resolve(context.Background(), "!!!***not-an-id***!!!")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
