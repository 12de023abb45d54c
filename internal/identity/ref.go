package identity

import "go.mongodb.org/mongo-driver/bson/primitive"

type RefKind int

const (
	// RefNatural is a product id taken verbatim from the original data feed.
	RefNatural RefKind = iota
	// RefSurrogate is a generated 24-char hex id assigned by the storage layer.
	RefSurrogate
)

// Ref is a tagged product reference. Every raw id is a natural-key candidate;
// ids that also have the surrogate surface form carry the parsed ObjectId.
type Ref struct {
	Kind      RefKind
	Natural   string
	Surrogate primitive.ObjectID
}

// ParseRefs classifies a raw product id into the lookup attempts to make, in
// resolution order. Malformed surrogate forms simply don't produce a
// surrogate ref; parsing never fails.
func ParseRefs(raw string) []Ref {
	refs := []Ref{{Kind: RefNatural, Natural: raw}}

	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		refs = append(refs, Ref{Kind: RefSurrogate, Surrogate: oid})
	}

	return refs
}
