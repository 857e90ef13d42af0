package knowledge

import "context"

// DefaultMaxFragments caps how many fragments RetrieveAllText concatenates.
const DefaultMaxFragments = 100

// Store is a namespaced text store. A namespace is either a document index id
// or one of the curation queues.
type Store interface {
	// Insert appends texts under namespace. Inserted text is never updated.
	Insert(ctx context.Context, texts []string, namespace string) error

	// RetrieveAllText returns every fragment indexed under indexID joined in
	// insertion order. It is a bulk dump, not a similarity query.
	RetrieveAllText(ctx context.Context, indexID string) (string, error)
}
