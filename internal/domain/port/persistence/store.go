package persistence

import "context"

// Collection names of the four persisted JSON arrays
const (
	CollectionAccounts      = "users"
	CollectionTransactions  = "transactions"
	CollectionMatches       = "all_matches"
	CollectionRegistrations = "user_matches"
)

// DefaultNamespace prefixes every store key
const DefaultNamespace = "ff"

// Collections lists every collection in load order
var Collections = []string{CollectionAccounts, CollectionTransactions, CollectionMatches, CollectionRegistrations}

// Key returns the store key of a collection, e.g. "ff_users"
func Key(namespace, collection string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + "_" + collection
}

// KVStore is the durable key-value store the collections are mirrored to
type KVStore interface {
	// Load returns the value saved under key
	//
	// Possible errors:
	// - ErrKeyNotFound: If nothing was saved under key
	// - ErrStoreUnavailable: If the backend cannot be reached
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value under key
	Save(ctx context.Context, key string, value []byte) error

	// Close releases backend resources
	Close() error
}

// BatchSaver is implemented by stores that can write several keys at once
type BatchSaver interface {
	SaveAll(ctx context.Context, values map[string][]byte) error
}
