package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
)

// Snapshot is every collection of one namespace, keyed by collection name
type Snapshot map[string]json.RawMessage

var emptyCollection = json.RawMessage("[]")

// Export reads the four collections; missing keys export as empty arrays
func Export(ctx context.Context, kv persistence.KVStore, namespace string) (Snapshot, error) {
	snapshot := make(Snapshot, len(persistence.Collections))
	for _, collection := range persistence.Collections {
		value, err := kv.Load(ctx, persistence.Key(namespace, collection))
		switch {
		case errors.Is(err, errs.ErrKeyNotFound):
			snapshot[collection] = emptyCollection
		case err != nil:
			return nil, fmt.Errorf("export %s: %w", collection, err)
		default:
			snapshot[collection] = json.RawMessage(value)
		}
	}
	return snapshot, nil
}

// Import writes every collection present in snapshot. Each value must be a JSON array.
func Import(ctx context.Context, kv persistence.KVStore, namespace string, snapshot Snapshot) error {
	values := make(map[string][]byte, len(snapshot))
	for _, collection := range persistence.Collections {
		raw, ok := snapshot[collection]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return errs.NewValidationError(collection, "", "collection must be a JSON array", errs.ErrInvalidRequest)
		}
		values[persistence.Key(namespace, collection)] = raw
	}

	if batch, ok := kv.(persistence.BatchSaver); ok {
		return batch.SaveAll(ctx, values)
	}
	for key, value := range values {
		if err := kv.Save(ctx, key, value); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}
