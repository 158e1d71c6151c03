package persistence

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// TransactionFilter narrows a ledger listing; empty fields match everything
type TransactionFilter struct {
	AccountKey string
	Kind       entity.TransactionKind
	Status     entity.TransactionStatus
}

// Matches reports whether tx passes the filter
func (f TransactionFilter) Matches(tx *entity.Transaction) bool {
	return (f.AccountKey == "" || tx.AccountKey == f.AccountKey) &&
		(f.Kind == "" || tx.Kind == f.Kind) &&
		(f.Status == "" || tx.Status == f.Status)
}

// TransactionRepository reads and writes the ledger
type TransactionRepository interface {
	// Create records a new ledger entry
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update stores the status change of an existing entry
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the entry doesn't exist
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves an entry by id
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the entry doesn't exist
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// List returns the entries passing filter, newest first
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
