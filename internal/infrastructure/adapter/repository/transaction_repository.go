package repository

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
)

// TransactionRepository reads and writes the transactions collection, newest first
type TransactionRepository struct {
	uow *UnitOfWork
}

func byTransactionID(id string) func(model.Transaction) bool {
	return func(t model.Transaction) bool { return t.ID == id }
}

// Create records a new ledger entry at the front
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.transactions); err != nil {
			return err
		}
		s.transactions.prepend(model.FromTransaction(transaction))
		return nil
	})
}

// Update stores the status change of an existing entry
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.transactions); err != nil {
			return err
		}
		if !s.transactions.replace(model.FromTransaction(transaction), byTransactionID(transaction.ID)) {
			return errs.ErrTransactionNotFound
		}
		return nil
	})
}

// GetByID retrieves an entry by id
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transaction *entity.Transaction
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.transactions); err != nil {
			return err
		}
		stored, ok := s.transactions.find(byTransactionID(id))
		if !ok {
			return errs.ErrTransactionNotFound
		}
		transaction = stored.ToEntity()
		return nil
	})
	return transaction, err
}

// List returns the entries passing filter, newest first
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	var transactions []*entity.Transaction
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.transactions); err != nil {
			return err
		}
		transactions = make([]*entity.Transaction, 0)
		for _, stored := range s.transactions.items {
			if tx := stored.ToEntity(); filter.Matches(tx) {
				transactions = append(transactions, tx)
			}
		}
		return nil
	})
	return transactions, err
}
