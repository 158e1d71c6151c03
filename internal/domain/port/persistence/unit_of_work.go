package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating changes across the four
// collections so a compound update is persisted all together or not at all
type UnitOfWork interface {
	// Begin starts a new unit and returns a context carrying it
	Begin(ctx context.Context) (context.Context, error)

	// Commit persists every collection changed in the unit
	Commit(ctx context.Context) error

	// Rollback discards the changes of the unit
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current unit
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a transaction repository bound to the current unit
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetMatchRepository returns a match repository bound to the current unit
	GetMatchRepository(ctx context.Context) MatchRepository

	// GetRegistrationRepository returns a registration repository bound to the current unit
	GetRegistrationRepository(ctx context.Context) RegistrationRepository
}

// WithinUnit runs fn inside a unit; the unit is committed when fn succeeds and rolled back otherwise
func WithinUnit(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) (err error) {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback(txCtx)
			panic(p)
		}
		if err != nil {
			_ = uow.Rollback(txCtx)
		}
	}()

	if err = fn(txCtx); err != nil {
		return err
	}
	return uow.Commit(txCtx)
}
