package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const sessionKey contextKey = "uow-session"

// ErrNoUnit is returned by Commit and Rollback when ctx carries no unit
var ErrNoUnit = errors.New("no unit of work found in context")

// UnitOfWork mirrors the four collections of a key-value store. A unit loads a
// collection on first use, keeps changes in memory and writes the changed
// collections back on Commit. Units run one at a time, from Begin until
// Commit or Rollback, so every read-modify-write sees the previous unit's result.
type UnitOfWork struct {
	store        persistence.KVStore
	namespace    string
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	sem          chan struct{}
}

// NewUnitOfWork creates a unit of work over store
func NewUnitOfWork(store persistence.KVStore, namespace string, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	return &UnitOfWork{
		store:        store,
		namespace:    namespace,
		logger:       logger,
		timeProvider: timeProvider,
		sem:          make(chan struct{}, 1),
	}
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// session is the in-memory state of one unit
type session struct {
	accounts      *collection[model.Account]
	transactions  *collection[model.Transaction]
	matches       *collection[model.Match]
	registrations *collection[model.Registration]
	closed        bool
}

func (u *UnitOfWork) newSession() *session {
	return &session{
		accounts:      newCollection[model.Account](persistence.Key(u.namespace, persistence.CollectionAccounts)),
		transactions:  newCollection[model.Transaction](persistence.Key(u.namespace, persistence.CollectionTransactions)),
		matches:       newCollection[model.Match](persistence.Key(u.namespace, persistence.CollectionMatches)),
		registrations: newCollection[model.Registration](persistence.Key(u.namespace, persistence.CollectionRegistrations)),
	}
}

func (s *session) collections() []encodable {
	return []encodable{s.accounts, s.transactions, s.matches, s.registrations}
}

// Begin waits for the running unit to finish and starts a new one
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if s, ok := sessionFrom(ctx); ok && !s.closed {
		return ctx, fmt.Errorf("%w: unit of work already started", errs.ErrInternalServer)
	}

	select {
	case u.sem <- struct{}{}:
	case <-ctx.Done():
		u.logger.Warn("Context canceled while waiting for unit of work", map[string]any{"error": ctx.Err().Error()})
		return ctx, ctx.Err()
	}

	u.logger.Debug("Beginning unit of work", nil)
	return context.WithValue(ctx, sessionKey, u.newSession()), nil
}

// Commit writes every changed collection in one batch when the store supports it
func (u *UnitOfWork) Commit(ctx context.Context) error {
	s, ok := sessionFrom(ctx)
	if !ok {
		return ErrNoUnit
	}
	if s.closed {
		return fmt.Errorf("%w: unit of work already closed", errs.ErrInternalServer)
	}
	defer u.release(s)

	return u.flush(ctx, s)
}

// Rollback discards the unit; rolling back a closed unit is a no-op
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	s, ok := sessionFrom(ctx)
	if !ok {
		return ErrNoUnit
	}
	if s.closed {
		u.logger.Debug("Unit of work has already been committed or rolled back", nil)
		return nil
	}

	u.logger.Debug("Rolling back unit of work", nil)
	u.release(s)
	return nil
}

func (u *UnitOfWork) release(s *session) {
	s.closed = true
	<-u.sem
}

func (u *UnitOfWork) flush(ctx context.Context, s *session) error {
	values := make(map[string][]byte)
	previous := make(map[string][]byte)
	for _, c := range s.collections() {
		if !c.isDirty() {
			continue
		}
		data, err := c.encode()
		if err != nil {
			return fmt.Errorf("%w: encode %s: %s", errs.ErrInternalServer, c.storeKey(), err.Error())
		}
		values[c.storeKey()] = data
		previous[c.storeKey()] = c.previous()
	}
	if len(values) == 0 {
		return nil
	}

	u.logger.Debug("Committing unit of work", map[string]any{"collections": len(values)})

	if batch, ok := u.store.(persistence.BatchSaver); ok {
		if err := batch.SaveAll(ctx, values); err != nil {
			u.logger.Error("Failed to commit unit of work", map[string]any{"error": err.Error()})
			return err
		}
		return nil
	}

	// Without a batch write the keys go one at a time; a failure writes the
	// already saved keys back to their loaded values.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for i, key := range keys {
		if err := u.store.Save(ctx, key, values[key]); err != nil {
			u.logger.Error("Failed to commit unit of work", map[string]any{"key": key, "error": err.Error()})
			u.restore(ctx, keys[:i], previous)
			return err
		}
	}
	return nil
}

func (u *UnitOfWork) restore(ctx context.Context, keys []string, previous map[string][]byte) {
	ctx = context.WithoutCancel(ctx)
	for i := len(keys) - 1; i >= 0; i-- {
		if err := u.store.Save(ctx, keys[i], previous[keys[i]]); err != nil {
			u.logger.Error("Failed to restore collection after failed commit", map[string]any{
				"key":   keys[i],
				"error": err.Error(),
			})
		}
	}
}

// run executes fn in the unit carried by ctx, or in a unit of its own when there is none
func (u *UnitOfWork) run(ctx context.Context, fn func(s *session) error) error {
	if s, ok := sessionFrom(ctx); ok && !s.closed {
		return fn(s)
	}

	return persistence.WithinUnit(ctx, u, func(txCtx context.Context) error {
		s, _ := sessionFrom(txCtx)
		return fn(s)
	})
}

func sessionFrom(ctx context.Context) (*session, bool) {
	s, ok := ctx.Value(sessionKey).(*session)
	return s, ok && s != nil
}

// load reads c from the store the first time the unit touches it
func load[T any](ctx context.Context, u *UnitOfWork, c *collection[T]) error {
	if c.loaded {
		return nil
	}

	raw, err := u.store.Load(ctx, c.key)
	switch {
	case errors.Is(err, errs.ErrKeyNotFound):
		c.items = nil
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(raw, &c.items); err != nil {
			u.logger.Error("Failed to decode collection", map[string]any{"key": c.key, "error": err.Error()})
			return fmt.Errorf("%w: decode %s: %s", errs.ErrInternalServer, c.key, err.Error())
		}
		c.stored = raw
	}
	c.loaded = true
	return nil
}

// GetAccountRepository returns an account repository bound to the unit in ctx
func (u *UnitOfWork) GetAccountRepository(_ context.Context) persistence.AccountRepository {
	return &AccountRepository{uow: u}
}

// GetTransactionRepository returns a transaction repository bound to the unit in ctx
func (u *UnitOfWork) GetTransactionRepository(_ context.Context) persistence.TransactionRepository {
	return &TransactionRepository{uow: u}
}

// GetMatchRepository returns a match repository bound to the unit in ctx
func (u *UnitOfWork) GetMatchRepository(_ context.Context) persistence.MatchRepository {
	return &MatchRepository{uow: u}
}

// GetRegistrationRepository returns a registration repository bound to the unit in ctx
func (u *UnitOfWork) GetRegistrationRepository(_ context.Context) persistence.RegistrationRepository {
	return &RegistrationRepository{uow: u}
}
