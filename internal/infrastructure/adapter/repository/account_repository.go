package repository

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
)

// AccountRepository reads and writes the users collection
type AccountRepository struct {
	uow *UnitOfWork
}

func byMobile(mobile string) func(model.Account) bool {
	return func(a model.Account) bool { return a.Mobile == mobile }
}

// GetByMobile retrieves an account by its mobile number
func (r *AccountRepository) GetByMobile(ctx context.Context, mobile string) (*entity.Account, error) {
	var account *entity.Account
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.accounts); err != nil {
			return err
		}
		stored, ok := s.accounts.find(byMobile(mobile))
		if !ok {
			return errs.ErrAccountNotFound
		}
		account = stored.ToEntity()
		return nil
	})
	return account, err
}

// Create adds a new account at the end of the directory
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.accounts); err != nil {
			return err
		}
		if _, exists := s.accounts.find(byMobile(account.Mobile)); exists {
			r.uow.logger.Warn("Duplicate account registration", map[string]any{"mobile": account.Mobile})
			return errs.ErrDuplicateAccount
		}
		s.accounts.push(model.FromAccount(account))
		return nil
	})
}

// Update stores the changed fields of an existing account
func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.accounts); err != nil {
			return err
		}
		if !s.accounts.replace(model.FromAccount(account), byMobile(account.Mobile)) {
			return errs.ErrAccountNotFound
		}
		return nil
	})
}

// List returns every account in registration order
func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var accounts []*entity.Account
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.accounts); err != nil {
			return err
		}
		accounts = make([]*entity.Account, 0, len(s.accounts.items))
		for _, stored := range s.accounts.items {
			accounts = append(accounts, stored.ToEntity())
		}
		return nil
	})
	return accounts, err
}
