package migration

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// DefaultAccount is an account created at startup when missing
type DefaultAccount struct {
	Mobile      string
	Password    string
	DisplayName string
}

// CreateDefaultAccounts registers every default account that does not exist yet.
// Admin roles come from the account directory's configured admin mobiles.
func CreateDefaultAccounts(ctx context.Context, accounts usecase.AccountUseCase, defaults []DefaultAccount) (int, error) {
	created := 0
	for _, d := range defaults {
		if d.Mobile == "" || d.Password == "" {
			continue
		}

		_, err := accounts.Get(ctx, d.Mobile)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrAccountNotFound) {
			return created, err
		}

		if _, err := accounts.Register(ctx, usecase.RegisterInput{
			Mobile:      d.Mobile,
			Password:    d.Password,
			DisplayName: d.DisplayName,
		}); err != nil && !errors.Is(err, errs.ErrDuplicateAccount) {
			return created, err
		}
		created++
	}
	return created, nil
}
