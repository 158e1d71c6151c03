package persistence

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// AccountRepository reads and writes the account directory
type AccountRepository interface {
	// GetByMobile retrieves an account by its mobile number
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account uses the mobile number
	GetByMobile(ctx context.Context, mobile string) (*entity.Account, error)

	// Create adds a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: If the mobile number is already registered
	Create(ctx context.Context, account *entity.Account) error

	// Update stores the changed fields of an existing account
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	Update(ctx context.Context, account *entity.Account) error

	// List returns every account in registration order
	List(ctx context.Context) ([]*entity.Account, error)
}
