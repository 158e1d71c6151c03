package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// RegisterInput holds the sign-up form
type RegisterInput struct {
	Mobile      string
	Password    string
	DisplayName string
}

// AuthResult is a successful login
type AuthResult struct {
	Account   *entity.Account
	Token     string
	ExpiresAt time.Time
}

// AccountUseCase manages the account directory
type AccountUseCase interface {
	// Register creates a player account, or an admin one for configured admin mobiles
	Register(ctx context.Context, input RegisterInput) (*entity.Account, error)

	// Authenticate checks credentials and issues an access token
	Authenticate(ctx context.Context, mobile, password string) (*AuthResult, error)

	// Get retrieves an account by mobile
	Get(ctx context.Context, mobile string) (*entity.Account, error)

	// List searches accounts by mobile or display name; an empty query lists all
	List(ctx context.Context, query string) ([]*entity.Account, error)
}
