package account

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
)

// DefaultMinPasswordLength is used when Policy leaves it unset
const DefaultMinPasswordLength = 6

// Policy holds the sign-up rules taken from configuration
type Policy struct {
	MinPasswordLength int
	AdminMobiles      []string
}

func (p Policy) isAdmin(mobile string) bool {
	for _, admin := range p.AdminMobiles {
		if strings.TrimSpace(admin) == mobile {
			return true
		}
	}
	return false
}

// AccountUseCase handles the account directory
type AccountUseCase struct {
	uow          persistence.UnitOfWork
	seq          *serial.Sequencer
	hasher       coreport.PasswordHasher
	tokens       coreport.TokenService
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	policy       Policy
}

// NewAccountUseCase creates a new AccountUseCase
func NewAccountUseCase(
	uow persistence.UnitOfWork,
	seq *serial.Sequencer,
	hasher coreport.PasswordHasher,
	tokens coreport.TokenService,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	policy Policy,
) *AccountUseCase {
	if policy.MinPasswordLength <= 0 {
		policy.MinPasswordLength = DefaultMinPasswordLength
	}
	return &AccountUseCase{
		uow:          uow,
		seq:          seq,
		hasher:       hasher,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
		policy:       policy,
	}
}

// Register creates a player account, or an admin one for configured admin mobiles
func (u *AccountUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Account, error) {
	mobile := strings.TrimSpace(input.Mobile)
	if err := entity.ValidateMobile(mobile); err != nil {
		return nil, err
	}
	if len(input.Password) < u.policy.MinPasswordLength {
		return nil, errs.NewValidationError("password", "", "too short", errs.ErrWeakPassword)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		u.logger.Error("Failed to hash password", map[string]any{
			"mobile": mobile,
			"error":  err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	role := entity.RolePlayer
	if u.policy.isAdmin(mobile) {
		role = entity.RoleAdmin
	}

	account, err := entity.NewAccount(mobile, hash, input.DisplayName, role, u.timeProvider)
	if err != nil {
		return nil, err
	}

	err = u.seq.Do(ctx, serial.AccountKey(mobile), func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			return u.uow.GetAccountRepository(txCtx).Create(txCtx, account)
		})
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Account registered", map[string]any{
		"mobile": mobile,
		"role":   string(role),
	})
	return account, nil
}

// Authenticate checks credentials and issues an access token. An unknown
// mobile and a wrong password fail the same way.
func (u *AccountUseCase) Authenticate(ctx context.Context, mobile, password string) (*usecase.AuthResult, error) {
	account, err := u.Get(ctx, strings.TrimSpace(mobile))
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		u.logger.Debug("Password mismatch", map[string]any{"mobile": account.Mobile})
		return nil, errs.ErrInvalidCredentials
	}

	token, expiresAt, err := u.tokens.Issue(account.Mobile, string(account.Role))
	if err != nil {
		u.logger.Error("Failed to issue token", map[string]any{
			"mobile": account.Mobile,
			"error":  err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	return &usecase.AuthResult{
		Account:   account,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Get retrieves an account by mobile
func (u *AccountUseCase) Get(ctx context.Context, mobile string) (*entity.Account, error) {
	return u.uow.GetAccountRepository(ctx).GetByMobile(ctx, mobile)
}

// List searches accounts by mobile or display name, case-insensitively
func (u *AccountUseCase) List(ctx context.Context, query string) ([]*entity.Account, error) {
	accounts, err := u.uow.GetAccountRepository(ctx).List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return accounts, nil
	}

	matched := make([]*entity.Account, 0, len(accounts))
	for _, account := range accounts {
		if strings.Contains(strings.ToLower(account.Mobile), query) ||
			strings.Contains(strings.ToLower(account.DisplayName), query) {
			matched = append(matched, account)
		}
	}
	return matched, nil
}

var _ usecase.AccountUseCase = (*AccountUseCase)(nil)
