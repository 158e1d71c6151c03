package dto

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Mobile      string `json:"mobile" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName" binding:"omitempty,max=32"`
}

// LoginRequest is the sign-in form
type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is an account without its password hash
type AccountResponse struct {
	Mobile      string    `json:"mobile"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	Balance     string    `json:"balance"`
	BalanceText string    `json:"balanceText"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse is a successful login
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Account   AccountResponse `json:"account"`
}

// NewAccountResponse converts an account for output
func NewAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		Mobile:      account.Mobile,
		DisplayName: account.DisplayName,
		Role:        string(account.Role),
		Balance:     entity.FormatMinor(account.Balance()),
		BalanceText: account.BalanceMoney().String(),
		CreatedAt:   account.CreatedAt,
	}
}

// NewAccountList converts accounts for output
func NewAccountList(accounts []*entity.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}
	return out
}

// NewAuthResponse converts a login result for output
func NewAuthResponse(result *usecase.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Account:   NewAccountResponse(result.Account),
	}
}
