package model

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// Account is the stored shape of an account in the users collection
type Account struct {
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	Balance      int64     `json:"balance"` // Minor units
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromAccount converts an account entity to its stored shape
func FromAccount(a *entity.Account) Account {
	return Account{
		Mobile:       a.Mobile,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Balance:      a.Balance(),
		Username:     a.DisplayName,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToEntity converts a stored account to an entity
func (m Account) ToEntity() *entity.Account {
	role := entity.RolePlayer
	if entity.Role(m.Role) == entity.RoleAdmin {
		role = entity.RoleAdmin
	}
	return entity.RestoreAccount(m.Mobile, m.PasswordHash, m.Username, role, m.Balance, m.CreatedAt, m.UpdatedAt)
}
