package persistence

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// RegistrationRepository reads and writes join records
type RegistrationRepository interface {
	Create(ctx context.Context, registration *entity.Registration) error

	// ExistsFor reports whether accountKey already joined matchID
	ExistsFor(ctx context.Context, accountKey, matchID string) (bool, error)

	// ListByAccount returns the account's registrations, newest first
	ListByAccount(ctx context.Context, accountKey string) ([]*entity.Registration, error)

	// ListByMatch returns the registrations of a match, newest first
	ListByMatch(ctx context.Context, matchID string) ([]*entity.Registration, error)

	// RegisteredMatchIDs returns the ids of matches with at least one registration
	RegisteredMatchIDs(ctx context.Context) (map[string]struct{}, error)
}
