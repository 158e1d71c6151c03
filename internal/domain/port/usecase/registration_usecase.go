package usecase

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// JoinInput is a request to join a match with an in-game identity
type JoinInput struct {
	AccountKey string
	MatchID    string
	GameUID    string
	GameName   string
}

// RegistrationUseCase joins accounts into matches
type RegistrationUseCase interface {
	// Join debits the entry fee, takes a slot and records the registration as one unit
	Join(ctx context.Context, input JoinInput) (*entity.Registration, error)

	// ListForAccount returns the matches an account joined, newest first
	ListForAccount(ctx context.Context, accountKey string) ([]*entity.Registration, error)

	// ListForMatch returns the players of a match, newest first
	ListForMatch(ctx context.Context, matchID string) ([]*entity.Registration, error)
}
