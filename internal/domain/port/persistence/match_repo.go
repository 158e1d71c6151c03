package persistence

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// MatchRepository reads and writes the match registry
type MatchRepository interface {
	// GetByID retrieves a match
	//
	// Possible errors:
	// - ErrMatchNotFound: If the match doesn't exist
	GetByID(ctx context.Context, id string) (*entity.Match, error)

	// Create adds a match to the front of the registry
	Create(ctx context.Context, match *entity.Match) error

	// Update stores the changed fields of an existing match
	Update(ctx context.Context, match *entity.Match) error

	// List returns every match in registry order
	List(ctx context.Context) ([]*entity.Match, error)

	// Count returns the number of matches
	Count(ctx context.Context) (int, error)

	// ReplaceAll swaps the whole registry, used by the match feed
	ReplaceAll(ctx context.Context, matches []*entity.Match) error
}
