package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// MatchView is a match as one viewer sees it. Room secrets are blank unless
// the viewer joined the match or is an admin.
type MatchView struct {
	Match  *entity.Match
	Joined bool
}

// Viewer identifies who is looking at the catalog
type Viewer struct {
	AccountKey string
	Admin      bool
}

// RefreshResult summarizes a feed regeneration
type RefreshResult struct {
	Kept    int
	Added   int
	Dropped int
}

// MatchUseCase exposes the match catalog and the daily feed
type MatchUseCase interface {
	List(ctx context.Context, viewer Viewer) ([]MatchView, error)
	Get(ctx context.Context, viewer Viewer, matchID string) (*MatchView, error)

	// EnsureFeed generates a feed when the registry is empty and reports whether it did
	EnsureFeed(ctx context.Context) (bool, error)

	// Refresh drops matches nobody joined and appends a freshly generated day
	Refresh(ctx context.Context) (*RefreshResult, error)

	// Preview generates a feed for now without storing it
	Preview(now time.Time) []*entity.Match
}
