package match

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// MatchUseCase serves the match catalog and keeps the daily feed
type MatchUseCase struct {
	uow          persistence.UnitOfWork
	generator    *Generator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewMatchUseCase creates a new MatchUseCase
func NewMatchUseCase(
	uow persistence.UnitOfWork,
	generator *Generator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		uow:          uow,
		generator:    generator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns every match as viewer sees it
func (u *MatchUseCase) List(ctx context.Context, viewer usecase.Viewer) ([]usecase.MatchView, error) {
	var views []usecase.MatchView
	err := persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		matches, err := u.uow.GetMatchRepository(txCtx).List(txCtx)
		if err != nil {
			return err
		}
		joined, err := u.joinedBy(txCtx, viewer)
		if err != nil {
			return err
		}

		views = make([]usecase.MatchView, 0, len(matches))
		for _, match := range matches {
			_, ok := joined[match.ID]
			views = append(views, present(match, ok, viewer))
		}
		return nil
	})
	return views, err
}

// Get returns one match as viewer sees it
func (u *MatchUseCase) Get(ctx context.Context, viewer usecase.Viewer, matchID string) (*usecase.MatchView, error) {
	var view usecase.MatchView
	err := persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		match, err := u.uow.GetMatchRepository(txCtx).GetByID(txCtx, matchID)
		if err != nil {
			return err
		}
		joined := false
		if viewer.AccountKey != "" {
			if joined, err = u.uow.GetRegistrationRepository(txCtx).ExistsFor(txCtx, viewer.AccountKey, matchID); err != nil {
				return err
			}
		}
		view = present(match, joined, viewer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (u *MatchUseCase) joinedBy(ctx context.Context, viewer usecase.Viewer) (map[string]struct{}, error) {
	joined := make(map[string]struct{})
	if viewer.AccountKey == "" {
		return joined, nil
	}
	registrations, err := u.uow.GetRegistrationRepository(ctx).ListByAccount(ctx, viewer.AccountKey)
	if err != nil {
		return nil, err
	}
	for _, registration := range registrations {
		joined[registration.MatchID] = struct{}{}
	}
	return joined, nil
}

// present blanks room secrets unless the viewer joined the match or is an admin
func present(match *entity.Match, joined bool, viewer usecase.Viewer) usecase.MatchView {
	if !joined && !viewer.Admin {
		masked := *match
		masked.RoomCode, masked.RoomPassword = "", ""
		match = &masked
	}
	return usecase.MatchView{Match: match, Joined: joined}
}

// EnsureFeed generates a feed when the registry is empty
func (u *MatchUseCase) EnsureFeed(ctx context.Context) (bool, error) {
	var feed []*entity.Match
	err := persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		matches := u.uow.GetMatchRepository(txCtx)
		count, err := matches.Count(txCtx)
		if err != nil || count > 0 {
			return err
		}
		feed = u.generator.Generate(u.timeProvider.Now())
		return matches.ReplaceAll(txCtx, feed)
	})
	if err != nil || feed == nil {
		return false, err
	}

	u.logger.Info("Generated match feed", map[string]any{"matches": len(feed)})
	return true, nil
}

// Refresh keeps matches with registrations, drops the rest and appends a fresh day.
// Sequence numbers are reassigned in registry order.
func (u *MatchUseCase) Refresh(ctx context.Context) (*usecase.RefreshResult, error) {
	result := &usecase.RefreshResult{}
	err := persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		registered, err := u.uow.GetRegistrationRepository(txCtx).RegisteredMatchIDs(txCtx)
		if err != nil {
			return err
		}
		matches := u.uow.GetMatchRepository(txCtx)
		current, err := matches.List(txCtx)
		if err != nil {
			return err
		}

		next := make([]*entity.Match, 0, len(current)+FeedSize)
		seen := make(map[string]struct{}, len(current)+FeedSize)
		for _, match := range current {
			if _, ok := registered[match.ID]; ok {
				match.SequenceNumber = len(next) + 1
				next = append(next, match)
				seen[match.ID] = struct{}{}
				continue
			}
			result.Dropped++
		}
		result.Kept = len(next)

		for _, match := range u.generator.Generate(u.timeProvider.Now()) {
			if _, ok := seen[match.ID]; ok {
				continue
			}
			match.SequenceNumber = len(next) + 1
			next = append(next, match)
			seen[match.ID] = struct{}{}
			result.Added++
		}
		return matches.ReplaceAll(txCtx, next)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Refreshed match feed", map[string]any{
		"kept":    result.Kept,
		"added":   result.Added,
		"dropped": result.Dropped,
	})
	return result, nil
}

// Preview generates a feed for now without storing it
func (u *MatchUseCase) Preview(now time.Time) []*entity.Match {
	return u.generator.Generate(now.In(u.timeProvider.Location()))
}

var _ usecase.MatchUseCase = (*MatchUseCase)(nil)
