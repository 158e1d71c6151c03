package repository

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
)

// MatchRepository reads and writes the all_matches collection
type MatchRepository struct {
	uow *UnitOfWork
}

func byMatchID(id string) func(model.Match) bool {
	return func(m model.Match) bool { return m.ID == id }
}

// GetByID retrieves a match
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	var match *entity.Match
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.matches); err != nil {
			return err
		}
		stored, ok := s.matches.find(byMatchID(id))
		if !ok {
			return errs.ErrMatchNotFound
		}
		var err error
		match, err = stored.ToEntity()
		return err
	})
	return match, err
}

// Create adds a match to the front of the registry
func (r *MatchRepository) Create(ctx context.Context, match *entity.Match) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.matches); err != nil {
			return err
		}
		s.matches.prepend(model.FromMatch(match))
		return nil
	})
}

// Update stores the changed fields of an existing match
func (r *MatchRepository) Update(ctx context.Context, match *entity.Match) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.matches); err != nil {
			return err
		}
		if !s.matches.replace(model.FromMatch(match), byMatchID(match.ID)) {
			return errs.ErrMatchNotFound
		}
		return nil
	})
}

// List returns every match in registry order
func (r *MatchRepository) List(ctx context.Context) ([]*entity.Match, error) {
	var matches []*entity.Match
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.matches); err != nil {
			return err
		}
		matches = make([]*entity.Match, 0, len(s.matches.items))
		for _, stored := range s.matches.items {
			match, err := stored.ToEntity()
			if err != nil {
				return err
			}
			matches = append(matches, match)
		}
		return nil
	})
	return matches, err
}

// Count returns the number of matches
func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.matches); err != nil {
			return err
		}
		count = len(s.matches.items)
		return nil
	})
	return count, err
}

// ReplaceAll swaps the whole registry
func (r *MatchRepository) ReplaceAll(ctx context.Context, matches []*entity.Match) error {
	return r.uow.run(ctx, func(s *session) error {
		stored := make([]model.Match, 0, len(matches))
		for _, match := range matches {
			stored = append(stored, model.FromMatch(match))
		}
		s.matches.set(stored)
		s.matches.loaded = true
		return nil
	})
}
