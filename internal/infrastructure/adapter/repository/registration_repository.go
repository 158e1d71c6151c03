package repository

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
)

// RegistrationRepository reads and writes the user_matches collection, newest first
type RegistrationRepository struct {
	uow *UnitOfWork
}

// Create records a join at the front
func (r *RegistrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	return r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.registrations); err != nil {
			return err
		}
		s.registrations.prepend(model.FromRegistration(registration))
		return nil
	})
}

// ExistsFor reports whether accountKey already joined matchID
func (r *RegistrationRepository) ExistsFor(ctx context.Context, accountKey, matchID string) (bool, error) {
	exists := false
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.registrations); err != nil {
			return err
		}
		_, exists = s.registrations.find(func(m model.Registration) bool {
			return m.UserMobile == accountKey && m.MatchID == matchID
		})
		return nil
	})
	return exists, err
}

// ListByAccount returns the account's registrations, newest first
func (r *RegistrationRepository) ListByAccount(ctx context.Context, accountKey string) ([]*entity.Registration, error) {
	return r.filter(ctx, func(m model.Registration) bool { return m.UserMobile == accountKey })
}

// ListByMatch returns the registrations of a match, newest first
func (r *RegistrationRepository) ListByMatch(ctx context.Context, matchID string) ([]*entity.Registration, error) {
	return r.filter(ctx, func(m model.Registration) bool { return m.MatchID == matchID })
}

// RegisteredMatchIDs returns the ids of matches with at least one registration
func (r *RegistrationRepository) RegisteredMatchIDs(ctx context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.registrations); err != nil {
			return err
		}
		for _, stored := range s.registrations.items {
			ids[stored.MatchID] = struct{}{}
		}
		return nil
	})
	return ids, err
}

func (r *RegistrationRepository) filter(ctx context.Context, keep func(model.Registration) bool) ([]*entity.Registration, error) {
	registrations := make([]*entity.Registration, 0)
	err := r.uow.run(ctx, func(s *session) error {
		if err := load(ctx, r.uow, s.registrations); err != nil {
			return err
		}
		for _, stored := range s.registrations.items {
			if keep(stored) {
				registrations = append(registrations, stored.ToEntity())
			}
		}
		return nil
	})
	return registrations, err
}
