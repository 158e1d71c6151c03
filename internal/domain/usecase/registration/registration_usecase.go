package registration

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

// RegistrationIDPrefix starts every registration id
const RegistrationIDPrefix = "umatch"

// RegistrationUseCase is the registration engine
type RegistrationUseCase struct {
	uow          persistence.UnitOfWork
	seq          *serial.Sequencer
	ids          coreport.IDGenerator
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewRegistrationUseCase creates a new RegistrationUseCase
func NewRegistrationUseCase(
	uow persistence.UnitOfWork,
	seq *serial.Sequencer,
	ids coreport.IDGenerator,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		uow:          uow,
		seq:          seq,
		ids:          ids,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Join debits the entry fee, takes a slot and records the registration as one unit.
// Checks run in order: slots, duplicate join, balance. The game UID and name are trimmed first.
func (u *RegistrationUseCase) Join(ctx context.Context, input usecase.JoinInput) (*entity.Registration, error) {
	gameUID := strings.TrimSpace(input.GameUID)
	gameName := strings.TrimSpace(input.GameName)
	if err := entity.ValidateGameIdentity(gameUID, gameName); err != nil {
		u.metrics.ObserveJoin("", outcome(err))
		return nil, err
	}

	var (
		registration *entity.Registration
		category     entity.Category
	)

	keys := []string{serial.AccountKey(input.AccountKey), serial.MatchKey(input.MatchID)}
	err := u.seq.DoOrdered(ctx, keys, func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			matches := u.uow.GetMatchRepository(txCtx)
			match, err := matches.GetByID(txCtx, input.MatchID)
			if err != nil {
				return err
			}
			category = match.Category

			if !match.HasFreeSlot() {
				return errs.ErrSlotsFull
			}

			registrations := u.uow.GetRegistrationRepository(txCtx)
			joined, err := registrations.ExistsFor(txCtx, input.AccountKey, match.ID)
			if err != nil {
				return err
			}
			if joined {
				return errs.ErrAlreadyJoined
			}

			accounts := u.uow.GetAccountRepository(txCtx)
			account, err := accounts.GetByMobile(txCtx, input.AccountKey)
			if err != nil {
				return err
			}
			if err := account.Debit(match.EntryFee.Minor(), u.timeProvider); err != nil {
				return err
			}
			if err := match.FillSlot(); err != nil {
				return err
			}

			registration = entity.NewRegistration(u.ids.NewID(RegistrationIDPrefix), account.Mobile, match,
				gameUID, gameName, u.timeProvider)

			if err := accounts.Update(txCtx, account); err != nil {
				return err
			}
			if err := matches.Update(txCtx, match); err != nil {
				return err
			}
			return registrations.Create(txCtx, registration)
		})
	})
	u.metrics.ObserveJoin(string(category), outcome(err))

	if err != nil {
		wrapped := errs.NewRegistrationError(input.AccountKey, input.MatchID, err)
		if errs.IsBusinessRuleError(err) {
			u.logger.Info("Join refused", errs.LogFields(wrapped))
		} else if !errs.IsNotFoundError(err) {
			u.logger.Error("Join failed", errs.LogFields(wrapped))
		}
		return nil, wrapped
	}

	u.logger.Info("Match joined", map[string]any{
		"registration_id": registration.ID,
		"account":         registration.AccountKey,
		"match_id":        registration.MatchID,
	})
	return registration, nil
}

// ListForAccount returns the matches an account joined, newest first
func (u *RegistrationUseCase) ListForAccount(ctx context.Context, accountKey string) ([]*entity.Registration, error) {
	return u.uow.GetRegistrationRepository(ctx).ListByAccount(ctx, accountKey)
}

// ListForMatch returns the players of a match, newest first
func (u *RegistrationUseCase) ListForMatch(ctx context.Context, matchID string) ([]*entity.Registration, error) {
	if _, err := u.uow.GetMatchRepository(ctx).GetByID(ctx, matchID); err != nil {
		return nil, err
	}
	return u.uow.GetRegistrationRepository(ctx).ListByMatch(ctx, matchID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "joined"
	case errors.Is(err, errs.ErrSlotsFull):
		return "slots_full"
	case errors.Is(err, errs.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, errs.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return string(errs.KindOf(err))
	}
}

var _ usecase.RegistrationUseCase = (*RegistrationUseCase)(nil)
