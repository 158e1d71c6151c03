package moderation

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
)

// Match form defaults
const (
	DefaultCategory                = entity.CategoryBattleRoyale
	DefaultTeamFormat              = entity.FormatSolo
	DefaultEntryFee                = "20 BDT"
	DefaultPrizeDescriptor         = "500 BDT"
	DefaultScheduledTimeDescriptor = "08:00 PM Today"
	DefaultTotalSlots              = 48
)

// CreateMatch adds a match to the front of the registry with the next sequence number
func (u *ModerationUseCase) CreateMatch(ctx context.Context, input usecase.MatchInput) (*entity.Match, error) {
	match, err := u.buildMatch(input)
	if err != nil {
		return nil, err
	}

	err = persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		matches := u.uow.GetMatchRepository(txCtx)
		count, err := matches.Count(txCtx)
		if err != nil {
			return err
		}
		match.SequenceNumber = count + 1
		return matches.Create(txCtx, match)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Match created", map[string]any{
		"match_id": match.ID,
		"title":    match.Title,
		"sequence": match.SequenceNumber,
		"fee":      match.EntryFee.String(),
	})
	return match, nil
}

func (u *ModerationUseCase) buildMatch(input usecase.MatchInput) (*entity.Match, error) {
	category := DefaultCategory
	if strings.TrimSpace(input.Category) != "" {
		parsed, err := entity.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	format := DefaultTeamFormat
	if strings.TrimSpace(input.TeamFormat) != "" {
		parsed, err := entity.ParseTeamFormat(input.TeamFormat)
		if err != nil {
			return nil, err
		}
		format = parsed
	}

	fee, err := entity.ParseFeeDescriptor(orDefault(input.EntryFee, DefaultEntryFee))
	if err != nil {
		return nil, err
	}

	totalSlots := input.TotalSlots
	if totalSlots == 0 {
		totalSlots = DefaultTotalSlots
	}

	match := &entity.Match{
		Title:                   strings.TrimSpace(input.Title),
		Category:                category,
		TeamFormat:              format,
		EntryFee:                fee,
		PrizeDescriptor:         orDefault(input.PrizeDescriptor, DefaultPrizeDescriptor),
		ScheduledTimeDescriptor: orDefault(input.ScheduledTimeDescriptor, DefaultScheduledTimeDescriptor),
		TotalSlots:              totalSlots,
		FilledSlots:             input.FilledSlots,
		Banner:                  strings.TrimSpace(input.Banner),
		CreatedAt:               u.timeProvider.Now(),
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	match.ID = u.ids.NewSlugID(match.Title)
	return match, nil
}

// UpdateMatch merges patch into a match, including the room reveal
func (u *ModerationUseCase) UpdateMatch(ctx context.Context, matchID string, patch entity.MatchPatch) (*entity.Match, error) {
	var updated *entity.Match
	err := u.seq.Do(ctx, serial.MatchKey(matchID), func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			matches := u.uow.GetMatchRepository(txCtx)
			match, err := matches.GetByID(txCtx, matchID)
			if err != nil {
				return err
			}
			if err := patch.Apply(match); err != nil {
				return err
			}
			updated = match
			return matches.Update(txCtx, match)
		})
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Match updated", map[string]any{
		"match_id":      updated.ID,
		"room_revealed": updated.RoomRevealed(),
	})
	return updated, nil
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value == "" {
		return fallback
	}
	return value
}
