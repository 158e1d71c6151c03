package model

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// Fee is the stored shape of an entry fee
type Fee struct {
	Free     bool   `json:"free"`
	Amount   int64  `json:"amount"` // Minor units
	Currency string `json:"currency"`
}

// Match is the stored shape of a match in the all_matches collection
type Match struct {
	ID           string    `json:"id"`
	MatchNumber  int       `json:"matchNumber"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Format       string    `json:"format"`
	EntryFee     Fee       `json:"entryFee"`
	PrizePool    string    `json:"prizePool"`
	StartTime    string    `json:"startTime"`
	TotalSlots   int       `json:"totalSlots"`
	FilledSlots  int       `json:"filledSlots"`
	Banner       string    `json:"banner"`
	RoomCode     string    `json:"roomCode,omitempty"`
	RoomPassword string    `json:"roomPassword,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromMatch converts a match entity to its stored shape
func FromMatch(m *entity.Match) Match {
	return Match{
		ID:          m.ID,
		MatchNumber: m.SequenceNumber,
		Title:       m.Title,
		Type:        string(m.Category),
		Format:      string(m.TeamFormat),
		EntryFee: Fee{
			Free:     m.EntryFee.Free,
			Amount:   m.EntryFee.Amount.Minor,
			Currency: m.EntryFee.Amount.Currency,
		},
		PrizePool:    m.PrizeDescriptor,
		StartTime:    m.ScheduledTimeDescriptor,
		TotalSlots:   m.TotalSlots,
		FilledSlots:  m.FilledSlots,
		Banner:       m.Banner,
		RoomCode:     m.RoomCode,
		RoomPassword: m.RoomPassword,
		CreatedAt:    m.CreatedAt,
	}
}

// ToEntity converts a stored match to an entity. Type and format accept
// either the key or the display label.
func (m Match) ToEntity() (*entity.Match, error) {
	category, err := entity.ParseCategory(m.Type)
	if err != nil {
		return nil, fmt.Errorf("decode match %s: %w", m.ID, err)
	}
	format, err := entity.ParseTeamFormat(m.Format)
	if err != nil {
		return nil, fmt.Errorf("decode match %s: %w", m.ID, err)
	}

	return &entity.Match{
		ID:             m.ID,
		SequenceNumber: m.MatchNumber,
		Title:          m.Title,
		Category:       category,
		TeamFormat:     format,
		EntryFee: entity.Fee{
			Free:   m.EntryFee.Free,
			Amount: entity.Money{Minor: m.EntryFee.Amount, Currency: m.EntryFee.Currency},
		},
		PrizeDescriptor:         m.PrizePool,
		ScheduledTimeDescriptor: m.StartTime,
		TotalSlots:              m.TotalSlots,
		FilledSlots:             m.FilledSlots,
		RoomCode:                m.RoomCode,
		RoomPassword:            m.RoomPassword,
		Banner:                  m.Banner,
		CreatedAt:               m.CreatedAt,
	}, nil
}
