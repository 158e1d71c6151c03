package model

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// Registration is the stored shape of a join record in the user_matches collection
type Registration struct {
	ID         string    `json:"id"`
	UserMobile string    `json:"userMobile"`
	MatchID    string    `json:"matchId"`
	MatchTitle string    `json:"matchTitle"`
	MatchType  string    `json:"matchType"`
	StartTime  string    `json:"startTime"`
	UID        string    `json:"uid"`
	GameName   string    `json:"gameName"`
	Status     string    `json:"status"`
	PrizeWon   string    `json:"prizeWon,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromRegistration converts a registration to its stored shape
func FromRegistration(r *entity.Registration) Registration {
	return Registration{
		ID:         r.ID,
		UserMobile: r.AccountKey,
		MatchID:    r.MatchID,
		MatchTitle: r.MatchTitle,
		MatchType:  string(r.MatchCategory),
		StartTime:  r.ScheduledTimeDescriptor,
		UID:        r.GameUID,
		GameName:   r.GameName,
		Status:     string(r.Status),
		PrizeWon:   r.Prize,
		CreatedAt:  r.CreatedAt,
	}
}

// ToEntity converts a stored registration to an entity
func (m Registration) ToEntity() *entity.Registration {
	category, err := entity.ParseCategory(m.MatchType)
	if err != nil {
		// Snapshot only, keep whatever was stored
		category = entity.Category(m.MatchType)
	}
	return &entity.Registration{
		ID:                      m.ID,
		AccountKey:              m.UserMobile,
		MatchID:                 m.MatchID,
		MatchTitle:              m.MatchTitle,
		MatchCategory:           category,
		ScheduledTimeDescriptor: m.StartTime,
		GameUID:                 m.UID,
		GameName:                m.GameName,
		Status:                  entity.RegistrationStatus(m.Status),
		Prize:                   m.PrizeWon,
		CreatedAt:               m.CreatedAt,
	}
}
