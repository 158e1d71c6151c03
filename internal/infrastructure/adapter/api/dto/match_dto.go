package dto

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// JoinRequest carries the in-game identity used for a match
type JoinRequest struct {
	GameUID  string `json:"uid" binding:"required,digits"`
	GameName string `json:"gameName" binding:"required,max=32"`
}

// MatchResponse is a match card
type MatchResponse struct {
	ID             string `json:"id"`
	SequenceNumber int    `json:"sequenceNumber"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	CategoryLabel  string `json:"categoryLabel"`
	TeamFormat     string `json:"teamFormat"`
	EntryFee       string `json:"entryFee"`
	Prize          string `json:"prize"`
	Time           string `json:"time"`
	TotalSlots     int    `json:"totalSlots"`
	FilledSlots    int    `json:"filledSlots"`
	Joined         bool   `json:"joined"`
	RoomCode       string `json:"roomId,omitempty"`
	RoomPassword   string `json:"roomPass,omitempty"`
	Banner         string `json:"banner,omitempty"`
}

// RegistrationResponse is one joined match
type RegistrationResponse struct {
	ID            string    `json:"id"`
	Mobile        string    `json:"userMobile"`
	MatchID       string    `json:"matchId"`
	MatchTitle    string    `json:"matchTitle"`
	MatchCategory string    `json:"category"`
	Time          string    `json:"time"`
	GameUID       string    `json:"uid"`
	GameName      string    `json:"gameName"`
	Status        string    `json:"status"`
	Prize         string    `json:"prize,omitempty"`
	CreatedAt     time.Time `json:"joinedAt"`
}

// RefreshResponse summarizes a feed regeneration
type RefreshResponse struct {
	Kept    int `json:"kept"`
	Added   int `json:"added"`
	Dropped int `json:"dropped"`
}

// AdviceResponse is a short play tip
type AdviceResponse struct {
	Advice string `json:"advice"`
}

// RulesResponse lists the league rules
type RulesResponse struct {
	Rules []string `json:"rules"`
}

// NewMatchResponse converts a match card for output
func NewMatchResponse(view usecase.MatchView) MatchResponse {
	m := view.Match
	return MatchResponse{
		ID:             m.ID,
		SequenceNumber: m.SequenceNumber,
		Title:          m.Title,
		Category:       string(m.Category),
		CategoryLabel:  m.Category.Label(),
		TeamFormat:     string(m.TeamFormat),
		EntryFee:       m.EntryFee.String(),
		Prize:          m.PrizeDescriptor,
		Time:           m.ScheduledTimeDescriptor,
		TotalSlots:     m.TotalSlots,
		FilledSlots:    m.FilledSlots,
		Joined:         view.Joined,
		RoomCode:       m.RoomCode,
		RoomPassword:   m.RoomPassword,
		Banner:         m.Banner,
	}
}

// NewMatchList converts match cards for output
func NewMatchList(views []usecase.MatchView) []MatchResponse {
	out := make([]MatchResponse, 0, len(views))
	for _, view := range views {
		out = append(out, NewMatchResponse(view))
	}
	return out
}

// NewRegistrationResponse converts a registration for output
func NewRegistrationResponse(r *entity.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:            r.ID,
		Mobile:        r.AccountKey,
		MatchID:       r.MatchID,
		MatchTitle:    r.MatchTitle,
		MatchCategory: string(r.MatchCategory),
		Time:          r.ScheduledTimeDescriptor,
		GameUID:       r.GameUID,
		GameName:      r.GameName,
		Status:        string(r.Status),
		Prize:         r.Prize,
		CreatedAt:     r.CreatedAt,
	}
}

// NewRegistrationList converts registrations for output
func NewRegistrationList(registrations []*entity.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		out = append(out, NewRegistrationResponse(r))
	}
	return out
}
