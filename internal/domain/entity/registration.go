package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	tport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// RegistrationStatus is the result of a joined match
type RegistrationStatus string

// Registration statuses. Won and lost are set by result settlement.
const (
	RegistrationJoined RegistrationStatus = "joined"
	RegistrationWon    RegistrationStatus = "won"
	RegistrationLost   RegistrationStatus = "lost"
)

// Registration is a confirmed join of one account into one match.
// Title, category and time are snapshots taken at join time.
type Registration struct {
	ID                      string
	AccountKey              string
	MatchID                 string
	MatchTitle              string
	MatchCategory           Category
	ScheduledTimeDescriptor string
	GameUID                 string
	GameName                string
	Status                  RegistrationStatus
	Prize                   string
	CreatedAt               time.Time
}

// ValidateGameIdentity checks the in-game UID and name a player joins with
func ValidateGameIdentity(gameUID, gameName string) error {
	if strings.TrimSpace(gameName) == "" {
		return errs.NewValidationError("gameName", gameName, "required", errs.ErrInvalidInput)
	}
	if !IsDigits(gameUID) {
		return errs.NewValidationError("uid", gameUID, "digits only", errs.ErrInvalidInput)
	}
	return nil
}

// NewRegistration snapshots match for a join by accountKey
func NewRegistration(id, accountKey string, match *Match, gameUID, gameName string, timeProvider tport.TimeProvider) *Registration {
	return &Registration{
		ID:                      id,
		AccountKey:              accountKey,
		MatchID:                 match.ID,
		MatchTitle:              match.Title,
		MatchCategory:           match.Category,
		ScheduledTimeDescriptor: match.ScheduledTimeDescriptor,
		GameUID:                 gameUID,
		GameName:                strings.TrimSpace(gameName),
		Status:                  RegistrationJoined,
		CreatedAt:               timeProvider.Now(),
	}
}
