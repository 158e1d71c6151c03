package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
)

// Category is the game mode of a match
type Category string

// Categories
const (
	CategoryBattleRoyale Category = "battle-royale"
	CategoryClashSquad   Category = "clash-squad"
)

var categoryLabels = map[Category]string{
	CategoryBattleRoyale: "Battle Royale",
	CategoryClashSquad:   "Clash Squad 4v4",
}

// Label returns the display name of the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory accepts either the key ("battle-royale") or the label ("Battle Royale")
func ParseCategory(value string) (Category, error) {
	value = strings.TrimSpace(value)
	for category, label := range categoryLabels {
		if strings.EqualFold(value, string(category)) || strings.EqualFold(value, label) {
			return category, nil
		}
	}
	return "", errs.NewValidationError("category", value, "battle-royale or clash-squad", errs.ErrInvalidMatch)
}

// TeamFormat is the team size of a match
type TeamFormat string

// Team formats
const (
	FormatSolo  TeamFormat = "solo"
	FormatDuo   TeamFormat = "duo"
	FormatSquad TeamFormat = "squad"
)

// Label returns the display name of the format, e.g. "Solo"
func (f TeamFormat) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// ParseTeamFormat parses a team format case-insensitively
func ParseTeamFormat(value string) (TeamFormat, error) {
	switch format := TeamFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case FormatSolo, FormatDuo, FormatSquad:
		return format, nil
	default:
		return "", errs.NewValidationError("format", value, "solo, duo or squad", errs.ErrInvalidMatch)
	}
}

// Match is a scheduled tournament instance with capacity and room secrets
type Match struct {
	ID                      string
	SequenceNumber          int
	Title                   string
	Category                Category
	TeamFormat              TeamFormat
	EntryFee                Fee
	PrizeDescriptor         string
	ScheduledTimeDescriptor string
	TotalSlots              int
	FilledSlots             int
	RoomCode                string // Revealed to registered players before the match
	RoomPassword            string
	Banner                  string
	CreatedAt               time.Time
}

// Validate checks the capacity and classification rules of a match
func (m *Match) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errs.NewValidationError("title", m.Title, "required", errs.ErrInvalidMatch)
	}
	if _, ok := categoryLabels[m.Category]; !ok {
		return errs.NewValidationError("category", string(m.Category), "battle-royale or clash-squad", errs.ErrInvalidMatch)
	}
	if _, err := ParseTeamFormat(string(m.TeamFormat)); err != nil {
		return err
	}
	if m.TotalSlots < 1 {
		return errs.NewValidationError("totalSlots", fmt.Sprint(m.TotalSlots), "at least 1", errs.ErrInvalidMatch)
	}
	if m.FilledSlots < 0 || m.FilledSlots > m.TotalSlots {
		return errs.NewValidationError("filledSlots", fmt.Sprint(m.FilledSlots),
			fmt.Sprintf("must be between 0 and %d", m.TotalSlots), errs.ErrInvalidMatch)
	}
	return nil
}

// HasFreeSlot reports whether another player can join
func (m *Match) HasFreeSlot() bool {
	return m.FilledSlots < m.TotalSlots
}

// FillSlot takes one slot for a new registration
func (m *Match) FillSlot() error {
	if !m.HasFreeSlot() {
		return errs.ErrSlotsFull
	}
	m.FilledSlots++
	return nil
}

// RoomRevealed reports whether room secrets have been published
func (m *Match) RoomRevealed() bool {
	return m.RoomCode != ""
}

// MatchPatch is a partial update; nil fields are left unchanged
type MatchPatch struct {
	Title                   *string
	Category                *Category
	TeamFormat              *TeamFormat
	EntryFee                *Fee
	PrizeDescriptor         *string
	ScheduledTimeDescriptor *string
	TotalSlots              *int
	FilledSlots             *int
	RoomCode                *string
	RoomPassword            *string
	Banner                  *string
}

// Apply merges the patch into m. Nothing changes when the patched match is invalid.
func (p MatchPatch) Apply(m *Match) error {
	patched := *m
	setIf(&patched.Title, p.Title)
	setIf(&patched.Category, p.Category)
	setIf(&patched.TeamFormat, p.TeamFormat)
	setIf(&patched.EntryFee, p.EntryFee)
	setIf(&patched.PrizeDescriptor, p.PrizeDescriptor)
	setIf(&patched.ScheduledTimeDescriptor, p.ScheduledTimeDescriptor)
	setIf(&patched.TotalSlots, p.TotalSlots)
	setIf(&patched.FilledSlots, p.FilledSlots)
	setIf(&patched.RoomCode, p.RoomCode)
	setIf(&patched.RoomPassword, p.RoomPassword)
	setIf(&patched.Banner, p.Banner)

	if err := patched.Validate(); err != nil {
		return err
	}
	*m = patched
	return nil
}

// IsEmpty reports whether the patch changes nothing
func (p MatchPatch) IsEmpty() bool {
	return p == MatchPatch{}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
