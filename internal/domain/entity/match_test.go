package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/league-wallet/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch() *Match {
	return &Match{
		ID:                      "match-1",
		SequenceNumber:          1,
		Title:                   "CS 4v4 Diamond League",
		Category:                CategoryClashSquad,
		TeamFormat:              FormatSquad,
		EntryFee:                FeeOf(2000),
		PrizeDescriptor:         "500 BDT",
		ScheduledTimeDescriptor: "08:00 PM Today",
		TotalSlots:              8,
		FilledSlots:             5,
	}
}

func TestParseCategory(t *testing.T) {
	for _, input := range []string{"battle-royale", "Battle Royale", "BATTLE ROYALE"} {
		category, err := ParseCategory(input)
		require.NoError(t, err)
		assert.Equal(t, CategoryBattleRoyale, category)
	}

	category, err := ParseCategory("Clash Squad 4v4")
	require.NoError(t, err)
	assert.Equal(t, CategoryClashSquad, category)
	assert.Equal(t, "Clash Squad 4v4", category.Label())

	_, err = ParseCategory("lone wolf")
	assert.ErrorIs(t, err, errs.ErrInvalidMatch)
}

func TestTeamFormat(t *testing.T) {
	format, err := ParseTeamFormat("Squad")
	require.NoError(t, err)
	assert.Equal(t, FormatSquad, format)
	assert.Equal(t, "Squad", format.Label())

	_, err = ParseTeamFormat("trio")
	assert.ErrorIs(t, err, errs.ErrInvalidMatch)
}

func TestMatchFillSlot(t *testing.T) {
	match := newTestMatch()
	match.FilledSlots = 7

	require.NoError(t, match.FillSlot())
	assert.Equal(t, 8, match.FilledSlots)
	assert.False(t, match.HasFreeSlot())

	assert.ErrorIs(t, match.FillSlot(), errs.ErrSlotsFull)
	assert.Equal(t, 8, match.FilledSlots)
}

func TestMatchPatchApply(t *testing.T) {
	t.Run("Room reveal", func(t *testing.T) {
		match := newTestMatch()
		code, password := "884213", "ff99"

		require.NoError(t, MatchPatch{RoomCode: &code, RoomPassword: &password}.Apply(match))
		assert.True(t, match.RoomRevealed())
		assert.Equal(t, "ff99", match.RoomPassword)
		assert.Equal(t, "CS 4v4 Diamond League", match.Title)
	})

	t.Run("Invalid patch leaves match unchanged", func(t *testing.T) {
		match := newTestMatch()
		title, total := "Renamed", 4

		err := MatchPatch{Title: &title, TotalSlots: &total}.Apply(match)
		assert.ErrorIs(t, err, errs.ErrInvalidMatch)
		assert.Equal(t, "CS 4v4 Diamond League", match.Title)
		assert.Equal(t, 8, match.TotalSlots)
	})

	t.Run("Zero slots rejected", func(t *testing.T) {
		match := newTestMatch()
		zero := 0
		filled := 0

		err := MatchPatch{TotalSlots: &zero, FilledSlots: &filled}.Apply(match)
		assert.ErrorIs(t, err, errs.ErrInvalidMatch)
	})

	t.Run("Empty patch", func(t *testing.T) {
		assert.True(t, MatchPatch{}.IsEmpty())
	})
}

func TestValidateGameIdentity(t *testing.T) {
	testCases := []struct {
		name     string
		uid      string
		gameName string
		valid    bool
	}{
		{"Valid", "123456789", "Shadow", true},
		{"Letters in uid", "12a45", "Shadow", false},
		{"Empty uid", "", "Shadow", false},
		{"Empty name", "123456789", "  ", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGameIdentity(tc.uid, tc.gameName)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestNewRegistrationSnapshotsMatch(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Once()

	match := newTestMatch()
	registration := NewRegistration("umatch-1", "01712345678", match, "123456", " Shadow ", mockTime)

	assert.Equal(t, match.ID, registration.MatchID)
	assert.Equal(t, match.Title, registration.MatchTitle)
	assert.Equal(t, CategoryClashSquad, registration.MatchCategory)
	assert.Equal(t, "Shadow", registration.GameName)
	assert.Equal(t, RegistrationJoined, registration.Status)
	assert.Equal(t, fixedTime, registration.CreatedAt)
}
