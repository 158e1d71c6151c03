package match

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// Feed shape
const (
	FeedSize      = 12
	MaxCandidates = 100
	FirstHour     = 8
	LastHour      = 23
	SlotStep      = 60 * time.Minute
	MaxSeedFilled = 5 // Seeded filled slots fall in [0, MaxSeedFilled)
)

var (
	feedFees   = []string{"20 BDT", "50 BDT", "10 BDT", "Free", "100 BDT"}
	feedPrizes = []string{"500 BDT", "1000 BDT", "200 Diamonds", "50 Diamonds", "2500 BDT"}
)

type feedTemplate struct {
	title      string
	category   entity.Category
	format     entity.TeamFormat
	totalSlots int
}

// Even feed positions are battle royale, odd ones clash squad
var feedTemplates = [2]feedTemplate{
	{title: "BD BR Elite Cup", category: entity.CategoryBattleRoyale, format: entity.FormatSolo, totalSlots: 48},
	{title: "CS 4v4 Diamond League", category: entity.CategoryClashSquad, format: entity.FormatSquad, totalSlots: 8},
}

// Generator builds the daily match feed
type Generator struct {
	rnd coreport.RandomSource
}

// NewGenerator creates a generator seeding filled slots from rnd
func NewGenerator(rnd coreport.RandomSource) *Generator {
	return &Generator{rnd: rnd}
}

// Generate returns up to FeedSize matches starting at the half-hour boundary after now
// and stepping an hour at a time, keeping only slots between FirstHour and LastHour.
// A slot's minute never changes, so a 07:15 cursor yields 07:30 (skipped) and then
// 08:30 as its first match, not 08:00. Hours are taken in the location of now.
func (g *Generator) Generate(now time.Time) []*entity.Match {
	cursor := firstSlot(now)
	matches := make([]*entity.Match, 0, FeedSize)

	for candidates := 0; len(matches) < FeedSize && candidates < MaxCandidates; candidates++ {
		if hour := cursor.Hour(); hour >= FirstHour && hour <= LastHour {
			matches = append(matches, g.build(len(matches), cursor, now))
		}
		cursor = cursor.Add(SlotStep)
	}
	return matches
}

func (g *Generator) build(position int, at, now time.Time) *entity.Match {
	tpl := feedTemplates[position%len(feedTemplates)]

	// The fee table only holds descriptors ParseFeeDescriptor accepts
	fee, _ := entity.ParseFeeDescriptor(feedFees[position%len(feedFees)])

	return &entity.Match{
		ID:                      fmt.Sprintf("match-%d", at.UnixMilli()),
		SequenceNumber:          position + 1,
		Title:                   tpl.title,
		Category:                tpl.category,
		TeamFormat:              tpl.format,
		EntryFee:                fee,
		PrizeDescriptor:         feedPrizes[position%len(feedPrizes)],
		ScheduledTimeDescriptor: TimeLabel(at, now),
		TotalSlots:              tpl.totalSlots,
		FilledSlots:             g.rnd.Intn(MaxSeedFilled),
		CreatedAt:               now,
	}
}

// firstSlot is :30 of the current hour when now is before it, else :00 of the next hour
func firstSlot(now time.Time) time.Time {
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if now.Minute() < 30 {
		return hour.Add(30 * time.Minute)
	}
	return hour.Add(time.Hour)
}

// TimeLabel renders at as "08:30 PM Today", or Tomorrow when it falls on the next calendar day
func TimeLabel(at, now time.Time) string {
	day := "Today"
	ay, am, ad := at.Date()
	ny, nm, nd := now.Date()
	if ay != ny || am != nm || ad != nd {
		day = "Tomorrow"
	}
	return at.Format("03:04 PM") + " " + day
}
