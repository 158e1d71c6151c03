package dto

import (
	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// BalanceRequest overrides a balance ("balance") or moves it by a signed delta ("delta")
type BalanceRequest struct {
	Balance string `json:"balance"`
	Delta   string `json:"delta"`
}

// MatchRequest is the admin match form; empty fields fall back to form defaults
type MatchRequest struct {
	Title       string `json:"title" binding:"required,max=64"`
	Category    string `json:"category"`
	TeamFormat  string `json:"teamFormat"`
	EntryFee    string `json:"entryFee"`
	Prize       string `json:"prize"`
	Time        string `json:"time"`
	TotalSlots  int    `json:"totalSlots" binding:"gte=0"`
	FilledSlots int    `json:"filledSlots" binding:"gte=0"`
	Banner      string `json:"banner"`
}

// MatchPatchRequest is a partial match update; absent fields stay unchanged
type MatchPatchRequest struct {
	Title        *string `json:"title"`
	Category     *string `json:"category"`
	TeamFormat   *string `json:"teamFormat"`
	EntryFee     *string `json:"entryFee"`
	Prize        *string `json:"prize"`
	Time         *string `json:"time"`
	TotalSlots   *int    `json:"totalSlots"`
	FilledSlots  *int    `json:"filledSlots"`
	RoomCode     *string `json:"roomId"`
	RoomPassword *string `json:"roomPass"`
	Banner       *string `json:"banner"`
}

// ModerationResponse reports an approve/reject call
type ModerationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Applied     bool                `json:"applied"`
	Balance     string              `json:"balance"`
}

// BalanceChangeResponse reports a balance override
type BalanceChangeResponse struct {
	Account    AccountResponse      `json:"account"`
	Previous   string               `json:"previous"`
	Adjustment *TransactionResponse `json:"adjustment,omitempty"`
}

// OverviewResponse is the admin dashboard summary
type OverviewResponse struct {
	TotalAccounts int    `json:"totalUsers"`
	TotalMatches  int    `json:"totalMatches"`
	PendingCount  int    `json:"pendingCount"`
	TotalRevenue  string `json:"totalRevenue"`
	TotalPayout   string `json:"totalPayout"`
}

// ToInput converts the form for the use case
func (r MatchRequest) ToInput() usecase.MatchInput {
	return usecase.MatchInput{
		Title:                   r.Title,
		Category:                r.Category,
		TeamFormat:              r.TeamFormat,
		EntryFee:                r.EntryFee,
		PrizeDescriptor:         r.Prize,
		ScheduledTimeDescriptor: r.Time,
		TotalSlots:              r.TotalSlots,
		FilledSlots:             r.FilledSlots,
		Banner:                  r.Banner,
	}
}

// ToPatch parses the typed fields and builds a domain patch
func (r MatchPatchRequest) ToPatch() (entity.MatchPatch, error) {
	patch := entity.MatchPatch{
		Title:                   r.Title,
		PrizeDescriptor:         r.Prize,
		ScheduledTimeDescriptor: r.Time,
		TotalSlots:              r.TotalSlots,
		FilledSlots:             r.FilledSlots,
		RoomCode:                r.RoomCode,
		RoomPassword:            r.RoomPassword,
		Banner:                  r.Banner,
	}

	if r.Category != nil {
		category, err := entity.ParseCategory(*r.Category)
		if err != nil {
			return entity.MatchPatch{}, err
		}
		patch.Category = &category
	}
	if r.TeamFormat != nil {
		format, err := entity.ParseTeamFormat(*r.TeamFormat)
		if err != nil {
			return entity.MatchPatch{}, err
		}
		patch.TeamFormat = &format
	}
	if r.EntryFee != nil {
		fee, err := entity.ParseFeeDescriptor(*r.EntryFee)
		if err != nil {
			return entity.MatchPatch{}, err
		}
		patch.EntryFee = &fee
	}
	return patch, nil
}

// NewModerationResponse converts a moderation result for output
func NewModerationResponse(result *usecase.ModerationResult) ModerationResponse {
	return ModerationResponse{
		Transaction: NewTransactionResponse(result.Transaction),
		Applied:     result.Applied,
		Balance:     entity.FormatMinor(result.Balance),
	}
}

// NewBalanceChangeResponse converts a balance override for output
func NewBalanceChangeResponse(change *usecase.BalanceChange) BalanceChangeResponse {
	resp := BalanceChangeResponse{
		Account:  NewAccountResponse(change.Account),
		Previous: entity.FormatMinor(change.Previous),
	}
	if change.Adjustment != nil {
		adjustment := NewTransactionResponse(change.Adjustment)
		resp.Adjustment = &adjustment
	}
	return resp
}

// NewOverviewResponse converts the dashboard summary for output
func NewOverviewResponse(o *entity.Overview) OverviewResponse {
	return OverviewResponse{
		TotalAccounts: o.TotalAccounts,
		TotalMatches:  o.TotalMatches,
		PendingCount:  o.PendingCount,
		TotalRevenue:  entity.FormatMinor(o.TotalRevenue),
		TotalPayout:   entity.FormatMinor(o.TotalPayout),
	}
}
