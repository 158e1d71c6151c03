package usecase

import "context"

// AdviceUseCase returns short play tips for a mode and team format
type AdviceUseCase interface {
	// GetAdvice never fails; it falls back to a fixed message
	GetAdvice(ctx context.Context, category, format string) string
}
