package advice

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// Fallback replies
const (
	EmptyReplyFallback = "Servers busy! Just play safe and get that Booyah!"
	FailureFallback    = "Net e problem! Keep fighting for the Booyah! 🔥"
)

const promptTemplate = "Give me 3 short gaming tips for a Free Fire %s (%s) match in a mix of Bangla and English " +
	"(BD gaming style). Keep it aggressive and energetic. Use emojis."

// Options tunes the advice service
type Options struct {
	Timeout  time.Duration // Per call; zero means no deadline beyond ctx
	CacheTTL time.Duration // Zero disables caching
}

type cacheEntry struct {
	text      string
	expiresAt time.Time
}

// AdviceUseCase asks a text generator for play tips and never fails
type AdviceUseCase struct {
	generator    coreport.TextGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	options      Options

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewAdviceUseCase creates a new AdviceUseCase; a nil generator always falls back
func NewAdviceUseCase(
	generator coreport.TextGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	options Options,
) *AdviceUseCase {
	return &AdviceUseCase{
		generator:    generator,
		timeProvider: timeProvider,
		logger:       logger,
		options:      options,
		cache:        make(map[string]cacheEntry),
	}
}

// GetAdvice returns tips for category and format, or a fixed fallback message
func (u *AdviceUseCase) GetAdvice(ctx context.Context, category, format string) string {
	category, format = strings.TrimSpace(category), strings.TrimSpace(format)
	key := strings.ToLower(category + "|" + format)

	if text, ok := u.cached(key); ok {
		return text
	}

	if u.generator == nil {
		return FailureFallback
	}

	if u.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = u.timeProvider.WithTimeout(ctx, coreport.Duration(u.options.Timeout))
		defer cancel()
	}

	text, err := u.generator.Generate(ctx, fmt.Sprintf(promptTemplate, category, format))
	if err != nil {
		u.logger.Warn("Advice service failed", map[string]any{
			"category": category,
			"format":   format,
			"error":    err.Error(),
		})
		return FailureFallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyReplyFallback
	}

	u.store(key, text)
	return text
}

func (u *AdviceUseCase) cached(key string) (string, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	entry, ok := u.cache[key]
	if !ok {
		return "", false
	}
	if !u.timeProvider.Now().Before(entry.expiresAt) {
		delete(u.cache, key)
		return "", false
	}
	return entry.text, true
}

func (u *AdviceUseCase) store(key, text string) {
	if u.options.CacheTTL <= 0 {
		return
	}
	u.mu.Lock()
	u.cache[key] = cacheEntry{text: text, expiresAt: u.timeProvider.Now().Add(u.options.CacheTTL)}
	u.mu.Unlock()
}

var _ usecase.AdviceUseCase = (*AdviceUseCase)(nil)
