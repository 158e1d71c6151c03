package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// FixedTimeProvider reports a settable instant; used by feed previews
type FixedTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixedTimeProvider creates a provider frozen at now
func NewFixedTimeProvider(now time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: now}
}

// Now returns the frozen instant
func (p *FixedTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.now
}

// Set moves the clock to now
func (p *FixedTimeProvider) Set(now time.Time) {
	p.mu.Lock()
	p.now = now
	p.mu.Unlock()
}

// Advance moves the clock forward by d
func (p *FixedTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d)
	p.mu.Unlock()
}

// Location returns the zone of the frozen instant
func (p *FixedTimeProvider) Location() *time.Location {
	return p.Now().Location()
}

// Since measures from the frozen instant
func (p *FixedTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(p.Now().Sub(t))
}

// WithTimeout uses the real clock; only Now is frozen
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
