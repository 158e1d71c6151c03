package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock in a fixed zone
type RealTimeProvider struct {
	location *time.Location
}

// NewRealTimeProvider creates a provider reporting times in location; nil means UTC
func NewRealTimeProvider(location *time.Location) core.TimeProvider {
	if location == nil {
		location = time.UTC
	}
	return &RealTimeProvider{location: location}
}

// NewRealTimeProviderIn loads the named zone, e.g. "Asia/Dhaka"
func NewRealTimeProviderIn(zone string) (core.TimeProvider, error) {
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return NewRealTimeProvider(location), nil
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.location)
}

// Location returns the zone Now is expressed in
func (p *RealTimeProvider) Location() *time.Location {
	return p.location
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
