package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	core "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
)

// JobName names the daily feed job
const JobName = "match-feed-refresh"

// DefaultRunTimeout bounds one refresh run
const DefaultRunTimeout = time.Minute

// FeedRefresher regenerates the match feed
type FeedRefresher interface {
	Refresh(ctx context.Context) (*usecase.RefreshResult, error)
}

// FeedScheduler refreshes the match feed every day at a fixed wall-clock time
type FeedScheduler struct {
	scheduler gocron.Scheduler
	job       gocron.Job
	refresher FeedRefresher
	logger    core.Logger
	timeout   time.Duration
}

// ParseDailyAt parses "HH:MM" in 24-hour form
func ParseDailyAt(value string) (hour, minute uint, err error) {
	at, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("daily feed time %q: want HH:MM", value)
	}
	return uint(at.Hour()), uint(at.Minute()), nil
}

// NewFeedScheduler creates a scheduler running refresher daily at dailyAt in location
func NewFeedScheduler(refresher FeedRefresher, dailyAt string, location *time.Location, logger core.Logger) (*FeedScheduler, error) {
	hour, minute, err := ParseDailyAt(dailyAt)
	if err != nil {
		return nil, err
	}
	if location == nil {
		location = time.UTC
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &FeedScheduler{
		scheduler: sched,
		refresher: refresher,
		logger:    logger,
		timeout:   DefaultRunTimeout,
	}

	s.job, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(s.run),
		gocron.WithName(JobName),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule feed refresh: %w", err)
	}
	return s, nil
}

func (s *FeedScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.Error("Scheduled feed refresh failed", map[string]any{"error": err.Error()})
		return
	}
	s.logger.Info("Scheduled feed refresh finished", map[string]any{
		"kept":    result.Kept,
		"added":   result.Added,
		"dropped": result.Dropped,
	})
}

// Start begins running the job
func (s *FeedScheduler) Start() {
	s.scheduler.Start()
	if next, err := s.job.NextRun(); err == nil {
		s.logger.Info("Feed scheduler started", map[string]any{
			"job":      JobName,
			"next_run": next.Format(time.RFC3339),
		})
	}
}

// RunNow triggers the job outside its schedule
func (s *FeedScheduler) RunNow() error {
	return s.job.RunNow()
}

// Shutdown stops the scheduler and waits for a running refresh
func (s *FeedScheduler) Shutdown() error {
	s.logger.Info("Shutting down feed scheduler", nil)
	return s.scheduler.Shutdown()
}
