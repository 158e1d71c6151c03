package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	done  chan struct{}
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) (*usecase.RefreshResult, error) {
	r.calls.Add(1)
	defer func() { r.done <- struct{}{} }()
	if r.err != nil {
		return nil, r.err
	}
	return &usecase.RefreshResult{Added: 12}, nil
}

func TestParseDailyAt(t *testing.T) {
	tests := []struct {
		value   string
		hour    uint
		minute  uint
		wantErr bool
	}{
		{"06:00", 6, 0, false},
		{"23:59", 23, 59, false},
		{"6am", 0, 0, true},
		{"24:00", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			hour, minute, err := ParseDailyAt(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestFeedScheduler(t *testing.T) {
	t.Run("RunNow refreshes the feed", func(t *testing.T) {
		refresher := &countingRefresher{done: make(chan struct{}, 1)}
		s, err := NewFeedScheduler(refresher, "06:00", time.FixedZone("BDT", 6*60*60), logger.NewNoopLogger())
		require.NoError(t, err)
		s.Start()
		defer func() { assert.NoError(t, s.Shutdown()) }()

		require.NoError(t, s.RunNow())
		select {
		case <-refresher.done:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh did not run")
		}
		assert.EqualValues(t, 1, refresher.calls.Load())
	})

	t.Run("A failing refresh keeps the scheduler alive", func(t *testing.T) {
		refresher := &countingRefresher{done: make(chan struct{}, 2), err: errors.New("store offline")}
		s, err := NewFeedScheduler(refresher, "06:00", nil, logger.NewNoopLogger())
		require.NoError(t, err)
		s.Start()
		defer func() { assert.NoError(t, s.Shutdown()) }()

		for i := 0; i < 2; i++ {
			require.NoError(t, s.RunNow())
			select {
			case <-refresher.done:
			case <-time.After(2 * time.Second):
				t.Fatal("refresh did not run")
			}
		}
		assert.EqualValues(t, 2, refresher.calls.Load())
	})

	t.Run("Bad time", func(t *testing.T) {
		_, err := NewFeedScheduler(&countingRefresher{}, "noon", nil, logger.NewNoopLogger())
		assert.Error(t, err)
	})
}
