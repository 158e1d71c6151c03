package serial

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// DefaultQueueSize is the buffer of each per-key queue
const DefaultQueueSize = 100

// AccountKey is the sequencing key of an account
func AccountKey(mobile string) string {
	return "account:" + mobile
}

// MatchKey is the sequencing key of a match
func MatchKey(matchID string) string {
	return "match:" + matchID
}

// Func is a compound update run while its key is held
type Func func(ctx context.Context) error

// Sequencer runs compound updates one at a time per key, in arrival order.
// A key gets a queue and worker goroutine while it has pending updates; the
// worker exits once its queue drains, so idle keys hold nothing.
type Sequencer struct {
	logger    coreport.Logger
	queueSize int

	lanesMu sync.Mutex
	lanes   map[string]*lane
	workers sync.WaitGroup

	// mu guards closed; enqueues hold the read side
	mu     sync.RWMutex
	closed bool
}

// lane is the queue of one key. pending counts updates sent or about to be
// sent that the worker has not finished, and is guarded by lanesMu.
type lane struct {
	queue   chan *request
	pending int
}

type request struct {
	ctx    context.Context
	fn     Func
	result chan error
}

// NewSequencer creates a sequencer; queueSize <= 0 uses DefaultQueueSize
func NewSequencer(logger coreport.Logger, queueSize int) *Sequencer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Sequencer{
		logger:    logger,
		queueSize: queueSize,
		lanes:     make(map[string]*lane),
	}
}

// Do runs fn once every earlier update for key has finished and returns its error
func (s *Sequencer) Do(ctx context.Context, key string, fn Func) error {
	req := &request{
		ctx:    ctx,
		fn:     fn,
		result: make(chan error, 1),
	}

	if err := s.enqueue(ctx, key, req); err != nil {
		return err
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		s.logger.Warn("Context canceled while waiting for sequenced update", map[string]any{
			"key":   key,
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// DoOrdered holds keys in the given order, then runs fn. Callers pass
// account keys before match keys so two updates never wait on each other.
func (s *Sequencer) DoOrdered(ctx context.Context, keys []string, fn Func) error {
	if len(keys) == 0 {
		return fn(ctx)
	}
	return s.Do(ctx, keys[0], func(ctx context.Context) error {
		return s.DoOrdered(ctx, keys[1:], fn)
	})
}

func (s *Sequencer) enqueue(ctx context.Context, key string, req *request) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return errs.ErrShuttingDown
	}

	l := s.acquire(key)

	select {
	case l.queue <- req:
		return nil
	case <-ctx.Done():
		s.logger.Warn("Context canceled while enqueueing sequenced update", map[string]any{
			"key":   key,
			"error": ctx.Err().Error(),
		})
		s.abandon(key, l)
		return ctx.Err()
	}
}

// acquire returns the lane of key, starting a worker when the key was idle
func (s *Sequencer) acquire(key string) *lane {
	s.lanesMu.Lock()
	defer s.lanesMu.Unlock()

	l, ok := s.lanes[key]
	if !ok {
		l = &lane{queue: make(chan *request, s.queueSize)}
		s.lanes[key] = l
		s.logger.Debug("Starting sequencer worker", map[string]any{"key": key})
		s.workers.Add(1)
		go s.work(key, l)
	}
	l.pending++
	return l
}

// abandon takes back a request that was never sent. When nothing else is
// pending the worker is idle on the queue, and closing it stops the worker.
func (s *Sequencer) abandon(key string, l *lane) {
	s.lanesMu.Lock()
	defer s.lanesMu.Unlock()

	l.pending--
	if l.pending == 0 {
		delete(s.lanes, key)
		close(l.queue)
	}
}

// done marks one request finished and reports whether the lane was retired
func (s *Sequencer) done(key string, l *lane) bool {
	s.lanesMu.Lock()
	defer s.lanesMu.Unlock()

	l.pending--
	if l.pending > 0 {
		return false
	}
	if s.lanes[key] == l {
		delete(s.lanes, key)
	}
	return true
}

// active returns the number of keys with a running worker
func (s *Sequencer) active() int {
	s.lanesMu.Lock()
	defer s.lanesMu.Unlock()
	return len(s.lanes)
}

func (s *Sequencer) work(key string, l *lane) {
	defer s.workers.Done()
	defer s.logger.Debug("Sequencer worker stopped", map[string]any{"key": key})

	for req := range l.queue {
		if err := req.ctx.Err(); err != nil {
			req.result <- err
		} else {
			req.result <- req.fn(req.ctx)
		}
		if s.done(key, l) {
			return
		}
	}
}

// Shutdown rejects new updates, lets queued ones finish and waits for every worker
func (s *Sequencer) Shutdown() {
	s.logger.Info("Shutting down sequencer", nil)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	s.lanesMu.Lock()
	for key, l := range s.lanes {
		delete(s.lanes, key)
		close(l.queue)
	}
	s.lanesMu.Unlock()
	s.mu.Unlock()

	s.workers.Wait()
	s.logger.Info("Sequencer shut down successfully", nil)
}
