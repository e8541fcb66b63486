package session

import (
	"sync"
	"time"

	"carbonfront/internal/domain"
	"carbonfront/internal/service"
)

// Session holds the page state of one browser session. All access to the
// states goes through the methods below, which serialize on the session lock.
type Session struct {
	ID string

	mu       sync.Mutex
	single   *SingleState
	bulk     *BulkState
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		single:   NewSingleState(),
		bulk:     NewBulkState(),
		lastSeen: now,
	}
}

// Ticket identifies one submission. A finished submission is discarded when
// the state was reset or resubmitted in the meantime.
type Ticket uint64

// WithSingle runs fn with exclusive access to the single-document state.
func (s *Session) WithSingle(fn func(st *SingleState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.single)
}

// WithBulk runs fn with exclusive access to the bulk state.
func (s *Session) WithBulk(fn func(st *BulkState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.bulk)
}

// BeginSingle clears the previous result and marks a submission in flight.
// Fails with ErrSubmissionInFlight while another one is running.
func (s *Session) BeginSingle(m domain.Methodology, file domain.FileInfo) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.single.Loading {
		return 0, domain.ErrSubmissionInFlight
	}
	gen := s.single.generation + 1
	s.single = NewSingleState()
	s.single.generation = gen
	s.single.Methodology = m
	s.single.File = &file
	s.single.Loading = true
	return Ticket(gen), nil
}

// FinishSingle stores the outcome of a submission started by BeginSingle.
// A non-empty failure is shown instead of a result. Returns false when the
// ticket is stale.
func (s *Session) FinishSingle(t Ticket, result *service.SingleResult, failure string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.single.generation != uint64(t) {
		return false
	}
	s.single.Loading = false
	s.single.Error = failure
	if failure != "" || result == nil {
		return true
	}
	s.single.Shape = result.Shape
	s.single.Rows = result.Rows
	s.single.Registry = result.Registry
	s.single.Summary = result.Summary
	return true
}

// ResetSingle restores the initial single-document state. Fails with
// ErrSubmissionInFlight while a submission is running.
func (s *Session) ResetSingle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.single.Loading {
		return domain.ErrSubmissionInFlight
	}
	gen := s.single.generation + 1
	s.single = NewSingleState()
	s.single.generation = gen
	return nil
}

// BeginBulk clears the previous result and marks an archive submission in
// flight.
func (s *Session) BeginBulk(m domain.Methodology, file domain.FileInfo) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bulk.Loading {
		return 0, domain.ErrSubmissionInFlight
	}
	gen := s.bulk.generation + 1
	s.bulk = NewBulkState()
	s.bulk.generation = gen
	s.bulk.Methodology = m
	s.bulk.File = &file
	s.bulk.Loading = true
	return Ticket(gen), nil
}

// FinishBulk stores the outcome of a submission started by BeginBulk.
func (s *Session) FinishBulk(t Ticket, result *domain.BulkResult, failure string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bulk.generation != uint64(t) {
		return false
	}
	s.bulk.Loading = false
	s.bulk.Error = failure
	if failure != "" || result == nil {
		return true
	}
	s.bulk.Success = true
	s.bulk.Stats = result.Stats
	s.bulk.Result = result
	return true
}

// TakeBulkResult hands out the held bulk result and releases it, so each
// result is served at most once.
func (s *Session) TakeBulkResult() (*domain.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.bulk.Result
	if res == nil {
		return nil, domain.ErrNoData
	}
	s.bulk.Result = nil
	return res, nil
}

// ResetBulk restores the initial bulk state. Fails with
// ErrSubmissionInFlight while a submission is running.
func (s *Session) ResetBulk() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bulk.Loading {
		return domain.ErrSubmissionInFlight
	}
	gen := s.bulk.generation + 1
	s.bulk = NewBulkState()
	s.bulk.generation = gen
	return nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.single.Loading || s.bulk.Loading
}
