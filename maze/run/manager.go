package run

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/gridpath/maze/service"
)

// DefaultLimit is the number of runs kept when no limit is configured.
const DefaultLimit = 1000

var (
	ErrRunNotFound = errors.New("run not found")
	ErrNilReport   = errors.New("report cannot be nil")
)

// Manager keeps solve runs in memory
type Manager struct {
	runs  map[string]*service.Run
	order []string
	limit int
	now   func() time.Time
	mu    sync.RWMutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of stored runs; the oldest run is evicted first.
func WithLimit(n int) Option {
	return func(m *Manager) {
		m.limit = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new run manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		runs:  make(map[string]*service.Run),
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create stores a report under a fresh run ID and stamps the ID on it. The
// returned run is a copy; reports are not modified once stored.
func (m *Manager) Create(puzzleID string, report *service.SolveReport) (*service.Run, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	run := &service.Run{
		ID:             uuid.NewString(),
		PuzzleID:       puzzleID,
		Report:         report,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	report.RunID = run.ID
	m.runs[run.ID] = run
	m.order = append(m.order, run.ID)

	for m.limit > 0 && len(m.runs) > m.limit {
		m.evictOldest()
	}
	return snapshot(run), nil
}

// snapshot copies run so callers never share fields the manager writes.
func snapshot(run *service.Run) *service.Run {
	c := *run
	return &c
}

// Get retrieves a copy of a run by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	return snapshot(run), nil
}

// List returns copies of all runs, oldest first
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Run, 0, len(m.order))
	for _, id := range m.order {
		if run, ok := m.runs[id]; ok {
			result = append(result, snapshot(run))
		}
	}
	return result
}

// Delete removes a run
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id = strings.ToLower(id)
	if _, exists := m.runs[id]; !exists {
		return ErrRunNotFound
	}
	m.remove(id)
	return nil
}

// Touch updates the last accessed time for a run and returns a copy taken
// after the update
func (m *Manager) Touch(id string) (*service.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		return nil, ErrRunNotFound
	}
	run.LastAccessedAt = m.now()
	return snapshot(run), nil
}

// CleanupExpired removes runs that haven't been accessed in maxAge
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			m.remove(id)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored runs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

func (m *Manager) evictOldest() {
	if len(m.order) == 0 {
		return
	}
	m.remove(m.order[0])
}

// remove deletes id from both indexes. Callers hold the write lock.
func (m *Manager) remove(id string) {
	delete(m.runs, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
