package importer

import (
	"sync"
	"time"
)

// Status is the lifecycle state of an import run.
type Status string

const (
	StatusStarted    Status = "started"
	StatusFetching   Status = "fetching_data"
	StatusProcessing Status = "processing"
	StatusImporting  Status = "importing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Run is the observable state of one import run.
type Run struct {
	ID         string     `json:"import_id"`
	Status     Status     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	Report     *Report    `json:"report,omitempty"`
}

// RunStore tracks run state across the lifetime of the process. The memory
// implementation below suffices for a single instance; anything distributed
// can swap in its own.
type RunStore interface {
	Put(run Run)
	Get(id string) (Run, bool)
}

// MemoryRunStore is a mutex-guarded in-memory RunStore.
type MemoryRunStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewMemoryRunStore creates an empty MemoryRunStore.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{runs: make(map[string]Run)}
}

// Put stores or replaces the run state.
func (s *MemoryRunStore) Put(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

// Get returns the run state for id.
func (s *MemoryRunStore) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}
