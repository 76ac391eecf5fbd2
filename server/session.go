package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/epigraph-tools/lapis/engine"
	"github.com/epigraph-tools/lapis/schema"
)

// ============================================================================
// SESSION — Explicit Dashboard State
// ============================================================================
// The session owns the current dataset and its column profile. Queries read
// a snapshot; uploads and file reloads replace the whole dataset under the
// write lock. There is no partial mutation and no module-level state.
// ============================================================================

// Session holds the dataset a dashboard instance is serving.
type Session struct {
	ID uuid.UUID

	mu       sync.RWMutex
	ds       *engine.Dataset
	profile  schema.Profile
	source   string
	loadedAt time.Time
	notice   string
}

// State is a consistent read snapshot of a session. The dataset it points at
// is immutable, so the snapshot stays valid even if the session is replaced
// mid-request.
type State struct {
	Dataset  *engine.Dataset
	Profile  schema.Profile
	Source   string
	LoadedAt time.Time
	Notice   string
}

// NewSession creates a session around an initial dataset. source names where
// the data came from (file path, "upload", or "sample").
func NewSession(ds *engine.Dataset, source string) *Session {
	s := &Session{ID: uuid.New()}
	s.Replace(ds, source)
	return s
}

// Replace swaps in a new dataset wholesale, re-profiling it. Anything
// derived from the previous dataset is invalidated by the swap.
func (s *Session) Replace(ds *engine.Dataset, source string) {
	profile := schema.Discover(ds)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
	s.profile = profile
	s.source = source
	s.loadedAt = time.Now()
	s.notice = ""
}

// SetNotice records a user-visible load warning (e.g. sample-data fallback).
func (s *Session) SetNotice(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = notice
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Dataset:  s.ds,
		Profile:  s.profile,
		Source:   s.source,
		LoadedAt: s.loadedAt,
		Notice:   s.notice,
	}
}
