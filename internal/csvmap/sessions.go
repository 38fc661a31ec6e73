package csvmap

import (
	"sync"
)

// Sessions holds the in-progress column mappings, one per draft guest
// list. Mappings are ephemeral: they live for the duration of the mapping
// flow and are dropped once the list is processed or the server restarts.
type Sessions struct {
	mu       sync.Mutex
	mappings map[int64]*Mapping
}

func NewSessions() *Sessions {
	return &Sessions{mappings: make(map[int64]*Mapping)}
}

// Start creates (or resets) the mapping session for a guest list with the
// given number of CSV columns and returns it.
func (s *Sessions) Start(guestListID int64, columnCount int) *Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := NewMapping(columnCount)
	s.mappings[guestListID] = m
	return m
}

// Get returns the mapping session for a guest list, if one exists.
func (s *Sessions) Get(guestListID int64) (*Mapping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mappings[guestListID]
	return m, ok
}

// Drop discards the mapping session for a guest list.
func (s *Sessions) Drop(guestListID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mappings, guestListID)
}
