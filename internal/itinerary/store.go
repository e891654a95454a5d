// Package itinerary holds the loaded trip document and the selected day.
package itinerary

import (
	"context"
	"sync"

	"viaggio/internal/model"
)

// Store owns the itinerary document for the session and the active day index.
// The document is never mutated once loaded. It is safe for concurrent use.
type Store struct {
	fetcher *Fetcher

	mu      sync.RWMutex
	doc     *model.Document
	current int
}

// NewStore creates an empty store. Nothing is loaded until Load succeeds.
func NewStore(fetcher *Fetcher) *Store {
	if fetcher == nil {
		fetcher = NewFetcher(0)
	}
	return &Store{fetcher: fetcher}
}

// Load fetches and parses the document. On failure the store holds no document
// and the returned error is a *LoadError.
func (s *Store) Load(ctx context.Context, source string) (*model.Document, error) {
	if source == "" {
		source = DefaultSource
	}

	doc, err := s.fetcher.Fetch(ctx, source)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.doc = nil
		return nil, &LoadError{Source: source, Err: err}
	}
	s.doc = doc
	return doc, nil
}

// Loaded reports whether a document is available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc != nil
}

// Len returns the number of days, or 0 before the document arrives.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return 0
	}
	return len(s.doc.Itinerary)
}

// CurrentDay returns the active day index.
func (s *Store) CurrentDay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrentDay sets the active day index. It is not bounds-checked: the
// document may not have arrived yet, and rendering handles missing days.
func (s *Store) SetCurrentDay(index int) {
	s.mu.Lock()
	s.current = index
	s.mu.Unlock()
}

// Day returns the day at index, or nil if there is none.
func (s *Store) Day(index int) *model.DayPlan {
	day, _ := s.Lookup(index)
	return day
}

// Lookup returns the day at index or a *NotFoundError.
func (s *Store) Lookup(index int) (*model.DayPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil || index < 0 || index >= len(s.doc.Itinerary) {
		return nil, &NotFoundError{Index: index}
	}
	day := s.doc.Itinerary[index]
	return &day, nil
}
