package itinerary

import "fmt"

// LoadError reports that the itinerary document could not be fetched or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load itinerary from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that no day exists at the requested index.
type NotFoundError struct {
	Index int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("day %d not found", e.Index)
}
