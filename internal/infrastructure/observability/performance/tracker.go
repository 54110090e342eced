package performance

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Tracker manages performance markers and aggregates basic metrics
type Tracker struct {
	markers    map[string]*Marker
	order      []string // marker IDs in creation order, oldest first
	maxMarkers int
	started    time.Time
	mu         sync.RWMutex
}

// NewTracker creates a tracker retaining up to maxMarkers completed markers
func NewTracker(maxMarkers int) *Tracker {
	if maxMarkers <= 0 {
		maxMarkers = 1000
	}
	return &Tracker{
		markers:    make(map[string]*Marker),
		maxMarkers: maxMarkers,
		started:    time.Now(),
	}
}

// StartOperation creates and registers a marker for the named operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		ID:        ulid.Make().String(),
		Operation: operation,
		StartTime: time.Now(),
		Success:   true,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.markers[marker.ID] = marker
	t.order = append(t.order, marker.ID)

	// Evict oldest markers beyond the retention cap
	for len(t.order) > t.maxMarkers {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.markers, oldest)
	}

	return marker
}

// GetMarker returns a marker by ID
func (t *Tracker) GetMarker(id string) (*Marker, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marker, ok := t.markers[id]
	return marker, ok
}

// Summary returns aggregate statistics for all retained markers
func (t *Tracker) Summary() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var completed, failed int
	var totalDuration time.Duration
	byOperation := make(map[string]int)

	for _, marker := range t.markers {
		byOperation[marker.Operation]++
		if !marker.Completed {
			continue
		}
		completed++
		totalDuration += marker.Duration
		if !marker.Success {
			failed++
		}
	}

	var avgDuration time.Duration
	if completed > 0 {
		avgDuration = totalDuration / time.Duration(completed)
	}

	return map[string]any{
		"trackerUptime":       time.Since(t.started).String(),
		"totalMarkers":        len(t.markers),
		"completedOperations": completed,
		"failedOperations":    failed,
		"averageDuration":     avgDuration.String(),
		"operations":          byOperation,
	}
}
