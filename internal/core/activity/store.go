package activity

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quarterlog/quarterlog/internal/core/slot"
)

// Store holds the full ordered activity list. Every mutation replaces the
// whole list atomically, so readers always observe a consistent snapshot.
type Store struct {
	mu         sync.RWMutex
	activities []Activity
}

// NewStore creates a store seeded with previously persisted activities
func NewStore(activities []Activity) *Store {
	snapshot := make([]Activity, len(activities))
	copy(snapshot, activities)
	return &Store{activities: snapshot}
}

// Snapshot returns a copy of the full activity list in insertion order
func (s *Store) Snapshot() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]Activity, len(s.activities))
	copy(snapshot, s.activities)
	return snapshot
}

// Len returns the number of stored activities
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Add appends a new activity for the given slot on the given day and returns
// it. The activity timestamp combines the day with the slot's hour and minute.
func (s *Store) Add(description, timeBlock string, day time.Time) (Activity, error) {
	hour, minute, err := slot.ParseKey(timeBlock)
	if err != nil {
		return Activity{}, fmt.Errorf("add activity: %w", err)
	}

	act := Activity{
		ID:          uuid.New().String(),
		Description: description,
		Timestamp:   time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()),
		Completed:   false,
		TimeBlock:   timeBlock,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Activity, 0, len(s.activities)+1)
	next = append(next, s.activities...)
	next = append(next, act)
	s.activities = next

	return act, nil
}

// Update replaces the description of the activity with the given id.
// Only the description is mutable; everything else is preserved.
func (s *Store) Update(id, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	next := make([]Activity, len(s.activities))
	for i, act := range s.activities {
		if act.ID == id {
			act.Description = description
			updated = true
		}
		next[i] = act
	}
	if updated {
		s.activities = next
	}
	return updated
}

// Delete removes the activity with the given id
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Activity, 0, len(s.activities))
	deleted := false
	for _, act := range s.activities {
		if act.ID == id {
			deleted = true
			continue
		}
		next = append(next, act)
	}
	if deleted {
		s.activities = next
	}
	return deleted
}

// Replace swaps in a whole new activity list, e.g. after an external reload
func (s *Store) Replace(activities []Activity) {
	snapshot := make([]Activity, len(activities))
	copy(snapshot, activities)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = snapshot
}

// ForDate returns the activities whose timestamp falls on the given calendar
// day, in insertion order. Day membership follows the timestamp, not the
// TimeBlock hour.
func (s *Store) ForDate(day time.Time) []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []Activity
	for _, act := range s.activities {
		if SameDay(act.Timestamp.In(day.Location()), day) {
			filtered = append(filtered, act)
		}
	}
	return filtered
}

// ChronologicalLines renders a day's activities as "- HH:MM: description"
// lines sorted by timestamp, the input shape for summarization.
func ChronologicalLines(activities []Activity) []string {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	lines := make([]string, len(sorted))
	for i, act := range sorted {
		lines[i] = fmt.Sprintf("- %s: %s", act.TimeBlock, act.Description)
	}
	return lines
}

// ActiveHours estimates tracked hours for a day: the larger of 15 minutes per
// activity and the span between the first and last timestamp.
func ActiveHours(activities []Activity) float64 {
	if len(activities) == 0 {
		return 0
	}

	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	total := float64(len(sorted)) * 0.25
	if len(sorted) >= 2 {
		span := sorted[len(sorted)-1].Timestamp.Sub(sorted[0].Timestamp).Hours()
		if span > total {
			total = span
		}
	}
	return total
}
