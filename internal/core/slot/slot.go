package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotMinutes is the fixed length of one slot
	SlotMinutes = 15

	// SlotsPerHour is the number of slots in one hour
	SlotsPerHour = 4

	// MaxSlots covers a full 24-hour day
	MaxSlots = 96
)

// Slot is one fixed 15-minute interval of the day
type Slot struct {
	// FullTime is the zero-padded "HH:MM" key used for activity placement
	FullTime string
	// Display is the unpadded "H:MM" label
	Display string
	// Hour12 is the 12-hour clock label without suffix
	Hour12 string
	// AMPM is "AM" or "PM"
	AMPM string
	// Hour and Minute are the decomposed 24-hour components
	Hour   int
	Minute int
	// IsFirstOfHour marks the first slot of each hour (minute == 0)
	IsFirstOfHour bool
}

// Generate produces the ordered slot calendar starting at startHour, wrapping
// through the day modulo 24. totalSlots must be a positive multiple of 4 and
// at most 96; larger values would repeat slot keys.
func Generate(startHour, totalSlots int) ([]Slot, error) {
	if startHour < 0 || startHour > 23 {
		return nil, fmt.Errorf("start hour must be 0-23, got %d", startHour)
	}
	if totalSlots <= 0 || totalSlots%SlotsPerHour != 0 {
		return nil, fmt.Errorf("total slots must be a positive multiple of %d, got %d", SlotsPerHour, totalSlots)
	}
	if totalSlots > MaxSlots {
		return nil, fmt.Errorf("total slots must not exceed %d, got %d", MaxSlots, totalSlots)
	}

	slots := make([]Slot, 0, totalSlots)
	for i := 0; i < totalSlots; i++ {
		hour := (i/SlotsPerHour + startHour) % 24
		minute := (i % SlotsPerHour) * SlotMinutes

		hour12 := hour
		if hour > 12 {
			hour12 = hour - 12
		}

		ampm := "AM"
		if hour >= 12 {
			ampm = "PM"
		}

		slots = append(slots, Slot{
			FullTime:      Key(hour, minute),
			Display:       fmt.Sprintf("%d:%02d", hour, minute),
			Hour12:        fmt.Sprintf("%d:%02d", hour12, minute),
			AMPM:          ampm,
			Hour:          hour,
			Minute:        minute,
			IsFirstOfHour: minute == 0,
		})
	}

	return slots, nil
}

// Key builds the zero-padded "HH:MM" slot key for an hour and minute
func Key(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// KeyFor returns the slot key containing the given moment
func KeyFor(t time.Time) string {
	return Key(t.Hour(), t.Minute()/SlotMinutes*SlotMinutes)
}

// ParseKey validates a "HH:MM" slot key and returns its components.
// The hour must be 0-23 and the minute a quarter-hour boundary.
func ParseKey(key string) (hour, minute int, err error) {
	parts := strings.Split(key, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot key %q: want HH:MM", key)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot key %q: %w", key, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot key %q: %w", key, err)
	}

	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid slot key %q: hour out of range", key)
	}
	if minute != 0 && minute != 15 && minute != 30 && minute != 45 {
		return 0, 0, fmt.Errorf("invalid slot key %q: minute must be a quarter hour", key)
	}

	return hour, minute, nil
}

// Progress returns the elapsed fraction of the slot containing t
func Progress(t time.Time) float64 {
	return float64(t.Minute()%SlotMinutes) / SlotMinutes
}
