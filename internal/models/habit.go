package models

import (
	"fmt"
	"strings"
	"time"
)

type HabitKind string

const (
	HabitKindGood    HabitKind = "good"
	HabitKindBad     HabitKind = "bad"
	HabitKindNeutral HabitKind = "neutral"
)

// HabitKinds lists the supported habit kinds.
func HabitKinds() []HabitKind {
	return []HabitKind{HabitKindGood, HabitKindBad, HabitKindNeutral}
}

// ParseHabitKind parses a case-insensitive habit kind name.
func ParseHabitKind(s string) (HabitKind, error) {
	switch HabitKind(strings.ToLower(strings.TrimSpace(s))) {
	case HabitKindGood:
		return HabitKindGood, nil
	case HabitKindBad:
		return HabitKindBad, nil
	case HabitKindNeutral:
		return HabitKindNeutral, nil
	default:
		return "", fmt.Errorf("unknown habit kind %q", s)
	}
}

// Valid reports whether k is one of the supported habit kinds.
func (k HabitKind) Valid() bool {
	switch k {
	case HabitKindGood, HabitKindBad, HabitKindNeutral:
		return true
	}
	return false
}

// Habit represents a recurring practice to track
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      HabitKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Completion records that a habit was done on a given day. The row's
// existence is the completion signal; un-completing a day deletes it.
type Completion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}
