package store

import "time"

// RecordKey is the settings key holding the checklist record.
const RecordKey = "sorriso_kids_checklist"

// TaskState maps a task id to its completed flag. Absent ids are not completed.
type TaskState map[string]bool

// Clone returns an independent copy; a nil map clones to an empty one.
func (t TaskState) Clone() TaskState {
	out := make(TaskState, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// PersistedState is the single durable record. It is always written whole.
type PersistedState struct {
	Tasks                TaskState `json:"tasks"`
	LastReset            time.Time `json:"lastReset"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	LastNotificationDate *string   `json:"lastNotificationDate"`
}

// DefaultState is what a fresh install behaves as.
func DefaultState() PersistedState {
	return PersistedState{
		Tasks:     TaskState{},
		LastReset: time.Unix(0, 0).UTC(),
	}
}

// NotifiedOn reports the last reminder date, or "" when none was sent.
func (p PersistedState) NotifiedOn() string {
	if p.LastNotificationDate == nil {
		return ""
	}
	return *p.LastNotificationDate
}

type Setting struct {
	Key   string
	Value string
}

// RoleSnapshot is one role's completion captured right before a reset.
type RoleSnapshot struct {
	Role      string
	Completed int
	Total     int
}

// DaySummary is a stored snapshot row, one per role per reset.
type DaySummary struct {
	ResetAt   time.Time
	Day       string // local YYYY-MM-DD of the period that was reset
	Role      string
	Completed int
	Total     int
}

// Percent is the rounded completion percentage, 0 for an empty list.
func (d DaySummary) Percent() int {
	if d.Total == 0 {
		return 0
	}
	return (d.Completed*100 + d.Total/2) / d.Total
}
