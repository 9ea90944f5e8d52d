package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRecord wraps any failure to decode the stored record.
var ErrMalformedRecord = errors.New("malformed checklist record")

// SaveOption overlays one field onto the durable record during Save.
// Fields without an option keep their durable value.
type SaveOption func(*PersistedState)

// WithTasks replaces the completion map.
func WithTasks(tasks TaskState) SaveOption {
	return func(p *PersistedState) {
		p.Tasks = tasks.Clone()
	}
}

// WithNotificationsEnabled sets the reminder opt-in flag.
func WithNotificationsEnabled(enabled bool) SaveOption {
	return func(p *PersistedState) {
		p.NotificationsEnabled = enabled
	}
}

// WithLastNotificationDate records the local day a reminder was sent.
func WithLastNotificationDate(day string) SaveOption {
	return func(p *PersistedState) {
		d := day
		p.LastNotificationDate = &d
	}
}

// WithLastReset advances the reset instant. Older instants are ignored.
func WithLastReset(at time.Time) SaveOption {
	return func(p *PersistedState) {
		if at.After(p.LastReset) {
			p.LastReset = at.UTC()
		}
	}
}

// Load reads the durable record. ok is false when nothing was ever saved.
func (s *Store) Load() (state PersistedState, ok bool, err error) {
	raw, err := s.GetSetting(RecordKey)
	if errors.Is(err, ErrSettingNotFound) {
		return DefaultState(), false, nil
	}
	if err != nil {
		return DefaultState(), false, err
	}
	state, err = decodeRecord(raw)
	if err != nil {
		return DefaultState(), false, err
	}
	return state, true, nil
}

// Save merges opts onto whatever is durable right now and writes the
// result back in one transaction. It returns the record as written.
func (s *Store) Save(opts ...SaveOption) (PersistedState, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return PersistedState{}, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	current := DefaultState()
	raw, err := getSetting(tx, RecordKey)
	switch {
	case err == nil:
		// A record that no longer decodes is replaced rather than blocking writes.
		if decoded, derr := decodeRecord(raw); derr == nil {
			current = decoded
		}
	case !errors.Is(err, ErrSettingNotFound):
		return PersistedState{}, err
	}

	for _, opt := range opts {
		opt(&current)
	}

	data, err := json.Marshal(current)
	if err != nil {
		return PersistedState{}, fmt.Errorf("encode record: %w", err)
	}
	if err := setSetting(tx, RecordKey, string(data)); err != nil {
		return PersistedState{}, err
	}
	if err := tx.Commit(); err != nil {
		return PersistedState{}, fmt.Errorf("commit save: %w", err)
	}
	return current, nil
}

func decodeRecord(raw string) (PersistedState, error) {
	var state PersistedState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return PersistedState{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if state.Tasks == nil {
		state.Tasks = TaskState{}
	}
	if state.LastReset.IsZero() {
		state.LastReset = time.Unix(0, 0).UTC()
	}
	return state, nil
}
