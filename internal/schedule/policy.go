// Package schedule decides when the daily reset and the morning reminder
// fire. Evaluate is pure so timers, startup and tests all call it the same
// way.
package schedule

import (
	"time"

	"github.com/sadopc/clinicdesk/internal/store"
)

const (
	DefaultResetHour    = 20
	DefaultReminderHour = 8
	DefaultInterval     = time.Minute
)

// DateLayout is the format of lastNotificationDate and history days.
const DateLayout = "2006-01-02"

// Policy holds the wall-clock boundaries of both rules.
type Policy struct {
	ResetHour    int
	ReminderHour int
}

func DefaultPolicy() Policy {
	return Policy{ResetHour: DefaultResetHour, ReminderHour: DefaultReminderHour}
}

// Trigger identifies which reset branch fired.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerCutover
	TriggerNewDay
)

func (t Trigger) String() string {
	switch t {
	case TriggerCutover:
		return "cutover"
	case TriggerNewDay:
		return "new_day"
	}
	return "none"
}

// Result is the outcome of one evaluation. State is the record after both
// rules were applied.
type Result struct {
	ResetFired        bool
	ResetTrigger      Trigger
	NotificationFired bool
	State             store.PersistedState
}

// Evaluate applies the reset rule, then the reminder rule, to st at now.
// All day, weekday and hour comparisons use now's location.
func (p Policy) Evaluate(now time.Time, st store.PersistedState, permissionGranted bool) Result {
	res := Result{State: st}
	res.State.Tasks = st.Tasks.Clone()

	if trig := p.ResetTrigger(now, st.LastReset); trig != TriggerNone {
		res.ResetFired = true
		res.ResetTrigger = trig
		res.State.Tasks = store.TaskState{}
		res.State.LastReset = now
	}

	if p.ShouldRemind(now, st, permissionGranted) {
		res.NotificationFired = true
		today := DayString(now)
		res.State.LastNotificationDate = &today
	}
	return res
}

// ResetTrigger reports which reset branch fires for lastReset at now.
// The weekday cutover is checked first; any calendar day change is the
// fallback. A lastReset later than now (clock set back) never fires; the
// rules resume once the clock passes it.
func (p Policy) ResetTrigger(now, lastReset time.Time) Trigger {
	if lastReset.After(now) {
		return TriggerNone
	}
	cutover := p.Cutover(now)
	if IsWeekday(now) && !now.Before(cutover) && lastReset.Before(cutover) {
		return TriggerCutover
	}
	if !SameDay(lastReset.In(now.Location()), now) {
		return TriggerNewDay
	}
	return TriggerNone
}

// ShouldRemind reports whether the once-a-day reminder is due.
func (p Policy) ShouldRemind(now time.Time, st store.PersistedState, permissionGranted bool) bool {
	if !st.NotificationsEnabled || !permissionGranted {
		return false
	}
	if !IsWeekday(now) || now.Hour() < p.ReminderHour {
		return false
	}
	return st.NotifiedOn() != DayString(now)
}

// Cutover is today's reset boundary in now's location.
func (p Policy) Cutover(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, p.ResetHour, 0, 0, 0, now.Location())
}

// IsWeekday is Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// SameDay compares calendar dates as seen in each time's own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayString formats t's local calendar date.
func DayString(t time.Time) string {
	return t.Format(DateLayout)
}
