// Package checklist is the in-memory state store behind the UI. Every
// mutation is persisted through a Repository before it returns.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/schedule"
	"github.com/sadopc/clinicdesk/internal/store"
)

// Repository is the durable side of the state store. *store.Store satisfies it.
type Repository interface {
	Load() (store.PersistedState, bool, error)
	Save(opts ...store.SaveOption) (store.PersistedState, error)
	RecordReset(at time.Time, day string, snaps []store.RoleSnapshot) error
}

type Options struct {
	Repo     Repository
	Notifier notify.Notifier
	Policy   schedule.Policy
	Clock    schedule.Clock
	Logger   *slog.Logger
	Rand     *rand.Rand
	// Role is the initial active role; the zero value is the front desk.
	Role catalog.Role
}

type Checklist struct {
	repo     Repository
	notifier notify.Notifier
	policy   schedule.Policy
	clock    schedule.Clock
	log      *slog.Logger
	rng      *rand.Rand

	mu    sync.Mutex
	state store.PersistedState
	role  catalog.Role

	skewWarned bool
}

// Evaluation reports what one policy pass did.
type Evaluation struct {
	At           time.Time
	Reset        bool
	Trigger      schedule.Trigger
	Reminded     bool
	ReminderBody string
}

func New(opts Options) *Checklist {
	c := &Checklist{
		repo:     opts.Repo,
		notifier: opts.Notifier,
		policy:   opts.Policy,
		clock:    opts.Clock,
		log:      opts.Logger,
		rng:      opts.Rand,
		state:    store.DefaultState(),
		role:     opts.Role,
	}
	if c.notifier == nil {
		c.notifier = notify.Unsupported{}
	}
	if c.policy == (schedule.Policy{}) {
		c.policy = schedule.DefaultPolicy()
	}
	if c.clock == nil {
		c.clock = schedule.RealClock{}
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Open builds a checklist, hydrates it and runs the first evaluation so a
// trigger window missed while the app was closed is caught at once.
func Open(opts Options) (*Checklist, Evaluation, error) {
	c := New(opts)
	c.Load()
	ev, err := c.Evaluate()
	return c, ev, err
}

// Load hydrates in-memory state. A missing or unreadable record falls back
// to defaults; the error is only logged.
func (c *Checklist) Load() {
	st, ok, err := c.repo.Load()
	if err != nil {
		c.log.Warn("checklist record unreadable, using defaults", "error", err)
		st = store.DefaultState()
	} else if !ok {
		c.log.Info("no checklist record yet, starting fresh")
	}

	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}

// ToggleTask flips one completion flag and persists the new map. Ids
// outside the catalog are stored anyway.
func (c *Checklist) ToggleTask(id string) (bool, error) {
	if _, ok := catalog.Lookup(id); !ok {
		c.log.Debug("toggling task outside the catalog", "id", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tasks := c.state.Tasks.Clone()
	tasks[id] = !tasks[id]

	saved, err := c.repo.Save(store.WithTasks(tasks))
	if err != nil {
		return c.state.Tasks[id], fmt.Errorf("toggle %s: %w", id, err)
	}
	c.adopt(saved)
	c.state.Tasks = tasks
	return tasks[id], nil
}

// ResetTasks clears every flag and advances lastReset to at. The closing
// period's progress is written to history first when anything was done.
func (c *Checklist) ResetTasks(at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetLocked(at)
}

func (c *Checklist) resetLocked(at time.Time) error {
	if snaps := c.snapshotLocked(); snaps != nil {
		day := schedule.DayString(c.state.LastReset.In(at.Location()))
		if err := c.repo.RecordReset(at, day, snaps); err != nil {
			c.log.Warn("record reset history", "error", err)
		}
	}

	saved, err := c.repo.Save(store.WithTasks(store.TaskState{}), store.WithLastReset(at))
	if err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	c.adopt(saved)
	c.state.Tasks = store.TaskState{}
	return nil
}

// snapshotLocked captures each role's progress, or nil when nothing was ticked.
func (c *Checklist) snapshotLocked() []store.RoleSnapshot {
	var ticked bool
	snaps := make([]store.RoleSnapshot, 0, len(catalog.Roles()))
	for _, r := range catalog.Roles() {
		done, total := countDone(c.state.Tasks, r)
		if done > 0 {
			ticked = true
		}
		snaps = append(snaps, store.RoleSnapshot{Role: r.String(), Completed: done, Total: total})
	}
	if !ticked {
		return nil
	}
	return snaps
}

// Evaluate runs both schedule rules against the current clock.
func (c *Checklist) Evaluate() (Evaluation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.state.LastReset.After(now) && !c.skewWarned {
		c.skewWarned = true
		c.log.Warn("last reset is in the future, holding resets until the clock catches up",
			"last_reset", c.state.LastReset, "now", now)
	}
	granted := c.notifier.Permission() == notify.Granted
	res := c.policy.Evaluate(now, c.state, granted)
	ev := Evaluation{At: now, Trigger: res.ResetTrigger}

	if res.ResetFired {
		if err := c.resetLocked(now); err != nil {
			return ev, err
		}
		ev.Reset = true
		c.log.Info("daily reset", "trigger", res.ResetTrigger.String(), "at", now)
	}

	if res.NotificationFired {
		title, body := schedule.Reminder(c.role.String(), c.rng)
		if err := c.notifier.Notify(title, body); err != nil {
			// Not retried; the day still counts as notified.
			c.log.Warn("reminder not delivered", "error", err)
		}
		today := schedule.DayString(now)
		saved, err := c.repo.Save(store.WithLastNotificationDate(today))
		if err != nil {
			return ev, fmt.Errorf("mark reminder: %w", err)
		}
		c.adopt(saved)
		ev.Reminded = true
		ev.ReminderBody = body
		c.log.Info("reminder sent", "role", c.role.String(), "day", today)
	}
	return ev, nil
}

// RequestNotifications asks the host for permission and applies the answer.
func (c *Checklist) RequestNotifications(ctx context.Context) (notify.Permission, error) {
	perm, err := c.notifier.RequestPermission(ctx)
	if errors.Is(err, notify.ErrUnsupported) {
		return perm, err
	}
	if err != nil && perm != notify.Granted {
		return perm, fmt.Errorf("request notification permission: %w", err)
	}
	if err != nil {
		c.log.Warn("notification permission granted with error", "error", err)
	}
	return perm, c.ApplyPermission(perm)
}

// ApplyPermission stores the outcome of a permission prompt. A grant is
// followed by an evaluation so today's reminder goes out right away.
func (c *Checklist) ApplyPermission(perm notify.Permission) error {
	enabled := perm == notify.Granted

	c.mu.Lock()
	saved, err := c.repo.Save(store.WithNotificationsEnabled(enabled))
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("save notification flag: %w", err)
	}
	c.adopt(saved)
	c.mu.Unlock()

	c.log.Info("notification permission", "permission", perm.String())
	if enabled {
		_, err := c.Evaluate()
		return err
	}
	return nil
}

// adopt takes the flags from a freshly saved record. Tasks are set by callers.
func (c *Checklist) adopt(saved store.PersistedState) {
	c.state.LastReset = saved.LastReset
	c.state.NotificationsEnabled = saved.NotificationsEnabled
	c.state.LastNotificationDate = saved.LastNotificationDate
}

func (c *Checklist) SetRole(r catalog.Role) {
	c.mu.Lock()
	c.role = r
	c.mu.Unlock()
}

func (c *Checklist) Role() catalog.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

// Done reports whether task id is completed.
func (c *Checklist) Done(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Tasks[id]
}

// State returns a copy of the in-memory record.
func (c *Checklist) State() store.PersistedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Tasks = c.state.Tasks.Clone()
	return st
}

// Permission is the host's current notification permission.
func (c *Checklist) Permission() notify.Permission {
	return c.notifier.Permission()
}

// ShouldPrompt is true while the user has never answered the opt-in prompt.
func (c *Checklist) ShouldPrompt() bool {
	if _, ok := c.notifier.(notify.Unsupported); ok {
		return false
	}
	return c.notifier.Permission() == notify.Default
}

// Progress counts the role's completed tasks. percent is rounded and is 0
// for a role with no tasks.
func (c *Checklist) Progress(r catalog.Role) (completed, total, percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	completed, total = countDone(c.state.Tasks, r)
	if total == 0 {
		return completed, total, 0
	}
	return completed, total, int(math.Round(float64(completed) * 100 / float64(total)))
}

func countDone(tasks store.TaskState, r catalog.Role) (done, total int) {
	for _, t := range catalog.ForRole(r) {
		total++
		if tasks[t.ID] {
			done++
		}
	}
	return done, total
}
