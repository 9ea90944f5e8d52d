package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/schedule"
)

// clockInterval drives the header clock. Policy evaluation runs on its own,
// longer interval measured against the same ticks.
const clockInterval = time.Second

// promptDelay is how long after startup the reminder opt-in appears.
const promptDelay = 2 * time.Second

// tickerModel decides when the schedule policy is due.
type tickerModel struct {
	clock    schedule.Clock
	interval time.Duration
	now      time.Time
	lastEval time.Time
	pending  bool // an evaluation command is in flight
}

func newTickerModel(clock schedule.Clock, interval time.Duration) tickerModel {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if interval <= 0 {
		interval = schedule.DefaultInterval
	}
	now := clock.Now()
	return tickerModel{
		clock:    clock,
		interval: interval,
		now:      now,
		// Open already evaluated once at startup.
		lastEval: now,
	}
}

// tick advances the displayed time and reports whether an evaluation is due.
func (t *tickerModel) tick() bool {
	t.now = t.clock.Now()
	if t.pending {
		return false
	}
	return t.now.Sub(t.lastEval) >= t.interval
}

// mark records that an evaluation was started at the current time.
func (t *tickerModel) mark() {
	t.lastEval = t.clock.Now()
	t.pending = true
}

func (t *tickerModel) done() {
	t.pending = false
}

func tickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func promptCmd() tea.Cmd {
	return tea.Tick(promptDelay, func(time.Time) tea.Msg {
		return showPromptMsg{}
	})
}

// evaluateCmd runs both schedule rules off the update loop after a user
// action.
func evaluateCmd(list *checklist.Checklist) tea.Cmd {
	return func() tea.Msg {
		ev, err := list.Evaluate()
		return evaluatedMsg{ev: ev, err: err}
	}
}

// scheduledEvaluateCmd is the ticker's evaluation; its result clears pending.
func scheduledEvaluateCmd(list *checklist.Checklist) tea.Cmd {
	return func() tea.Msg {
		ev, err := list.Evaluate()
		return evaluatedMsg{ev: ev, err: err, scheduled: true}
	}
}
