package tui

import (
	"time"

	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewChecklist viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Checklist", "Histórico", "Lembretes"}

// --- Messages ---

type tickMsg time.Time

type evaluatedMsg struct {
	ev  checklist.Evaluation
	err error
	// scheduled is set for evaluations the ticker started.
	scheduled bool
}

type permissionMsg struct {
	perm notify.Permission
	err  error
}

// showPromptMsg opens the reminder opt-in after the startup delay.
type showPromptMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type historyDataMsg struct {
	days []store.DaySummary
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// weekdayNames are pt-BR short weekday names, Sunday first.
var weekdayNames = []string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}

var monthNames = []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// formatHeaderDate renders e.g. "qua, 14 out 09:05".
func formatHeaderDate(t time.Time) string {
	return weekdayNames[t.Weekday()] + ", " + t.Format("02") + " " + monthNames[t.Month()-1] + " " + t.Format("15:04")
}
