package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/schedule"
	"github.com/sadopc/clinicdesk/internal/store"
)

// HistorySource is the read side of reset snapshots.
type HistorySource interface {
	ListHistory(from, to string) ([]store.DaySummary, error)
}

type historyModel struct {
	source HistorySource
	clock  schedule.Clock
	width  int
	height int

	role   catalog.Role
	days   []store.DaySummary
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newHistoryModel(src HistorySource, clock schedule.Clock) historyModel {
	return historyModel{
		source: src,
		clock:  clock,
		chart:  barchart.New(60, 10),
	}
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

func (h historyModel) refresh() tea.Cmd {
	from, to := h.dateRange()
	return func() tea.Msg {
		days, err := h.source.ListHistory(schedule.DayString(from), schedule.DayString(to))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Erro no histórico: %v", err), isError: true}
		}
		return historyDataMsg{days: days}
	}
}

// dateRange is the 7-day window ending today, shifted back by offset weeks.
func (h historyModel) dateRange() (time.Time, time.Time) {
	now := h.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-7*h.offset)
	return end.AddDate(0, 0, -7), end
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.days = msg.days
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Role1):
			h.setRole(catalog.FrontDesk)
		case key.Matches(msg, keys.Role2):
			h.setRole(catalog.Finance)
		case key.Matches(msg, keys.Role3):
			h.setRole(catalog.ClinicalAssistant)
		case key.Matches(msg, keys.NextRole):
			roles := catalog.Roles()
			h.setRole(roles[(int(h.role)+1)%len(roles)])
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		}
	}
	return h, nil
}

func (h *historyModel) setRole(r catalog.Role) {
	h.role = r
	h.buildChart()
}

// percentFor is the best completion recorded for the role on day.
func (h historyModel) percentFor(day string) (int, bool) {
	best, found := 0, false
	for _, d := range h.days {
		if d.Day == day && d.Role == h.role.String() {
			found = true
			best = max(best, d.Percent())
		}
	}
	return best, found
}

func (h *historyModel) buildChart() {
	chartWidth := max(20, h.width-8)
	chartHeight := 10
	if h.height > 30 {
		chartHeight = 14
	}
	h.chart = barchart.New(chartWidth, chartHeight)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(h.role.Color()))
	from, to := h.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		pct, _ := h.percentFor(schedule.DayString(d))
		bars = append(bars, barchart.BarData{
			Label: weekdayNames[d.Weekday()] + " " + d.Format("02"),
			Values: []barchart.BarValue{{
				Name:  h.role.String(),
				Value: float64(pct),
				Style: style,
			}},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s a %s", from.Format("02/01"), to.AddDate(0, 0, -1).Format("02/01/2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Histórico"), "  ",
		roleTabStyle(h.role.Color(), true).Render(h.role.String()), "  ",
		dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: semanas  1/2/3: função  esc: voltar")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", h.renderTable(w), "", nav,
		),
	)
}

func (h historyModel) renderTable(w int) string {
	var rows []string
	for _, d := range h.days {
		if d.Role != h.role.String() {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-12s %3d%%  %d/%d", d.Day, d.Percent(), d.Completed, d.Total))
	}
	if len(rows) == 0 {
		return mutedStyle.Render("  Sem registros neste período")
	}
	head := mutedStyle.Render(fmt.Sprintf("  %-12s %4s  %s", "Dia", "%", "Tarefas"))
	sep := mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 32)))
	return strings.Join(append([]string{head, sep}, rows...), "\n")
}
