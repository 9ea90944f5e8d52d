package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/export"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/schedule"
)

// appTitle is the clinic name shown in the header.
const appTitle = "Sorriso Kids"

// Options configures the root model. Zero values fall back to defaults.
type Options struct {
	Policy   schedule.Policy
	Interval time.Duration
	Clock    schedule.Clock
	// ExportDir is where exports are written; the home directory if empty.
	ExportDir string
}

// App is the root Bubble Tea model.
type App struct {
	list    *checklist.Checklist
	history HistorySource
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	tasks    tasksModel
	reports  historyModel
	settings settingsModel
	ticker   tickerModel

	// unsupportedShown keeps the "no notifications" alert to one per run.
	unsupportedShown bool

	help    help.Model
	status  string
	isError bool
}

func NewApp(list *checklist.Checklist, hist HistorySource, opts Options) App {
	if opts.Policy == (schedule.Policy{}) {
		opts.Policy = schedule.DefaultPolicy()
	}
	if opts.Interval <= 0 {
		opts.Interval = schedule.DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = schedule.RealClock{}
	}

	h := help.New()
	h.ShowAll = false

	reports := newHistoryModel(hist, opts.Clock)
	reports.role = list.Role()

	return App{
		list:       list,
		history:    hist,
		activeView: viewChecklist,
		exportDir:  opts.ExportDir,
		tasks:      newTasksModel(list, opts.Policy.ResetHour),
		reports:    reports,
		settings:   newSettingsModel(list, opts.Policy, opts.Interval),
		ticker:     newTickerModel(opts.Clock, opts.Interval),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), a.reports.refresh()}
	if a.list.ShouldPrompt() {
		cmds = append(cmds, promptCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.tasks.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.reports.buildChart()
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The opt-in confirm captures all input while open.
		if a.settings.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Notify):
			return a, requestPermissionCmd(a.list)
		case key.Matches(msg, keys.History):
			a.activeView = viewHistory
			a.reports.role = a.list.Role()
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Settings):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Back):
			a.activeView = viewChecklist
			return a, nil
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.ticker.tick() {
			a.ticker.mark()
			cmds = append(cmds, scheduledEvaluateCmd(a.list))
		}
		return a, tea.Batch(cmds...)

	case evaluatedMsg:
		if msg.scheduled {
			a.ticker.done()
		}
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Erro ao verificar agenda: %v", msg.err), true)
			return a, nil
		}
		switch {
		case msg.ev.Reset && msg.ev.Reminded:
			a.setStatus("Checklist resetado · lembrete enviado", false)
		case msg.ev.Reset:
			a.setStatus("Checklist resetado", false)
		case msg.ev.Reminded:
			a.setStatus("Lembrete enviado", false)
		}
		if msg.ev.Reset {
			return a, a.reports.refresh()
		}
		return a, nil

	case showPromptMsg:
		if !a.list.ShouldPrompt() || a.exportPicking {
			return a, nil
		}
		a.activeView = viewSettings
		var cmd tea.Cmd
		a.settings, cmd = a.settings.showPrompt()
		return a, cmd

	case permissionMsg:
		return a.applyPermission(msg)

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case historyDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.setStatus("Exportado para "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) applyPermission(msg permissionMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, notify.ErrUnsupported):
		if !a.unsupportedShown {
			a.unsupportedShown = true
			a.setStatus("Este terminal não suporta notificações.", true)
		}
	case msg.err != nil:
		a.setStatus(fmt.Sprintf("Permissão: %v", msg.err), true)
	case msg.perm == notify.Granted:
		a.setStatus("Lembretes ativados", false)
	default:
		a.setStatus("Permissão de notificação negada", true)
	}
	return a, nil
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.isError = isError
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewChecklist:
		a.tasks, cmd = a.tasks.update(msg)
	case viewHistory:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Carregando..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewChecklist:
		content = a.tasks.view()
	case viewHistory:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := accentStyle.Render(appTitle)
	clock := mutedStyle.Render(" " + formatHeaderDate(a.ticker.now))
	bell := " " + a.notificationIndicator()

	left := lipgloss.JoinHorizontal(lipgloss.Bottom, title, clock, bell)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, tabRow),
	)
}

func (a App) notificationIndicator() string {
	st := a.list.State()
	switch {
	case st.NotificationsEnabled && a.list.Permission() == notify.Granted:
		return successStyle.Render("● lembretes")
	case a.list.Permission() == notify.Denied:
		return errorStyle.Render("○ lembretes")
	}
	return mutedStyle.Render("○ lembretes")
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		right = style.Render(" " + a.status)
	}

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Exportar histórico"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: exportar  esc: cancelar"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	dir := a.exportDir
	now := a.ticker.clock.Now()
	return func() tea.Msg {
		days, err := a.history.ListHistory("", "")
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Erro ao exportar: %v", err), isError: true}
		}

		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Erro ao exportar: %v", err), isError: true}
			}
			dir = home
		}
		dateStr := schedule.DayString(now)

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("clinicdesk-export-%s.csv", dateStr))
			if err := export.ToCSV(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Erro no CSV: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("clinicdesk-export-%s.json", dateStr))
			if err := export.ToJSON(days, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Erro no JSON: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
