package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/checklist"
)

// tasksModel is the role tabs, progress card and checkable list.
type tasksModel struct {
	list   *checklist.Checklist
	width  int
	height int

	role   catalog.Role
	tasks  []catalog.Task
	cursor int
	offset int

	bar       progress.Model
	resetHour int
}

func newTasksModel(list *checklist.Checklist, resetHour int) tasksModel {
	m := tasksModel{list: list, resetHour: resetHour}
	m.setRole(list.Role())
	return m
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.bar.Width = max(10, w-12)
}

func (m *tasksModel) setRole(r catalog.Role) {
	m.role = r
	m.tasks = catalog.ForRole(r)
	m.cursor = 0
	m.offset = 0
	m.bar = progress.New(progress.WithSolidFill(r.Color()), progress.WithoutPercentage())
	m.bar.Width = max(10, m.width-12)
	m.list.SetRole(r)
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Role1):
		m.setRole(catalog.FrontDesk)
	case key.Matches(keyMsg, keys.Role2):
		m.setRole(catalog.Finance)
	case key.Matches(keyMsg, keys.Role3):
		m.setRole(catalog.ClinicalAssistant)
	case key.Matches(keyMsg, keys.NextRole):
		roles := catalog.Roles()
		m.setRole(roles[(int(m.role)+1)%len(roles)])
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		return m.toggle()
	}
	m.scroll()
	return m, nil
}

func (m tasksModel) toggle() (tasksModel, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	id := m.tasks[m.cursor].ID
	if _, err := m.list.ToggleTask(id); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Erro: %v", err), isError: true}
		}
	}
	// Every user action re-runs the schedule rules.
	return m, evaluateCmd(m.list)
}

// listHeight is how many task rows fit below the tabs and progress card.
func (m tasksModel) listHeight() int {
	return max(3, m.height-12)
}

// scroll keeps the cursor inside the visible window.
func (m *tasksModel) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m tasksModel) view() string {
	if m.width < 20 {
		return "Terminal muito pequeno"
	}
	w := m.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderRoleTabs(),
		m.renderProgress(w),
		m.renderList(w),
	)
}

func (m tasksModel) renderRoleTabs() string {
	var tabs []string
	for _, r := range catalog.Roles() {
		tabs = append(tabs, roleTabStyle(r.Color(), r == m.role).Render(strings.ToUpper(r.String())))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m tasksModel) renderProgress(w int) string {
	done, total, pct := m.list.Progress(m.role)
	head := fmt.Sprintf("%s  %s",
		titleStyle.Render(fmt.Sprintf("%d%%", pct)),
		mutedStyle.Render(fmt.Sprintf("concluído hoje (%d/%d)", done, total)),
	)
	line := lipgloss.JoinHorizontal(lipgloss.Top, head, "  ", mutedStyle.Render(fmt.Sprintf("Reset às %dh", m.resetHour)))
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, line, m.bar.ViewAs(float64(pct)/100)),
	)
}

func (m tasksModel) renderList(w int) string {
	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Tudo limpo por aqui!"),
			mutedStyle.Render("Aproveite o seu dia"),
		)
		return panelStyle.Width(w).Render(content)
	}

	textWidth := w - 12
	end := min(len(m.tasks), m.offset+m.listHeight())

	var rows []string
	lastCategory := ""
	if m.offset > 0 {
		lastCategory = m.tasks[m.offset-1].Category
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↑ %d", m.offset)))
	}
	for i := m.offset; i < end; i++ {
		t := m.tasks[i]
		if t.Category != lastCategory {
			rows = append(rows, categoryStyle.Render(strings.ToUpper(t.Category)))
			lastCategory = t.Category
		}

		box := "[ ]"
		text := normalItemStyle.Render(truncate(t.Text, textWidth))
		if m.list.Done(t.ID) {
			box = successStyle.Render("[✓]")
			text = doneTaskStyle.Render(truncate(t.Text, textWidth))
		}
		cursor := "  "
		if i == m.cursor {
			cursor = selectedItemStyle.Render("> ")
		}
		rows = append(rows, cursor+box+" "+text)
	}
	if end < len(m.tasks) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↓ %d", len(m.tasks)-end)))
	}

	panels := []string{activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))}
	if g := m.renderGuidelines(w); g != "" && end == len(m.tasks) {
		panels = append(panels, g)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m tasksModel) renderGuidelines(w int) string {
	notes := catalog.Guidelines(m.role)
	if len(notes) == 0 {
		return ""
	}
	rows := []string{warningStyle.Bold(true).Render("OBSERVAÇÕES & DIRETRIZES")}
	for _, n := range notes {
		rows = append(rows, lipgloss.NewStyle().Width(w-6).Render(
			warningStyle.Bold(true).Render(n.Title+": ")+normalItemStyle.Render(n.Text),
		))
	}
	return guidelinePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
