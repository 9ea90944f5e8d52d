package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/schedule"
)

// permissionTimeout bounds a single permission probe.
const permissionTimeout = 10 * time.Second

type settingsModel struct {
	list     *checklist.Checklist
	policy   schedule.Policy
	interval time.Duration
	width    int
	height   int

	formActive bool
	form       *huh.Form

	// Pointer so the answer survives value copies of the model.
	accept *bool
}

func newSettingsModel(list *checklist.Checklist, policy schedule.Policy, interval time.Duration) settingsModel {
	accept := true
	return settingsModel{
		list:     list,
		policy:   policy,
		interval: interval,
		accept:   &accept,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showPrompt()
		}
	}
	return s, nil
}

// showPrompt opens the reminder opt-in confirm.
func (s settingsModel) showPrompt() (settingsModel, tea.Cmd) {
	*s.accept = true
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Ativar lembretes diários (%dh)?", s.policy.ReminderHour)).
				Description("Um aviso por dia útil para conferir o checklist.").
				Affirmative("Ativar").
				Negative("Agora não").
				Value(s.accept),
		),
	).WithShowHelp(false)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		if *s.accept {
			return s, requestPermissionCmd(s.list)
		}
		return s, func() tea.Msg { return statusMsg{text: "Lembretes não ativados"} }
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	}

	return s, cmd
}

// requestPermissionCmd asks the host for notification permission off the
// update loop.
func requestPermissionCmd(list *checklist.Checklist) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), permissionTimeout)
		defer cancel()
		perm, err := list.RequestNotifications(ctx)
		return permissionMsg{perm: perm, err: err}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Lembretes")

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	st := s.list.State()

	enabled := mutedStyle.Render("desativados")
	if st.NotificationsEnabled {
		enabled = successStyle.Render("ativados")
	}

	lastReset := "nunca"
	if !st.LastReset.IsZero() && st.LastReset.Unix() > 0 {
		lastReset = st.LastReset.Local().Format("02/01/2006 15:04")
	}
	lastNotified := "nunca"
	if st.LastNotificationDate != nil {
		lastNotified = *st.LastNotificationDate
	}

	rows := []string{
		title,
		"",
		settingRow("Permissão", permissionLabel(s.list.Permission())),
		settingRow("Lembretes", enabled),
		settingRow("Reset diário", highlightStyle.Render(fmt.Sprintf("%02d:00 (dias úteis)", s.policy.ResetHour))),
		settingRow("Lembrete", highlightStyle.Render(fmt.Sprintf("a partir das %02d:00", s.policy.ReminderHour))),
		settingRow("Verificação", highlightStyle.Render(s.interval.String())),
		settingRow("Último reset", highlightStyle.Render(lastReset)),
		settingRow("Último lembrete", highlightStyle.Render(lastNotified)),
		"",
		mutedStyle.Render("  enter: ativar lembretes  esc: voltar"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(18).Render(label), value)
}

func permissionLabel(p notify.Permission) string {
	switch p {
	case notify.Granted:
		return successStyle.Render("concedida")
	case notify.Denied:
		return errorStyle.Render("negada")
	}
	return warningStyle.Render("não solicitada")
}
