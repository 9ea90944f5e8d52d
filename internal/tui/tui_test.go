package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/clinicdesk/internal/catalog"
	"github.com/sadopc/clinicdesk/internal/checklist"
	"github.com/sadopc/clinicdesk/internal/notify"
	"github.com/sadopc/clinicdesk/internal/schedule"
	"github.com/sadopc/clinicdesk/internal/store"
)

var clinicTZ = time.FixedZone("BRT", -3*60*60)

// wednesday morning, after the reminder hour and before the cutover.
var testNow = time.Date(2026, time.October, 14, 9, 5, 0, 0, clinicTZ)

type testEnv struct {
	store    *store.Store
	clock    *schedule.FakeClock
	notifier notify.Notifier
	list     *checklist.Checklist
}

func newTestEnv(t *testing.T, n notify.Notifier) *testEnv {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := schedule.NewFakeClock(testNow)
	// A reset earlier today keeps the first evaluation quiet.
	if _, err := s.Save(store.WithLastReset(testNow.Add(-time.Hour))); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	list := checklist.New(checklist.Options{Repo: s, Notifier: n, Clock: clock})
	list.Load()
	return &testEnv{store: s, clock: clock, notifier: n, list: list}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Ticker
// ============================================================

func TestTickerDue(t *testing.T) {
	clock := schedule.NewFakeClock(testNow)
	tk := newTickerModel(clock, time.Minute)

	if tk.tick() {
		t.Fatal("should not be due right after start")
	}
	clock.Advance(59 * time.Second)
	if tk.tick() {
		t.Fatal("should not be due before the interval")
	}
	clock.Advance(time.Second)
	if !tk.tick() {
		t.Fatal("should be due after the interval")
	}
	if !tk.now.Equal(clock.Now()) {
		t.Fatalf("now = %v, want %v", tk.now, clock.Now())
	}
}

func TestTickerPendingBlocksOverlap(t *testing.T) {
	clock := schedule.NewFakeClock(testNow)
	tk := newTickerModel(clock, time.Minute)

	clock.Advance(time.Minute)
	tk.mark()
	clock.Advance(2 * time.Minute)
	if tk.tick() {
		t.Fatal("should not be due while an evaluation is in flight")
	}
	tk.done()
	if !tk.tick() {
		t.Fatal("should be due again once the evaluation finished")
	}
}

func TestTickerDefaults(t *testing.T) {
	tk := newTickerModel(nil, 0)
	if tk.interval != schedule.DefaultInterval {
		t.Fatalf("interval = %v, want %v", tk.interval, schedule.DefaultInterval)
	}
	if tk.clock == nil {
		t.Fatal("clock should default to the real clock")
	}
}

// ============================================================
// Task list
// ============================================================

func TestTasksToggle(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	m := newTasksModel(env.list, 20)
	m.setSize(100, 40)

	m, cmd := m.update(runeKey('x'))
	if cmd == nil {
		t.Fatal("toggle should schedule an evaluation")
	}
	if !env.list.Done("at-1") {
		t.Fatal("at-1 should be done")
	}

	st, _, err := env.store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !st.Tasks["at-1"] {
		t.Fatal("toggle should be persisted")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = m.update(runeKey('x'))
	if !env.list.Done("at-2") {
		t.Fatal("at-2 should be done")
	}
}

func TestTasksCursorBounds(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	m := newTasksModel(env.list, 20)
	m.setSize(100, 40)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	for range 100 {
		m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.tasks)-1 {
		t.Fatalf("cursor = %d, want %d", m.cursor, len(m.tasks)-1)
	}
	if m.offset == 0 {
		t.Fatal("list should have scrolled")
	}
}

func TestTasksRoleSwitch(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	m := newTasksModel(env.list, 20)
	m.setSize(100, 40)

	m, _ = m.update(runeKey('2'))
	if m.role != catalog.Finance {
		t.Fatalf("role = %v, want Finance", m.role)
	}
	if env.list.Role() != catalog.Finance {
		t.Fatal("checklist role should follow the view")
	}
	if !strings.Contains(m.view(), "Tudo limpo por aqui!") {
		t.Fatal("empty role should show the placeholder")
	}

	_, cmd := m.update(runeKey('x'))
	if cmd != nil {
		t.Fatal("toggle on an empty list should do nothing")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if m.role != catalog.ClinicalAssistant {
		t.Fatalf("role = %v, want ClinicalAssistant", m.role)
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyTab})
	if m.role != catalog.FrontDesk {
		t.Fatalf("tab should wrap to FrontDesk, got %v", m.role)
	}
}

func TestTasksViewShowsProgress(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	for _, id := range []string{"at-1", "at-2", "at-3", "at-4", "at-5"} {
		if _, err := env.list.ToggleTask(id); err != nil {
			t.Fatal(err)
		}
	}
	m := newTasksModel(env.list, 20)
	m.setSize(120, 60)

	v := m.view()
	if !strings.Contains(v, "15%") {
		t.Fatal("view should show 15% for 5 of 33")
	}
	if !strings.Contains(v, "(5/33)") {
		t.Fatal("view should show the task count")
	}
	if !strings.Contains(v, "Reset às 20h") {
		t.Fatal("view should show the reset hour")
	}
}

func TestTasksViewTooSmall(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	m := newTasksModel(env.list, 20)
	m.setSize(10, 10)
	if m.view() != "Terminal muito pequeno" {
		t.Fatal("narrow terminal should show a notice")
	}
}

// ============================================================
// History
// ============================================================

func TestHistoryDateRange(t *testing.T) {
	h := newHistoryModel(nil, schedule.NewFakeClock(testNow))

	from, to := h.dateRange()
	if schedule.DayString(from) != "2026-10-08" || schedule.DayString(to) != "2026-10-15" {
		t.Fatalf("range = %s..%s", schedule.DayString(from), schedule.DayString(to))
	}

	h.offset = 1
	from, to = h.dateRange()
	if schedule.DayString(from) != "2026-10-01" || schedule.DayString(to) != "2026-10-08" {
		t.Fatalf("previous week = %s..%s", schedule.DayString(from), schedule.DayString(to))
	}
}

func TestHistoryPercentForUsesBest(t *testing.T) {
	h := newHistoryModel(nil, schedule.NewFakeClock(testNow))
	h.role = catalog.FrontDesk
	h.days = []store.DaySummary{
		{Day: "2026-10-13", Role: "Atendente", Completed: 10, Total: 33},
		{Day: "2026-10-13", Role: "Atendente", Completed: 33, Total: 33},
		{Day: "2026-10-13", Role: "Financeiro", Completed: 0, Total: 0},
	}

	pct, ok := h.percentFor("2026-10-13")
	if !ok || pct != 100 {
		t.Fatalf("percentFor = %d, %v; want 100, true", pct, ok)
	}
	if _, ok := h.percentFor("2026-10-12"); ok {
		t.Fatal("day without records should not be found")
	}
}

func TestHistoryRefreshLoadsStore(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	err := env.store.RecordReset(testNow.Add(-24*time.Hour), "2026-10-13", []store.RoleSnapshot{
		{Role: "Atendente", Completed: 30, Total: 33},
	})
	if err != nil {
		t.Fatal(err)
	}

	h := newHistoryModel(env.store, env.clock)
	msg := h.refresh()()
	data, ok := msg.(historyDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T", msg)
	}
	if len(data.days) != 1 || data.days[0].Day != "2026-10-13" {
		t.Fatalf("days = %+v", data.days)
	}

	h.setSize(100, 40)
	h, _ = h.update(data)
	if !strings.Contains(h.view(), "91%") {
		t.Fatal("history table should show 91%")
	}
}

func TestHistoryWeekNavigation(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	h := newHistoryModel(env.store, env.clock)

	h, cmd := h.update(tea.KeyMsg{Type: tea.KeyLeft})
	if h.offset != 1 || cmd == nil {
		t.Fatalf("left should go back a week, offset = %d", h.offset)
	}
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyRight})
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyRight})
	if h.offset != 0 {
		t.Fatalf("right should stop at the current week, offset = %d", h.offset)
	}
}

// ============================================================
// Reminders view
// ============================================================

func TestSettingsPromptOpensAndCancels(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	s := newSettingsModel(env.list, schedule.DefaultPolicy(), time.Minute)
	s.setSize(100, 40)

	s, _ = s.showPrompt()
	if !s.formActive {
		t.Fatal("prompt should be active")
	}
	if s.form == nil {
		t.Fatal("prompt should build a form")
	}

	s, _ = s.update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.formActive {
		t.Fatal("esc should close the prompt")
	}
}

func TestSettingsViewShowsState(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Granted))
	s := newSettingsModel(env.list, schedule.DefaultPolicy(), time.Minute)
	s.setSize(100, 40)

	v := s.view()
	for _, want := range []string{"concedida", "desativados", "20:00", "08:00", "1m0s", "nunca"} {
		if !strings.Contains(v, want) {
			t.Errorf("settings view missing %q", want)
		}
	}
}

func TestRequestPermissionCmdGranted(t *testing.T) {
	fake := notify.NewFake(notify.Default)
	fake.Answer = notify.Granted
	env := newTestEnv(t, fake)

	msg := requestPermissionCmd(env.list)()
	pm, ok := msg.(permissionMsg)
	if !ok {
		t.Fatalf("got %T", msg)
	}
	if pm.err != nil || pm.perm != notify.Granted {
		t.Fatalf("permissionMsg = %+v", pm)
	}
	if !env.list.State().NotificationsEnabled {
		t.Fatal("grant should enable reminders")
	}
	if len(fake.Sent()) != 1 {
		t.Fatalf("grant at 09:05 on a weekday should remind once, sent %d", len(fake.Sent()))
	}
}

func TestPermissionLabel(t *testing.T) {
	cases := map[notify.Permission]string{
		notify.Default: "não solicitada",
		notify.Granted: "concedida",
		notify.Denied:  "negada",
	}
	for p, want := range cases {
		if got := permissionLabel(p); !strings.Contains(got, want) {
			t.Errorf("permissionLabel(%v) = %q, want %q", p, got, want)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 4, "abc…"},
		{"ação", 3, "aç…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatHeaderDate(t *testing.T) {
	if got := formatHeaderDate(testNow); got != "qua, 14 out 09:05" {
		t.Fatalf("formatHeaderDate = %q", got)
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 3 {
		t.Fatalf("expected 3 view names, got %d", len(viewNames))
	}
	if viewNames[viewChecklist] != "Checklist" || viewNames[viewHistory] != "Histórico" {
		t.Fatalf("unexpected view names %v", viewNames)
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T, n notify.Notifier) (App, *testEnv) {
	t.Helper()
	env := newTestEnv(t, n)
	app := NewApp(env.list, env.store, Options{Clock: env.clock, Interval: time.Minute, ExportDir: t.TempDir()})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return model.(App), env
}

func TestAppLoadingState(t *testing.T) {
	env := newTestEnv(t, notify.NewFake(notify.Default))
	app := NewApp(env.list, env.store, Options{Clock: env.clock})
	if app.View() != "Carregando..." {
		t.Fatal("zero width should show loading")
	}
}

func TestAppRenderHeader(t *testing.T) {
	app, _ := newTestApp(t, notify.NewFake(notify.Default))
	header := app.renderHeader()
	for _, want := range append([]string{appTitle, "14 out 09:05"}, viewNames...) {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestAppViewSwitching(t *testing.T) {
	app, _ := newTestApp(t, notify.NewFake(notify.Default))

	model, _ := app.Update(runeKey('h'))
	app = model.(App)
	if app.activeView != viewHistory {
		t.Fatalf("h should open history, got %v", app.activeView)
	}
	model, _ = app.Update(runeKey('o'))
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatalf("o should open reminders, got %v", app.activeView)
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.activeView != viewChecklist {
		t.Fatalf("esc should go back, got %v", app.activeView)
	}
}

func TestAppTickSchedulesEvaluation(t *testing.T) {
	app, env := newTestApp(t, notify.NewFake(notify.Default))

	model, _ := app.Update(tickMsg(env.clock.Now()))
	if model.(App).ticker.pending {
		t.Fatal("no evaluation should be due yet")
	}

	env.clock.Advance(time.Minute)
	model, cmd := model.(App).Update(tickMsg(env.clock.Now()))
	if !model.(App).ticker.pending || cmd == nil {
		t.Fatal("evaluation should be in flight after the interval")
	}
}

func TestAppEvaluatedStatus(t *testing.T) {
	app, _ := newTestApp(t, notify.NewFake(notify.Default))
	app.ticker.pending = true

	model, _ := app.Update(evaluatedMsg{ev: checklist.Evaluation{Reset: true}, scheduled: true})
	app = model.(App)
	if app.status != "Checklist resetado" {
		t.Fatalf("status = %q", app.status)
	}
	if app.ticker.pending {
		t.Fatal("scheduled evaluation result should clear pending")
	}

	model, _ = app.Update(evaluatedMsg{ev: checklist.Evaluation{Reminded: true}})
	if model.(App).status != "Lembrete enviado" {
		t.Fatalf("status = %q", model.(App).status)
	}
}

func TestAppToggleEvaluationKeepsTickerPending(t *testing.T) {
	app, env := newTestApp(t, notify.NewFake(notify.Default))

	env.clock.Advance(time.Minute)
	model, _ := app.Update(tickMsg(env.clock.Now()))
	app = model.(App)
	if !app.ticker.pending {
		t.Fatal("tick should start a scheduled evaluation")
	}

	// A toggle finishes its own evaluation while the scheduled one runs.
	model, cmd := app.Update(runeKey('x'))
	if cmd == nil {
		t.Fatal("toggle should schedule an evaluation")
	}
	msg, ok := cmd().(evaluatedMsg)
	if !ok {
		t.Fatal("toggle command should report an evaluation")
	}
	if msg.scheduled {
		t.Fatal("toggle evaluation must not be marked scheduled")
	}
	model, _ = model.(App).Update(msg)
	if !model.(App).ticker.pending {
		t.Fatal("toggle evaluation must not clear the ticker's pending flag")
	}

	model, _ = model.(App).Update(scheduledEvaluateCmd(env.list)())
	if model.(App).ticker.pending {
		t.Fatal("scheduled evaluation should clear pending")
	}
}

func TestAppPromptShownOnlyWhenUndecided(t *testing.T) {
	app, _ := newTestApp(t, notify.NewFake(notify.Default))
	model, _ := app.Update(showPromptMsg{})
	app = model.(App)
	if !app.settings.formActive || app.activeView != viewSettings {
		t.Fatal("undecided permission should open the opt-in")
	}

	denied, _ := newTestApp(t, notify.NewFake(notify.Denied))
	model, _ = denied.Update(showPromptMsg{})
	if model.(App).settings.formActive {
		t.Fatal("decided permission should not prompt")
	}
}

func TestAppUnsupportedAlertOnce(t *testing.T) {
	app, _ := newTestApp(t, notify.Unsupported{})

	model, _ := app.Update(permissionMsg{perm: notify.Denied, err: notify.ErrUnsupported})
	app = model.(App)
	if app.status != "Este terminal não suporta notificações." {
		t.Fatalf("status = %q", app.status)
	}

	app.status = ""
	model, _ = app.Update(permissionMsg{perm: notify.Denied, err: notify.ErrUnsupported})
	if model.(App).status != "" {
		t.Fatal("unsupported alert should be shown once")
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t, notify.NewFake(notify.Default))
	model, _ := app.Update(statusMsg{text: "falhou", isError: true})
	app = model.(App)
	if app.status != "falhou" || !app.isError {
		t.Fatal("status message should be stored")
	}
	if !strings.Contains(app.renderFooter(), "falhou") {
		t.Fatal("footer should show status")
	}
}

func TestAppExport(t *testing.T) {
	app, env := newTestApp(t, notify.NewFake(notify.Default))
	err := env.store.RecordReset(testNow.Add(-24*time.Hour), "2026-10-13", []store.RoleSnapshot{
		{Role: "Atendente", Completed: 3, Total: 33},
	})
	if err != nil {
		t.Fatal(err)
	}

	model, _ := app.Update(runeKey('e'))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.(App).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start the export")
	}

	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export should succeed")
	}
	if !strings.HasSuffix(done.path, "clinicdesk-export-2026-10-14.json") {
		t.Fatalf("path = %q", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should not be empty")
	}
	if len(keys.FullHelp()) != 4 {
		t.Fatalf("expected 4 help columns, got %d", len(keys.FullHelp()))
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestStylesRender(t *testing.T) {
	for _, r := range catalog.Roles() {
		_ = roleTabStyle(r.Color(), true).Render(r.String())
		_ = roleTabStyle(r.Color(), false).Render(r.String())
	}
	_ = panelStyle.Render("x")
	_ = doneTaskStyle.Render("x")
	_ = guidelinePanelStyle.Render("x")
}
