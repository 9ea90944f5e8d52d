package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Role1    key.Binding
	Role2    key.Binding
	Role3    key.Binding
	NextRole key.Binding
	History  key.Binding
	Settings key.Binding
	Notify   key.Binding
	Export   key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "marcar"),
	),
	Role1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "atendente"),
	),
	Role2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "financeiro"),
	),
	Role3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "asb"),
	),
	NextRole: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "próxima função"),
	),
	History: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "histórico"),
	),
	Settings: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "lembretes"),
	),
	Notify: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "ativar lembretes"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "exportar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ajuda"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "selecionar"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "voltar"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "cima"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "baixo"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "anterior"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "próximo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "sair"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextRole, k.History, k.Notify, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Enter},
		{k.Role1, k.Role2, k.Role3, k.NextRole},
		{k.History, k.Settings, k.Notify, k.Export},
		{k.Left, k.Right, k.Back, k.Help, k.Quit},
	}
}
