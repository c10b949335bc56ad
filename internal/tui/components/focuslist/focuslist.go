package focuslist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focuslog/internal/models"
)

type ToggleFocusMsg struct {
	ID string
}

type AddFocusMsg struct{}

type Item struct {
	Focus models.Item
}

func (i Item) Title() string {
	if i.Focus.Completed {
		return "✓ " + i.Focus.Title
	}
	return "· " + i.Focus.Title
}

func (i Item) Description() string {
	if i.Focus.Tag == "" {
		return "untagged"
	}
	return "#" + i.Focus.Tag
}

func (i Item) FilterValue() string { return i.Focus.Title }

type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add focus"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(focuses []models.Item, width, height int) Model {
	l := list.New(toListItems(focuses), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is rendered globally by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add}
	}

	return Model{list: l, keys: keys}
}

func toListItems(focuses []models.Item) []list.Item {
	items := make([]list.Item, len(focuses))
	for i, f := range focuses {
		items[i] = Item{Focus: f}
	}
	return items
}

func (m *Model) SetFocuses(focuses []models.Item) {
	m.list.SetItems(toListItems(focuses))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleFocusMsg{ID: i.Focus.ID} }
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddFocusMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No focuses yet for today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
