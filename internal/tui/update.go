package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/internal/tui/components/focuslist"
	"github.com/julianstephens/focuslog/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.focusList.SetSize(size.Width-4, size.Height-8)
		return m, nil
	}

	// The form owns every message while it is open
	if m.state == StateEditing {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case focuslist.ToggleFocusMsg:
		m.toggleFocus(msg.ID)
		return m, nil

	case focuslist.AddFocusMsg:
		return m.startAddFocus()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			m.refreshProgress()
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.refreshProgress()
			return m, nil
		}
	}

	if m.state == StateToday {
		var cmd tea.Cmd
		m.focusList, cmd = m.focusList.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) toggleFocus(id string) {
	entry := m.entry
	found := false
	for i := range entry.Items {
		if entry.Items[i].ID == id && entry.Items[i].DeletedAt == nil {
			entry.Items[i].Completed = !entry.Items[i].Completed
			found = true
			break
		}
	}
	if !found {
		return
	}

	if err := m.store.SaveEntry(entry); err != nil {
		m.errMsg = "failed to save entry: " + err.Error()
		return
	}
	m.cache.Invalidate()

	m.refreshEntry()
	m.focusList.SetFocuses(m.entry.ActiveItems())
	m.refreshProgress()
}

func (m Model) startAddFocus() (tea.Model, tea.Cmd) {
	if len(m.entry.ActiveItems()) >= m.settings.MaxItemsPerDay {
		m.errMsg = "day is already at its focus limit"
		return m, nil
	}

	m.focusForm = &FocusFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus").
				Description("What do you want to get done?").
				Value(&m.focusForm.Title),
			huh.NewInput().
				Title("Tag").
				Description("Optional grouping tag.").
				Value(&m.focusForm.Tag),
		),
	)
	m.state = StateEditing
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitFocus()
		m.state = StateToday
		m.form = nil
		m.focusForm = nil
		return m, nil
	case huh.StateAborted:
		m.state = StateToday
		m.form = nil
		m.focusForm = nil
		return m, nil
	}

	return m, cmd
}

func (m *Model) submitFocus() {
	title := strings.TrimSpace(m.focusForm.Title)
	if title == "" {
		m.errMsg = "focus title cannot be empty"
		return
	}

	entry := m.entry
	entry.Items = append(entry.Items, models.Item{
		ID:       uuid.NewString(),
		Title:    title,
		Tag:      strings.TrimSpace(m.focusForm.Tag),
		Position: len(entry.ActiveItems()),
	})

	validator := validation.New()
	if result := validator.ValidateEntry(entry, m.settings); result.HasConflicts() {
		m.errMsg = result.Conflicts[0].Description
		return
	}

	if err := m.store.SaveEntry(entry); err != nil {
		m.errMsg = "failed to save entry: " + err.Error()
		return
	}
	m.cache.Invalidate()

	m.refreshEntry()
	m.focusList.SetFocuses(m.entry.ActiveItems())
	m.refreshProgress()
}
