package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/internal/progress"
	"github.com/julianstephens/focuslog/internal/storage"
	"github.com/julianstephens/focuslog/internal/tui/components/focuslist"
	"github.com/julianstephens/focuslog/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateYear
	StateEditing
)

// tabCount covers the cycling tabs; StateEditing sits outside the cycle.
const tabCount = 3

type FocusFormModel struct {
	Title string
	Tag   string
}

type Model struct {
	store     storage.Provider
	cache     *progress.YearCache
	state     SessionState
	keys      KeyMap
	help      help.Model
	focusList focuslist.Model
	settings  models.Settings
	todayKey  string
	entry     models.DayEntry
	streak    int
	week      progress.WeeklySummary
	year      progress.YearResult
	form      *huh.Form
	focusForm *FocusFormModel
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, cache *progress.YearCache) Model {
	settings, err := store.GetSettings()
	if err != nil {
		settings = storage.DefaultSettings()
	}

	todayKey, err := utils.GetTodayFromSettings(settings)
	if err != nil {
		todayKey = time.Now().Format("2006-01-02")
	}

	m := Model{
		store:    store,
		cache:    cache,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		settings: settings,
		todayKey: todayKey,
	}

	m.refreshEntry()
	m.focusList = focuslist.New(m.entry.ActiveItems(), 0, 0)
	m.refreshProgress()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.Toggle, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Toggle, m.keys.Add}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshEntry reloads today's entry from storage. A missing day is not an
// error; it renders as an empty focus list.
func (m *Model) refreshEntry() {
	entry, err := m.store.GetEntry(m.todayKey)
	if err != nil {
		entry = models.DayEntry{Day: m.todayKey}
	}
	m.entry = entry
}

// refreshProgress recomputes the streak, week, and year views from all
// stored entries.
func (m *Model) refreshProgress() {
	entries, err := m.store.GetAllEntries()
	if err != nil {
		m.errMsg = "failed to load entries: " + err.Error()
		return
	}

	threshold := m.settings.StreakThreshold
	m.streak = progress.CurrentStreak(m.todayKey, entries, threshold)

	if week, err := progress.BuildWeeklySummary(m.todayKey, entries, threshold); err == nil {
		m.week = week
	}

	now, err := utils.NowInTimezone(m.settings.Timezone)
	if err != nil {
		now = time.Now()
	}
	m.year = progress.CachedYearData(m.cache, now.Year(), entries, now, threshold)

	m.errMsg = ""
}
