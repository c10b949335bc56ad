package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/focuslog/internal/progress"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateEditing && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWeek:
		content = m.viewWeek()
	case StateYear:
		content = m.viewYear()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, dangerStyle.Render("⚠ "+m.errMsg))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Week", "Year"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	header := headerStyle.Render(m.todayKey)
	if m.streak > 0 {
		header += mutedStyle.Render(fmt.Sprintf("  🔥 %d day streak", m.streak))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.focusList.View()))
}

func (m Model) viewWeek() string {
	var b strings.Builder

	for _, day := range m.week.Days {
		marker := mutedStyle.Render("-")
		if day.Total > 0 {
			if day.MaintainsStreak(m.settings.StreakThreshold) {
				marker = successStyle.Render("ok")
			} else {
				marker = missStyle.Render("miss")
			}
		}

		prefix := "  "
		if day.Day == m.todayKey {
			prefix = "> "
		}
		fmt.Fprintf(&b, "%s%s %s  %d/%d %s\n",
			prefix, day.Date.Format("Mon"), day.Day, day.Completed, day.Total, marker)
	}

	fmt.Fprintf(&b, "\nSuccess rate: %d%%\n", m.week.SuccessRate)
	if m.week.TopTag != "" {
		fmt.Fprintf(&b, "Top tag: #%s\n", m.week.TopTag)
	}

	return docStyle.Render(headerStyle.Render("This week") + "\n\n" + b.String())
}

func (m Model) viewYear() string {
	s := m.year.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "Year:            %d\n", s.Year)
	fmt.Fprintf(&b, "Days completed:  %d of %d\n", s.CompletedDays, s.TotalDays)
	fmt.Fprintf(&b, "Days left:       %d\n", s.DaysLeft)
	fmt.Fprintf(&b, "Year elapsed:    %d%%\n", s.CompletionPercent)
	b.WriteString("\n")
	b.WriteString(m.renderYearGrid())

	return docStyle.Render(headerStyle.Render("This year") + "\n\n" + b.String())
}

// renderYearGrid draws one row per month, one colored cell per day.
func (m Model) renderYearGrid() string {
	rows := make(map[string][]string)
	var order []string
	for _, dot := range m.year.Days {
		month := dot.Day[5:7]
		if _, ok := rows[month]; !ok {
			order = append(order, month)
		}
		rows[month] = append(rows[month], yearDot(dot.Status))
	}

	var b strings.Builder
	for _, month := range order {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(month), strings.Join(rows[month], ""))
	}
	return b.String()
}

func yearDot(status progress.YearDayStatus) string {
	switch status {
	case progress.YearDaySuccess:
		return successStyle.Render("█")
	case progress.YearDayIncomplete:
		return missStyle.Render("▒")
	case progress.YearDayEmptyToday:
		return headerStyle.Render("░")
	case progress.YearDayEmptyPast:
		return mutedStyle.Render("░")
	default:
		return mutedStyle.Render("·")
	}
}
