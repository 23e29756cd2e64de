package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hearth/internal/export"
	"github.com/julianstephens/hearth/internal/models"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	columnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Record   *export.Record
	days     []models.DaySchedule
	day      int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Record == nil {
		return "No saved schedule for this period. Press 'g' to generate one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), "", m.viewport.View())
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.Render()
}

// SetRecord shows rec, keeping the selected day when it still exists. A nil
// record clears the view.
func (m *Model) SetRecord(rec *export.Record) {
	m.Record = rec
	m.days = nil
	if rec != nil {
		for _, w := range rec.Schedule.Weeks {
			m.days = append(m.days, w.Days...)
		}
	}
	if m.day >= len(m.days) {
		m.day = 0
	}
	m.Render()
}

// SelectDate moves to date if the schedule contains it.
func (m *Model) SelectDate(date string) {
	for i, d := range m.days {
		if d.Date == date {
			m.day = i
			m.Render()
			return
		}
	}
}

func (m *Model) NextDay() {
	if m.day+1 < len(m.days) {
		m.day++
		m.Render()
	}
}

func (m *Model) PrevDay() {
	if m.day > 0 {
		m.day--
		m.Render()
	}
}

// Day returns the selected day.
func (m Model) Day() (models.DaySchedule, bool) {
	if m.day < 0 || m.day >= len(m.days) {
		return models.DaySchedule{}, false
	}
	return m.days[m.day], true
}

func (m Model) header() string {
	day, ok := m.Day()
	if !ok {
		return dayStyle.Render("Empty schedule")
	}
	weekday := day.Weekday
	if weekday != "" {
		weekday = strings.ToUpper(weekday[:1]) + weekday[1:]
	}
	return dayStyle.Render(fmt.Sprintf("%s %s", weekday, day.Date)) +
		emptyStyle.Render(fmt.Sprintf("  day %d/%d, placed %d/%d tasks",
			m.day+1, len(m.days), m.Record.Stats.Placed, m.Record.Stats.TotalTasks))
}

// Render writes the selected day into the viewport, one line per entry,
// ordered by start time and then by column.
func (m *Model) Render() {
	day, ok := m.Day()
	if m.Record == nil || !ok {
		m.viewport.SetContent("")
		return
	}
	if len(day.Entries) == 0 {
		m.viewport.SetContent(emptyStyle.Render("Nothing scheduled."))
		return
	}

	order := make(map[string]int, len(m.Record.Persons)+1)
	for i, p := range m.Record.Persons {
		order[p.ID] = i
	}

	entries := append([]models.Entry(nil), day.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Start != entries[j].Start {
			return entries[i].Start < entries[j].Start
		}
		return columnRank(order, entries[i].Column) < columnRank(order, entries[j].Column)
	})

	var b strings.Builder
	for _, e := range entries {
		name := e.TaskName
		if e.Color != "" {
			name = taskStyle.Foreground(lipgloss.Color(e.Color)).Render(name)
		} else {
			name = taskStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			timeStyle.Render(e.Start+" - "+e.End),
			columnStyle.Render(m.Record.PersonName(e.Column)),
			name,
		)
	}
	m.viewport.SetContent(b.String())
}

func columnRank(order map[string]int, column string) int {
	if i, ok := order[column]; ok {
		return i
	}
	return len(order)
}
