package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m, m.updateEditing(msg)
	case StateConfirmDelete:
		m.updateConfirmDelete(msg)
		return m, nil
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		task := models.NormalizeTask(models.Task{AssignedTo: constants.AssignShared})
		return m, m.openForm(task)

	case tasklist.EditTaskMsg:
		return m, m.openForm(msg.Task)

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.RestoreTaskMsg:
		if err := m.store.RestoreTask(msg.ID); err != nil {
			m.errorMsg = err.Error()
		} else {
			m.status = "Task restored"
			m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if m.state == StateSchedule {
			switch {
			case key.Matches(msg, m.keys.Generate):
				m.errorMsg = ""
				if err := m.generate(); err != nil {
					logger.Warn("Generation failed", "error", err)
					m.errorMsg = err.Error()
				}
				return m, nil
			case key.Matches(msg, m.keys.PrevDay):
				m.scheduleModel.PrevDay()
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				m.scheduleModel.NextDay()
				return m, nil
			case key.Matches(msg, m.keys.PrevPeriod):
				m.shiftPeriod(-1)
				return m, nil
			case key.Matches(msg, m.keys.NextPeriod):
				m.shiftPeriod(1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateSchedule:
		m.scheduleModel, cmd = m.scheduleModel.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StatePersons:
		m.personTable, cmd = m.personTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) openForm(task models.Task) tea.Cmd {
	m.editingTask = &task
	m.taskForm = newTaskFormModel(task)
	m.form = NewTaskForm(m.taskForm, m.persons)
	m.state = StateEditing
	return m.form.Init()
}

func (m *Model) updateEditing(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTasks
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveForm()
		m.state = StateTasks
	case huh.StateAborted:
		m.state = StateTasks
	}
	return cmd
}

// saveForm adds or updates the task being edited.
func (m *Model) saveForm() {
	task, err := taskFromForm(*m.editingTask, *m.taskForm)
	if err != nil {
		m.errorMsg = err.Error()
		return
	}

	if m.editingTask.ID == "" {
		err = m.store.AddTask(task)
	} else {
		err = m.store.UpdateTask(task)
	}
	if err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.errorMsg = ""
	m.status = "Saved task " + task.Name
	m.reload()
}

func (m *Model) updateConfirmDelete(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.store.DeleteTask(m.taskToDeleteID); err != nil {
			m.errorMsg = err.Error()
		} else {
			m.status = "Task deleted"
			m.reload()
		}
		m.taskToDeleteID = ""
		m.state = StateTasks
	case "n", "N", "esc", "q":
		m.taskToDeleteID = ""
		m.state = StateTasks
	}
}
