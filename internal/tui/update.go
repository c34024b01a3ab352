package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		m.now = m.svc.Now()
		return m, tick()

	case tasklist.AddTaskMsg:
		m.previousState = m.state
		m.state = StateAddBoardTask
		m.form = m.newBoardForm(msg.Zone)
		return m, m.form.Init()

	case tasklist.ToggleTaskMsg:
		if _, err := m.svc.ToggleTask(msg.ID); err != nil {
			m.err = err
		}
		m.reloadBoard()
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.MoveTaskMsg:
		b, err := m.svc.MoveTask(msg.ID, msg.Zone, msg.Index)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.setBoard(b)
		for i, z := range models.Zones {
			if z == msg.Zone {
				m.focus = i
				m.columns[i].SelectID(msg.ID)
			}
		}
		return m, nil
	}

	switch m.state {
	case StateAddPending, StateAddBoardTask:
		return m.updateForm(msg)
	case StateConfirmDelete, StateConfirmSave:
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
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
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.status = "Refreshed"
			return m, nil
		}
	}

	switch m.state {
	case StatePlanner:
		return m.updatePlanner(msg)
	case StateBoard:
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updatePlanner(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			m.previousState = m.state
			m.state = StateAddPending
			m.form = m.newTaskForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Generate):
			m.generate()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			if m.plan == nil {
				m.status = "Generate a schedule first"
				return m, nil
			}
			m.previousState = m.state
			m.state = StateConfirmSave
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.pending = nil
			m.plan = nil
			m.planModel.Clear()
			m.status = "Cleared pending tasks"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.planModel, cmd = m.planModel.Update(msg)
	return m, cmd
}

func (m *Model) generate() {
	if len(m.pending) == 0 {
		m.status = "Add at least one task first"
		return
	}
	window, err := m.svc.DefaultWindow("")
	if err != nil {
		m.err = err
		return
	}
	p, err := m.svc.Plan(m.pending, window)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.plan = &p
	m.planModel.SetPlan(p.Window.Date, p.Tasks, p.Warnings)
	m.status = fmt.Sprintf("Scheduled %d of %d tasks", p.Scheduled(), len(p.Tasks))
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.focus = (m.focus - 1 + len(m.columns)) % len(m.columns)
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.focus = (m.focus + 1) % len(m.columns)
			return m, nil
		case key.Matches(msg, m.keys.ClearDone):
			n, err := m.svc.ClearCompleted()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.reloadBoard()
			m.status = fmt.Sprintf("Removed %d completed task(s)", n)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.columns[m.focus], cmd = m.columns[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddPending {
			t := m.taskForm.pendingTask()
			m.pending = append(m.pending, t)
			m.status = fmt.Sprintf("Added %q (%d pending)", t.Name, len(m.pending))
		} else {
			if _, err := m.svc.AddTask(m.boardFormZone, m.boardForm.Text); err != nil {
				m.err = err
			}
			m.reloadBoard()
		}
		m.state = m.previousState
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.state == StateConfirmDelete {
			if err := m.svc.DeleteTask(m.taskToDeleteID); err != nil {
				m.err = err
			}
			m.reloadBoard()
		} else if m.plan != nil {
			b, err := m.svc.SaveToBoard(m.plan.Tasks)
			if err != nil {
				m.err = err
			} else {
				m.setBoard(b)
				m.status = fmt.Sprintf("Saved %d task(s) to the board", b.Len())
			}
		}
		m.state = m.previousState
		m.taskToDeleteID = ""
	case "n", "N", "esc", "q":
		m.state = m.previousState
		m.taskToDeleteID = ""
	}
	return m, nil
}
