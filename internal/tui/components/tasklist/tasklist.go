// Package tasklist renders one board column as a selectable list.
package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/energyflow/internal/models"
)

type AddTaskMsg struct {
	Zone models.Zone
}

type ToggleTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID string
}

// MoveTaskMsg asks for the task to be placed at Index in Zone. Index -1 appends.
type MoveTaskMsg struct {
	ID    string
	Zone  models.Zone
	Index int
}

type Item struct {
	Task models.BoardTask
}

func (i Item) Title() string {
	if i.Task.Completed {
		return "[x] " + i.Task.Text
	}
	return "[ ] " + i.Task.Text
}

func (i Item) Description() string {
	if o := i.Task.OriginalTask; o != nil && o.Scheduled {
		return fmt.Sprintf("%s-%s | energy %d", o.StartTime, o.EndTime, i.Task.EnergyLevel)
	}
	return ""
}

func (i Item) FilterValue() string { return i.Task.Text }

type KeyMap struct {
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	ToPrev   key.Binding
	ToNext   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		ToPrev: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "to previous zone"),
		),
		ToNext: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "to next zone"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.MoveUp, k.MoveDown, k.ToPrev, k.ToNext}
}

type Model struct {
	list list.Model
	keys KeyMap
	zone models.Zone
}

func New(zone models.Zone, tasks []models.BoardTask, width, height int) Model {
	l := list.New(toItems(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = string(zone)
	l.SetShowHelp(false) // help is rendered by the parent model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return Model{list: l, keys: DefaultKeyMap(), zone: zone}
}

func toItems(tasks []models.BoardTask) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	return items
}

func (m Model) Zone() models.Zone { return m.zone }

func (m Model) Keys() KeyMap { return m.keys }

// SetTasks replaces the items and keeps the cursor in range.
func (m *Model) SetTasks(tasks []models.BoardTask) {
	idx := m.list.Index()
	m.list.SetItems(toItems(tasks))
	if n := len(tasks); n > 0 {
		m.list.Select(min(idx, n-1))
	}
}

// SelectID moves the cursor to the task with id, if present.
func (m *Model) SelectID(id string) {
	for i, it := range m.list.Items() {
		if it.(Item).Task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) Selected() (models.BoardTask, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it.Task, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey turns board keys into messages for the parent. It returns nil for keys the list handles.
func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Add) {
		zone := m.zone
		return func() tea.Msg { return AddTaskMsg{Zone: zone} }
	}
	task, ok := m.Selected()
	if !ok {
		return nil
	}
	idx := m.list.Index()
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return func() tea.Msg { return ToggleTaskMsg{ID: task.ID} }
	case key.Matches(msg, m.keys.Delete):
		return func() tea.Msg { return DeleteTaskMsg{ID: task.ID} }
	case key.Matches(msg, m.keys.MoveUp):
		if idx > 0 {
			return m.move(task.ID, m.zone, idx-1)
		}
	case key.Matches(msg, m.keys.MoveDown):
		if idx < len(m.list.Items())-1 {
			return m.move(task.ID, m.zone, idx+1)
		}
	case key.Matches(msg, m.keys.ToPrev):
		if z, ok := neighbour(m.zone, -1); ok {
			return m.move(task.ID, z, -1)
		}
	case key.Matches(msg, m.keys.ToNext):
		if z, ok := neighbour(m.zone, 1); ok {
			return m.move(task.ID, z, -1)
		}
	}
	return nil
}

func (m Model) move(id string, zone models.Zone, index int) tea.Cmd {
	return func() tea.Msg { return MoveTaskMsg{ID: id, Zone: zone, Index: index} }
}

func neighbour(z models.Zone, step int) (models.Zone, bool) {
	for i, zz := range models.Zones {
		if zz == z {
			j := i + step
			if j < 0 || j >= len(models.Zones) {
				return "", false
			}
			return models.Zones[j], true
		}
	}
	return "", false
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return fmt.Sprintf("\n  %s\n\n  No tasks.", m.zone)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
