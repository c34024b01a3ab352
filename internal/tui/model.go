// Package tui is the interactive terminal front end.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/tui/components/plan"
	"github.com/julianstephens/energyflow/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateNow SessionState = iota
	StatePlanner
	StateBoard
	StateAddPending
	StateAddBoardTask
	StateConfirmDelete
	StateConfirmSave
)

const tabCount = 3

// TaskFormModel backs the huh form for a task to be scheduled.
type TaskFormModel struct {
	Name     string
	Energy   string
	Priority string
	Duration string
}

type BoardFormModel struct {
	Text string
}

type tickMsg time.Time

type Model struct {
	svc            *planner.Service
	state          SessionState
	previousState  SessionState
	keys           KeyMap
	help           help.Model
	planModel      plan.Model
	columns        []tasklist.Model
	focus          int
	pending        []models.TaskInput
	plan           *planner.Plan
	form           *huh.Form
	taskForm       *TaskFormModel
	boardForm      *BoardFormModel
	boardFormZone  models.Zone
	taskToDeleteID string
	now            time.Time
	profile        *models.EnergyProfile
	curve          []energy.Point
	status         string
	err            error
	quitting       bool
	width          int
	height         int
}

func NewModel(svc *planner.Service) Model {
	m := Model{
		svc:       svc,
		state:     StateNow,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		planModel: plan.New(0, 0),
	}
	for _, z := range models.Zones {
		m.columns = append(m.columns, tasklist.New(z, nil, 0, 0))
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reloads the profile, curve and board from the store.
func (m *Model) refresh() {
	m.now = m.svc.Now()
	m.err = nil

	p, err := m.svc.Profile()
	switch {
	case err == nil:
		m.profile = &p
		if m.curve, err = m.svc.Curve(false); err != nil {
			m.err = err
		}
	case errors.Is(err, planner.ErrProfileMissing):
		m.profile = nil
		m.curve = nil
	default:
		m.err = err
	}

	m.reloadBoard()
}

func (m *Model) reloadBoard() {
	b, err := m.svc.Board()
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(b)
}

func (m *Model) setBoard(b models.Board) {
	for i, z := range models.Zones {
		m.columns[i].SetTasks(*b.Column(z))
	}
}

func (m *Model) resize() {
	contentHeight := max(m.height-6, 3)
	m.planModel.SetSize(max(m.width-4, 10), contentHeight)
	colWidth := max((m.width-4)/len(m.columns)-2, 10)
	for i := range m.columns {
		m.columns[i].SetSize(colWidth, contentHeight-2)
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StatePlanner:
		keys = append(keys, m.keys.Add, m.keys.Generate, m.keys.Save)
	case StateBoard:
		keys = append(keys, m.columns[m.focus].Keys().Toggle, m.columns[m.focus].Keys().Add, m.keys.ClearDone)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StatePlanner:
		actions = []key.Binding{m.keys.Add, m.keys.Generate, m.keys.Save, m.keys.Reset}
	case StateBoard:
		actions = append(m.columns[m.focus].Keys().Bindings(), m.keys.ClearDone)
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m *Model) newTaskForm() *huh.Form {
	m.taskForm = &TaskFormModel{Energy: string(models.LevelMedium), Priority: string(models.LevelMedium), Duration: "1"}
	levels := huh.NewOptions(string(models.LevelHigh), string(models.LevelMedium), string(models.LevelLow))
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Value(&m.taskForm.Name).
				Validate(notBlank),
			huh.NewSelect[string]().
				Title("Energy required").
				Options(levels...).
				Value(&m.taskForm.Energy),
			huh.NewSelect[string]().
				Title("Priority").
				Options(levels...).
				Value(&m.taskForm.Priority),
			huh.NewInput().
				Title("Duration (hours, quarter steps)").
				Value(&m.taskForm.Duration).
				Validate(validateDuration),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBoardForm(zone models.Zone) *huh.Form {
	m.boardForm = &BoardFormModel{}
	m.boardFormZone = zone
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("New %s task", zone)).
				Value(&m.boardForm.Text).
				Validate(notBlank),
		),
	).WithTheme(huh.ThemeDracula())
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || d <= 0 {
		return errors.New("enter a positive number of hours")
	}
	if q := d * 4; q != float64(int(q)) {
		return errors.New("use quarter-hour steps, e.g. 0.25 or 1.5")
	}
	return nil
}

// pendingTask converts the completed form into a task input.
func (f TaskFormModel) pendingTask() models.TaskInput {
	d, _ := strconv.ParseFloat(f.Duration, 64)
	return models.TaskInput{
		Name:              f.Name,
		EnergyConsumption: models.Level(f.Energy),
		Priority:          models.Level(f.Priority),
		Duration:          d,
	}
}
