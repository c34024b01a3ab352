// Package planner composes the store with the quiz scorer, curve model,
// scheduler and board. The CLI, TUI and HTTP API all go through a Service.
package planner

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/julianstephens/energyflow/internal/board"
	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/profile"
	"github.com/julianstephens/energyflow/internal/scheduler"
	"github.com/julianstephens/energyflow/internal/storage"
	"github.com/julianstephens/energyflow/internal/validation"
)

// ErrProfileMissing is scheduler.ErrProfileMissing, re-exported for shells.
var ErrProfileMissing = scheduler.ErrProfileMissing

// Plan is the result of scheduling a batch of tasks.
type Plan struct {
	Window   models.Window          `json:"window"`
	Tasks    []models.ScheduledTask `json:"tasks"`
	Warnings []string               `json:"warnings,omitempty"`
}

// Scheduled returns the number of placed tasks.
func (p Plan) Scheduled() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Scheduled {
			n++
		}
	}
	return n
}

type Service struct {
	mu        sync.Mutex
	store     storage.Provider
	scorer    *profile.Scorer
	validator *validation.Validator
	now       func() time.Time
	seed      func() int64
}

type Option func(*Service)

// WithClock replaces time.Now for profile timestamps, default dates and zones.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.scorer.Now = now
	}
}

// WithSeed fixes the seed used for curve jitter.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = func() int64 { return seed }
	}
}

// New returns a Service over a loaded store.
func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store:     store,
		scorer:    profile.NewScorer(),
		validator: validation.New(),
		now:       time.Now,
		seed:      func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying provider.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Questions returns the quiz question bank.
func (s *Service) Questions() []profile.Question {
	return profile.Questions()
}

// SubmitQuiz scores a complete set of answers and stores the result as the current profile.
func (s *Service) SubmitQuiz(answers []models.QuizAnswer) (models.EnergyProfile, error) {
	if err := s.validator.ValidateAnswers(answers); err != nil {
		return models.EnergyProfile{}, err
	}
	for i, a := range answers {
		q, ok := profile.QuestionByID(a.QuestionID)
		if !ok {
			return models.EnergyProfile{}, fieldError(fmt.Sprintf("answers[%d].questionId", i), fmt.Sprintf("unknown question %d", a.QuestionID))
		}
		if q.Category != a.Category {
			return models.EnergyProfile{}, fieldError(fmt.Sprintf("answers[%d].category", i), fmt.Sprintf("question %d belongs to %s", a.QuestionID, q.Category))
		}
	}
	if want := len(profile.Questions()); len(answers) != want {
		return models.EnergyProfile{}, fieldError("answers", fmt.Sprintf("all %d questions must be answered, got %d", want, len(answers)))
	}

	p := s.scorer.Score(answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveProfile(p); err != nil {
		return models.EnergyProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	logger.Info("Energy profile saved", "chronotype", p.Chronotype.Type, "amplitude", p.Amplitude.Level, "recovery", p.Recovery.Speed)
	return p, nil
}

func fieldError(field, msg string) error {
	return &validation.Error{Fields: []validation.FieldError{{Field: field, Message: msg}}}
}

// Profile returns the stored profile or ErrProfileMissing.
func (s *Service) Profile() (models.EnergyProfile, error) {
	p, err := s.store.GetProfile()
	if err != nil {
		return models.EnergyProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return models.EnergyProfile{}, ErrProfileMissing
	}
	return *p, nil
}

// History returns up to limit past profiles, newest first.
func (s *Service) History(limit int) ([]models.EnergyProfile, error) {
	return s.store.GetProfileHistory(limit)
}

// ResetProfile deletes the current profile. History is kept.
func (s *Service) ResetProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.DeleteProfile()
}

// Curve returns the 24-hour visualization curve, with display jitter if requested.
func (s *Service) Curve(jitter bool) ([]energy.Point, error) {
	p, err := s.Profile()
	if err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if jitter {
		rng = rand.New(rand.NewSource(s.seed()))
	}
	return energy.Curve(p, rng), nil
}

// Location returns the time zone from settings, falling back to local time.
func (s *Service) Location() *time.Location {
	settings, err := s.store.GetSettings()
	if err != nil || settings.Timezone == "" || settings.Timezone == constants.DefaultTimezone {
		return time.Local
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local time", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// Now returns the current time in the configured zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.Location())
}

// Zone returns the energy zone for the current time.
func (s *Service) Zone() energy.Zone {
	return energy.CurrentZone(s.Now())
}

// DefaultWindow returns the settings window on date, or today when date is empty.
func (s *Service) DefaultWindow(date string) (models.Window, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Window{}, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	if date == "" {
		date = s.Now().Format(constants.DateFormat)
	}
	return models.Window{StartHour: settings.DayStartHour, EndHour: settings.DayEndHour, Date: date}, nil
}

// Plan schedules tasks in window using the stored profile and medium-match setting.
// Duplicate names and capacity problems come back as warnings alongside the plan.
func (s *Service) Plan(tasks []models.TaskInput, window models.Window) (Plan, error) {
	if window.Date == "" {
		window.Date = s.Now().Format(constants.DateFormat)
	}

	result := s.validator.ValidateTasks(tasks, window)
	if err := result.Err(); err != nil {
		return Plan{}, err
	}

	p, err := s.Profile()
	if err != nil {
		return Plan{}, err
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load settings: %w", err)
	}
	mode, err := scheduler.ParseMediumMatch(settings.MediumMatch)
	if err != nil {
		logger.Warn("Invalid medium_match setting, using literal", "value", settings.MediumMatch)
		mode = scheduler.MediumMatchLiteral
	}

	scheduled, err := scheduler.New(scheduler.WithMediumMatch(mode)).Schedule(&p, tasks, window)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Window: window, Tasks: scheduled}
	for _, c := range result.Warnings() {
		plan.Warnings = append(plan.Warnings, c.Description)
	}
	logger.Debug("Tasks scheduled", "tasks", len(tasks), "scheduled", plan.Scheduled(), "date", window.Date)
	return plan, nil
}

// SaveToBoard replaces the stored board with the scheduled tasks bucketed by zone.
func (s *Service) SaveToBoard(scheduled []models.ScheduledTask) (models.Board, error) {
	b := board.ToBoard(scheduled)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveBoard(b); err != nil {
		return models.Board{}, fmt.Errorf("failed to save board: %w", err)
	}
	return b, nil
}

// Board returns the stored board.
func (s *Service) Board() (models.Board, error) {
	return s.store.GetBoard()
}

// mutate loads the board, applies fn and saves the result if fn succeeds.
func (s *Service) mutate(fn func(b *models.Board) error) (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.store.GetBoard()
	if err != nil {
		return models.Board{}, fmt.Errorf("failed to load board: %w", err)
	}
	if err := fn(&b); err != nil {
		return models.Board{}, err
	}
	if err := s.store.SaveBoard(b); err != nil {
		return models.Board{}, fmt.Errorf("failed to save board: %w", err)
	}
	return b, nil
}

// AddTask adds a task to zone and returns it.
func (s *Service) AddTask(zone models.Zone, text string) (models.BoardTask, error) {
	var task models.BoardTask
	_, err := s.mutate(func(b *models.Board) error {
		var err error
		task, err = board.Add(b, zone, text)
		return err
	})
	return task, err
}

// ToggleTask flips a task's completion and returns it.
func (s *Service) ToggleTask(id string) (models.BoardTask, error) {
	var task models.BoardTask
	_, err := s.mutate(func(b *models.Board) error {
		var err error
		task, err = board.Toggle(b, id)
		return err
	})
	return task, err
}

func (s *Service) DeleteTask(id string) error {
	_, err := s.mutate(func(b *models.Board) error {
		return board.Delete(b, id)
	})
	return err
}

// MoveTask moves a task to index in zone. Within its zone the index is clamped;
// across zones an out-of-range index appends.
func (s *Service) MoveTask(id string, zone models.Zone, index int) (models.Board, error) {
	return s.mutate(func(b *models.Board) error {
		return board.Move(b, id, zone, index)
	})
}

// ClearCompleted removes completed tasks and reports how many were removed.
func (s *Service) ClearCompleted() (int, error) {
	var n int
	_, err := s.mutate(func(b *models.Board) error {
		n = board.ClearCompleted(b)
		return nil
	})
	return n, err
}

func (s *Service) Settings() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// UpdateSettings validates and stores settings.
func (s *Service) UpdateSettings(settings models.Settings) error {
	models.ApplyDefaultSettings(&settings)
	w := models.Window{StartHour: settings.DayStartHour, EndHour: settings.DayEndHour, Date: "2006-01-02"}
	if err := s.validator.ValidateWindow(w); err != nil {
		return err
	}
	if _, err := scheduler.ParseMediumMatch(settings.MediumMatch); err != nil {
		return fieldError("medium_match", err.Error())
	}
	if settings.Timezone != constants.DefaultTimezone {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return fieldError("timezone", fmt.Sprintf("unknown timezone %q", settings.Timezone))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveSettings(settings)
}
