package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/energyflow/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidField      ConflictType = "invalid_field"
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictExceedsWindow     ConflictType = "exceeds_window"
	ConflictOvercommitted     ConflictType = "overcommitted"
	ConflictDuplicateQuestion ConflictType = "duplicate_question"
)

// Conflict represents a detected problem in a planning request
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string   // dotted field path for invalid_field conflicts
	Items       []string // task names involved
}

// Blocking reports whether the conflict makes the input unusable.
// Other conflicts are warnings; the scheduler reports them as unscheduled tasks.
func (c Conflict) Blocking() bool {
	return c.Type == ConflictInvalidField || c.Type == ConflictDuplicateQuestion
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Warnings returns the non-blocking conflicts.
func (vr *ValidationResult) Warnings() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if !c.Blocking() {
			out = append(out, c)
		}
	}
	return out
}

// Err returns an *Error listing the blocking conflicts, or nil if there are none.
func (vr *ValidationResult) Err() error {
	var fields []FieldError
	for _, c := range vr.Conflicts {
		if c.Blocking() {
			fields = append(fields, FieldError{Field: c.Field, Message: c.Description})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var sb strings.Builder
	sb.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&sb, "- %s\n", conflict.Description)
	}
	return sb.String()
}

// FieldError is a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned for input that fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsValidationError reports whether err wraps an *Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Validator validates planning input
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("quarterhour", quarterHour)
	return &Validator{validate: v}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func quarterHour(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
		return false
	}
	q := f.Float() * 4
	return math.Abs(q-math.Round(q)) < 1e-9
}

// Struct validates a single value and returns an *Error on failure.
func (v *Validator) Struct(s any) error {
	conflicts := v.fieldConflicts(s, "")
	result := ValidationResult{Conflicts: conflicts}
	return result.Err()
}

func (v *Validator) fieldConflicts(s any, prefix string) []Conflict {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Conflict{{Type: ConflictInvalidField, Field: prefix, Description: err.Error()}}
	}

	conflicts := make([]Conflict, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(prefix, fe)
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidField,
			Field:       field,
			Description: describe(field, fe),
		})
	}
	return conflicts
}

// fieldPath strips the struct name from the namespace and applies prefix.
func fieldPath(prefix string, fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if prefix == "" {
		return ns
	}
	return prefix + "." + ns
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s cannot be blank", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "quarterhour":
		return fmt.Sprintf("%s must be a multiple of 0.25 hours", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ValidateWindow checks a scheduling window.
func (v *Validator) ValidateWindow(w models.Window) error {
	return v.Struct(w)
}

// ValidateAnswers checks quiz answers. Each question may be answered at most once.
func (v *Validator) ValidateAnswers(answers []models.QuizAnswer) error {
	result := ValidationResult{}
	seen := make(map[int]bool, len(answers))
	for i, a := range answers {
		prefix := fmt.Sprintf("answers[%d]", i)
		result.Conflicts = append(result.Conflicts, v.fieldConflicts(a, prefix)...)
		if seen[a.QuestionID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateQuestion,
				Field:       prefix + ".questionId",
				Description: fmt.Sprintf("question %d answered more than once", a.QuestionID),
			})
		}
		seen[a.QuestionID] = true
	}
	return result.Err()
}

// ValidateTasks checks tasks against each other and against the window.
// Field problems are blocking; duplicate names and capacity problems are warnings.
func (v *Validator) ValidateTasks(tasks []models.TaskInput, window models.Window) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	result.Conflicts = append(result.Conflicts, v.fieldConflicts(window, "window")...)

	nameCount := make(map[string]int)
	var order []string
	windowHours := float64(window.EndHour - window.StartHour)
	var total float64

	for i, task := range tasks {
		result.Conflicts = append(result.Conflicts, v.fieldConflicts(task, fmt.Sprintf("tasks[%d]", i))...)

		name := strings.TrimSpace(task.Name)
		if name != "" {
			if nameCount[name] == 0 {
				order = append(order, name)
			}
			nameCount[name]++
		}

		if windowHours > 0 && task.Duration > windowHours {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictExceedsWindow,
				Description: fmt.Sprintf("Task \"%s\" (%.2gh) is longer than the %02d:00-%02d:00 window", task.Name, task.Duration, window.StartHour, window.EndHour),
				Items:       []string{task.Name},
			})
		}
		if task.Duration > 0 {
			total += task.Duration
		}
	}

	for _, name := range order {
		if nameCount[name] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("Duplicate task name: \"%s\" (%d times)", name, nameCount[name]),
				Items:       []string{name},
			})
		}
	}

	if windowHours > 0 && total > windowHours {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOvercommitted,
			Description: fmt.Sprintf("Tasks total %.2gh but the window is only %.0fh", total, windowHours),
			Items:       order,
		})
	}

	return result
}
