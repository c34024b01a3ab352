package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/energyflow/internal/models"
)

func validTask(name string, hours float64) models.TaskInput {
	return models.TaskInput{
		Name:              name,
		EnergyConsumption: models.LevelMedium,
		Duration:          hours,
		Priority:          models.LevelHigh,
	}
}

var day = models.Window{StartHour: 6, EndHour: 22, Date: "2025-12-31"}

func hasConflict(result ValidationResult, typ ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateTasks_Valid(t *testing.T) {
	result := New().ValidateTasks([]models.TaskInput{validTask("A", 1), validTask("B", 0.25)}, day)

	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
	if err := result.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestValidateTasks_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		task  models.TaskInput
		field string
	}{
		{"empty name", models.TaskInput{Name: "", EnergyConsumption: "low", Duration: 1, Priority: "low"}, "tasks[0].name"},
		{"blank name", models.TaskInput{Name: "   ", EnergyConsumption: "low", Duration: 1, Priority: "low"}, "tasks[0].name"},
		{"bad energy", models.TaskInput{Name: "x", EnergyConsumption: "extreme", Duration: 1, Priority: "low"}, "tasks[0].energyConsumption"},
		{"bad priority", models.TaskInput{Name: "x", EnergyConsumption: "low", Duration: 1, Priority: ""}, "tasks[0].priority"},
		{"zero duration", models.TaskInput{Name: "x", EnergyConsumption: "low", Duration: 0, Priority: "low"}, "tasks[0].duration"},
		{"odd duration", models.TaskInput{Name: "x", EnergyConsumption: "low", Duration: 1.1, Priority: "low"}, "tasks[0].duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateTasks([]models.TaskInput{tt.task}, day)
			err := result.Err()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !IsValidationError(err) {
				t.Fatalf("expected *Error, got %T", err)
			}

			var ve *Error
			errors.As(err, &ve)
			found := false
			for _, f := range ve.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %+v", tt.field, ve.Fields)
			}
		})
	}
}

func TestValidateTasks_Warnings(t *testing.T) {
	tasks := []models.TaskInput{
		validTask("Report", 10),
		validTask("Report", 4),
		validTask("Marathon", 20),
	}

	result := New().ValidateTasks(tasks, day)

	for _, typ := range []ConflictType{ConflictDuplicateTaskName, ConflictExceedsWindow, ConflictOvercommitted} {
		if !hasConflict(result, typ) {
			t.Errorf("expected %s conflict, got: %s", typ, result.FormatReport())
		}
	}
	if err := result.Err(); err != nil {
		t.Errorf("warnings must not be blocking, got %v", err)
	}
	if len(result.Warnings()) != len(result.Conflicts) {
		t.Error("all conflicts should be warnings")
	}
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  models.Window
		wantErr bool
	}{
		{"default day", day, false},
		{"full day", models.Window{StartHour: 0, EndHour: 24, Date: "2025-01-01"}, false},
		{"end before start", models.Window{StartHour: 10, EndHour: 8, Date: "2025-01-01"}, true},
		{"empty window", models.Window{StartHour: 8, EndHour: 8, Date: "2025-01-01"}, true},
		{"end past midnight", models.Window{StartHour: 8, EndHour: 25, Date: "2025-01-01"}, true},
		{"bad date", models.Window{StartHour: 8, EndHour: 12, Date: "31/12/2025"}, true},
		{"missing date", models.Window{StartHour: 8, EndHour: 12}, true},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWindow(tt.window)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswers(t *testing.T) {
	v := New()

	ok := []models.QuizAnswer{
		{QuestionID: 1, Category: models.CategoryChronotype, Weight: 3},
		{QuestionID: 4, Category: models.CategoryPeak, Weight: 1.5},
	}
	if err := v.ValidateAnswers(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := []models.QuizAnswer{
		{QuestionID: 1, Category: "mood", Weight: 4},
		{QuestionID: 1, Category: models.CategoryChronotype, Weight: 1},
	}
	err := v.ValidateAnswers(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"answers[0].category", "answers[0].weight", "more than once"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}
