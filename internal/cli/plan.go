package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
)

type PlanCmd struct {
	Task  []string `short:"t" help:"Task as name:energy:duration:priority, e.g. 'Write report:high:1.5:high'. Repeatable."`
	File  string   `short:"f" help:"YAML file with tasks (and optionally a window)." type:"existingfile"`
	Start *int     `help:"Window start hour (default from settings)."`
	End   *int     `help:"Window end hour, exclusive (default from settings)."`
	Date  string   `help:"Date to plan (YYYY-MM-DD, default today)."`
	Save  bool     `help:"Replace the task board with the scheduled tasks."`
	JSON  bool     `help:"Print the plan as JSON."`
	Yes   bool     `short:"y" help:"Skip confirmation prompts."`
}

// taskFile is the YAML layout accepted by --file.
type taskFile struct {
	Window *struct {
		Start *int   `yaml:"start"`
		End   *int   `yaml:"end"`
		Date  string `yaml:"date"`
	} `yaml:"window"`
	Tasks []struct {
		Name     string  `yaml:"name"`
		Energy   string  `yaml:"energy"`
		Duration float64 `yaml:"duration"`
		Priority string  `yaml:"priority"`
	} `yaml:"tasks"`
}

func (c *PlanCmd) Run(ctx *Context) error {
	svc := ctx.Service()

	tasks := make([]models.TaskInput, 0, len(c.Task))
	for _, spec := range c.Task {
		t, err := parseTaskSpec(spec)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
	}

	window, err := svc.DefaultWindow(c.Date)
	if err != nil {
		return err
	}

	if c.File != "" {
		fileTasks, err := loadTaskFile(c.File, &window)
		if err != nil {
			return err
		}
		tasks = append(tasks, fileTasks...)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks given; use --task or --file")
	}

	if c.Start != nil {
		window.StartHour = *c.Start
	}
	if c.End != nil {
		window.EndHour = *c.End
	}

	plan, err := svc.Plan(tasks, window)
	if err != nil {
		return err
	}

	if c.JSON {
		if err := printJSON(plan); err != nil {
			return err
		}
	} else {
		printPlan(plan)
	}

	if !c.Save {
		return nil
	}
	b, err := svc.Board()
	if err != nil {
		return err
	}
	if b.Len() > 0 {
		ok, err := confirm(fmt.Sprintf("Replace the %d tasks on your board?", b.Len()), c.Yes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Board left unchanged.")
			return nil
		}
	}
	saved, err := svc.SaveToBoard(plan.Tasks)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d tasks to the board.\n", saved.Len())
	return nil
}

// parseTaskSpec parses name:energy:duration:priority. The name may itself contain colons.
func parseTaskSpec(spec string) (models.TaskInput, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 4 {
		return models.TaskInput{}, fmt.Errorf("invalid task %q: want name:energy:duration:priority", spec)
	}
	n := len(parts)
	duration, err := strconv.ParseFloat(strings.TrimSpace(parts[n-2]), 64)
	if err != nil {
		return models.TaskInput{}, fmt.Errorf("invalid duration in task %q: %w", spec, err)
	}
	return models.TaskInput{
		Name:              strings.TrimSpace(strings.Join(parts[:n-3], ":")),
		EnergyConsumption: models.Level(strings.ToLower(strings.TrimSpace(parts[n-3]))),
		Duration:          duration,
		Priority:          models.Level(strings.ToLower(strings.TrimSpace(parts[n-1]))),
	}, nil
}

// loadTaskFile reads tasks from a YAML file and applies its window to window.
func loadTaskFile(path string, window *models.Window) ([]models.TaskInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	var f taskFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}

	if f.Window != nil {
		if f.Window.Start != nil {
			window.StartHour = *f.Window.Start
		}
		if f.Window.End != nil {
			window.EndHour = *f.Window.End
		}
		if f.Window.Date != "" {
			window.Date = f.Window.Date
		}
	}

	tasks := make([]models.TaskInput, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		tasks = append(tasks, models.TaskInput{
			Name:              t.Name,
			EnergyConsumption: models.Level(strings.ToLower(t.Energy)),
			Duration:          t.Duration,
			Priority:          models.Level(strings.ToLower(t.Priority)),
		})
	}
	return tasks, nil
}

func printPlan(plan planner.Plan) {
	fmt.Printf("Plan for %s (%02d:00-%02d:00):\n\n", plan.Window.Date, plan.Window.StartHour, plan.Window.EndHour)
	for _, t := range plan.Tasks {
		if !t.Scheduled {
			fmt.Printf("  --:-- -----  %-28s %s\n", t.Name, dimStyle.Render(t.Reason))
			continue
		}
		fmt.Printf("  %s-%s  %-28s energy %3d  [%s/%s]\n", t.StartTime, t.EndTime, t.Name, t.EnergyLevel, t.EnergyConsumption, t.Priority)
	}
	fmt.Printf("\n%d of %d tasks scheduled.\n", plan.Scheduled(), len(plan.Tasks))
	for _, w := range plan.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}
