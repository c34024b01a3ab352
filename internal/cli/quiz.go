package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/profile"
)

type QuizCmd struct {
	Answers string `help:"Comma-separated option numbers (1-4), one per question, for non-interactive use." placeholder:"1,2,..."`
}

func (c *QuizCmd) Run(ctx *Context) error {
	var choices []int
	var err error
	if c.Answers != "" {
		choices, err = parseChoices(c.Answers)
	} else {
		choices, err = askQuiz(ctx.Service().Questions())
	}
	if err != nil {
		return err
	}

	answers, err := profile.AnswerAll(choices)
	if err != nil {
		return err
	}
	p, err := ctx.Service().SubmitQuiz(answers)
	if err != nil {
		return err
	}

	fmt.Println("Your energy profile:")
	printProfile(p)
	return nil
}

// parseChoices converts 1-based option numbers to zero-based indexes.
func parseChoices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	choices := make([]int, 0, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, part)
		}
		if n < 1 {
			return nil, fmt.Errorf("answer %d: option numbers start at 1", i+1)
		}
		choices = append(choices, n-1)
	}
	return choices, nil
}

func askQuiz(questions []profile.Question) ([]int, error) {
	choices := make([]int, len(questions))
	groups := make([]*huh.Group, 0, len(questions))
	for i, q := range questions {
		opts := make([]huh.Option[int], len(q.Options))
		for j, o := range q.Options {
			opts[j] = huh.NewOption(o.Text, j)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d/%d  %s", i+1, len(questions), q.Text)).
				Description(categoryTitle(q.Category)).
				Options(opts...).
				Value(&choices[i]),
		))
	}

	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return nil, err
	}
	return choices, nil
}

func categoryTitle(c models.Category) string {
	switch c {
	case models.CategoryChronotype:
		return "Chronotype"
	case models.CategoryPeak:
		return "Energy peaks"
	case models.CategoryRecovery:
		return "Recovery"
	case models.CategoryExternal:
		return "Outside factors"
	default:
		return string(c)
	}
}
