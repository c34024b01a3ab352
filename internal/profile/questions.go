package profile

import (
	"fmt"

	"github.com/julianstephens/energyflow/internal/models"
)

// Option is one selectable answer with its weight on the 0-3 scale.
type Option struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// Question is a single quiz question.
type Question struct {
	ID       int             `json:"id"`
	Category models.Category `json:"category"`
	Text     string          `json:"question"`
	Options  []Option        `json:"options"`
}

var questions = []Question{
	// chronotype
	{
		ID:       1,
		Category: models.CategoryChronotype,
		Text:     "On a day without work or classes, you usually:",
		Options: []Option{
			{"Sleep before 23:00 and wake before 7:00", 3},
			{"Sleep 23:00-24:00 and wake 7:00-8:00", 2},
			{"Sleep 0:00-1:00 and wake 8:00-9:00", 1},
			{"Sleep after 1:00 and wake after 9:00", 0},
		},
	},
	{
		ID:       2,
		Category: models.CategoryChronotype,
		Text:     "You feel MOST alert around:",
		Options: []Option{
			{"5:00-8:00", 3},
			{"8:00-11:00", 2},
			{"11:00-14:00", 1},
			{"14:00-18:00", 0.5},
			{"After 18:00", 0},
		},
	},
	{
		ID:       3,
		Category: models.CategoryChronotype,
		Text:     "If you had to wake at 6:00 after only 4 hours of sleep, you would:",
		Options: []Option{
			{"Feel rough but still work well in the morning", 3},
			{"Need a cup or two of coffee to get going", 2},
			{"Get nothing done before 10:00", 1},
			{"Be a zombie all day", 0},
		},
	},
	// peak
	{
		ID:       4,
		Category: models.CategoryPeak,
		Text:     "In a normal week, you find it HARDEST to focus during:",
		Options: []Option{
			{"6:00-9:00", 0},
			{"11:00-13:00", 1},
			{"15:00-17:00", 2},
			{"19:00-21:00", 3},
			{"No particular time is harder", 1.5},
		},
	},
	{
		ID:       5,
		Category: models.CategoryPeak,
		Text:     "You get into creative work FASTEST:",
		Options: []Option{
			{"Before 9:00", 3},
			{"9:00-11:00", 2},
			{"11:00-14:00", 1},
			{"16:00-19:00", 0.5},
			{"After 21:00", 0},
		},
	},
	{
		ID:       6,
		Category: models.CategoryPeak,
		Text:     "For an important 30 minute meeting, you would PICK:",
		Options: []Option{
			{"7:00-8:00", 3},
			{"9:00-10:00", 2},
			{"13:00-14:00", 1},
			{"16:00-17:00", 0.5},
			{"20:00-21:00", 0},
		},
	},
	// recovery
	{
		ID:       7,
		Category: models.CategoryRecovery,
		Text:     "After lunch, you usually:",
		Options: []Option{
			{"Stay alert, no break needed", 3},
			{"Need a 10-15 min power nap or coffee to restart", 2},
			{"Need 30-45 min off or the afternoon is lost", 1},
			{"Stay sluggish until the evening", 0},
		},
	},
	{
		ID:       8,
		Category: models.CategoryRecovery,
		Text:     "On weekends, you usually:",
		Options: []Option{
			{"Wake at the usual time, no catch-up sleep needed", 3},
			{"Sleep an extra 30-60 min and feel fine", 2},
			{"Need an extra 1-2 hours to recharge", 1},
			{"Sleep 2+ extra hours and still feel tired", 0},
		},
	},
	{
		ID:       9,
		Category: models.CategoryRecovery,
		Text:     "After 90 minutes of intensely focused work, you:",
		Options: []Option{
			{"Need only a 5 min break to keep going strong", 3},
			{"Need a 15-20 min break", 2},
			{"Need 30-40 min or switch to light work", 1},
			{"Are out of energy for the rest of the day", 0},
		},
	},
	// external
	{
		ID:       10,
		Category: models.CategoryExternal,
		Text:     "Natural morning light is:",
		Options: []Option{
			{"Very important, I feel sleepy without it", 3},
			{"Nice but not decisive", 2},
			{"Irrelevant, I work fine in a closed room", 1},
		},
	},
	{
		ID:       11,
		Category: models.CategoryExternal,
		Text:     "Background noise:",
		Options: []Option{
			{"I need complete silence to focus", 0},
			{"Light noise or instrumental music is fine", 2},
			{"I can work in a busy cafe", 3},
		},
	},
	{
		ID:       12,
		Category: models.CategoryExternal,
		Text:     "Your caffeine intake:",
		Options: []Option{
			{"None or less than 1 cup a day", 0},
			{"1-2 cups, before 14:00", 1},
			{"2-3 cups, up to 16:00", 2},
			{"3+ cups, even after 18:00", 3},
		},
	},
}

// Questions returns a copy of the question bank in quiz order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// QuestionByID returns the question with the given id.
func QuestionByID(id int) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Answer builds the answer for choosing option optionIndex (zero based) of question questionID.
func Answer(questionID, optionIndex int) (models.QuizAnswer, error) {
	q, ok := QuestionByID(questionID)
	if !ok {
		return models.QuizAnswer{}, fmt.Errorf("unknown question %d", questionID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return models.QuizAnswer{}, fmt.Errorf("question %d: option %d out of range (0-%d)",
			questionID, optionIndex, len(q.Options)-1)
	}
	return models.QuizAnswer{
		QuestionID: q.ID,
		Category:   q.Category,
		Weight:     q.Options[optionIndex].Weight,
	}, nil
}

// AnswerAll maps option indexes, one per question in quiz order, to answers.
func AnswerAll(choices []int) ([]models.QuizAnswer, error) {
	if len(choices) != len(questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(questions), len(choices))
	}
	answers := make([]models.QuizAnswer, 0, len(choices))
	for i, c := range choices {
		a, err := Answer(questions[i].ID, c)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}
