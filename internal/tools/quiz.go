package tools

import (
	"math/rand"
	"strings"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

// Quiz personalities.
const (
	PersonalityPlanner  = "planner"
	PersonalitySaver    = "saver"
	PersonalityBalanced = "balanced"
	PersonalitySpender  = "spender"
)

var answerOptions = []string{"always", "often", "sometimes", "never"}

var answerPoints = map[string]int{
	"always":    3,
	"often":     2,
	"sometimes": 1,
	"never":     0,
}

// questionPool is the fixed pool of 15 habit questions; each attempt draws
// QuizLength of them. Labels live in the i18n tables as quiz_q_<key>.
var questionPool = []string{
	"track_spending",
	"save_first",
	"avoid_debt",
	"budget_monthly",
	"resist_impulse",
	"compare_prices",
	"emergency_fund",
	"plan_purchases",
	"review_subscriptions",
	"invest_regularly",
	"pay_bills_on_time",
	"set_goals",
	"cook_at_home",
	"save_windfall",
	"check_balance",
}

// QuizLength is the number of questions drawn per attempt.
const QuizLength = 10

// drawKey is stashed in the step-1 partial so a re-render of step 2 shows
// the same questions within one attempt.
const drawKey = "_questions"

func QuizTool() wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolQuiz,
		TitleKey: "quiz_title",
		Steps: []wizard.Step{
			{
				TitleKey: "quiz_step1_title",
				Fields: []forms.Field{
					{Name: "first_name", LabelKey: "quiz_first_name", Kind: forms.KindString},
					{Name: "email", LabelKey: "quiz_email", Kind: forms.KindEmail, Optional: true},
				},
			},
			{
				TitleKey:  "quiz_step2_title",
				Prepare:   prepareDraw,
				FieldsFor: quizFields,
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeQuiz(steps), nil
		},
	}
}

// prepareDraw samples the attempt's questions once, on the first render of
// step 2, and pins them in the step-1 partial.
func prepareDraw(s *session.Session) {
	partial, ok := s.Partial(store.ToolQuiz, 1)
	if !ok || partial[drawKey] != "" {
		return
	}
	partial[drawKey] = strings.Join(DrawQuestions(), ",")
}

// DrawQuestions samples QuizLength keys uniformly without replacement.
func DrawQuestions() []string {
	keys := make([]string, len(questionPool))
	copy(keys, questionPool)
	rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys[:QuizLength]
}

// quizFields turns the pinned draw into enum fields, one per question.
func quizFields(s *session.Session) []forms.Field {
	partial, _ := s.Partial(store.ToolQuiz, 1)
	keys := drawnQuestions(partial)
	fields := make([]forms.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, forms.Field{
			Name:     key,
			LabelKey: "quiz_q_" + key,
			Kind:     forms.KindEnum,
			Options:  answerOptions,
		})
	}
	return fields
}

func drawnQuestions(partial forms.Values) []string {
	raw := ""
	if partial != nil {
		raw = partial[drawKey]
	}
	if raw == "" {
		// No pinned draw (step 2 posted without a prior render); fall back
		// to the full pool order so validation still lines up.
		return questionPool[:QuizLength]
	}
	return strings.Split(raw, ",")
}

// FinalizeQuiz scores the answers and assigns a money personality.
func FinalizeQuiz(steps []forms.Values) map[string]any {
	keys := drawnQuestions(steps[0])
	answers := make(map[string]any, len(keys))
	score := 0
	for _, key := range keys {
		answer := steps[1][key]
		answers[key] = answer
		score += answerPoints[answer]
	}

	personality := PersonalitySpender
	switch {
	case score >= 24:
		personality = PersonalityPlanner
	case score >= 18:
		personality = PersonalitySaver
	case score >= 12:
		personality = PersonalityBalanced
	}

	avoidDebt := steps[1]["avoid_debt"]
	trackSpending := steps[1]["track_spending"]
	badges := badgeList{}.
		award(score >= 24, "Master Planner").
		award(score >= 18, "Smart Saver").
		award(avoidDebt == "always" || avoidDebt == "often", "Debt Dodger").
		award(trackSpending == "always" || trackSpending == "often", "Budget Watcher").
		award(steps[1]["save_first"] == "always", "Pay Yourself First")

	return map[string]any{
		"first_name":  steps[0]["first_name"],
		"answers":     answers,
		"score":       score,
		"personality": personality,
		"badges":      []string(badges),
	}
}
