package tools

import (
	"slices"
	"strings"
	"testing"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
)

func quizAnswers(keys []string, answer string) forms.Values {
	v := forms.Values{}
	for _, k := range keys {
		v[k] = answer
	}
	return v
}

func TestDrawQuestions(t *testing.T) {
	drawn := DrawQuestions()
	if len(drawn) != QuizLength {
		t.Fatalf("drew %d questions, want %d", len(drawn), QuizLength)
	}
	seen := map[string]bool{}
	for _, k := range drawn {
		if seen[k] {
			t.Fatalf("question %s drawn twice", k)
		}
		seen[k] = true
		if !slices.Contains(questionPool, k) {
			t.Fatalf("question %s not in the pool", k)
		}
	}
}

func TestPrepareDrawPinsOnce(t *testing.T) {
	sess := &session.Session{SID: "s"}
	sess.SetPartial(store.ToolQuiz, 1, map[string]string{"first_name": "A"})

	prepareDraw(sess)
	partial, _ := sess.Partial(store.ToolQuiz, 1)
	first := partial[drawKey]
	if first == "" {
		t.Fatal("prepare did not pin a draw")
	}
	if got := len(strings.Split(first, ",")); got != QuizLength {
		t.Fatalf("pinned draw has %d questions", got)
	}

	// A re-render must not reshuffle the attempt's questions.
	prepareDraw(sess)
	partial, _ = sess.Partial(store.ToolQuiz, 1)
	if partial[drawKey] != first {
		t.Error("second prepare replaced the pinned draw")
	}
}

func TestQuizFieldsFollowPinnedDraw(t *testing.T) {
	sess := &session.Session{SID: "s"}
	sess.SetPartial(store.ToolQuiz, 1, map[string]string{
		drawKey: "save_first,avoid_debt,track_spending",
	})
	fields := quizFields(sess)
	if len(fields) != 3 {
		t.Fatalf("got %d fields", len(fields))
	}
	if fields[0].Name != "save_first" || fields[0].LabelKey != "quiz_q_save_first" {
		t.Errorf("field[0] = %+v", fields[0])
	}
	if !fields[1].IsEnum() || len(fields[1].Options) != len(answerOptions) {
		t.Errorf("field[1] = %+v", fields[1])
	}
}

func TestFinalizeQuizScoring(t *testing.T) {
	keys := questionPool[:QuizLength]
	step1 := forms.Values{"first_name": "A", drawKey: strings.Join(keys, ",")}

	cases := []struct {
		answer          string
		wantScore       int
		wantPersonality string
	}{
		{"always", 30, PersonalityPlanner},
		{"often", 20, PersonalitySaver},
		{"sometimes", 10, PersonalitySpender},
		{"never", 0, PersonalitySpender},
	}
	for _, tc := range cases {
		t.Run(tc.answer, func(t *testing.T) {
			data := FinalizeQuiz([]forms.Values{step1, quizAnswers(keys, tc.answer)})
			if got := data["score"]; got != tc.wantScore {
				t.Errorf("score = %v, want %d", got, tc.wantScore)
			}
			if got := data["personality"]; got != tc.wantPersonality {
				t.Errorf("personality = %v, want %s", got, tc.wantPersonality)
			}
			answers := data["answers"].(map[string]any)
			if len(answers) != QuizLength {
				t.Errorf("recorded %d answers", len(answers))
			}
		})
	}
}

func TestFinalizeQuizBalancedBand(t *testing.T) {
	keys := questionPool[:QuizLength]
	step1 := forms.Values{drawKey: strings.Join(keys, ",")}
	// 12 points: four "always" answers and six "never".
	answers := quizAnswers(keys, "never")
	for _, k := range keys[:4] {
		answers[k] = "always"
	}
	data := FinalizeQuiz([]forms.Values{step1, answers})
	if got := data["score"]; got != 12 {
		t.Fatalf("score = %v, want 12", got)
	}
	if got := data["personality"]; got != PersonalityBalanced {
		t.Errorf("personality = %v, want balanced", got)
	}
}

func TestFinalizeQuizBadges(t *testing.T) {
	keys := []string{"avoid_debt", "track_spending", "save_first"}
	step1 := forms.Values{drawKey: strings.Join(keys, ",")}
	answers := forms.Values{"avoid_debt": "often", "track_spending": "always", "save_first": "always"}

	data := FinalizeQuiz([]forms.Values{step1, answers})
	badges := data["badges"].([]string)
	for _, want := range []string{"Debt Dodger", "Budget Watcher", "Pay Yourself First"} {
		if !slices.Contains(badges, want) {
			t.Errorf("badges %v missing %q", badges, want)
		}
	}
	if slices.Contains(badges, "Master Planner") {
		t.Errorf("badges %v include Master Planner at score %v", badges, data["score"])
	}
}

func TestFinalizeQuizFallbackDraw(t *testing.T) {
	// Step 2 posted without a pinned draw scores against the pool head.
	step1 := forms.Values{"first_name": "A"}
	data := FinalizeQuiz([]forms.Values{step1, quizAnswers(questionPool[:QuizLength], "always")})
	if got := data["score"]; got != 30 {
		t.Errorf("score = %v, want 30", got)
	}
}
