package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"trivia-challenge/internal/app"
	"trivia-challenge/internal/domain"
)

func multiple(text, correct string, distractors ...string) domain.Question {
	return domain.Question{Text: text, Type: domain.Multiple, CorrectAnswer: correct, Distractors: distractors}
}

func boolean(text, correct string) domain.Question {
	return domain.Question{Text: text, Type: domain.Boolean, CorrectAnswer: correct}
}

func newEngine(console app.Console, seed int64) *app.QuizEngine {
	return app.NewQuizEngine(console, app.NewOptionShufflerWithSource(rand.NewSource(seed)), app.DefaultHintKeep, nil)
}

func TestRunAllCorrect(t *testing.T) {
	questions := []domain.Question{
		multiple("Capital of France?", "Paris", "Lyon", "Nice", "Lille"),
		multiple("Answer to everything?", "42", "7", "13", "99"),
		boolean("The sky is blue.", domain.True),
	}

	// Predict the shuffles with an identically seeded shuffler.
	predict := app.NewOptionShufflerWithSource(rand.NewSource(11))
	first := predict.Build("Paris", []string{"Lyon", "Nice", "Lille"})
	second := predict.Build("42", []string{"7", "13", "99"})

	console := newScript(first.Labels[first.CorrectIndex], second.Labels[second.CorrectIndex], "true")
	result, err := newEngine(console, 11).Run(context.Background(), questions, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Score != 3 || result.Total != 3 {
		t.Fatalf("expected 3/3, got %d/%d", result.Score, result.Total)
	}
	if result.HintsRemaining != 2 {
		t.Fatalf("hints must be untouched, got %d", result.HintsRemaining)
	}
	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(result.Outcomes))
	}
}

func TestRunHintScenario(t *testing.T) {
	questions := []domain.Question{
		multiple("Capital of France?", "Paris", "Lyon", "Nice", "Lille"),
		multiple("Answer to everything?", "42", "7", "13", "99"),
	}

	predict := app.NewOptionShufflerWithSource(rand.NewSource(5))
	first := predict.Build("Paris", []string{"Lyon", "Nice", "Lille"})
	second := predict.Build("42", []string{"7", "13", "99"})
	reduced := predict.Reduce(second, "42", app.DefaultHintKeep)

	console := newScript(
		first.Labels[first.CorrectIndex],
		"hint",
		reduced.Labels[reduced.CorrectIndex],
	)
	const budget = 2
	result, err := newEngine(console, 5).Run(context.Background(), questions, budget)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Score != 2 || result.Total != 2 || result.HintsRemaining != budget-1 {
		t.Fatalf("expected {2 2 %d}, got %+v", budget-1, result)
	}
	if !result.Outcomes[1].HintUsed || result.Outcomes[0].HintUsed {
		t.Fatalf("hint flags wrong: %+v", result.Outcomes)
	}
}

func TestHintOnlyOncePerQuestion(t *testing.T) {
	questions := []domain.Question{multiple("Capital of France?", "Paris", "Lyon", "Nice", "Lille")}

	predict := app.NewOptionShufflerWithSource(rand.NewSource(9))
	reduced := predict.Reduce(predict.Build("Paris", []string{"Lyon", "Nice", "Lille"}), "Paris", app.DefaultHintKeep)

	console := newScript("hint", "hint", reduced.Labels[reduced.CorrectIndex])
	result, err := newEngine(console, 9).Run(context.Background(), questions, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.HintsRemaining != 4 {
		t.Fatalf("second hint must not be charged, remaining %d", result.HintsRemaining)
	}
	if result.Score != 1 {
		t.Fatalf("expected correct answer after rejected hint, got %+v", result)
	}
	if n := console.count("Invalid input"); n != 1 {
		t.Fatalf("expected one rejection, got %d", n)
	}
}

func TestHintBudgetCarriesAcrossQuestions(t *testing.T) {
	questions := []domain.Question{
		multiple("Q1", "a", "b", "c", "d"),
		multiple("Q2", "a", "b", "c", "d"),
	}

	predict := app.NewOptionShufflerWithSource(rand.NewSource(2))
	r1 := predict.Reduce(predict.Build("a", []string{"b", "c", "d"}), "a", app.DefaultHintKeep)
	predict.Build("a", []string{"b", "c", "d"})

	// One hint in the budget: spent on Q1, refused on Q2.
	console := newScript("hint", r1.Labels[r1.CorrectIndex], "hint", "A")
	result, err := newEngine(console, 2).Run(context.Background(), questions, 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.HintsRemaining != 0 {
		t.Fatalf("expected budget exhausted, got %d", result.HintsRemaining)
	}
	if n := console.count("Invalid input"); n != 1 {
		t.Fatalf("expected hint refused once with empty budget, got %d", n)
	}
}

func TestInvalidTokensAreRePrompted(t *testing.T) {
	questions := []domain.Question{boolean("Water is wet.", domain.True)}

	console := newScript("maybe", "", "Z", "B")
	result, err := newEngine(console, 1).Run(context.Background(), questions, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("B is False, expected wrong answer, got %+v", result)
	}
	if n := console.count("Invalid input"); n != 3 {
		t.Fatalf("expected 3 rejections, got %d", n)
	}
}

func TestBooleanNeverOffersHint(t *testing.T) {
	questions := []domain.Question{boolean("Go has generics.", domain.True)}

	console := newScript("hint", "TRUE")
	result, err := newEngine(console, 1).Run(context.Background(), questions, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Score != 1 || result.HintsRemaining != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestMalformedQuestionIsFatal(t *testing.T) {
	questions := []domain.Question{
		multiple("Q1", "a", "b", "c", "d"),
		{Type: domain.Multiple, CorrectAnswer: "x", Distractors: []string{"y"}},
	}

	console := newScript("A", "A")
	_, err := newEngine(console, 1).Run(context.Background(), questions, 2)
	if !errors.Is(err, domain.ErrMalformedQuestion) {
		t.Fatalf("expected malformed question error, got %v", err)
	}
	var malformed *domain.MalformedQuestionError
	if !errors.As(err, &malformed) || malformed.Index != 1 || malformed.Field != "text" {
		t.Fatalf("expected question 2 text to be blamed, got %v", err)
	}
	if console.remaining() != 2 {
		t.Fatalf("no question may be graded before validation, consumed %d lines", 2-console.remaining())
	}
}

func TestRunRejectsEmptyBatch(t *testing.T) {
	_, err := newEngine(newScript(), 1).Run(context.Background(), nil, 2)
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
