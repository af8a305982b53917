package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"trivia-challenge/internal/domain"
)

// HintToken is what the player types to spend a hint.
const HintToken = "HINT"

// DefaultHintKeep is how many options survive a 50:50 hint.
const DefaultHintKeep = 2

type questionState int

const (
	statePresenting questionState = iota
	stateAwaitingInput
	stateHintRequested
	stateGraded
)

// QuizEngine asks questions one at a time, grades them and tracks the hint budget.
type QuizEngine struct {
	console  Console
	shuffler *OptionShuffler
	hintKeep int
	log      *zap.Logger
}

func NewQuizEngine(console Console, shuffler *OptionShuffler, hintKeep int, log *zap.Logger) *QuizEngine {
	if hintKeep < 2 {
		hintKeep = DefaultHintKeep
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizEngine{console: console, shuffler: shuffler, hintKeep: hintKeep, log: log}
}

// Run plays every question in order. The whole batch is validated up front so
// a corrupt record never yields partial credit.
func (e *QuizEngine) Run(ctx context.Context, questions []domain.Question, hints int) (domain.SessionResult, error) {
	if len(questions) == 0 {
		return domain.SessionResult{}, domain.ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			var malformed *domain.MalformedQuestionError
			if errors.As(err, &malformed) {
				malformed.Index = i
			}
			return domain.SessionResult{}, err
		}
	}
	if hints < 0 {
		hints = 0
	}

	result := domain.SessionResult{Total: len(questions)}
	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return domain.SessionResult{}, err
		}
		outcome, remaining, err := e.ask(i+1, q, hints)
		if err != nil {
			return domain.SessionResult{}, err
		}
		hints = remaining
		if outcome.Correct {
			result.Score++
		}
		result.Outcomes = append(result.Outcomes, outcome)
		e.log.Debug("question graded",
			zap.Int("number", i+1),
			zap.Bool("correct", outcome.Correct),
			zap.Bool("hint", outcome.HintUsed))
	}
	result.HintsRemaining = hints

	e.console.Printf("Quiz over! You scored %d out of %d.\n", result.Score, result.Total)
	return result, nil
}

type answer struct {
	hint  bool
	index int
}

func (e *QuizEngine) ask(number int, q domain.Question, hints int) (domain.Outcome, int, error) {
	var set domain.OptionSet
	if q.Type == domain.Boolean {
		set = booleanOptions(q.CorrectAnswer)
	} else {
		set = e.shuffler.Build(q.CorrectAnswer, q.Distractors)
	}

	hintUsed := false
	chosen := -1
	state := statePresenting
	for state != stateGraded {
		switch state {
		case statePresenting:
			e.present(number, q, set)
			state = stateAwaitingInput
		case stateAwaitingInput:
			hintOffered := hints > 0 && !hintUsed && len(set.Options) > e.hintKeep
			a, err := Request(e.console, answerPrompt(q.Type, hintOffered, hints), func(raw string) (answer, error) {
				return parseAnswer(raw, q.Type, set, hintOffered)
			})
			if err != nil {
				return domain.Outcome{}, hints, err
			}
			if a.hint {
				state = stateHintRequested
			} else {
				chosen = a.index
				state = stateGraded
			}
		case stateHintRequested:
			hints--
			hintUsed = true
			set = e.shuffler.Reduce(set, q.CorrectAnswer, e.hintKeep)
			e.console.Printf("Hint used! You have %d hints left.\n", hints)
			state = statePresenting
		}
	}

	outcome := domain.Outcome{
		Question: decode(q.Text),
		Chosen:   set.Options[chosen],
		Answer:   set.Correct(),
		HintUsed: hintUsed,
	}
	if q.Type == domain.Boolean {
		outcome.Correct = outcome.Chosen == q.CorrectAnswer
	} else {
		outcome.Correct = chosen == set.CorrectIndex
	}

	if outcome.Correct {
		e.console.Printf("Correct!\n\n")
	} else {
		e.console.Printf("Wrong! The correct answer was %s.\n\n", outcome.Answer)
	}
	return outcome, hints, nil
}

func (e *QuizEngine) present(number int, q domain.Question, set domain.OptionSet) {
	e.console.Printf("Question %d: %s\n", number, decode(q.Text))
	for i, opt := range set.Options {
		e.console.Printf("  %s. %s\n", set.Labels[i], opt)
	}
}

func answerPrompt(t domain.QuestionType, hintOffered bool, hints int) string {
	if t == domain.Boolean {
		return "Your answer (True/False): "
	}
	if hintOffered {
		return fmt.Sprintf("Your answer (or type 'hint' for a 50:50, %d left): ", hints)
	}
	return "Your answer: "
}

// parseAnswer normalizes raw input to a label index or the hint token.
func parseAnswer(raw string, t domain.QuestionType, set domain.OptionSet, hintOffered bool) (answer, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == HintToken && hintOffered {
		return answer{hint: true}, nil
	}
	if i, ok := set.IndexOf(token); ok {
		return answer{index: i}, nil
	}
	if t == domain.Boolean {
		for i, opt := range set.Options {
			if strings.EqualFold(opt, token) {
				return answer{index: i}, nil
			}
		}
		return answer{}, fmt.Errorf("please enter True or False")
	}
	return answer{}, fmt.Errorf("please enter one of %s", strings.Join(set.Labels, ", "))
}
