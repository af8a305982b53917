package domain

import (
	"fmt"
	"strings"
)

// QuestionType distinguishes multiple choice from true/false questions.
type QuestionType string

const (
	Multiple QuestionType = "multiple"
	Boolean  QuestionType = "boolean"
)

// Canonical answers for boolean questions.
const (
	True  = "True"
	False = "False"
)

// Difficulty levels understood by the question source.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// MaxDistractors is bounded by the A-D option alphabet.
const MaxDistractors = 3

// Question models one trivia question as delivered by the source.
// Text and answers may still carry HTML entities.
type Question struct {
	Text          string       `json:"question"`
	Type          QuestionType `json:"type"`
	CorrectAnswer string       `json:"correct_answer"`
	Distractors   []string     `json:"incorrect_answers,omitempty"`
	Category      string       `json:"category,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
}

// Validate checks the fields the quiz engine depends on.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return &MalformedQuestionError{Field: "text"}
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return &MalformedQuestionError{Field: "correct_answer"}
	}
	switch q.Type {
	case Multiple:
		if len(q.Distractors) == 0 || len(q.Distractors) > MaxDistractors {
			return &MalformedQuestionError{Field: "incorrect_answers"}
		}
		for _, d := range q.Distractors {
			if strings.TrimSpace(d) == "" {
				return &MalformedQuestionError{Field: "incorrect_answers"}
			}
		}
	case Boolean:
		if q.CorrectAnswer != True && q.CorrectAnswer != False {
			return &MalformedQuestionError{Field: "correct_answer"}
		}
	default:
		return &MalformedQuestionError{Field: "type"}
	}
	return nil
}

// OptionSet is the labeled, shuffled view of a question's answers.
type OptionSet struct {
	Labels       []string
	Options      []string
	CorrectIndex int
}

// Correct returns the text of the correct option.
func (s OptionSet) Correct() string {
	if s.CorrectIndex < 0 || s.CorrectIndex >= len(s.Options) {
		return ""
	}
	return s.Options[s.CorrectIndex]
}

// IndexOf resolves a label (case-insensitive) to an option index.
func (s OptionSet) IndexOf(label string) (int, bool) {
	for i, l := range s.Labels {
		if strings.EqualFold(l, label) {
			return i, true
		}
	}
	return -1, false
}

// Outcome records how a single question was answered.
type Outcome struct {
	Question string `json:"question"`
	Chosen   string `json:"chosen"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
	HintUsed bool   `json:"hintUsed"`
}

// SessionResult summarizes one finished quiz.
type SessionResult struct {
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	HintsRemaining int       `json:"hintsRemaining"`
	Outcomes       []Outcome `json:"outcomes,omitempty"`
}

// DefaultPlayerName is used when a player leaves the name prompt blank.
const DefaultPlayerName = "Anonymous"

// PlayerName trims name and falls back to DefaultPlayerName.
func PlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Category is a question topic known to the source.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is used when the category list cannot be fetched.
func DefaultCategories() []Category {
	return []Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 10, Name: "Entertainment: Books"},
		{ID: 17, Name: "Science & Nature"},
		{ID: 21, Name: "Sports"},
		{ID: 22, Name: "Geography"},
	}
}

// Settings configures one round of questions.
// Category 0 means any category.
type Settings struct {
	Amount     int
	Category   int
	Difficulty string
}

const (
	MinAmount = 1
	MaxAmount = 50
)

// Validate enforces the source request limits.
func (s Settings) Validate() error {
	if s.Amount < MinAmount || s.Amount > MaxAmount {
		return fmt.Errorf("%w: amount must be between %d and %d", ErrInvalidSettings, MinAmount, MaxAmount)
	}
	if s.Category < 0 {
		return fmt.Errorf("%w: category must not be negative", ErrInvalidSettings)
	}
	if !ValidDifficulty(s.Difficulty) {
		return fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrInvalidSettings)
	}
	return nil
}

// ValidDifficulty reports whether d is one of easy, medium or hard.
func ValidDifficulty(d string) bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}
