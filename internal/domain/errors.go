package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings is returned when the question count, category or difficulty is out of range.
	ErrInvalidSettings = errors.New("invalid quiz settings")
	// ErrDataSource indicates the question source could not be reached or answered garbage.
	ErrDataSource = errors.New("question source unavailable")
	// ErrNoResults indicates the question source had nothing for the requested settings.
	ErrNoResults = errors.New("no questions for the selected settings")
	// ErrNoQuestions is returned when a quiz is started with an empty question list.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrMalformedQuestion indicates a question record is missing required fields.
	ErrMalformedQuestion = errors.New("malformed question record")
	// ErrPersistence indicates the leaderboard or high score could not be written.
	ErrPersistence = errors.New("score storage failed")
)

// MalformedQuestionError pinpoints the offending record in a batch.
type MalformedQuestionError struct {
	Index int
	Field string
}

func (e *MalformedQuestionError) Error() string {
	return fmt.Sprintf("%s: question %d: invalid %s", ErrMalformedQuestion, e.Index+1, e.Field)
}

func (e *MalformedQuestionError) Unwrap() error {
	return ErrMalformedQuestion
}

// IsRoundFailure reports whether err should skip the current round instead of ending the game.
func IsRoundFailure(err error) bool {
	return errors.Is(err, ErrDataSource) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrNoQuestions) ||
		errors.Is(err, ErrMalformedQuestion) ||
		errors.Is(err, ErrInvalidSettings)
}
