package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"trivia-challenge/internal/domain"
)

// QuestionSource fetches a batch of questions for the given settings.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, settings domain.Settings) ([]domain.Question, error)
}

// DefaultHints is the hint budget at the start of every game.
const DefaultHints = 2

// SessionOptions tunes a SessionController.
type SessionOptions struct {
	Hints  int
	TopN   int
	Player string
}

// SessionController runs rounds until the player declines to replay.
type SessionController struct {
	console  Console
	settings SettingsSource
	source   QuestionSource
	engine   *QuizEngine
	scores   ScoreKeeper
	opts     SessionOptions
	log      *zap.Logger
}

func NewSessionController(console Console, settings SettingsSource, source QuestionSource, engine *QuizEngine, scores ScoreKeeper, opts SessionOptions, log *zap.Logger) *SessionController {
	if opts.Hints < 0 {
		opts.Hints = 0
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultLeaderboardSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionController{
		console:  console,
		settings: settings,
		source:   source,
		engine:   engine,
		scores:   scores,
		opts:     opts,
		log:      log,
	}
}

// Play loops over rounds. It returns nil when the player quits (or input ends)
// and an error only when ctx is cancelled or the console fails.
func (c *SessionController) Play(ctx context.Context) error {
	for round := 1; ; round++ {
		// The hint budget is reset for every new game.
		if err := c.round(ctx, round, c.opts.Hints); err != nil {
			return quitErr(err)
		}

		again, err := Confirm(c.console, "\nPlay again? (yes/no): ")
		if err != nil {
			return quitErr(err)
		}
		if !again {
			c.console.Printf("\nThanks for playing! Goodbye!\n")
			return nil
		}
		c.console.Printf("\n%s\n\n", "==================================================")
	}
}

// round plays one fetch-and-answer cycle. Round failures are reported and
// swallowed; only console and context errors escape.
func (c *SessionController) round(ctx context.Context, round, hints int) error {
	log := c.log.With(zap.Int("round", round))

	settings, err := c.settings.Settings(ctx)
	if err != nil {
		if domain.IsRoundFailure(err) {
			c.console.Printf("Invalid settings: %v\n", err)
			return nil
		}
		return err
	}
	log.Info("round settings",
		zap.Int("amount", settings.Amount),
		zap.Int("category", settings.Category),
		zap.String("difficulty", settings.Difficulty))

	questions, err := c.source.FetchQuestions(ctx, settings)
	if err == nil && len(questions) == 0 {
		err = domain.ErrNoResults
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn("fetch failed", zap.Error(err))
		c.console.Printf("Could not retrieve questions: %v. Please try a different category or difficulty.\n", err)
		return nil
	}

	c.console.Printf("\nLet's begin the quiz!\n\n")
	result, err := c.engine.Run(ctx, questions, hints)
	if err != nil {
		if domain.IsRoundFailure(err) {
			log.Warn("round aborted", zap.Error(err))
			c.console.Printf("This round could not be played: %v\n", err)
			return nil
		}
		return err
	}
	log.Info("round finished",
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Int("hints_remaining", result.HintsRemaining))

	return c.settle(ctx, result)
}

// settle records a new best score and shows the standings. The board is
// loaded once per round.
func (c *SessionController) settle(ctx context.Context, result domain.SessionResult) error {
	board := c.scores.Load(ctx)
	best := BestOf(board)
	c.console.Printf("\nThe current high score is: %d.\n", best)

	if result.Score > best {
		c.console.Printf("Congratulations! You've set a new high score!\n")
		name := c.opts.Player
		if c.scores.RequiresName() && name == "" {
			var err error
			if name, err = c.console.ReadLine("Enter your name for the leaderboard: "); err != nil {
				return err
			}
		}
		updated, err := c.scores.Record(ctx, board, name, result.Score)
		if err != nil {
			c.console.Printf("Your score could not be saved: %v\n", err)
		}
		board = updated
	}

	c.console.Printf("\nLeaderboard:\n")
	PrintEntries(c.console, TopOf(board, c.opts.TopN))
	return nil
}

// PrintEntries renders ranked entries, one per line.
func PrintEntries(c Console, entries []domain.LeaderboardEntry) {
	if len(entries) == 0 {
		c.Printf("  (no scores yet)\n")
		return
	}
	for i, e := range entries {
		c.Printf("  %2d. %-20s %d\n", i+1, e.Name, e.Score)
	}
}

func quitErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("session: %w", err)
}
