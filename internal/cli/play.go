package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-challenge/internal/app"
	"trivia-challenge/internal/domain"
)

type playFlags struct {
	player     string
	offline    bool
	amount     int
	category   int
	difficulty string
}

// NewPlayCmd starts an interactive game.
func NewPlayCmd(configPath *string) *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play trivia rounds until you decline a replay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, f)
		},
	}
	cmd.Flags().StringVar(&f.player, "player", "", "name recorded on the leaderboard (asked when empty)")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "use the built-in question bank instead of the Open Trivia DB")
	cmd.Flags().IntVar(&f.amount, "amount", 0, "questions per round (asked when unset)")
	cmd.Flags().IntVar(&f.category, "category", 0, "category id, 0 for any (asked when unset)")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "easy, medium or hard (asked when unset)")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath string, f playFlags) error {
	ctx := cmd.Context()
	rt, err := newRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	scores, err := rt.scoreKeeper(ctx)
	if err != nil {
		return err
	}

	console := newConsole(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	source, categories := rt.questions(f.offline)

	preset := presetFromFlags(cmd, f)
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	var settings app.SettingsSource = app.NewPromptSettings(console, categories, rt.log).WithPreset(preset)
	if preset.Complete() {
		settings = app.FixedSettings(domain.Settings{Amount: *preset.Amount, Category: *preset.Category, Difficulty: *preset.Difficulty})
	}

	engine := app.NewQuizEngine(console, app.NewOptionShuffler(), rt.cfg.Quiz.HintKeep, rt.log)
	controller := app.NewSessionController(console, settings, source, engine, scores, app.SessionOptions{
		Hints:  rt.cfg.Quiz.Hints,
		TopN:   rt.cfg.Leaderboard.Top,
		Player: f.player,
	}, rt.log)

	console.Printf("Welcome to the Trivia Challenge!\n\n")
	rt.log.Info("game started", zap.Bool("offline", f.offline), zap.String("leaderboard", rt.cfg.Leaderboard.Backend))
	return controller.Play(ctx)
}

// presetFromFlags pins the settings given on the command line; the rest are
// asked for every round.
func presetFromFlags(cmd *cobra.Command, f playFlags) app.Preset {
	var preset app.Preset
	if cmd.Flags().Changed("amount") {
		amount := f.amount
		preset.Amount = &amount
	}
	if cmd.Flags().Changed("category") {
		category := f.category
		preset.Category = &category
	}
	if cmd.Flags().Changed("difficulty") {
		difficulty := strings.ToLower(strings.TrimSpace(f.difficulty))
		preset.Difficulty = &difficulty
	}
	return preset
}
