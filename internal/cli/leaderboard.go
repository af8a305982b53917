package cli

import (
	"github.com/spf13/cobra"

	"trivia-challenge/internal/app"
)

// NewLeaderboardCmd prints the stored ranking.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			scores, err := rt.scoreKeeper(cmd.Context())
			if err != nil {
				return err
			}
			if top <= 0 {
				top = rt.cfg.Leaderboard.Top
			}
			console := newConsole(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			console.Printf("Leaderboard:\n")
			app.PrintEntries(console, app.TopOf(scores.Load(cmd.Context()), top))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "number of entries to show (defaults to leaderboard.top)")
	return cmd
}
