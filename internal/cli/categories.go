package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCategoriesCmd lists the categories accepted by play --category.
func NewCategoriesCmd(configPath *string) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List question categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			_, provider := rt.questions(offline)
			categories, err := provider.Categories(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, c := range categories {
				fmt.Fprintf(out, "%4d  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "list the built-in question bank")
	return cmd
}
