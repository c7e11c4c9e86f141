package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/tao/internal/app"
)

// NewFavCommand creates the fav command group.
func NewFavCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "List or change favorite chapters",
	}
	cmd.AddCommand(newFavListCommand(rootOpts))
	cmd.AddCommand(newFavToggleCommand(rootOpts))
	return cmd
}

func newFavListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite chapters",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withChapters(cmd.Context(), rootOpts, func(env *app.Env) error {
				items := summaries(env, env.Session.Favorites())
				return rootOpts.formatter(cmd).Emit(items, func(w io.Writer) {
					writeSummaries(w, items, "No favorites yet.")
				})
			})
		},
	}
}

func newFavToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <chapter>",
		Short: "Mark or unmark a chapter as favorite",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal, err := parseOrdinal(args[0])
			if err != nil {
				return err
			}

			// Toggling needs only the ledger, not the chapters.
			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			marked, err := env.Session.ToggleFavorite(cmd.Context(), ordinal)
			if err != nil {
				return WrapExitError(ExitFailure, "save favorites", err)
			}

			data := struct {
				Chapter  int  `json:"chapter"`
				Favorite bool `json:"favorite"`
			}{Chapter: ordinal, Favorite: marked}
			return rootOpts.formatter(cmd).Emit(data, func(w io.Writer) {
				if marked {
					fmt.Fprintf(w, "Chapter %d added to favorites\n", ordinal)
				} else {
					fmt.Fprintf(w, "Chapter %d removed from favorites\n", ordinal)
				}
			})
		},
	}
}
