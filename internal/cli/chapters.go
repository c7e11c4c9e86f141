package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tao/internal/app"
	"github.com/five82/tao/internal/library"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var original bool

	cmd := &cobra.Command{
		Use:   "show <chapter>",
		Short: "Print one chapter",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal, err := parseOrdinal(args[0])
			if err != nil {
				return err
			}
			return withChapters(cmd.Context(), rootOpts, func(env *app.Env) error {
				if !env.Session.GoTo(ordinal) {
					return NewExitError(ExitCommandError, outOfRange(ordinal))
				}
				return printCurrent(rootOpts.formatter(cmd), env, original)
			})
		},
	}

	cmd.Flags().BoolVarP(&original, "original", "o", false, "include the original text")
	return cmd
}

// NewRandomCommand creates the random command.
func NewRandomCommand(rootOpts *RootOptions) *cobra.Command {
	var original bool

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random chapter",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withChapters(cmd.Context(), rootOpts, func(env *app.Env) error {
				if _, ok := env.Session.Random(); !ok {
					return NewExitError(ExitFailure, "no chapters loaded")
				}
				return printCurrent(rootOpts.formatter(cmd), env, original)
			})
		},
	}

	cmd.Flags().BoolVarP(&original, "original", "o", false, "include the original text")
	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "List chapters matching a query",
		Long: `List chapters whose title, translation, interpretation or keywords
contain the query, ignoring case. A blank query lists every chapter.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withChapters(cmd.Context(), rootOpts, func(env *app.Env) error {
				results := env.Session.Search(query)
				items := summaries(env, results)
				data := struct {
					Query   string        `json:"query"`
					Results []SummaryView `json:"results"`
				}{Query: query, Results: items}
				return rootOpts.formatter(cmd).Emit(data, func(w io.Writer) {
					writeSummaries(w, items, "No chapters match.")
				})
			})
		},
	}
}

func printCurrent(f *OutputFormatter, env *app.Env, original bool) error {
	ch, ok := env.Session.Current()
	if !ok {
		return NewExitError(ExitFailure,
			fmt.Sprintf("chapter %d is not in the collection", env.Session.CurrentOrdinal()))
	}
	v := chapterView(ch, original || env.Session.ShowOriginal(), env.Session.IsFavorite(ch.Ordinal))
	return f.Emit(v, func(w io.Writer) { writeChapter(w, v) })
}

func summaries(env *app.Env, chs []library.Chapter) []SummaryView {
	out := make([]SummaryView, 0, len(chs))
	for _, ch := range chs {
		out = append(out, SummaryView{
			Chapter:  ch.Ordinal,
			Title:    ch.Title,
			Favorite: env.Session.IsFavorite(ch.Ordinal),
		})
	}
	return out
}

// parseOrdinal parses a chapter argument and checks its range.
func parseOrdinal(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid chapter %q", arg), err)
	}
	if n < library.MinOrdinal || n > library.MaxOrdinal {
		return 0, NewExitError(ExitCommandError, outOfRange(n))
	}
	return n, nil
}

func outOfRange(n int) string {
	return fmt.Sprintf("chapter %d out of range: must be between %d and %d",
		n, library.MinOrdinal, library.MaxOrdinal)
}
