package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/tao/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	PrefsPath  string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Run without a subcommand it opens
// the reader.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tao",
		Short: "A terminal reader for the Tao Te Ching",
		Long: `tao reads the 81 chapters of the Tao Te Ching in the terminal.

Without a subcommand it opens the interactive reader. The other commands
print a chapter, a search, or your favorites and exit.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReader(cmd.Context(), opts)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, c.CommandPath(), err)
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/tao/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/tao/prefs.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRandomCommand(opts))
	cmd.AddCommand(NewFavCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))

	return cmd
}

// NewReadCommand creates the read command, an explicit alias for the reader.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Open the interactive reader",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReader(cmd.Context(), rootOpts)
		},
	}
}

// usageArgs reports argument validation failures as ExitCommandError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, cmd.CommandPath(), err)
		}
		return nil
	}
}

func runReader(ctx context.Context, opts *RootOptions) error {
	return app.Run(ctx, opts.appOptions())
}

func (o *RootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.ConfigPath,
		PrefsPath:  o.PrefsPath,
		Verbose:    o.Verbose,
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// openEnv opens the session state without loading chapters.
func openEnv(ctx context.Context, opts *RootOptions) (*app.Env, error) {
	env, err := app.Open(ctx, opts.appOptions())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open", err)
	}
	return env, nil
}

// withChapters opens the session, loads the chapters, and calls fn.
func withChapters(ctx context.Context, opts *RootOptions, fn func(env *app.Env) error) error {
	env, err := openEnv(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	if err := env.LoadNow(ctx); err != nil {
		return WrapExitError(ExitFailure, "load chapters", err)
	}
	return fn(env)
}
