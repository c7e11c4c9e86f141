package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/tao/internal/config"
	"github.com/five82/tao/internal/logging"
)

const defaultLogLines = 40

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			tail, err := logging.Tail(cfg.LogFile, lines)
			if err != nil {
				return WrapExitError(ExitFailure, "read log", err)
			}

			data := struct {
				Path  string   `json:"path"`
				Lines []string `json:"lines"`
			}{Path: cfg.LogFile, Lines: tail}
			if data.Lines == nil {
				data.Lines = []string{}
			}
			return rootOpts.formatter(cmd).Emit(data, func(w io.Writer) {
				for _, line := range tail {
					fmt.Fprintln(w, line)
				}
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to print")
	return cmd
}
