package helper

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/slotvec/internal/command"
)

// RegisterJSONOutputFlag registers the --json output setting for all child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterLogLevelFlag binds the --log-level setting to target
func RegisterLogLevelFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(
		target,
		command.LogLevelFlag,
		command.DefaultLogLevel,
		"the log level for console output (trace, debug, info, warn, error)",
	)
}

// NewLogger builds the console logger for a command
func NewLogger(level string, out io.Writer) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %q", level)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "slotvec",
		Level:  lvl,
		Output: out,
	}), nil
}

// OUTPUT FORMATTING //

// FormatList formats a list, using a specific blank value replacement
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}
