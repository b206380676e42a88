package replay

import (
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/slotvec/internal/command"
	"github.com/pavanmanishd/slotvec/internal/command/helper"
)

func GetCommand() *cobra.Command {
	params := &replayParams{}

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Replays a YAML operation script against a fresh vector and reports every step",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return params.validateFlags()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			runCommand(cmd, params)
		},
	}

	setFlags(replayCmd, params)

	return replayCmd
}

func setFlags(cmd *cobra.Command, params *replayParams) {
	cmd.Flags().StringVar(
		&params.file,
		fileFlag,
		"",
		"the path to the YAML script to replay (required)",
	)

	helper.RegisterLogLevelFlag(cmd, &params.logLevel)
}

func runCommand(cmd *cobra.Command, params *replayParams) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	logger, err := helper.NewLogger(params.logLevel, cmd.ErrOrStderr())
	if err != nil {
		outputter.SetError(err)

		return
	}

	result, err := params.replay(logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(result)
}
