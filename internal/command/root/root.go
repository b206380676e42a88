package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/slotvec/internal/command/helper"
	"github.com/pavanmanishd/slotvec/internal/command/replay"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "slotvec",
			Short: "slotvec replays operation scripts against a hole-tolerant int32 vector",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		replay.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
