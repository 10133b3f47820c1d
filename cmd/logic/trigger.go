package main

import (
	"github.com/spf13/cobra"

	logic "github.com/storborg/gologic"
)

var triggerCommand = &cobra.Command{
	Use:   "trigger <mode>...",
	Short: "Configure the trigger",
	Long: `Configure the trigger. One mode must be given per digital channel in the
software; use "" or "-" for channels left out of the trigger.

Modes: high, low, negedge, posedge`,
	Args: cobra.MinimumNArgs(1),
	Run:  run(runTrigger),
}

func init() {
	cmd.AddCommand(triggerCommand)
}

func runTrigger(cmd *cobra.Command, args []string) error {
	modes := make([]logic.TriggerMode, len(args))
	for i, a := range args {
		if a == "-" {
			a = ""
		}
		modes[i] = logic.TriggerMode(a)
	}

	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	return cli.SetTrigger(ctx, modes...)
}
