package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show processing state and capture settings",
	Args:  cobra.NoArgs,
	Run:   run(runStatus),
}

func init() {
	cmd.AddCommand(statusCommand)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	processing, err := cli.ProcessingComplete(ctx)
	if err != nil {
		return err
	}
	perf, err := cli.PerformanceOption(ctx)
	if err != nil {
		return err
	}
	pretrigger, err := cli.PretriggerBufferSize(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("processing complete:  %v\n", processing)
	fmt.Printf("performance option:   %d\n", perf)
	fmt.Printf("pretrigger buffer:    %d\n", pretrigger)
	return nil
}
