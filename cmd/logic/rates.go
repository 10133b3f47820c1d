package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ratesCommand = &cobra.Command{
	Use:   "rates",
	Short: "List available sample rate combinations",
	Args:  cobra.NoArgs,
	Run:   run(runRates),
}

func init() {
	cmd.AddCommand(ratesCommand)
}

func runRates(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	rates, err := cli.SampleRates(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%12s  %12s\n", "digital", "analog")
	for _, r := range rates {
		fmt.Printf("%12d  %12d\n", r.Digital, r.Analog)
	}
	return nil
}
