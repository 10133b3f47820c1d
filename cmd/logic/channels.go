package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var channelsCommand = &cobra.Command{
	Use:   "channels",
	Short: "Show or change the channels enabled for capture",
	Args:  cobra.NoArgs,
	Run:   run(runChannels),
}

func init() {
	channelsCommand.Flags().IntSlice("digital", nil, "Digital channels to enable")
	channelsCommand.Flags().IntSlice("analog", nil, "Analog channels to enable")
	channelsCommand.Flags().Bool("reset", false, "Enable every channel of the device")
	cmd.AddCommand(channelsCommand)
}

func runChannels(cmd *cobra.Command, args []string) error {
	digital, err := cmd.Flags().GetIntSlice("digital")
	if err != nil {
		panic(err)
	}
	analog, err := cmd.Flags().GetIntSlice("analog")
	if err != nil {
		panic(err)
	}
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		panic(err)
	}

	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	switch {
	case reset:
		if err := cli.ResetActiveChannels(ctx); err != nil {
			return err
		}
	case len(digital) > 0 || len(analog) > 0:
		if err := cli.SetActiveChannels(ctx, digital, analog); err != nil {
			return err
		}
	}

	ch, err := cli.ActiveChannels(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("digital: %v\n", ch.Digital)
	fmt.Printf("analog:  %v\n", ch.Analog)
	return nil
}
