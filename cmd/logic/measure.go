package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storborg/gologic/measure"
)

var measureCommand = &cobra.Command{
	Use:   "measure <csv>...",
	Short: "Summarize exported capture data",
	Long: `Summarize csv files exported from the software: per-channel mean, standard
deviation and range, plus edge count and duty cycle for digital channels.`,
	Args: cobra.MinimumNArgs(1),
	Run:  run(runMeasure),
}

func init() {
	cmd.AddCommand(measureCommand)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	reports, err := measure.Files(args)
	if err != nil {
		return err
	}

	for _, r := range reports {
		fmt.Printf("%s (%gs)\n", r.File, r.Duration)
		for _, ch := range r.Channels {
			if ch.Digital {
				fmt.Printf("  %-20s %d samples, %d edges, %.1f%% duty\n",
					ch.Channel, ch.Samples, ch.Edges, ch.Duty*100)
				continue
			}
			fmt.Printf("  %-20s %d samples, mean %.4f, stddev %.4f, min %.4f, max %.4f\n",
				ch.Channel, ch.Samples, ch.Mean, ch.StdDev, ch.Min, ch.Max)
		}
	}
	return nil
}
