package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCommand = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"ls"},
	Short:   "List connected devices",
	Args:    cobra.NoArgs,
	Run:     run(runDevices),
}

func init() {
	cmd.AddCommand(devicesCommand)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	devices, err := cli.ConnectedDevices(ctx)
	if err != nil {
		return err
	}
	for _, d := range devices {
		marker := ""
		if d.Active {
			marker = " (active)"
		}
		fmt.Printf("%d  %s  %s  %s%s\n", d.Index, d.Name, d.Type, d.ID, marker)
	}
	return nil
}
