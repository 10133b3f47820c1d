package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var selectCommand = &cobra.Command{
	Use:   "select <index>",
	Short: "Select the device used for capture",
	Long:  "Select the device used for capture, by the index shown by devices. Indices start at 1.",
	Args:  cobra.ExactArgs(1),
	Run:   run(runSelect),
}

func init() {
	cmd.AddCommand(selectCommand)
}

func runSelect(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("invalid device index: %q", args[0])
	}

	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	return cli.SelectDevice(ctx, index)
}
