package main

import (
	"github.com/spf13/cobra"
)

var saveCommand = &cobra.Command{
	Use:   "save <path>",
	Short: "Save the current tab to a file",
	Args:  cobra.ExactArgs(1),
	Run:   run(runSave),
}

var loadCommand = &cobra.Command{
	Use:   "load <path>",
	Short: "Load a previous capture from a file",
	Args:  cobra.ExactArgs(1),
	Run:   run(runLoad),
}

var exportCommand = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the current capture data to a file",
	Long: `Export the current capture data to a file. The software refuses to export
while still processing capture data, so export first waits for processing to
complete.`,
	Args: cobra.ExactArgs(1),
	Run:  run(runExport),
}

func init() {
	cmd.AddCommand(saveCommand)
	cmd.AddCommand(loadCommand)
	cmd.AddCommand(exportCommand)
}

func runSave(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cli.WaitProcessingComplete(ctx); err != nil {
		return err
	}
	return cli.SaveToFile(ctx, args[0])
}

func runLoad(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	return cli.LoadFromFile(ctx, args[0])
}

func runExport(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cli.WaitProcessingComplete(ctx); err != nil {
		return err
	}
	return cli.ExportData(ctx, args[0])
}
