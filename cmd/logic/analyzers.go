package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var analyzersCommand = &cobra.Command{
	Use:   "analyzers",
	Short: "List protocol analyzers attached to the capture",
	Args:  cobra.NoArgs,
	Run:   run(runAnalyzers),
}

var analyzersExportCommand = &cobra.Command{
	Use:   "export <index> <path>",
	Short: "Export analyzer results to a file",
	Args:  cobra.ExactArgs(2),
	Run:   run(runAnalyzersExport),
}

func init() {
	analyzersExportCommand.Flags().Bool("pipe", false, "Also print the results")
	analyzersCommand.AddCommand(analyzersExportCommand)
	cmd.AddCommand(analyzersCommand)
}

func runAnalyzers(cmd *cobra.Command, args []string) error {
	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	analyzers, err := cli.Analyzers(ctx)
	if err != nil {
		return err
	}
	for _, a := range analyzers {
		fmt.Printf("%d  %s\n", a.Index, a.Name)
	}
	return nil
}

func runAnalyzersExport(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("invalid analyzer index: %q", args[0])
	}
	path := args[1]
	pipe, err := cmd.Flags().GetBool("pipe")
	if err != nil {
		panic(err)
	}

	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := cli.WaitProcessingComplete(ctx); err != nil {
		return err
	}

	if !pipe {
		return cli.ExportAnalyzer(ctx, index, path)
	}
	rows, err := cli.ExportAnalyzerData(ctx, index, path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row, ", "))
	}
	return nil
}
