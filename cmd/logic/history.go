package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storborg/gologic/storage"
	"github.com/storborg/gologic/storage/kvbackend"
)

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "List captures recorded in the journal",
	Args:  cobra.NoArgs,
	Run:   run(runHistory),
}

var historyRmCommand = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a capture record from the journal",
	Args:  cobra.ExactArgs(1),
	Run:   run(runHistoryRm),
}

func init() {
	historyCommand.Flags().Int("limit", 0, "Only show the most recent records")
	historyCommand.AddCommand(historyRmCommand)
	cmd.AddCommand(historyCommand)
}

// openJournal opens the journal at its default location. The caller must
// call the returned close function.
func openJournal() (*storage.Journal, func(), error) {
	file, err := kvbackend.DefaultFile()
	if err != nil {
		return nil, nil, err
	}
	db, err := kvbackend.Open(file)
	if err != nil {
		return nil, nil, err
	}
	return &storage.Journal{Backend: db}, func() { _ = db.Close() }, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		panic(err)
	}

	journal, closeJournal, err := openJournal()
	if err != nil {
		return err
	}
	defer closeJournal()

	recs, err := journal.List(context.Background())
	if err != nil {
		return err
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}

	for _, r := range recs {
		file := r.File
		if file == "" {
			file = "-"
		}
		device := r.Device
		if device == "" {
			device = "-"
		}
		fmt.Printf("%s  %s  %-16s  %12d samples  %s\n",
			r.ID, r.Time.Format(time.RFC3339), device, r.Samples, file)
	}
	return nil
}

func runHistoryRm(cmd *cobra.Command, args []string) error {
	journal, closeJournal, err := openJournal()
	if err != nil {
		return err
	}
	defer closeJournal()

	return journal.Delete(context.Background(), args[0])
}
