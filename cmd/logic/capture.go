package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logic "github.com/storborg/gologic"
	"github.com/storborg/gologic/config"
	"github.com/storborg/gologic/storage"
	"github.com/storborg/gologic/storage/kvbackend"
)

var captureCommand = &cobra.Command{
	Use:   "capture",
	Short: "Run a capture",
	Long: `Run a capture with the current settings, optionally configured from a
profile in logic.hcl and overridden by flags. With --file the software
auto-saves the result.`,
	Args: cobra.NoArgs,
	Run:  run(runCapture),
}

func init() {
	captureCommand.Flags().String("file", "", "Auto-save the capture to this path")
	captureCommand.Flags().String("profile", "", "Apply a named profile from logic.hcl")
	captureCommand.Flags().Int("samples", 0, "Number of samples to capture")
	captureCommand.Flags().Int("digital-rate", 0, "Digital sample rate")
	captureCommand.Flags().Int("analog-rate", 0, "Analog sample rate")
	captureCommand.Flags().Bool("wait", false, "Wait until the software finishes processing")
	captureCommand.Flags().Bool("no-journal", false, "Do not record the capture in the journal")
	cmd.AddCommand(captureCommand)
}

func runCapture(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	file, _ := flags.GetString("file")
	profileName, _ := flags.GetString("profile")
	samples, _ := flags.GetInt("samples")
	digitalRate, _ := flags.GetInt("digital-rate")
	analogRate, _ := flags.GetInt("analog-rate")
	wait, _ := flags.GetBool("wait")
	noJournal, _ := flags.GetBool("no-journal")

	logger := newLogger(cmd)

	cli, ctx, done, err := dial(cmd)
	if err != nil {
		return err
	}
	defer done()

	rec := storage.Record{
		Samples:     samples,
		DigitalRate: digitalRate,
		AnalogRate:  analogRate,
		File:        file,
	}

	if profileName != "" {
		profile, err := loadProfile(profileName)
		if err != nil {
			return err
		}
		if err := applyProfile(ctx, cli, profile); err != nil {
			return errors.Wrapf(err, "apply profile %s", profileName)
		}
		if samples == 0 {
			rec.Samples = profile.Samples
		}
		if digitalRate == 0 && analogRate == 0 {
			rec.DigitalRate = profile.DigitalSampleRate
			rec.AnalogRate = profile.AnalogSampleRate
		}
	}

	// Flag overrides run after the profile.
	if digitalRate != 0 || analogRate != 0 {
		if err := cli.SetSampleRate(ctx, digitalRate, analogRate); err != nil {
			return err
		}
	}
	if samples != 0 {
		if err := cli.SetNumSamples(ctx, samples); err != nil {
			return err
		}
	}

	// Best effort: name the active device in the journal record.
	if devices, err := cli.ConnectedDevices(ctx); err == nil {
		for _, d := range devices {
			if d.Active {
				rec.Device = d.Name
			}
		}
	}

	start := time.Now()
	if file != "" {
		err = cli.CaptureToFile(ctx, file)
	} else {
		err = cli.Capture(ctx)
	}
	if err != nil {
		return err
	}
	if wait {
		if err := cli.WaitProcessingComplete(ctx); err != nil {
			return err
		}
	}
	rec.Time = start
	rec.Duration = time.Since(start)

	if !noJournal {
		// A journal failure must not fail a capture that already succeeded.
		if stored, err := journalRecord(ctx, rec); err != nil {
			logger.Warn("Could not record capture", zap.Error(err))
		} else {
			fmt.Printf("Recorded capture %s\n", stored.ID)
		}
	}

	fmt.Printf("Capture complete in %s\n", rec.Duration.Round(time.Millisecond))
	return nil
}

// loadProfile finds logic.hcl from the working directory upwards and returns
// the named, validated profile.
func loadProfile(name string) (*config.Profile, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	loader := &config.Loader{}
	dir, err := loader.Root(wd)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, errors.Errorf("no %s found in %s or any parent directory", config.FileName, wd)
	}

	root, diags := loader.Load(dir)
	if diags.HasErrors() {
		loader.WriteDiagnostics(os.Stderr, diags)
		return nil, errors.New("could not load profiles")
	}

	profile, err := root.Profile(name)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// applyProfile pushes every setting the profile carries to the software, in
// an order the software accepts: performance first since it resets the
// sample rate.
func applyProfile(ctx context.Context, cli *logic.Client, p *config.Profile) error {
	if p.Performance != 0 {
		if err := cli.SetPerformanceOption(ctx, p.Performance); err != nil {
			return err
		}
	}
	if len(p.DigitalChannels) > 0 || len(p.AnalogChannels) > 0 {
		if err := cli.SetActiveChannels(ctx, p.DigitalChannels, p.AnalogChannels); err != nil {
			return err
		}
	}
	if p.DigitalSampleRate != 0 || p.AnalogSampleRate != 0 {
		if err := cli.SetSampleRate(ctx, p.DigitalSampleRate, p.AnalogSampleRate); err != nil {
			return err
		}
	}
	if p.Samples != 0 {
		if err := cli.SetNumSamples(ctx, p.Samples); err != nil {
			return err
		}
	}
	if len(p.Trigger) > 0 {
		modes := make([]logic.TriggerMode, len(p.Trigger))
		for i, tr := range p.Trigger {
			modes[i] = logic.TriggerMode(tr)
		}
		if err := cli.SetTrigger(ctx, modes...); err != nil {
			return err
		}
	}
	if p.PretriggerBuffer != 0 {
		if err := cli.SetPretriggerBufferSize(ctx, p.PretriggerBuffer); err != nil {
			return err
		}
	}
	return nil
}

// journalRecord appends a record to the journal at its default location.
func journalRecord(ctx context.Context, rec storage.Record) (storage.Record, error) {
	file, err := kvbackend.DefaultFile()
	if err != nil {
		return storage.Record{}, err
	}
	db, err := kvbackend.Open(file)
	if err != nil {
		return storage.Record{}, err
	}
	defer db.Close()

	journal := &storage.Journal{Backend: db}
	return journal.Append(ctx, rec)
}
