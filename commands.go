package logic

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/storborg/gologic/suggest"
)

// SetTrigger configures the trigger. One mode must be given per digital
// channel in the software; TriggerNone leaves a channel out of the trigger.
func (c *Client) SetTrigger(ctx context.Context, modes ...TriggerMode) error {
	args := make([]string, len(modes))
	for i, m := range modes {
		if !m.Valid() {
			var names []string
			for _, v := range TriggerModes() {
				if v != TriggerNone {
					names = append(names, string(v))
				}
			}
			return &ArgumentError{
				Reason:     fmt.Sprintf("invalid trigger mode %q for channel %d", m, i),
				Suggestion: suggest.String(string(m), names),
			}
		}
		args[i] = string(m)
	}
	_, err := c.command(ctx, "set_trigger", args...)
	return err
}

// SetNumSamples changes the number of samples to capture. The software only
// accepts the values offered in its drop-down menu.
func (c *Client) SetNumSamples(ctx context.Context, samples int) error {
	if samples <= 0 {
		return &ArgumentError{Reason: fmt.Sprintf("invalid sample count: %d", samples)}
	}
	_, err := c.command(ctx, "set_num_samples", strconv.Itoa(samples))
	return err
}

// SetSampleRate changes the digital and analog sample rates. The pair must
// be one returned by SampleRates.
func (c *Client) SetSampleRate(ctx context.Context, digital, analog int) error {
	if digital < 0 || analog < 0 {
		return &ArgumentError{Reason: fmt.Sprintf("invalid sample rate: %d/%d", digital, analog)}
	}
	_, err := c.command(ctx, "set_sample_rate", strconv.Itoa(digital), strconv.Itoa(analog))
	return err
}

// SampleRates returns the sample rate combinations available for the current
// performance level and channel configuration.
func (c *Client) SampleRates(ctx context.Context) ([]SampleRate, error) {
	rows, err := c.rows(ctx, "get_all_sample_rates")
	if err != nil {
		return nil, err
	}
	rates := make([]SampleRate, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			return nil, &InvalidResponseError{Command: "get_all_sample_rates", Response: strings.Join(row, ", ")}
		}
		nums, err := atois("get_all_sample_rates", row)
		if err != nil {
			return nil, err
		}
		rates = append(rates, SampleRate{Digital: nums[0], Analog: nums[1]})
	}
	return rates, nil
}

// PerformanceOption returns the currently selected performance option.
func (c *Client) PerformanceOption(ctx context.Context) (int, error) {
	row, err := c.row(ctx, "get_performance_option")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, &InvalidResponseError{Command: "get_performance_option", Response: row[0]}
	}
	return v, nil
}

// SetPerformanceOption selects a performance option. Valid options are 20,
// 25, 33, 50 and 100. Changing the option also changes the selected sample
// rate.
func (c *Client) SetPerformanceOption(ctx context.Context, value int) error {
	if !containsInt(PerformanceOptions, value) {
		return &ArgumentError{Reason: fmt.Sprintf("invalid performance option: %d", value)}
	}
	_, err := c.command(ctx, "set_performance_option", strconv.Itoa(value))
	return err
}

// PretriggerBufferSize returns the pretrigger buffer size of the capture.
func (c *Client) PretriggerBufferSize(ctx context.Context) (int, error) {
	row, err := c.row(ctx, "get_capture_pretrigger_buffer_size")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, &InvalidResponseError{Command: "get_capture_pretrigger_buffer_size", Response: row[0]}
	}
	return v, nil
}

// SetPretriggerBufferSize sets the pretrigger buffer size of the capture.
// The software only accepts 1e6, 1e7, 1e8 or 1e9 samples.
func (c *Client) SetPretriggerBufferSize(ctx context.Context, value int) error {
	if !containsInt(PretriggerBufferSizes, value) {
		return &ArgumentError{Reason: fmt.Sprintf("invalid pretrigger buffer size: %d", value)}
	}
	_, err := c.command(ctx, "set_capture_pretrigger_buffer_size", strconv.Itoa(value))
	return err
}

// ConnectedDevices returns the devices currently connected to the computer.
// The device selected for capture has Active set.
func (c *Client) ConnectedDevices(ctx context.Context) ([]Device, error) {
	rows, err := c.rows(ctx, "get_connected_devices")
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(rows))
	for _, row := range rows {
		d, ok := parseDevice(row)
		if !ok {
			return nil, &InvalidResponseError{Command: "get_connected_devices", Response: strings.Join(row, ", ")}
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// SelectDevice selects the device used for capture, by the index returned
// from ConnectedDevices. Indices start at 1, not 0.
func (c *Client) SelectDevice(ctx context.Context, index int) error {
	if index < 1 {
		return &ArgumentError{Reason: fmt.Sprintf("invalid device index: %d (indices start at 1)", index)}
	}
	_, err := c.command(ctx, "select_active_device", strconv.Itoa(index))
	return err
}

// ActiveChannels returns the channels enabled for capture.
func (c *Client) ActiveChannels(ctx context.Context) (Channels, error) {
	row, err := c.row(ctx, "get_active_channels")
	if err != nil {
		return Channels{}, err
	}
	var ch Channels
	var current *[]int
	for _, f := range row {
		switch f {
		case "digital_channels":
			current = &ch.Digital
		case "analog_channels":
			current = &ch.Analog
		default:
			if current == nil {
				return Channels{}, &InvalidResponseError{Command: "get_active_channels", Response: f}
			}
			n, err := strconv.Atoi(f)
			if err != nil {
				return Channels{}, &InvalidResponseError{Command: "get_active_channels", Response: f}
			}
			*current = append(*current, n)
		}
	}
	return ch, nil
}

// SetActiveChannels enables the given channels for capture. Only supported
// on Logic 16, Logic 8 (2nd gen), Logic Pro 8 and Logic Pro 16.
func (c *Client) SetActiveChannels(ctx context.Context, digital, analog []int) error {
	for _, n := range append(append([]int{}, digital...), analog...) {
		if n < 0 {
			return &ArgumentError{Reason: fmt.Sprintf("invalid channel index: %d", n)}
		}
	}
	args := []string{"digital_channels"}
	args = append(args, itoas(digital)...)
	args = append(args, "analog_channels")
	args = append(args, itoas(analog)...)
	_, err := c.command(ctx, "set_active_channels", args...)
	return err
}

// ResetActiveChannels enables every channel of the device.
func (c *Client) ResetActiveChannels(ctx context.Context) error {
	_, err := c.command(ctx, "reset_active_channels")
	return err
}

// Capture starts a capture and blocks until the software acknowledges it.
func (c *Client) Capture(ctx context.Context) error {
	_, err := c.command(ctx, "capture")
	return err
}

// CaptureToFile starts a capture and auto-saves the result to path. The
// software must have write permission to the destination.
func (c *Client) CaptureToFile(ctx context.Context, path string) error {
	if path == "" {
		return &ArgumentError{Reason: "capture path not set"}
	}
	_, err := c.command(ctx, "capture_to_file", path)
	return err
}

// ProcessingComplete reports whether the software has finished processing
// capture data. Save and export commands NAK while processing is under way.
func (c *Client) ProcessingComplete(ctx context.Context) (bool, error) {
	row, err := c.row(ctx, "is_processing_complete")
	if err != nil {
		return false, err
	}
	done, err := strconv.ParseBool(strings.ToLower(row[0]))
	if err != nil {
		return false, &InvalidResponseError{Command: "is_processing_complete", Response: row[0]}
	}
	return done, nil
}

// WaitProcessingComplete polls ProcessingComplete with backoff until the
// software reports processing done or the context is cancelled.
func (c *Client) WaitProcessingComplete(ctx context.Context) error {
	op := func() error {
		done, err := c.ProcessingComplete(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !done {
			return errors.New("processing incomplete")
		}
		return nil
	}
	notify := func(err error, dur time.Duration) {
		c.logger.Debug("Waiting for processing", zap.Error(err), zap.Duration("duration", dur))
	}
	return backoff.RetryNotify(op, backoff.WithContext(c.backoff(), ctx), notify)
}

// SaveToFile saves the current tab to path. Processing must be complete, or
// the software NAKs.
func (c *Client) SaveToFile(ctx context.Context, path string) error {
	if path == "" {
		return &ArgumentError{Reason: "save path not set"}
	}
	_, err := c.command(ctx, "save_to_file", path)
	return err
}

// LoadFromFile loads a previous capture from path.
func (c *Client) LoadFromFile(ctx context.Context, path string) error {
	if path == "" {
		return &ArgumentError{Reason: "load path not set"}
	}
	_, err := c.command(ctx, "load_from_file", path)
	return err
}

// ExportData exports the current capture to path. Processing must be
// complete, or the software NAKs.
//
// TODO: support the format and channel selection options export_data takes
// after the path.
func (c *Client) ExportData(ctx context.Context, path string) error {
	if path == "" {
		return &ArgumentError{Reason: "export path not set"}
	}
	_, err := c.command(ctx, "export_data", path)
	return err
}

// Analyzers returns the protocol analyzers attached to the capture.
func (c *Client) Analyzers(ctx context.Context) ([]Analyzer, error) {
	rows, err := c.rows(ctx, "get_analyzers")
	if err != nil {
		return nil, err
	}
	as := make([]Analyzer, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			return nil, &InvalidResponseError{Command: "get_analyzers", Response: strings.Join(row, ", ")}
		}
		idx, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, &InvalidResponseError{Command: "get_analyzers", Response: row[1]}
		}
		as = append(as, Analyzer{Name: row[0], Index: idx})
	}
	return as, nil
}

// ExportAnalyzer exports the results of the analyzer with the given index to
// path.
func (c *Client) ExportAnalyzer(ctx context.Context, index int, path string) error {
	if path == "" {
		return &ArgumentError{Reason: "export path not set"}
	}
	_, err := c.command(ctx, "export_analyzers", strconv.Itoa(index), path)
	return err
}

// ExportAnalyzerData exports the results of the analyzer with the given
// index to path and additionally returns the result rows piped back over the
// socket.
func (c *Client) ExportAnalyzerData(ctx context.Context, index int, path string) ([][]string, error) {
	if path == "" {
		return nil, &ArgumentError{Reason: "export path not set"}
	}
	return c.rows(ctx, "export_analyzers", strconv.Itoa(index), path, "extra_parameter")
}

// Inputs is disabled in the scripting interface.
func (c *Client) Inputs(ctx context.Context) error {
	return ErrDisabled
}

func containsInt(vals []int, v int) bool {
	for _, n := range vals {
		if n == v {
			return true
		}
	}
	return false
}
