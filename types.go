package logic

import (
	"strconv"
)

// A TriggerMode configures the trigger condition for a single digital
// channel. The empty mode leaves the channel out of the trigger.
type TriggerMode string

// Valid trigger modes.
const (
	TriggerNone    TriggerMode = ""
	TriggerHigh    TriggerMode = "high"
	TriggerLow     TriggerMode = "low"
	TriggerNegEdge TriggerMode = "negedge"
	TriggerPosEdge TriggerMode = "posedge"
)

// TriggerModes lists every valid trigger mode.
func TriggerModes() []TriggerMode {
	return []TriggerMode{TriggerNone, TriggerHigh, TriggerLow, TriggerNegEdge, TriggerPosEdge}
}

// Valid reports whether m is a mode the software accepts.
func (m TriggerMode) Valid() bool {
	switch m {
	case TriggerNone, TriggerHigh, TriggerLow, TriggerNegEdge, TriggerPosEdge:
		return true
	}
	return false
}

// PerformanceOptions lists the performance levels the software accepts.
var PerformanceOptions = []int{20, 25, 33, 50, 100}

// PretriggerBufferSizes lists the pretrigger buffer sizes the software
// accepts.
var PretriggerBufferSizes = []int{1000000, 10000000, 100000000, 1000000000}

// A SampleRate is a digital/analog sample rate pair, in samples per second.
// A zero rate means the corresponding channel type is not sampled.
type SampleRate struct {
	Digital int
	Analog  int
}

// A Device describes a device attached to the Logic software.
type Device struct {
	// Index is the 1-based index used to select the device.
	Index int

	// Name is the human readable device name.
	Name string

	// Type is the software's device type identifier, e.g. LOGIC_8_DEVICE.
	Type string

	// ID is the device serial identifier.
	ID string

	// Active is set on the device currently selected for capture.
	Active bool
}

// parseDevice decodes the fields of a single get_connected_devices line.
// The line carries the index, the device name, and optionally the device
// type, serial identifier and an ACTIVE marker.
func parseDevice(fields []string) (Device, bool) {
	if len(fields) < 2 {
		return Device{}, false
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return Device{}, false
	}
	d := Device{Index: idx, Name: fields[1]}
	rest := fields[2:]
	if n := len(rest); n > 0 && rest[n-1] == "ACTIVE" {
		d.Active = true
		rest = rest[:n-1]
	}
	if len(rest) > 0 {
		d.Type = rest[0]
	}
	if len(rest) > 1 {
		d.ID = rest[1]
	}
	return d, true
}

// Channels holds the indices of the channels enabled for capture.
type Channels struct {
	Digital []int
	Analog  []int
}

// An Analyzer is a protocol analyzer attached to the current capture.
type Analyzer struct {
	// Name is the analyzer label shown in the software.
	Name string

	// Index identifies the analyzer in export commands.
	Index int
}

// itoas converts channel indices to wire arguments.
func itoas(nums []int) []string {
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// atois converts wire fields to ints, returning an InvalidResponseError for
// the named command on failure.
func atois(command string, fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, &InvalidResponseError{Command: command, Response: f}
		}
		out[i] = n
	}
	return out, nil
}
