package config

import (
	"fmt"

	"go.uber.org/multierr"
	validator "gopkg.in/go-playground/validator.v9"

	logic "github.com/storborg/gologic"
	"github.com/storborg/gologic/suggest"
)

// A Root is the root structure of a profiles file.
type Root struct {
	Profiles []Profile `hcl:"profile,block"`
}

// Profile returns the named profile. Unknown names produce an error with a
// suggestion when a close match exists.
func (r *Root) Profile(name string) (*Profile, error) {
	names := make([]string, len(r.Profiles))
	for i, p := range r.Profiles {
		if p.Name == name {
			return &r.Profiles[i], nil
		}
		names[i] = p.Name
	}
	if s := suggest.String(name, names); s != "" {
		return nil, fmt.Errorf("no profile named %q (did you mean %q?)", name, s)
	}
	return nil, fmt.Errorf("no profile named %q", name)
}

// A Profile is a named set of capture settings. Zero values leave the
// corresponding setting untouched in the software.
type Profile struct {
	Name string `hcl:"name,label"`

	// DigitalSampleRate and AnalogSampleRate select the sample rate pair, in
	// samples per second. Both must be set together; the software takes them
	// as one command.
	DigitalSampleRate int `hcl:"digital_sample_rate,optional" validate:"gte=0"`
	AnalogSampleRate  int `hcl:"analog_sample_rate,optional" validate:"gte=0"`

	// Samples is the number of samples to capture.
	Samples int `hcl:"samples,optional" validate:"gte=0"`

	// DigitalChannels and AnalogChannels enable specific channels. Leaving
	// both empty keeps the software's channel selection.
	DigitalChannels []int `hcl:"digital_channels,optional" validate:"dive,gte=0"`
	AnalogChannels  []int `hcl:"analog_channels,optional" validate:"dive,gte=0"`

	// Trigger holds one mode per digital channel in the software: "", high,
	// low, negedge or posedge.
	Trigger []string `hcl:"trigger,optional"`

	// PretriggerBuffer is the pretrigger buffer size in samples.
	PretriggerBuffer int `hcl:"pretrigger_buffer,optional"`

	// Performance is the performance option: 20, 25, 33, 50 or 100.
	Performance int `hcl:"performance,optional"`
}

var validate = validator.New()

// Validate checks the profile against the value ranges the software accepts.
// All violations are reported, combined into a single error.
func (p *Profile) Validate() error {
	var err error

	if verr := validate.Struct(p); verr != nil {
		ferrs, ok := verr.(validator.ValidationErrors)
		if !ok {
			return verr
		}
		for _, ferr := range ferrs {
			err = multierr.Append(err, fmt.Errorf(
				"profile %q: %s must not be negative", p.Name, ferr.Field()))
		}
	}

	for i, tr := range p.Trigger {
		if logic.TriggerMode(tr).Valid() {
			continue
		}
		terr := fmt.Errorf("profile %q: invalid trigger mode %q for channel %d", p.Name, tr, i)
		var names []string
		for _, m := range logic.TriggerModes() {
			if m != logic.TriggerNone {
				names = append(names, string(m))
			}
		}
		if s := suggest.String(tr, names); s != "" {
			terr = fmt.Errorf("%v (did you mean %q?)", terr, s)
		}
		err = multierr.Append(err, terr)
	}

	if p.Performance != 0 && !containsInt(logic.PerformanceOptions, p.Performance) {
		err = multierr.Append(err, fmt.Errorf(
			"profile %q: invalid performance option %d (valid: %v)",
			p.Name, p.Performance, logic.PerformanceOptions))
	}
	if p.PretriggerBuffer != 0 && !containsInt(logic.PretriggerBufferSizes, p.PretriggerBuffer) {
		err = multierr.Append(err, fmt.Errorf(
			"profile %q: invalid pretrigger buffer size %d (valid: %v)",
			p.Name, p.PretriggerBuffer, logic.PretriggerBufferSizes))
	}
	return err
}

func containsInt(vals []int, v int) bool {
	for _, n := range vals {
		if n == v {
			return true
		}
	}
	return false
}
