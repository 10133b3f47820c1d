package measure

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

const digitalExport = `Time [s], Channel 0, Channel 1
0.000000, 0, 1
0.000001, 1, 1
0.000002, 0, 1
0.000003, 1, 1
`

func TestRead_Digital(t *testing.T) {
	r, err := Read(strings.NewReader(digitalExport))
	if err != nil {
		t.Fatalf("Read() err = %v", err)
	}

	if got, want := r.Duration, 0.000003; math.Abs(got-want) > 1e-12 {
		t.Errorf("Duration = %v, want = %v", got, want)
	}
	if len(r.Channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(r.Channels))
	}

	ch0 := r.Channels[0]
	if ch0.Channel != "Channel 0" {
		t.Errorf("Channel = %q, want = %q", ch0.Channel, "Channel 0")
	}
	if !ch0.Digital {
		t.Error("Channel 0 not detected as digital")
	}
	if ch0.Edges != 3 {
		t.Errorf("Edges = %d, want = 3", ch0.Edges)
	}
	if ch0.Duty != 0.5 {
		t.Errorf("Duty = %v, want = 0.5", ch0.Duty)
	}
	if ch0.Samples != 4 {
		t.Errorf("Samples = %d, want = 4", ch0.Samples)
	}

	ch1 := r.Channels[1]
	if ch1.Edges != 0 {
		t.Errorf("Channel 1 Edges = %d, want = 0", ch1.Edges)
	}
	if ch1.Duty != 1 {
		t.Errorf("Channel 1 Duty = %v, want = 1", ch1.Duty)
	}
}

func TestRead_Analog(t *testing.T) {
	export := `Time [s], VCC
0.0, 3.2
0.1, 3.4
0.2, 3.0
0.3, 3.4
`
	r, err := Read(strings.NewReader(export))
	if err != nil {
		t.Fatalf("Read() err = %v", err)
	}

	ch := r.Channels[0]
	if ch.Digital {
		t.Error("analog channel detected as digital")
	}
	if got, want := ch.Mean, 3.25; math.Abs(got-want) > 1e-9 {
		t.Errorf("Mean = %v, want = %v", got, want)
	}
	if got, want := ch.Min, 3.0; got != want {
		t.Errorf("Min = %v, want = %v", got, want)
	}
	if got, want := ch.Max, 3.4; got != want {
		t.Errorf("Max = %v, want = %v", got, want)
	}
	if ch.StdDev == 0 {
		t.Error("StdDev = 0, want > 0")
	}
	if ch.Edges != 0 || ch.Duty != 0 {
		t.Errorf("analog channel carries digital stats: edges=%d duty=%v", ch.Edges, ch.Duty)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Empty", ""},
		{"NoChannels", "Time [s]\n0.0\n"},
		{"NoSamples", "Time [s], Channel 0\n"},
		{"BadValue", "Time [s], Channel 0\n0.0, huh\n"},
		{"BadTime", "Time [s], Channel 0\nhuh, 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.data)); err == nil {
				t.Error("Read() err = nil, want error")
			}
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 2)
	for i := range paths {
		paths[i] = filepath.Join(dir, "export"+string(rune('a'+i))+".csv")
		if err := ioutil.WriteFile(paths[i], []byte(digitalExport), 0644); err != nil {
			t.Fatal(err)
		}
	}

	reports, err := Files(paths)
	if err != nil {
		t.Fatalf("Files() err = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	for i, r := range reports {
		if r.File != paths[i] {
			t.Errorf("reports[%d].File = %q, want = %q", i, r.File, paths[i])
		}
	}
}

func TestFiles_MissingFile(t *testing.T) {
	if _, err := Files([]string{filepath.Join(t.TempDir(), "nope.csv")}); err == nil {
		t.Error("Files() err = nil, want error")
	}
}
