package wire

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "capture", want: "capture\x00"},
		{name: "set_num_samples", args: []string{"1000000"}, want: "set_num_samples,1000000\x00"},
		{name: "set_sample_rate", args: []string{"16000000", "0"}, want: "set_sample_rate,16000000,0\x00"},
		{name: "set_trigger", args: []string{"", "high", "", "negedge"}, want: "set_trigger,,high,,negedge\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Command(tt.name, tt.args...)
			if string(got) != tt.want {
				t.Errorf("Command() = %q, want = %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Response
	}{
		{
			name: "AckOnly",
			data: "ACK",
			want: Response{Lines: []string{}, Status: "ACK"},
		},
		{
			name: "Nak",
			data: "NAK",
			want: Response{Lines: []string{}, Status: "NAK"},
		},
		{
			name: "SingleLine",
			data: "100\nACK",
			want: Response{Lines: []string{"100"}, Status: "ACK"},
		},
		{
			name: "MultiLine",
			data: "16000000, 0\n8000000, 2500000\nACK",
			want: Response{Lines: []string{"16000000, 0", "8000000, 2500000"}, Status: "ACK"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.data))
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("Parse() (-got +want)\n%s", diff)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields("1, Logic 8, LOGIC_8_DEVICE, 0xffffffff, ACTIVE")
	want := []string{"1", "Logic 8", "LOGIC_8_DEVICE", "0xffffffff", "ACTIVE"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Fields() (-got +want)\n%s", diff)
	}
}

// chunkReader returns a fixed number of bytes per Read call to exercise reply
// accumulation across short reads.
type chunkReader struct {
	data []byte
	size int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.size
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestReadResponse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		chunk   int
		want    Response
		wantErr bool
	}{
		{
			name:  "Ack",
			data:  "ACK",
			chunk: 1024,
			want:  Response{Lines: []string{}, Status: "ACK"},
		},
		{
			name:  "ShortReads",
			data:  "TRUE\nACK",
			chunk: 3,
			want:  Response{Lines: []string{"TRUE"}, Status: "ACK"},
		},
		{
			name:  "NakWithPayload",
			data:  "error\nNAK",
			chunk: 1024,
			want:  Response{Lines: []string{"error"}, Status: "NAK"},
		},
		{
			name:    "Truncated",
			data:    "16000000, 0\nAC",
			chunk:   1024,
			wantErr: true,
		},
		{
			name:    "Empty",
			data:    "",
			chunk:   1024,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &chunkReader{data: []byte(tt.data), size: tt.chunk}
			got, err := ReadResponse(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadResponse() err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("ReadResponse() (-got +want)\n%s", diff)
			}
		})
	}
}

func TestReadResponse_NoFalseTerminator(t *testing.T) {
	// A payload line ending in ACK must not terminate the reply early; only
	// a line consisting of the status token does.
	data := "analyzer ACK, 1\nACK"
	got, err := ReadResponse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadResponse() err = %v", err)
	}
	want := Response{Lines: []string{"analyzer ACK, 1"}, Status: "ACK"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("ReadResponse() (-got +want)\n%s", diff)
	}
}
