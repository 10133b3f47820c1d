// Package wire implements the framing used by the Saleae Logic scripting
// socket.
//
// Commands are ASCII strings: the command name and its arguments joined with
// commas, terminated by a single NUL byte. Responses are newline separated
// lines, the last of which is a status line reading ACK or NAK. Payload lines
// carry comma separated values with a space after each comma.
package wire

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Terminator ends every command sent to the socket.
const Terminator byte = 0x00

// Response status lines.
const (
	StatusACK = "ACK"
	StatusNAK = "NAK"
)

// fieldSep separates values within a payload line.
const fieldSep = ", "

// AppendCommand appends the wire encoding of a command with the given
// arguments to dst and returns the extended buffer.
func AppendCommand(dst []byte, name string, args ...string) []byte {
	dst = append(dst, name...)
	for _, a := range args {
		dst = append(dst, ',')
		dst = append(dst, a...)
	}
	return append(dst, Terminator)
}

// Command returns the wire encoding of a command with the given arguments.
func Command(name string, args ...string) []byte {
	return AppendCommand(nil, name, args...)
}

// A Response is a decoded reply from the scripting socket.
type Response struct {
	// Lines contains the payload lines preceding the status line. Empty for
	// commands that only acknowledge.
	Lines []string

	// Status is the final line of the reply. StatusACK or StatusNAK on a
	// well-formed reply; anything else indicates a protocol error the caller
	// must handle.
	Status string
}

// ACK reports whether the response acknowledges the command.
func (r Response) ACK() bool { return r.Status == StatusACK }

// Parse decodes a complete raw reply. The final line becomes the status,
// every preceding line a payload line.
func Parse(data []byte) Response {
	lines := strings.Split(string(data), "\n")
	return Response{
		Lines:  lines[:len(lines)-1],
		Status: lines[len(lines)-1],
	}
}

// Fields splits a payload line into its values.
func Fields(line string) []string {
	return strings.Split(line, fieldSep)
}

// terminated reports whether data forms a complete reply, that is, whether
// its last line is a status line.
func terminated(data []byte) bool {
	s := string(data)
	if s == StatusACK || s == StatusNAK {
		return true
	}
	return strings.HasSuffix(s, "\n"+StatusACK) || strings.HasSuffix(s, "\n"+StatusNAK)
}

// ReadResponse reads from r until a complete reply, terminated by an ACK or
// NAK status line, has been received, and returns it decoded.
//
// The socket does not delimit replies with a trailing byte, so ReadResponse
// accumulates data until the last received line is a status line. An EOF
// before that point is reported as an unexpected EOF.
func ReadResponse(r io.Reader) (Response, error) {
	var data []byte
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		data = append(data, buf[:n]...)
		if terminated(data) {
			return Parse(data), nil
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return Response{}, errors.Wrap(err, "read reply")
		}
	}
}
