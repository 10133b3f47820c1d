package logic

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// ErrDisabled is returned for commands the scripting interface has disabled.
var ErrDisabled = errors.New("command disabled in the scripting interface")

// An ArgumentError is returned when an argument passed to a client method is
// invalid for the given command. The command is never sent.
type ArgumentError struct {
	Reason string

	// Suggestion optionally names a close valid value.
	Suggestion string
}

func (e *ArgumentError) Error() string {
	var buf bytes.Buffer
	buf.WriteString(e.Reason)
	if e.Suggestion != "" {
		fmt.Fprintf(&buf, " (did you mean %q?)", e.Suggestion)
	}
	return buf.String()
}

// A CommandError is returned when the Logic software answers a command with
// NAK.
type CommandError struct {
	// Command is the command that failed.
	Command string

	// Response holds any payload lines sent before the NAK status. Usually
	// empty; the software rarely explains a NAK.
	Response string
}

func (e *CommandError) Error() string {
	if e.Response == "" {
		return fmt.Sprintf("%s: command failed", e.Command)
	}
	return fmt.Sprintf("%s: command failed: %s", e.Command, e.Response)
}

// An InvalidResponseError is returned when a reply from the socket is not
// recognizable, that is, not terminated by an ACK or NAK status line or not
// shaped the way the command requires.
type InvalidResponseError struct {
	// Command is the command whose reply could not be decoded.
	Command string

	// Response is the offending part of the reply.
	Response string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %q", e.Command, e.Response)
}
