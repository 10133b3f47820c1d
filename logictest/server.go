// Package logictest provides an in-process fake of the Logic software's
// scripting socket for use in tests.
//
// The fake speaks the real framing (NUL terminated commands, newline
// separated replies ending in ACK or NAK) but its behavior is entirely
// scripted by the test through per-command handlers.
package logictest

import (
	"net"
	"strings"
	"sync"
)

// A Handler produces the reply for one received command. args holds the
// comma separated arguments following the command name. The returned lines
// become the payload; ok selects ACK or NAK.
type Handler func(args []string) (lines []string, ok bool)

// Static returns a handler that always ACKs with the given payload lines.
func Static(lines ...string) Handler {
	return func([]string) ([]string, bool) { return lines, true }
}

// NAK returns a handler that always NAKs.
func NAK() Handler {
	return func([]string) ([]string, bool) { return nil, false }
}

// Server is a fake scripting socket.
type Server struct {
	mu       sync.Mutex
	handlers map[string]Handler
	received [][]string

	lis net.Listener
	wg  sync.WaitGroup
}

// Handle registers the handler for a command name. Commands without a
// handler are NAKed.
func (s *Server) Handle(command string, h Handler) {
	s.mu.Lock()
	if s.handlers == nil {
		s.handlers = make(map[string]Handler)
	}
	s.handlers[command] = h
	s.mu.Unlock()
}

// Received returns every command received so far, split into name and
// arguments.
func (s *Server) Received() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.received))
	copy(out, s.received)
	return out
}

// Start starts the server on a random local port. The server runs in a
// goroutine and is stopped by calling the returned done function.
func (s *Server) Start() (addr string, done func()) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	s.lis = lis

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := lis.Accept()
			if err != nil {
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.serve(conn)
			}()
		}
	}()

	return lis.Addr().String(), func() {
		_ = lis.Close()
		s.wg.Wait()
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	var buf []byte
	tmp := make([]byte, 256)
	for {
		n, err := conn.Read(tmp)
		buf = append(buf, tmp[:n]...)
		for {
			nul := indexNUL(buf)
			if nul < 0 {
				break
			}
			cmd := string(buf[:nul])
			buf = buf[nul+1:]
			s.dispatch(conn, cmd)
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) dispatch(conn net.Conn, raw string) {
	parts := strings.Split(raw, ",")
	name, args := parts[0], parts[1:]

	s.mu.Lock()
	s.received = append(s.received, parts)
	h := s.handlers[name]
	s.mu.Unlock()

	lines, ok := []string(nil), false
	if h != nil {
		lines, ok = h(args)
	}
	status := "NAK"
	if ok {
		status = "ACK"
	}
	reply := strings.Join(append(lines, status), "\n")
	_, _ = conn.Write([]byte(reply))
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}
