package logic

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/storborg/gologic/logictest"
)

// dialTest connects a client to a fresh fake server.
func dialTest(t *testing.T) (*Client, *logictest.Server) {
	t.Helper()

	srv := &logictest.Server{}
	addr, done := srv.Start()
	t.Cleanup(done)

	cli, err := Dial(addr, WithBackoff(noRetry))
	if err != nil {
		t.Fatalf("Dial() err = %v", err)
	}
	t.Cleanup(func() {
		_ = cli.Close()
	})
	return cli, srv
}

func noRetry() backoff.BackOff {
	return &backoff.StopBackOff{}
}

func TestDialContext_Retry(t *testing.T) {
	// No listener: every attempt fails, the context stops the retry loop.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := DialContext(ctx, "127.0.0.1:1", WithBackoff(func() backoff.BackOff {
		return backoff.NewConstantBackOff(10 * time.Millisecond)
	}))
	if err == nil {
		t.Fatal("DialContext() err = nil, want error")
	}
}

func TestCommand_ACK(t *testing.T) {
	cli, srv := dialTest(t)
	srv.Handle("capture", logictest.Static())

	if err := cli.Capture(context.Background()); err != nil {
		t.Fatalf("Capture() err = %v", err)
	}

	got := srv.Received()
	if len(got) != 1 || got[0][0] != "capture" {
		t.Errorf("Received() = %v, want [[capture]]", got)
	}
}

func TestCommand_NAK(t *testing.T) {
	cli, srv := dialTest(t)
	srv.Handle("capture", logictest.NAK())

	err := cli.Capture(context.Background())
	cerr, ok := err.(*CommandError)
	if !ok {
		t.Fatalf("Capture() err = %v, want *CommandError", err)
	}
	if cerr.Command != "capture" {
		t.Errorf("Command = %q, want = %q", cerr.Command, "capture")
	}
}

func TestCommand_MultipleSequential(t *testing.T) {
	cli, srv := dialTest(t)
	srv.Handle("capture", logictest.Static())
	srv.Handle("is_processing_complete", logictest.Static("TRUE"))

	ctx := context.Background()
	if err := cli.Capture(ctx); err != nil {
		t.Fatalf("Capture() err = %v", err)
	}
	done, err := cli.ProcessingComplete(ctx)
	if err != nil {
		t.Fatalf("ProcessingComplete() err = %v", err)
	}
	if !done {
		t.Error("ProcessingComplete() = false, want true")
	}

	if n := len(srv.Received()); n != 2 {
		t.Errorf("Received %d commands, want 2", n)
	}
}
