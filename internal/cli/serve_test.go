package cli

import (
	"context"
	"testing"
	"time"
)

func TestRunServeShutsDownOnCancel(t *testing.T) {
	c := New(&discardWriter{}, LogInfo)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.runServe(ctx, &serveOpts{addr: "127.0.0.1:0"})
	}()

	// Give the listener a moment to start, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("runServe() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServe() did not return after context cancellation")
	}
}

func TestServeCommandRegistersFlags(t *testing.T) {
	c := New(&discardWriter{}, LogInfo)
	cmd := c.serveCommand()

	if cmd.Flags().Lookup("addr") == nil {
		t.Error("serveCommand() should register --addr")
	}
	if cmd.Flags().Lookup("redis-addr") == nil {
		t.Error("serveCommand() should register --redis-addr")
	}
}
