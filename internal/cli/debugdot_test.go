package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDebugDotWritesDOT(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.depict")
	out := filepath.Join(dir, "out.dot")
	if err := os.WriteFile(in, []byte("Client Server: ping\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&discardWriter{}, LogInfo)
	opts := debugDotOpts{output: out}
	if err := c.runDebugDot(context.Background(), in, &opts); err != nil {
		t.Fatalf("runDebugDot() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "digraph G") {
		t.Error("output should contain a DOT digraph header")
	}
	if !strings.Contains(string(data), "Client") {
		t.Error("output should mention the Client actor")
	}
}

func TestRunDebugDotPropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.depict")
	if err := os.WriteFile(in, []byte("A B no colon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&discardWriter{}, LogInfo)
	opts := debugDotOpts{output: filepath.Join(dir, "out.dot")}
	if err := c.runDebugDot(context.Background(), in, &opts); err == nil {
		t.Fatal("runDebugDot() should propagate a parse error")
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
