package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/observability"
)

func TestRunner_ExecuteProducesSVG(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{Source: "Client Server: request/response\n"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.SVG) == 0 {
		t.Error("expected non-empty SVG")
	}
	if result.CorrelationID == "" {
		t.Error("expected a correlation ID")
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("Stats.NodeCount = %d, want 2", result.Stats.NodeCount)
	}
}

func TestRunner_ExecuteEmitGeometry(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{
		Source: "A B: ping\n",
		Emit:   depict.EmitGeometry,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.SVG != nil {
		t.Error("SVG should be nil when Emit is EmitGeometry")
	}
	if result.Geometry == nil || len(result.Geometry.Nodes) != 2 {
		t.Fatalf("expected a 2-node geometry, got %+v", result.Geometry)
	}
}

func TestRunner_ExecuteRequiresSource(t *testing.T) {
	r := NewRunner(nil)
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("expected an error for empty source")
	}
}

func TestRunner_ExecutePropagatesParseError(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.Execute(context.Background(), Options{Source: "A B no colon\n"})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRunner_ExecuteFiresObservabilityHooks(t *testing.T) {
	defer observability.Reset()

	var events []string
	observability.SetPipelineHooks(&recordingHooks{events: &events})

	r := NewRunner(nil)
	if _, err := r.Execute(context.Background(), Options{Source: "A B: ping\n"}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{"parse-start", "parse-complete", "rank-start", "rank-complete",
		"order-start", "order-complete", "solve-start", "solve-complete",
		"render-start", "render-complete"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i, ev := range want {
		if events[i] != ev {
			t.Errorf("events[%d] = %q, want %q", i, events[i], ev)
		}
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events *[]string
}

func (h *recordingHooks) OnParseStart(ctx context.Context, corrID string) {
	*h.events = append(*h.events, "parse-start")
}
func (h *recordingHooks) OnParseComplete(ctx context.Context, corrID string, nodeCount int, d time.Duration, err error) {
	*h.events = append(*h.events, "parse-complete")
}
func (h *recordingHooks) OnRankStart(ctx context.Context, corrID string, nodeCount int) {
	*h.events = append(*h.events, "rank-start")
}
func (h *recordingHooks) OnRankComplete(ctx context.Context, corrID string, rankCount int, d time.Duration, err error) {
	*h.events = append(*h.events, "rank-complete")
}
func (h *recordingHooks) OnOrderStart(ctx context.Context, corrID string) {
	*h.events = append(*h.events, "order-start")
}
func (h *recordingHooks) OnOrderComplete(ctx context.Context, corrID string, d time.Duration, err error) {
	*h.events = append(*h.events, "order-complete")
}
func (h *recordingHooks) OnSolveStart(ctx context.Context, corrID string) {
	*h.events = append(*h.events, "solve-start")
}
func (h *recordingHooks) OnSolveComplete(ctx context.Context, corrID string, iterations int, d time.Duration, err error) {
	*h.events = append(*h.events, "solve-complete")
}
func (h *recordingHooks) OnRenderStart(ctx context.Context, corrID string) {
	*h.events = append(*h.events, "render-start")
}
func (h *recordingHooks) OnRenderComplete(ctx context.Context, corrID string, byteCount int, d time.Duration, err error) {
	*h.events = append(*h.events, "render-complete")
}
