package depicterrors

import (
	"fmt"
	"testing"
)

func TestParseErrorExcerpt(t *testing.T) {
	src := "A B: hi\nC D: ,bad\n"
	pe := &ParseError{
		Span:   Span{Line: 2, Col: 6},
		Kind:   EmptyLabel,
		Detail: "empty label",
		Source: src,
	}

	got := pe.Excerpt()
	want := "C D: ,bad\n     ^"
	if got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"parse", &ParseError{Kind: UnexpectedChar}, 65},
		{"layout", &LayoutError{SubKind: Infeasible}, 70},
		{"internal", &InternalError{Invariant: "rank-monotonicity"}, 74},
		{"wrapped parse", fmt.Errorf("while rendering: %w", &ParseError{Kind: EmptyLabel}), 65},
		{"other", fmt.Errorf("boom"), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestLayoutErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("solver diverged")
	le := &LayoutError{SubKind: NonConvergent, Cause: cause}
	if got := le.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}
