// Package depicterrors provides the structured error taxonomy spec.md §7
// requires: ParseError, LayoutError, and InternalError, all satisfying a
// common RenderError marker.
//
// The shape follows pkg/errors in the teacher codebase — a Code-tagged
// error with Wrap/Is/GetCode — generalized here into three concrete sum
// types instead of one generic code enum, because spec.md treats the three
// kinds as structurally distinct (each carries different diagnostic data).
package depicterrors

import (
	"errors"
	"fmt"
)

// RenderError is implemented by every error kind Render can return:
// *ParseError, *LayoutError, and *InternalError. Callers that only care
// about "did rendering fail" can use the plain error interface; callers
// that need to distinguish kinds type-switch on RenderError.
type RenderError interface {
	error
	renderError()
}

// ParseKind enumerates the ways the DSL text can fail to parse (spec.md §4.1).
type ParseKind string

const (
	UnexpectedChar   ParseKind = "UnexpectedChar"
	EmptyLabel       ParseKind = "EmptyLabel"
	DanglingColon    ParseKind = "DanglingColon"
	MismatchedIndent ParseKind = "MismatchedIndent"
)

// Span identifies a byte range in the original DSL source, used for
// diagnostics (spec.md §3 "Source").
type Span struct {
	Start, End int // byte offsets into the source, End exclusive
	Line, Col  int // 1-indexed line and column of Start
}

// ParseError reports malformed DSL input. Recoverable at the boundary: the
// caller fixes the text and retries.
type ParseError struct {
	Span   Span
	Kind   ParseKind
	Detail string
	Source string // the full source text, used to render a one-line excerpt
}

func (e *ParseError) renderError() {}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, col %d: %s (%s)", e.Span.Line, e.Span.Col, e.Detail, e.Kind)
}

// Excerpt returns a one-line excerpt of the offending line with a caret
// pointing at the error's column, per spec.md §7 ("a one-line excerpt with
// caret").
func (e *ParseError) Excerpt() string {
	line := lineAt(e.Source, e.Span.Line)
	caret := ""
	for i := 1; i < e.Span.Col; i++ {
		caret += " "
	}
	caret += "^"
	return line + "\n" + caret
}

func lineAt(source string, lineNum int) string {
	n := 1
	start := 0
	for i := 0; i < len(source); i++ {
		if n == lineNum {
			end := len(source)
			for j := i; j < len(source); j++ {
				if source[j] == '\n' {
					end = j
					break
				}
			}
			return source[start:end]
		}
		if source[i] == '\n' {
			n++
			start = i + 1
		}
	}
	if n == lineNum {
		return source[start:]
	}
	return ""
}

// LayoutSubKind enumerates layout failure sub-kinds (spec.md §7).
type LayoutSubKind string

const (
	Infeasible       LayoutSubKind = "Infeasible"
	NonConvergent    LayoutSubKind = "NonConvergent"
	DegenerateRanking LayoutSubKind = "DegenerateRanking"
)

// LayoutError reports a numeric or structural failure downstream of
// parsing. Per spec.md §7, this indicates a bug in the engine's constraint
// construction and is surfaced with diagnostic counters rather than
// silently degraded into a broken diagram.
type LayoutError struct {
	SubKind      LayoutSubKind
	RankCount    int
	VariableCount int
	ConstraintCount int
	Detail       string
	Cause        error
}

func (e *LayoutError) renderError() {}

func (e *LayoutError) Error() string {
	msg := fmt.Sprintf("layout error (%s): %s [ranks=%d vars=%d constraints=%d]",
		e.SubKind, e.Detail, e.RankCount, e.VariableCount, e.ConstraintCount)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LayoutError) Unwrap() error { return e.Cause }

// InternalError reports an assertion or invariant violation. Per spec.md
// §7, callers must never catch this — it should propagate to the top with
// the originating invariant's name.
type InternalError struct {
	Invariant string
	Detail    string
	Cause     error
}

func (e *InternalError) renderError() {}

func (e *InternalError) Error() string {
	msg := fmt.Sprintf("internal error: invariant %q violated: %s", e.Invariant, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InternalError) Unwrap() error { return e.Cause }

// NewInternal constructs an InternalError for a named invariant.
func NewInternal(invariant, format string, args ...any) *InternalError {
	return &InternalError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// AsParseError reports whether err is (or wraps) a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	return pe, errors.As(err, &pe)
}

// AsLayoutError reports whether err is (or wraps) a *LayoutError.
func AsLayoutError(err error) (*LayoutError, bool) {
	var le *LayoutError
	return le, errors.As(err, &le)
}

// AsInternalError reports whether err is (or wraps) an *InternalError.
func AsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	return ie, errors.As(err, &ie)
}

// ExitCode returns the advisory CLI exit code spec.md §6 assigns to err:
// 0 on nil, 65 for ParseError, 70 for LayoutError, 74 for InternalError,
// and 1 for any other error.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.As(err, new(*ParseError)):
		return 65
	case errors.As(err, new(*LayoutError)):
		return 70
	case errors.As(err, new(*InternalError)):
		return 74
	default:
		return 1
	}
}
