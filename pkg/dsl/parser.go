package dsl

import (
	"strings"

	"github.com/depictlang/depict/pkg/depicterrors"
)

// Parse converts DSL source text into an AST, or returns a
// *depicterrors.ParseError. Parsing is total: on failure, no partial
// Program is returned (spec.md §4.1).
func Parse(source string) (*Program, error) {
	lines := scanLines(source)

	prog := &Program{Statements: make([]Statement, 0, len(lines))}
	tracker := &indentTracker{}

	for _, rl := range lines {
		stmt, perr := parseStatement(rl)
		if perr != nil {
			perr.Source = source
			return nil, perr
		}

		effInd := effectiveIndent(rl.indent, rl.pipes)
		level, parent, perr := tracker.push(effInd, len(prog.Statements))
		if perr != nil {
			perr.Span = stmt.Span
			perr.Source = source
			return nil, perr
		}
		stmt.Level = level
		stmt.Parent = parent

		prog.Statements = append(prog.Statements, *stmt)
	}

	return prog, nil
}

// parseStatement parses one logical line's content into a Statement:
// `<actor-seq> ':' <action-list>`.
func parseStatement(rl rawLine) (*Statement, *depicterrors.ParseError) {
	lhs, rhs, ok := cutColon(rl.content)
	if !ok {
		return nil, &depicterrors.ParseError{
			Span:   rl.span(0, 0, len(rl.content)),
			Kind:   depicterrors.DanglingColon,
			Detail: "statement is missing a ':' separating actors from actions",
		}
	}

	if strings.TrimSpace(lhs) == "" {
		return nil, &depicterrors.ParseError{
			Span:   rl.span(0, 0, 1),
			Kind:   depicterrors.DanglingColon,
			Detail: "statement has no actors before ':'",
		}
	}

	actors, perr := parseActorSeq(rl, lhs)
	if perr != nil {
		return nil, perr
	}

	actions, perr := parseActionList(rl, rhs, len(lhs)+1)
	if perr != nil {
		return nil, perr
	}

	return &Statement{
		Actors:  actors,
		Actions: actions,
		Span:    rl.span(0, 0, len(rl.content)),
	}, nil
}

// cutColon splits content on the first ':' into actor-seq and action-list
// halves. Any later ':' stays in the action-list half as label text.
func cutColon(content string) (lhs, rhs string, ok bool) {
	i := strings.IndexByte(content, ':')
	if i < 0 {
		return "", "", false
	}
	return content[:i], content[i+1:], true
}

// parseActorSeq splits the actor-sequence half into identifiers, rejecting
// the action-list separators `,` and `/` as UnexpectedChar.
func parseActorSeq(rl rawLine, raw string) ([]Ident, *depicterrors.ParseError) {
	fields := splitFields(raw)
	actors := make([]Ident, 0, len(fields))

	for _, f := range fields {
		if i := strings.IndexAny(f.text, ",/:|%"); i >= 0 {
			return nil, &depicterrors.ParseError{
				Span:   rl.span(f.col, f.byteOffset+i, 1),
				Kind:   depicterrors.UnexpectedChar,
				Detail: "unexpected '" + string(f.text[i]) + "' in actor name",
			}
		}
		actors = append(actors, Ident{
			Name: f.text,
			Span: rl.span(f.col, f.byteOffset, len(f.text)),
		})
	}

	if len(actors) == 0 {
		return nil, &depicterrors.ParseError{
			Span:   rl.span(0, 0, 1),
			Kind:   depicterrors.DanglingColon,
			Detail: "statement has no actors before ':'",
		}
	}

	return actors, nil
}

// parseActionList splits the action-list half on top-level ',' into
// individual actions, and each action on the first '/' into label/response.
func parseActionList(rl rawLine, raw string, baseByteOffset int) ([]Action, *depicterrors.ParseError) {
	segments := splitTopLevel(raw, ',')
	actions := make([]Action, 0, len(segments))

	offset := baseByteOffset
	for _, seg := range segments {
		action, perr := parseAction(rl, seg, offset)
		if perr != nil {
			return nil, perr
		}
		actions = append(actions, *action)
		offset += len(seg) + 1 // +1 for the consumed ','
	}

	if len(actions) == 0 {
		return nil, &depicterrors.ParseError{
			Span:   rl.span(0, baseByteOffset, 1),
			Kind:   depicterrors.EmptyLabel,
			Detail: "action list must contain at least one action",
		}
	}

	return actions, nil
}

// parseAction parses one `<label> ['/' <response-label>]` action, where raw
// starts at byteOffset bytes into the statement's content.
func parseAction(rl rawLine, raw string, byteOffset int) (*Action, *depicterrors.ParseError) {
	label, response, hasResponse := strings.Cut(raw, "/")

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, &depicterrors.ParseError{
			Span:   rl.span(0, byteOffset, len(raw)),
			Kind:   depicterrors.EmptyLabel,
			Detail: "action label must not be empty",
		}
	}

	if hasResponse {
		if strings.Contains(response, "/") {
			i := strings.IndexByte(raw, '/')
			j := strings.IndexByte(raw[i+1:], '/')
			return nil, &depicterrors.ParseError{
				Span:   rl.span(0, byteOffset+i+1+j, 1),
				Kind:   depicterrors.UnexpectedChar,
				Detail: "a response label may not itself contain '/'",
			}
		}
		response = strings.TrimSpace(response)
		if response == "" {
			return nil, &depicterrors.ParseError{
				Span:   rl.span(0, byteOffset+len(raw), 1),
				Kind:   depicterrors.EmptyLabel,
				Detail: "response label must not be empty",
			}
		}
	}

	return &Action{
		Label:       label,
		Response:    response,
		HasResponse: hasResponse,
		Span:        rl.span(0, byteOffset, len(raw)),
	}, nil
}

// field is a whitespace-delimited token with its byte and column offset
// relative to the start of the statement's content.
type field struct {
	text       string
	byteOffset int
	col        int
}

// splitFields splits raw on runs of whitespace into fields, tracking each
// field's position within raw.
func splitFields(raw string) []field {
	var fields []field
	i := 0
	for i < len(raw) {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) {
			break
		}
		start := i
		for i < len(raw) && !isSpace(raw[i]) {
			i++
		}
		fields = append(fields, field{text: raw[start:i], byteOffset: start, col: start})
	}
	return fields
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// splitTopLevel splits raw on every occurrence of sep, preserving each
// segment's leading/trailing whitespace as-is (callers trim as needed).
func splitTopLevel(raw string, sep byte) []string {
	var segs []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == sep {
			segs = append(segs, raw[start:i])
			start = i + 1
		}
	}
	segs = append(segs, raw[start:])
	return segs
}
