// Package dsl implements the lexer and parser for the Depict DSL
// (spec.md §4.1, §6): a line-oriented, indentation-significant text format
// describing actors and the actions they exchange.
//
// Parsing is total: on failure Parse returns a *depicterrors.ParseError and
// no partial AST, per spec.md §4.1.
package dsl

import "github.com/depictlang/depict/pkg/depicterrors"

// Program is the root of the parsed AST: an ordered sequence of statements.
type Program struct {
	Statements []Statement
}

// Ident is a single actor name token.
type Ident struct {
	Name string
	Span depicterrors.Span
}

// Action is one action item: a label, with an optional response label
// signalling a reply arrow drawn back (spec.md §3 "Action").
type Action struct {
	Label       string
	Response    string
	HasResponse bool
	Span        depicterrors.Span
}

// Statement is one actor-sequence declaration with its action list
// (spec.md §3 "Statement"). Level and Parent encode the hierarchy the
// indentation (or leading `|` markers) establishes.
type Statement struct {
	Actors  []Ident
	Actions []Action
	Level   int // 0 = top level, increases with each nesting step
	Parent  int // index into Program.Statements of the enclosing statement, -1 if none
	Span    depicterrors.Span
}
