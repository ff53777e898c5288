// Package dsl implements the tag-template engine tasks use to render
// scripts and program arguments: positional/keyword/env references, string
// literals, function calls, slicing and the optional marker.
package dsl

import "github.com/kballard/go-shellquote"

// EscapeMode controls how rendered values are quoted in script mode.
type EscapeMode int

const (
	// EscapeAlways wraps every rendered value in double quotes.
	EscapeAlways EscapeMode = iota
	// EscapeSpaces wraps a value in double quotes only if it contains a space.
	EscapeSpaces
	// EscapeNever never wraps a value.
	EscapeNever
)

// ParseEscapeMode parses the config-file spelling of an escape mode.
func ParseEscapeMode(s string) (EscapeMode, bool) {
	switch s {
	case "always", "Always":
		return EscapeAlways, true
	case "spaces", "Spaces":
		return EscapeSpaces, true
	case "never", "Never":
		return EscapeNever, true
	}
	return EscapeNever, false
}

func quote(mode EscapeMode, s string) string {
	switch mode {
	case EscapeAlways:
		return shellquote.Join(s)
	case EscapeSpaces:
		for _, r := range s {
			if r == ' ' || r == '\t' {
				return shellquote.Join(s)
			}
		}
		return s
	default:
		return s
	}
}

// ValueKind distinguishes the two shapes a DSL expression can evaluate to.
type ValueKind int

const (
	KindString ValueKind = iota
	KindVector
)

// Value is the tagged union every expression evaluates to: either a single
// string or a vector of strings.
type Value struct {
	Kind ValueKind
	Str  string
	Vec  []string
}

// String builds a string-kind value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Vector builds a vector-kind value.
func Vector(v []string) Value { return Value{Kind: KindVector, Vec: v} }

// Len returns the character length for a string value, or element count for a vector.
func (v Value) Len() int {
	if v.Kind == KindString {
		return len([]rune(v.Str))
	}
	return len(v.Vec)
}

// IsEmpty reports whether the value carries no content.
func (v Value) IsEmpty() bool {
	if v.Kind == KindString {
		return v.Str == ""
	}
	return len(v.Vec) == 0
}

// renderScriptPiece renders a value as it would appear inline in a script,
// with each vector element quoted per policy and space-joined.
func renderScriptPiece(v Value, mode EscapeMode) string {
	if v.Kind == KindString {
		return quote(mode, v.Str)
	}
	out := ""
	for i, s := range v.Vec {
		if i > 0 {
			out += " "
		}
		out += quote(mode, s)
	}
	return out
}
