package parser

import (
	"fmt"
	"strings"
)

// ValueKind tells which form a parsed value takes.
type ValueKind int

const (
	// ValueAbsent marks a key-only (switch) command.
	ValueAbsent ValueKind = iota
	// ValueSingle marks a command carrying one string.
	ValueSingle
	// ValueMultiple marks a command carrying an ordered list of strings.
	ValueMultiple
)

func (k ValueKind) String() string {
	switch k {
	case ValueAbsent:
		return "absent"
	case ValueSingle:
		return "single"
	case ValueMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// Value is the raw value of a parsed command: absent, one string or several.
type Value struct {
	kind     ValueKind
	single   string
	multiple []string
}

// NoValue returns an absent value.
func NoValue() Value { return Value{} }

// SingleValue returns a value holding one string.
func SingleValue(s string) Value { return Value{kind: ValueSingle, single: s} }

// MultipleValues returns a value holding an ordered list of strings.
func MultipleValues(values []string) Value {
	return Value{kind: ValueMultiple, multiple: values}
}

// Kind returns the form of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the command carried no value.
func (v Value) IsAbsent() bool { return v.kind == ValueAbsent }

// Single returns the string of a single value.
func (v Value) Single() (string, bool) { return v.single, v.kind == ValueSingle }

// Multiple returns the strings of a multiple value.
func (v Value) Multiple() ([]string, bool) { return v.multiple, v.kind == ValueMultiple }

// Raw returns nil, a string or a []string depending on the kind.
func (v Value) Raw() any {
	switch v.kind {
	case ValueSingle:
		return v.single
	case ValueMultiple:
		return v.multiple
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case ValueSingle:
		return v.single
	case ValueMultiple:
		return strings.Join(v.multiple, multipleValuesSeparator)
	default:
		return ""
	}
}

// Result is one command recognized on the command line.
type Result struct {
	Key   string
	Value Value
	// Handled is set by consumers once the command has been acted on.
	Handled bool
}

// HasValue reports whether the command carried a value.
func (r *Result) HasValue() bool { return !r.Value.IsAbsent() }

func (r *Result) String() string {
	if !r.HasValue() {
		return r.Key
	}
	return fmt.Sprintf("%s=%s", r.Key, r.Value)
}
