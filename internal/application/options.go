package application

import (
	"fmt"
	"strings"

	"slade/internal/cmderr"
	"slade/internal/commands"
	"slade/internal/conversion"
	"slade/internal/output"
	"slade/internal/parser"
)

// ErrorMode decides what dispatch does after a command fails.
type ErrorMode int

const (
	// ErrorModeAbort stops dispatch at the first failing command.
	ErrorModeAbort ErrorMode = iota
	// ErrorModeContinue runs the remaining commands and reports every failure.
	ErrorModeContinue
)

func (m ErrorMode) String() string {
	switch m {
	case ErrorModeAbort:
		return "abort"
	case ErrorModeContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// ParseErrorMode converts a configured mode name. An empty name means abort.
func ParseErrorMode(name string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "abort":
		return ErrorModeAbort, nil
	case "continue":
		return ErrorModeContinue, nil
	default:
		return ErrorModeAbort, fmt.Errorf("%w: unknown error mode %q", cmderr.ErrInvalidArgument, name)
	}
}

// Option configures an Application.
type Option func(*Application)

// WithRules adjusts the parser rule set before any argument is parsed.
func WithRules(configure func(rules *parser.RuleSet)) Option {
	return func(a *Application) {
		if configure != nil {
			configure(a.parser.RuleSet())
		}
	}
}

// WithCommands adds a function that registers commands when the application
// first runs.
func WithCommands(register func(registrar *commands.Registrar) error) Option {
	return func(a *Application) {
		if register != nil {
			a.setups = append(a.setups, register)
		}
	}
}

// WithConverters adjusts the converter factory shared by lookups and commands.
func WithConverters(configure func(factory *conversion.Factory)) Option {
	return func(a *Application) {
		if configure != nil {
			configure(a.converters)
		}
	}
}

// WithPrinter sets the printer used for user-facing messages.
func WithPrinter(printer *output.Printer) Option {
	return func(a *Application) {
		if printer != nil {
			a.printer = printer
		}
	}
}

// WithErrorMode sets the dispatch error mode.
func WithErrorMode(mode ErrorMode) Option {
	return func(a *Application) {
		a.errorMode = mode
	}
}
