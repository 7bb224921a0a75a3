// Package application hosts a console application: it loads the application
// context, parses the command line, dispatches registered commands and saves
// the context again.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"slade/internal/cmderr"
	"slade/internal/commands"
	"slade/internal/conversion"
	"slade/internal/logger"
	"slade/internal/output"
	"slade/internal/parser"
	"slade/internal/stringprocessing"
)

// HelpCommand is the pseudo-command that lists the supported commands.
const HelpCommand = "help"

// Context is the persistent state of an application, loaded when the
// application is created and saved at the end of every run.
type Context interface {
	Load() error
	Save() error
}

// Application parses arguments and dispatches them to registered commands.
type Application struct {
	name      string
	context   Context
	arguments []string

	converters *conversion.Factory
	parser     *parser.Parser
	registrar  *commands.Registrar
	printer    *output.Printer
	errorMode  ErrorMode

	setups      []func(*commands.Registrar) error
	initialized bool
	results     *parser.ResultSet
}

// New creates an application and loads its context.
func New(name string, appContext Context, arguments []string, options ...Option) (*Application, error) {
	if appContext == nil {
		return nil, cmderr.InvalidArgument("context")
	}
	if arguments == nil {
		return nil, cmderr.InvalidArgument("arguments")
	}

	converters := conversion.NewFactory()
	a := &Application{
		name:       name,
		context:    appContext,
		arguments:  arguments,
		converters: converters,
		parser:     parser.New(),
		registrar:  commands.NewRegistrar(converters),
		printer:    output.GetGlobalPrinter(),
		errorMode:  ErrorModeAbort,
	}

	for _, opt := range options {
		opt(a)
	}

	if err := a.context.Load(); err != nil {
		return nil, fmt.Errorf("failed to load application context: %w", err)
	}
	return a, nil
}

// Name returns the application name.
func (a *Application) Name() string {
	return a.name
}

// Registrar returns the command registrar.
func (a *Application) Registrar() *commands.Registrar {
	return a.registrar
}

// RuleSet returns the parser rule set the application parses with.
func (a *Application) RuleSet() parser.RuleSet {
	return *a.parser.RuleSet()
}

// Results returns the parsed commands, or nil before the first Run.
func (a *Application) Results() *parser.ResultSet {
	return a.results
}

// Run registers the commands on first use, parses the arguments, dispatches
// every registered command and saves the context. The context is saved even
// when parsing or dispatch fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.initialize(); err != nil {
		a.printer.Messagef(output.Error, "Failed to initialize application:\n%v", err)
		return err
	}

	var runErr error
	if err := a.ensureArgumentsParsed(); err != nil {
		a.printer.Messagef(output.Error, "Failed to parse command-line arguments:\n%v", err)
		runErr = err
	} else if err := a.runCore(ctx); err != nil {
		a.printer.Messagef(output.Error, "Application execution failed:\n%v", err)
		runErr = err
	}

	if err := a.context.Save(); err != nil {
		a.printer.Messagef(output.Error, "Failed to save application context:\n%v", err)
		runErr = errors.Join(runErr, fmt.Errorf("failed to save application context: %w", err))
	}
	return runErr
}

func (a *Application) initialize() error {
	if a.initialized {
		return nil
	}

	for _, setup := range a.setups {
		if err := setup(a.registrar); err != nil {
			return fmt.Errorf("failed to register commands for %s: %w", a.name, err)
		}
	}

	logger.Debug("Application initialized", "name", a.name, "commands", a.registrar.Len())
	a.initialized = true
	return nil
}

func (a *Application) ensureArgumentsParsed() error {
	if a.results != nil {
		return nil
	}

	seq, err := a.parser.Parse(a.arguments)
	if err != nil {
		return err
	}
	results, err := parser.NewResultSet(a.converters, seq)
	if err != nil {
		return err
	}

	a.results = results
	return nil
}

func (a *Application) runCore(ctx context.Context) error {
	a.checkHelpCommand()
	return a.dispatch(ctx)
}

// checkHelpCommand prints the sorted command names when help was requested,
// either as a key or as the value of a key-less command.
func (a *Application) checkHelpCommand() {
	requested := false
	for result := range a.results.All() {
		if isHelp(result) {
			result.Handled = true
			requested = true
		}
	}
	if !requested {
		return
	}

	a.printer.Messagef(output.Information, "Supported commands: %s", strings.Join(a.registrar.SortedNames(), ", "))
}

func isHelp(result *parser.Result) bool {
	name := result.Key
	if name == "" {
		name, _ = result.Value.Single()
	}
	return stringprocessing.FoldKey(name) == HelpCommand
}

func (a *Application) dispatch(ctx context.Context) error {
	var failures []error

	for result := range a.results.All() {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}

		registration, ok := a.registrar.Get(result.Key)
		if !ok {
			logger.Debug("Skipping unregistered command", "key", result.Key)
			continue
		}

		err := registration.Execute(result)
		result.Handled = true
		if err == nil {
			continue
		}

		if a.errorMode == ErrorModeAbort {
			return err
		}
		logger.Warn("Command failed, continuing", "command", registration.Name(), "error", err)
		failures = append(failures, err)
	}

	return errors.Join(failures...)
}
