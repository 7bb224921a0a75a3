// Package launcher implements the run application: programs are registered
// under a name and later launched by that name.
package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"slade/internal/application"
	"slade/internal/cmderr"
	"slade/internal/commands"
	"slade/internal/conversion"
	"slade/internal/logger"
	"slade/internal/output"
	"slade/internal/parser"
)

// Command names.
const (
	CommandRegister   = "register"
	CommandLaunch     = "launch"
	CommandUnregister = "unregister"
	CommandList       = "list"
	CommandExport     = "export"
)

// Launcher owns the run commands.
type Launcher struct {
	registrations *Registrations
	starter       Starter
	printer       *output.Printer
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStarter replaces the process starter.
func WithStarter(starter Starter) Option {
	return func(l *Launcher) {
		if starter != nil {
			l.starter = starter
		}
	}
}

// WithPrinter sets the printer for command feedback.
func WithPrinter(printer *output.Printer) Option {
	return func(l *Launcher) {
		if printer != nil {
			l.printer = printer
		}
	}
}

// New creates a launcher working on registrations.
func New(registrations *Registrations, options ...Option) *Launcher {
	l := &Launcher{
		registrations: registrations,
		starter:       ExecStarter{},
		printer:       output.GetGlobalPrinter(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Rules configures "/name=value" arguments with ";" separated values.
func Rules(rules *parser.RuleSet) {
	rules.AllowMultipleValues = true
	rules.AllowSwitches = false
	rules.Prefixes = parser.PrefixForwardSlash
	rules.Separators = parser.SeparatorEquals
}

// Options returns the application options that install the run grammar and commands.
func (l *Launcher) Options(ctx context.Context) []application.Option {
	return []application.Option{
		application.WithRules(Rules),
		application.WithPrinter(l.printer),
		application.WithConverters(func(f *conversion.Factory) {
			conversion.Register(f, func() conversion.Converter[bool] { return conversion.BoolConverter{} })
		}),
		application.WithCommands(l.Commands(ctx)),
	}
}

// Commands returns a function registering the run commands. Launches started
// by the returned commands observe ctx.
func (l *Launcher) Commands(ctx context.Context) func(*commands.Registrar) error {
	return func(registrar *commands.Registrar) error {
		if err := commands.Register(registrar, CommandRegister, l.register); err != nil {
			return err
		}
		if err := commands.Register(registrar, CommandLaunch, func(name string) error {
			return l.launch(ctx, name)
		}); err != nil {
			return err
		}
		if err := commands.Register(registrar, CommandUnregister, l.unregister); err != nil {
			return err
		}
		if err := commands.Register(registrar, CommandExport, l.export); err != nil {
			return err
		}
		if !conversion.Supports[bool](registrar.Converters()) {
			logger.Debug("No bool converter registered, list command unavailable")
			return nil
		}
		return commands.Register(registrar, CommandList, l.list)
	}
}

func (l *Launcher) register(parameters []string) error {
	if len(parameters) != 2 {
		l.printer.Messagef(output.Error,
			"Invalid number of values specified for command registration. Please specify the name and program path.")
		return nil
	}

	name, path := parameters[0], parameters[1]
	if name == "" {
		return cmderr.InvalidArgument("registration name")
	}
	if path == "" {
		return cmderr.InvalidArgument("program path")
	}

	if l.registrations.Has(name) {
		l.printer.Messagef(output.Warning,
			"A program has already been registered under the name '%s' and will be overridden.", name)
	}

	l.registrations.Set(name, path)
	l.printer.Messagef(output.Information,
		"A registration has been successfully made under '%s' for the path '%s'.", name, path)
	return nil
}

func (l *Launcher) launch(ctx context.Context, name string) error {
	path, ok := l.registrations.Get(name)
	if !ok {
		l.printer.Messagef(output.Warning, "No registration exists under the name '%s'.", name)
		return nil
	}

	logger.Debug("Launching program", "name", name, "path", path)
	return l.starter.Start(ctx, path)
}

func (l *Launcher) unregister(name string) error {
	if !l.registrations.Delete(name) {
		l.printer.Messagef(output.Warning, "No registration exists under the name '%s'.", name)
		return nil
	}

	l.printer.Messagef(output.Information, "The registration under '%s' has been removed.", name)
	return nil
}

func (l *Launcher) list(show bool) error {
	if !show {
		return nil
	}
	if l.registrations.Len() == 0 {
		l.printer.Messagef(output.Information, "No programs have been registered.")
		return nil
	}

	for _, registration := range l.registrations.Sorted() {
		l.printer.Println(fmt.Sprintf("%s => %s", registration.Name, registration.Path))
	}
	return nil
}

type exportDocument struct {
	Registrations []Registration `yaml:"registrations"`
}

func (l *Launcher) export(path string) error {
	data, err := yaml.Marshal(exportDocument{Registrations: l.registrations.Entries()})
	if err != nil {
		return fmt.Errorf("failed to encode registrations: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	l.printer.Messagef(output.Information, "Exported %d registrations to '%s'.", l.registrations.Len(), path)
	return nil
}
