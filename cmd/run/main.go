// Package main provides the run application entry point.
// run registers programs under short names and launches them by name.
package main

import (
	"context"
	"os"

	"slade/internal/application"
	"slade/internal/cli"
	"slade/internal/config"
	"slade/internal/launcher"
)

func main() {
	root := cli.NewRootCommand(cli.Spec{
		Name:  "run",
		Short: "Register programs and launch them by name",
		Long: `run keeps a registry of programs under short names.

  run /register=<name>;<path>   register or replace a program
  run /launch=<name>            start a registered program
  run /unregister=<name>        remove a registration
  run /list                     show every registration
  run /export=<file.yaml>       write the registry as YAML
  run /help                     list the supported commands`,
		Setup: setup,
	})
	os.Exit(cli.Execute(root, os.Args[1:]))
}

func setup(ctx context.Context, settings *config.Settings) (application.Context, []application.Option, error) {
	fileContext, err := launcher.NewFileContext(settings.DataPath)
	if err != nil {
		return nil, nil, err
	}
	l := launcher.New(fileContext.Registrations())
	return fileContext, l.Options(ctx), nil
}
