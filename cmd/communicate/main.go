// Package main provides the communicate application entry point.
// communicate runs one node of a simple peer-to-peer messaging network.
package main

import (
	"context"
	"os"

	"slade/internal/application"
	"slade/internal/cli"
	"slade/internal/config"
	"slade/internal/messaging"
)

func main() {
	root := cli.NewRootCommand(cli.Spec{
		Name:  "communicate",
		Short: "Send and receive messages between peers",
		Long: `communicate is one node of a peer-to-peer messaging network.

  communicate /listen=<host:port>             receive messages until interrupted
  communicate /send=<peer>;<message>          send one message to a peer
  communicate /help                           list the supported commands`,
		Setup: setup,
	})
	os.Exit(cli.Execute(root, os.Args[1:]))
}

func setup(ctx context.Context, _ *config.Settings) (application.Context, []application.Option, error) {
	node := messaging.NewNode()
	return messaging.NewContext(), node.Options(ctx), nil
}
