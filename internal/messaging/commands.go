package messaging

import (
	"context"
	"fmt"
	"strings"

	"slade/internal/application"
	"slade/internal/cmderr"
	"slade/internal/commands"
	"slade/internal/conversion"
	"slade/internal/parser"
)

// Command names.
const (
	CommandListen = "listen"
	CommandSend   = "send"
)

// Rules configures "/name=value" arguments.
func Rules(rules *parser.RuleSet) {
	rules.AllowMultipleValues = false
	rules.AllowSwitches = false
	rules.Prefixes = parser.PrefixForwardSlash
	rules.Separators = parser.SeparatorEquals
}

// Options returns the application options that install the communicate
// grammar and commands.
func (n *Node) Options(ctx context.Context) []application.Option {
	return []application.Option{
		application.WithRules(Rules),
		application.WithPrinter(n.printer),
		application.WithCommands(n.Commands(ctx)),
	}
}

// Commands returns a function registering listen and send. Both run until
// done or until ctx is cancelled.
func (n *Node) Commands(ctx context.Context) func(*commands.Registrar) error {
	return func(registrar *commands.Registrar) error {
		if err := commands.Register(registrar, CommandListen, func(addr string) error {
			return n.Listen(ctx, addr)
		}); err != nil {
			return err
		}
		return commands.Register(registrar, CommandSend, func(value string) error {
			target, body, err := splitSendValue(value)
			if err != nil {
				return err
			}
			return n.Send(ctx, target, body)
		})
	}
}

// splitSendValue splits "<peer>;<message>" at the first delimiter. The
// parser splits multi-values on the same delimiter, dropping empty parts, and
// the string converter joins the rest back. The message keeps single inner
// delimiters, but repeated and trailing ones are lost: "a;;b;" arrives as "a;b".
func splitSendValue(value string) (string, string, error) {
	target, body, ok := strings.Cut(value, conversion.MultipleValuesSeparator)
	if !ok || body == "" {
		return "", "", fmt.Errorf("%w: send expects <peer>%s<message>", cmderr.ErrInvalidArgument, conversion.MultipleValuesSeparator)
	}
	return target, body, nil
}
