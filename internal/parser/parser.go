// Package parser converts raw command-line arguments into key/value commands
// according to a configurable rule set of prefixes and separators.
package parser

import (
	"iter"
	"strings"

	"slade/internal/cmderr"
	"slade/internal/logger"
	"slade/internal/stringprocessing"
)

// multipleValuesSeparator splits a command value into several values.
const multipleValuesSeparator = ";"

// Parser parses arguments using its own mutable rule set.
type Parser struct {
	rules RuleSet
}

// New creates a parser configured with the Windows profile.
func New() *Parser {
	return &Parser{rules: WindowsProfile()}
}

// NewWithRules creates a parser configured with rules.
func NewWithRules(rules RuleSet) *Parser {
	return &Parser{rules: rules}
}

// RuleSet returns the working rule set for in-place configuration.
func (p *Parser) RuleSet() *RuleSet {
	return &p.rules
}

// SetRuleSet replaces the working rule set.
func (p *Parser) SetRuleSet(rules RuleSet) {
	p.rules = rules
}

// Parse returns a lazy, single-pass sequence with one Result per recognized
// argument, in input order. Arguments that do not start with a configured
// prefix are dropped. The rule set is read when iteration starts.
func (p *Parser) Parse(arguments []string) (iter.Seq[*Result], error) {
	if arguments == nil {
		return nil, cmderr.InvalidArgument("arguments")
	}

	return func(yield func(*Result) bool) {
		rules := p.rules
		ctx := NewContext(&rules)
		for _, argument := range arguments {
			result, ok := parseArgument(ctx, argument)
			if !ok {
				logger.Debug("Skipping argument", "argument", argument)
				continue
			}
			if !yield(result) {
				return
			}
		}
	}, nil
}

// ParseAll parses arguments and collects every result.
func (p *Parser) ParseAll(arguments []string) ([]*Result, error) {
	seq, err := p.Parse(arguments)
	if err != nil {
		return nil, err
	}
	var results []*Result
	for result := range seq {
		results = append(results, result)
	}
	return results, nil
}

func parseArgument(ctx *Context, argument string) (*Result, bool) {
	if !isCommand(ctx, argument) {
		return nil, false
	}

	command := stringprocessing.TrimPrefixAny(argument, ctx.Prefixes())
	result := &Result{
		Key:   extractKey(ctx, command),
		Value: extractValue(ctx, command),
	}
	logger.Debug("Parsed argument", "argument", argument, "command", result.Key, "kind", result.Value.Kind())
	return result, true
}

func isCommand(ctx *Context, argument string) bool {
	return stringprocessing.StartsWithAny(argument, ctx.Prefixes())
}

// extractKey returns the text before the first separator of the prefix-trimmed command.
func extractKey(ctx *Context, command string) string {
	index, _ := stringprocessing.IndexOfAny(command, ctx.Separators())
	if index < 0 {
		return command
	}
	return command[:index]
}

// extractValue returns the text after the first separator of the
// prefix-trimmed command, split on the multi-value delimiter when present.
func extractValue(ctx *Context, command string) Value {
	index, separator := stringprocessing.IndexOfAny(command, ctx.Separators())
	if index < 0 {
		return NoValue()
	}

	value := command[index+len(separator):]
	if !strings.Contains(value, multipleValuesSeparator) {
		return SingleValue(value)
	}

	parts := strings.Split(value, multipleValuesSeparator)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			values = append(values, part)
		}
	}
	return MultipleValues(values)
}
