package parser

import (
	"iter"
	"slices"

	"slade/internal/cmderr"
	"slade/internal/conversion"
	"slade/internal/stringprocessing"
)

// ResultSet holds the commands of one parse pass and indexes them by key.
// Keys compare case-insensitively and the last command with a key wins the
// index; every command stays in the ordered sequence.
type ResultSet struct {
	converters *conversion.Factory
	results    []*Result
	keyed      map[string]*Result
}

// NewResultSet consumes commands once and indexes them.
func NewResultSet(converters *conversion.Factory, commands iter.Seq[*Result]) (*ResultSet, error) {
	if converters == nil {
		return nil, cmderr.InvalidArgument("converters")
	}
	if commands == nil {
		return nil, cmderr.InvalidArgument("commands")
	}

	s := &ResultSet{
		converters: converters,
		keyed:      make(map[string]*Result),
	}
	for result := range commands {
		s.results = append(s.results, result)
		s.keyed[stringprocessing.FoldKey(result.Key)] = result
	}
	return s, nil
}

// All iterates the commands in parse order.
func (s *ResultSet) All() iter.Seq[*Result] {
	return slices.Values(s.results)
}

// Results returns a copy of the commands in parse order.
func (s *ResultSet) Results() []*Result {
	return slices.Clone(s.results)
}

// Len returns the number of commands, duplicates included.
func (s *ResultSet) Len() int {
	return len(s.results)
}

// Get returns the last command parsed under key.
func (s *ResultSet) Get(key string) (*Result, bool) {
	result, ok := s.keyed[stringprocessing.FoldKey(key)]
	return result, ok
}

// Lookup converts the value of the last command parsed under key into a T.
// It reports false with a zero T when no command has that key.
func Lookup[T any](s *ResultSet, key string) (T, bool, error) {
	var zero T
	if key == "" {
		return zero, false, cmderr.InvalidArgument("key")
	}

	result, ok := s.Get(key)
	if !ok {
		return zero, false, nil
	}

	value, err := conversion.Convert[T](s.converters, result.Value.Raw())
	if err != nil {
		return zero, true, err
	}
	return value, true, nil
}
