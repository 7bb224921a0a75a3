// Package conversion turns raw parsed command values into the typed values
// command handlers declare. Converters are stateless; a Factory keeps one
// lazily built instance per target type.
package conversion

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"slade/internal/cmderr"
)

// MultipleValuesSeparator joins a multi-value raw value back into one string.
const MultipleValuesSeparator = ";"

// Converter converts a raw value into a T.
type Converter[T any] interface {
	Convert(value any) (T, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc[T any] func(value any) (T, error)

// Convert calls f(value).
func (f ConverterFunc[T]) Convert(value any) (T, error) {
	return f(value)
}

// convertDirect rejects absent values, returns values that already are a T
// unchanged and hands everything else to core.
func convertDirect[T any](value any, core func(any) (T, error)) (T, error) {
	var zero T
	if value == nil {
		return zero, cmderr.InvalidArgument("value")
	}
	if direct, ok := value.(T); ok {
		return direct, nil
	}
	return core(value)
}

func notSupported[T any](value any) error {
	var zero T
	return fmt.Errorf("%w: cannot convert %T to %T", cmderr.ErrNotSupported, value, zero)
}

// StringConverter stringifies any value. Numbers use invariant formatting.
type StringConverter struct{}

// Convert implements Converter.
func (StringConverter) Convert(value any) (string, error) {
	return convertDirect(value, func(value any) (string, error) {
		if values, ok := value.([]string); ok {
			return strings.Join(values, MultipleValuesSeparator), nil
		}
		if s, err := cast.ToStringE(value); err == nil {
			return s, nil
		}
		return fmt.Sprint(value), nil
	})
}

// StringSliceConverter only accepts values that already are a []string.
type StringSliceConverter struct{}

// Convert implements Converter.
func (StringSliceConverter) Convert(value any) ([]string, error) {
	return convertDirect(value, func(value any) ([]string, error) {
		return nil, notSupported[[]string](value)
	})
}

// BoolConverter reads switch-style commands: an absent value means the switch
// is present, a single value is parsed as a boolean.
type BoolConverter struct{}

// Convert implements Converter.
func (BoolConverter) Convert(value any) (bool, error) {
	if value == nil {
		return true, nil
	}
	return convertDirect(value, func(value any) (bool, error) {
		if _, ok := value.([]string); ok {
			return false, notSupported[bool](value)
		}
		b, err := cast.ToBoolE(value)
		if err != nil {
			return false, fmt.Errorf("%w: %v", cmderr.ErrNotSupported, err)
		}
		return b, nil
	})
}
