package conversion

import (
	"fmt"
	"reflect"
	"sync"

	"slade/internal/cmderr"
)

// Factory maps a target type to a lazily constructed converter singleton.
type Factory struct {
	mu            sync.RWMutex
	registrations map[reflect.Type]*registration
}

type registration struct {
	once     sync.Once
	create   func() any
	instance any
}

func (r *registration) get() any {
	r.once.Do(func() {
		r.instance = r.create()
	})
	return r.instance
}

// NewFactory creates a factory with the string and []string converters registered.
func NewFactory() *Factory {
	f := &Factory{
		registrations: make(map[reflect.Type]*registration),
	}
	Register(f, func() Converter[string] { return StringConverter{} })
	Register(f, func() Converter[[]string] { return StringSliceConverter{} })
	return f
}

// Register installs the converter constructor for T, replacing any previous one.
// The constructor runs on the first Create for T.
func Register[T any](f *Factory, create func() Converter[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.registrations[reflect.TypeFor[T]()] = &registration{
		create: func() any { return create() },
	}
}

// Create returns the converter registered for exactly T.
func Create[T any](f *Factory) (Converter[T], error) {
	target := reflect.TypeFor[T]()

	f.mu.RLock()
	reg, ok := f.registrations[target]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no converter registered for type %s", cmderr.ErrNotSupported, target)
	}

	converter, ok := reg.get().(Converter[T])
	if !ok || converter == nil {
		return nil, fmt.Errorf("%w: converter registered for type %s could not be created", cmderr.ErrNotSupported, target)
	}
	return converter, nil
}

// Supports reports whether a converter is registered for T.
func Supports[T any](f *Factory) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.registrations[reflect.TypeFor[T]()]
	return ok
}

// Convert looks up the converter for T and applies it to value.
func Convert[T any](f *Factory, value any) (T, error) {
	converter, err := Create[T](f)
	if err != nil {
		var zero T
		return zero, err
	}
	return converter.Convert(value)
}
