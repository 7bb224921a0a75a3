// Package commands binds command names to typed handlers and dispatches parsed
// command-line results to them.
package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"slade/internal/cmderr"
	"slade/internal/conversion"
	"slade/internal/logger"
	"slade/internal/parser"
	"slade/internal/stringprocessing"
)

// Registration is a named command that can execute a parsed result.
type Registration interface {
	Name() string
	Execute(result *parser.Result) error
}

type registration[T any] struct {
	name      string
	converter conversion.Converter[T]
	handler   func(T) error
}

func (r *registration[T]) Name() string {
	return r.name
}

// Execute converts the result value and invokes the handler. Handler failures,
// panics included, come back as *cmderr.ExecutionError.
func (r *registration[T]) Execute(result *parser.Result) (err error) {
	if result == nil {
		return cmderr.InvalidArgument("result")
	}

	value, err := r.converter.Convert(result.Value.Raw())
	if err != nil {
		return fmt.Errorf("command %q: %w", r.name, err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = &cmderr.ExecutionError{Command: r.name, Err: fmt.Errorf("panic: %v", recovered)}
		}
	}()

	logger.CommandExecution(r.name, result.Value.String())
	if handlerErr := r.handler(value); handlerErr != nil {
		return &cmderr.ExecutionError{Command: r.name, Err: handlerErr}
	}
	return nil
}

// Registrar manages command registration and lookup. Names compare
// case-insensitively and registering a name again replaces the previous handler.
type Registrar struct {
	mu            sync.RWMutex
	converters    *conversion.Factory
	registrations map[string]Registration
}

// NewRegistrar creates an empty registrar converting values through converters.
func NewRegistrar(converters *conversion.Factory) *Registrar {
	if converters == nil {
		converters = conversion.NewFactory()
	}
	return &Registrar{
		converters:    converters,
		registrations: make(map[string]Registration),
	}
}

// Converters returns the factory used to bind handler value types.
func (r *Registrar) Converters() *conversion.Factory {
	return r.converters
}

// Register binds handler to name. The converter for T is resolved now, so an
// unsupported value type fails here rather than at dispatch.
func Register[T any](r *Registrar, name string, handler func(T) error) error {
	if name == "" {
		return cmderr.InvalidArgument("name")
	}
	if handler == nil {
		return cmderr.InvalidArgument("handler")
	}

	converter, err := conversion.Create[T](r.converters)
	if err != nil {
		return fmt.Errorf("command %q: %w", name, err)
	}

	r.add(&registration[T]{
		name:      name,
		converter: converter,
		handler:   handler,
	})
	return nil
}

// Add stores a prebuilt registration, replacing any registration with the same name.
func (r *Registrar) Add(reg Registration) error {
	if reg == nil {
		return cmderr.InvalidArgument("registration")
	}
	if reg.Name() == "" {
		return cmderr.InvalidArgument("name")
	}
	r.add(reg)
	return nil
}

func (r *Registrar) add(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := stringprocessing.FoldKey(reg.Name())
	if _, exists := r.registrations[key]; exists {
		logger.Debug("Replacing command registration", "name", reg.Name())
	}
	r.registrations[key] = reg
}

// Unregister removes the registration for name if present.
func (r *Registrar) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registrations, stringprocessing.FoldKey(name))
}

// Names returns the registered command names in no particular order.
func (r *Registrar) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.registrations))
	for reg := range maps.Values(r.registrations) {
		names = append(names, reg.Name())
	}
	return names
}

// SortedNames returns the registered command names sorted for display.
func (r *Registrar) SortedNames() []string {
	names := r.Names()
	slices.Sort(names)
	return names
}

// Get retrieves the registration for name.
func (r *Registrar) Get(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[stringprocessing.FoldKey(name)]
	return reg, ok
}

// Has reports whether a command is registered under name.
func (r *Registrar) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of registered commands.
func (r *Registrar) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registrations)
}

// Execute dispatches result to the command registered under its key.
func (r *Registrar) Execute(result *parser.Result) error {
	if result == nil {
		return cmderr.InvalidArgument("result")
	}

	reg, ok := r.Get(result.Key)
	if !ok {
		return fmt.Errorf("%w: unknown command %q", cmderr.ErrNotFound, result.Key)
	}
	return reg.Execute(result)
}
