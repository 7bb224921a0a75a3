package output

import "sync"

var (
	globalPrinter *Printer
	globalMu      sync.RWMutex
)

func init() {
	globalPrinter = NewPrinter(WithStyles(NewConsoleStyles()))
}

// GetGlobalPrinter returns the current global printer.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal rebuilds the global printer with the console styles and
// the given options, and returns it.
func ConfigureGlobal(options ...Option) *Printer {
	printer := NewPrinter(append([]Option{WithStyles(NewConsoleStyles())}, options...)...)

	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = printer
	return printer
}

// Fail outputs error text using the global printer.
func Fail(text string) {
	GetGlobalPrinter().Error(text)
}
