package output

import "io"

// Option configures a Printer.
type Option func(*Printer)

// WithStyles colours output through provider while it is available.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil {
			p.styleProvider = provider
		}
	}
}

// WithWriter sends output to writer instead of os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// WithMode selects auto, plain or JSON rendering.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
	}
}

// TestMode gives deterministic plain output.
func TestMode() Option {
	return WithMode(ModePlain)
}

// Silent suppresses all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}
