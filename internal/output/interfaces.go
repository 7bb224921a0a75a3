// Package output provides colour-coded console output for the command-line
// applications. Styling is injected through a StyleProvider so that tests and
// non-terminal sinks fall back to plain text.
package output

import (
	"fmt"
	"strings"

	"slade/internal/cmderr"
)

// StyleProvider supplies the TextStyle for a semantic type.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type
	// ("info", "warning", "error", ...).
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the provider can style output right now.
	IsAvailable() bool
}

// TextStyle renders text with styling.
type TextStyle interface {
	Render(text string) string
}

// Mode defines the output modes a Printer can operate in.
type Mode int

const (
	// ModeAuto styles output when a provider is available.
	ModeAuto Mode = iota

	// ModePlain forces plain text output.
	ModePlain

	// ModeJSON writes one JSON object per message.
	ModeJSON
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseMode converts a configured mode name. An empty name is ModeAuto.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ModeAuto, nil
	case "plain":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModeAuto, fmt.Errorf("%w: unknown output mode %q", cmderr.ErrInvalidArgument, name)
	}
}

// SemanticType defines the meaning of a piece of output for styling.
type SemanticType string

const (
	// SemanticPlain represents text without semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
)

// MessageType is the kind of console message, which decides its colour.
type MessageType int

const (
	// Information is an informative message.
	Information MessageType = iota
	// Warning highlights a problem that did not stop the command.
	Warning
	// Error is a critical error message.
	Error
)

// Semantic returns the semantic type used to render the message type.
func (m MessageType) Semantic() SemanticType {
	switch m {
	case Information:
		return SemanticInfo
	case Warning:
		return SemanticWarning
	case Error:
		return SemanticError
	default:
		return SemanticPlain
	}
}

func (m MessageType) String() string {
	switch m {
	case Information:
		return "information"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
