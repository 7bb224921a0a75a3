package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes semantic console messages, styled when a provider is available.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to os.Stdout unless configured otherwise.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Println outputs text and a newline without styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text)
}

// Messagef writes a message coloured by its type. The format is only
// interpreted when args are given, so literal text may contain '%'.
func (p *Printer) Messagef(messageType MessageType, format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	p.output(messageType.Semantic(), text)
}

// Mode returns the rendering mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// IsStylable returns true if the printer will colour its output.
func (p *Printer) IsStylable() bool {
	return p.mode == ModeAuto && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func (p *Printer) output(semantic SemanticType, text string) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	if p.mode == ModeJSON {
		finalText = renderJSON(semantic, text)
	} else {
		finalText = p.renderText(semantic, text)
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

func (p *Printer) renderText(semantic SemanticType, text string) string {
	var style TextStyle
	if p.IsStylable() {
		style = p.styleProvider.GetStyle(string(semantic))
	} else {
		style = NewPlainStyleProvider().GetStyle(string(semantic))
	}

	result := style.Render(text)
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

func renderJSON(semantic SemanticType, text string) string {
	jsonBytes, err := json.Marshal(map[string]interface{}{
		"type":    semantic,
		"message": text,
	})
	if err != nil {
		return text + "\n"
	}
	return string(jsonBytes) + "\n"
}
