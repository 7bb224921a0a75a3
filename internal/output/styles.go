package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ConsoleStyles colours messages by type: information cyan, warning yellow,
// error red. It is unavailable on terminals without colour support.
type ConsoleStyles struct {
	styles map[SemanticType]lipgloss.Style
}

// NewConsoleStyles creates the lipgloss-backed style provider.
func NewConsoleStyles() *ConsoleStyles {
	return &ConsoleStyles{
		styles: map[SemanticType]lipgloss.Style{
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

// GetStyle implements StyleProvider.
func (c *ConsoleStyles) GetStyle(semantic string) TextStyle {
	if style, ok := c.styles[SemanticType(semantic)]; ok {
		return lipglossStyle{style}
	}
	return lipglossStyle{lipgloss.NewStyle()}
}

// IsAvailable implements StyleProvider.
func (c *ConsoleStyles) IsAvailable() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// lipglossStyle adapts the variadic lipgloss Render to TextStyle.
type lipglossStyle struct {
	style lipgloss.Style
}

func (l lipglossStyle) Render(text string) string {
	return l.style.Render(text)
}
