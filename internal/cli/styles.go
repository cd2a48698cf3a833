package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/labdao/ganglia/internal/socket"
	"golang.org/x/term"
)

// StatusStyles contains lipgloss styles for stream status lines
type StatusStyles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
}

// DefaultStatusStyles returns the default status styles
func DefaultStatusStyles() StatusStyles {
	return StatusStyles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Render styles a status line according to how the stream ended
func (s StatusStyles) Render(o socket.Outcome, line string) string {
	if o == socket.Closed {
		return s.Success.Render(line)
	}
	return s.Failure.Render(line)
}

// statusStyler returns a styling func when w is a terminal, nil otherwise
// so piped output stays plain
func statusStyler(w io.Writer) func(socket.Outcome, string) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return DefaultStatusStyles().Render
}
