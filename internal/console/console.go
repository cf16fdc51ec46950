// Package console is the operator-facing surface: one line of input
// per turn from stdin, assistant output rendered as markdown on
// stdout.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Console reads operator input line by line and writes styled output.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *glamour.TermRenderer
}

// New creates a console over the given streams. The markdown renderer
// picks light/dark styling from the terminal; if it cannot be built,
// assistant output falls back to plain text.
func New(in io.Reader, out io.Writer) *Console {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: renderer,
	}
}

// ReadInput prints the prompt and reads one line, trimmed of
// surrounding whitespace. It returns io.EOF when the input stream
// ends.
func (c *Console) ReadInput(prompt string) (string, error) {
	fmt.Fprint(c.out, promptStyle.Render(prompt)+" ")
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// WriteAssistant renders assistant markdown to the output stream.
func (c *Console) WriteAssistant(text string) {
	if c.renderer != nil {
		if rendered, err := c.renderer.Render(text); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, text)
}

// WriteStatus prints a transient status line.
func (c *Console) WriteStatus(message string) {
	fmt.Fprintln(c.out, statusStyle.Render(message))
}

// WriteError prints an error line.
func (c *Console) WriteError(err error) {
	fmt.Fprintln(c.out, errorStyle.Render("error: ")+err.Error())
}
