// Package output renders command results as styled text or JSON,
// adapting to whether stdout is a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks styled text on a terminal, plain text otherwise.
	ModeAuto Mode = "auto"
	// ModeText forces plain text.
	ModeText Mode = "text"
	// ModeJSON emits machine-readable JSON.
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
	styles Styles
}

// NewRenderer creates a renderer. In auto mode, styling turns on only
// when out is a terminal that supports color.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeJSON:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styled: mode == ModeAuto && isColorTerminal(out),
		styles: defaultStyles(),
	}
}

func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// EffectiveMode resolves ModeAuto to the concrete mode in use.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Styles returns the style set, neutered when styling is off so
// callers can Render unconditionally.
func (r *Renderer) Styles() Styles {
	if r.styled {
		return r.styles
	}
	return Styles{}
}

// Out is the destination for primary output.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Printf writes formatted primary output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a line of primary output.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) {
	if r.styled {
		fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

// Failure writes a failure line to primary output.
func (r *Renderer) Failure(msg string) {
	if r.styled {
		fmt.Fprintln(r.out, r.styles.Error.Render("✗ "+msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

// Errorf writes formatted output to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format, args...)
}

// JSON writes v as indented JSON to primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
