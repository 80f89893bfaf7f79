// Package report prints human-readable status lines. Failures and warnings go
// to the error stream, progress and success to the output stream. Color is
// cosmetic: it is dropped automatically when a stream is not a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorRed    = lipgloss.Color("9")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("10")
)

// Printer writes styled status lines to an output and an error stream.
type Printer struct {
	out io.Writer
	err io.Writer

	errorStyle    lipgloss.Style
	noticeStyle   lipgloss.Style
	progressStyle lipgloss.Style
	successStyle  lipgloss.Style
	color         bool
}

// New returns a Printer writing to out and errOut. When color is false every
// line is written unstyled.
func New(out, errOut io.Writer, color bool) *Printer {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:           out,
		err:           errOut,
		errorStyle:    errR.NewStyle().Foreground(colorRed),
		noticeStyle:   errR.NewStyle().Foreground(colorYellow),
		progressStyle: outR.NewStyle().Foreground(colorYellow),
		successStyle:  outR.NewStyle().Foreground(colorGreen),
		color:         color,
	}
}

// Error reports a failure.
func (p *Printer) Error(msg string) { p.write(p.err, p.errorStyle, msg) }

// Warn reports a problem that does not stop the current operation.
func (p *Printer) Warn(msg string) { p.write(p.err, p.errorStyle, msg) }

// Notice reports a condition that stops the operation without being an input
// error, such as a skill that is already registered.
func (p *Printer) Notice(msg string) { p.write(p.err, p.noticeStyle, msg) }

// Progress reports a step that is about to happen.
func (p *Printer) Progress(msg string) { p.write(p.out, p.progressStyle, msg) }

// Success reports a completed operation.
func (p *Printer) Success(msg string) { p.write(p.out, p.successStyle, msg) }

// write renders line by line so multi-line messages are not padded to a
// common width.
func (p *Printer) write(w io.Writer, style lipgloss.Style, msg string) {
	if !p.color {
		fmt.Fprintln(w, msg)
		return
	}
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
