// Package ui provides colored diagnostic output with counted
// verbosity. Diagnostics always go to the secondary (error) stream so
// the primary stream stays clean for manifest output.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Verbosity levels selected by repeating -v on the CLI.
const (
	// LevelQuiet shows errors, warnings, and the run summary.
	LevelQuiet = 0

	// LevelInfo adds per-deployment progress.
	LevelInfo = 1

	// LevelDebug adds full command lines and merge details.
	LevelDebug = 2

	// LevelTrace adds captured output of every external call.
	LevelTrace = 3
)

// Printer writes diagnostics at or below its verbosity. It is passed
// explicitly to whoever emits output instead of living in a global,
// so tests can capture the stream.
type Printer struct {
	w         io.Writer
	verbosity int
}

// New creates a Printer writing to w with the given verbosity.
func New(w io.Writer, verbosity int) *Printer {
	return &Printer{w: w, verbosity: verbosity}
}

// Default returns a Printer on stderr.
func Default(verbosity int) *Printer {
	return New(os.Stderr, verbosity)
}

// Writer exposes the underlying stream, for callers that need to dump
// raw captured output.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Verbosity returns the configured level.
func (p *Printer) Verbosity() int {
	return p.verbosity
}

// Errorf prints a red error line. Always shown.
func (p *Printer) Errorf(format string, args ...any) {
	Red.Fprintf(p.w, "✗ "+format+"\n", args...)
}

// Warnf prints a yellow warning line. Always shown.
func (p *Printer) Warnf(format string, args ...any) {
	Yellow.Fprintf(p.w, "⚠ "+format+"\n", args...)
}

// Successf prints a green success line. Always shown.
func (p *Printer) Successf(format string, args ...any) {
	Green.Fprintf(p.w, "✓ "+format+"\n", args...)
}

// Infof prints a progress line at -v and above.
func (p *Printer) Infof(format string, args ...any) {
	if p.verbosity >= LevelInfo {
		Blue.Fprintf(p.w, format+"\n", args...)
	}
}

// Debugf prints detail at -vv and above.
func (p *Printer) Debugf(format string, args ...any) {
	if p.verbosity >= LevelDebug {
		Cyan.Fprintf(p.w, format+"\n", args...)
	}
}

// Tracef prints external-call output at -vvv.
func (p *Printer) Tracef(format string, args ...any) {
	if p.verbosity >= LevelTrace {
		Cyan.Fprintf(p.w, format+"\n", args...)
	}
}
