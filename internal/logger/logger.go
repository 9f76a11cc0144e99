// Package logger prints verbose pipeline diagnostics.
package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger writes prefixed diagnostic lines when enabled. Warnings are
// printed regardless.
type Logger struct {
	enabled bool
	out     io.Writer
}

// New creates a logger writing to stderr.
func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.out, "[regview] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		fmt.Fprintf(l.out, "\n[regview] === %s ===\n", name)
	}
}

// Warn prints a formatted warning.
func (l *Logger) Warn(format string, args ...any) {
	fmt.Fprintf(l.out, "[regview] warning: "+format+"\n", args...)
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
