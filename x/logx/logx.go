// Package logx is a small leveled logger for the debug console.
//
// Lines look like "[INFO] selector: mic -> 2". There are no timestamps: the
// firmware has no wall clock.
package logx

import (
	"fmt"
	"io"
	"os"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes one line per call. A nil *Logger discards everything.
type Logger struct {
	w         io.Writer
	min       Level
	component string
}

func New(w io.Writer, min Level) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{w: w, min: min}
}

// With returns a logger sharing the writer and level, tagged with component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.component = component
	return &c
}

func (l *Logger) Enabled(lv Level) bool { return l != nil && lv >= l.min }

func (l *Logger) logf(lv Level, format string, args ...any) {
	if !l.Enabled(lv) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		fmt.Fprintf(l.w, "[%s] %s: %s\n", lv, l.component, msg)
		return
	}
	fmt.Fprintf(l.w, "[%s] %s\n", lv, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// ---- process default ----

var std = New(os.Stdout, LevelInfo)

// Default returns the process logger. Firmware redirects it to the debug UART.
func Default() *Logger { return std }

// SetOutput replaces the default logger's writer.
func SetOutput(w io.Writer) { std = New(w, std.min) }
