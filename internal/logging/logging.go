// Package logging builds the structured loggers shared by the server and the
// terminal client.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a leveled logger writing to w (stderr when nil).
// format selects human-readable console output or one JSON object per line;
// unknown formats fall back to console. An unknown level falls back to info.
func New(level, format string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if strings.TrimSpace(level) == "" {
		lvl = log.InfoLevel
	}

	var writer log.Writer
	switch strings.ToLower(format) {
	case FormatJSON:
		writer = &log.IOWriter{Writer: w}
	default:
		writer = &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    isTerminal(w),
			EndWithMessage: true,
		}
	}

	return &log.Logger{
		Level:      lvl,
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		Writer:     writer,
	}
}

// Nop returns a logger that discards all output.
func Nop() *log.Logger {
	return &log.Logger{
		Level:  log.ErrorLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
