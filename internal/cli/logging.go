package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog.Logger that writes through a charmbracelet/log
// handler. Only warnings and errors are shown unless debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "potd",
		Level:           level,
		ReportTimestamp: debug,
	})
	return slog.New(handler)
}
