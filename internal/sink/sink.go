// Package sink delivers a rendered report to the console or to a file.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"

	"potd/internal/apperr"
	"potd/internal/report"
)

// Destination is where a report goes. The zero value is the console.
type Destination struct {
	Path string
}

// Stdout is the console destination.
var Stdout = Destination{}

// File returns a file destination for path.
func File(path string) Destination {
	return Destination{Path: path}
}

// IsFile reports whether d names a file.
func (d Destination) IsFile() bool {
	return d.Path != ""
}

func (d Destination) String() string {
	if d.IsFile() {
		return d.Path
	}
	return "stdout"
}

// Emit writes rep followed by one newline to dest. For a file destination
// with verbose set, the report is also written to console; both writes are
// attempted and their errors joined.
func Emit(rep report.Report, dest Destination, verbose bool, console io.Writer) error {
	data := []byte(rep.Body + "\n")

	if !dest.IsFile() {
		return writeConsole(console, data)
	}

	var errs []error
	if err := writeFile(dest.Path, data); err != nil {
		errs = append(errs, apperr.New(apperr.ErrSink, "failed to write %s: %w", dest.Path, err))
	}
	if verbose {
		errs = append(errs, writeConsole(console, data))
	}
	return errors.Join(errs...)
}

func writeConsole(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return apperr.New(apperr.ErrSink, "failed to write to console: %w", err)
	}
	return nil
}

// writeFile truncates path, creating it if needed, and writes data. The open
// happens before any byte is written, so an unwritable destination leaves the
// old content intact. Symlinks and device files are written through, not
// replaced.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
