package generator

import (
	"fmt"
	"io"
	"log/slog"

	"potd/internal/apperr"
	"potd/internal/report"
	"potd/internal/sink"
)

///////////////////////////////////////////////////////////////////////////////
// Collaborators
///////////////////////////////////////////////////////////////////////////////

// Deps holds what a run talks to: the password algorithm, the console and the
// logger. Tests swap Source for a fake and Console for a buffer.
type Deps struct {
	Source  Source       // Source generates passwords
	Console io.Writer    // Console receives stdout output
	Logger  *slog.Logger // Logger receives diagnostics, never report content
}

// NewDeps is an initializer function for Deps. It wires the ARRIS algorithm.
func NewDeps(console io.Writer, logger *slog.Logger) *Deps {
	return &Deps{
		Source:  NewPOTDSource(),
		Console: console,
		Logger:  logger,
	}
}

///////////////////////////////////////////////////////////////////////////////
// Report building
///////////////////////////////////////////////////////////////////////////////

// BuildReport runs the generation calls cfg asks for and renders the result.
// The whole report is built in memory before anything is written, so a
// failure on any day of a range produces no output at all.
func BuildReport(cfg *RunConfig, src Source, logger *slog.Logger) (report.Report, error) {
	switch mode := cfg.Mode.(type) {
	case DESDump:
		des, err := src.SeedToDES(cfg.Seed)
		if err != nil {
			return report.Report{}, err
		}
		logger.Debug("Seed converted to DES key.")
		return report.Report{Format: report.Text, Body: des}, nil

	case SingleDate:
		pw, err := src.Generate(mode.Date, cfg.Seed)
		if err != nil {
			return report.Report{}, err
		}
		logger.Debug("Password generated.", "date", mode.Date)
		return report.RenderSingle(cfg.ReportOptions(), report.DatedPassword{Date: mode.Date, Password: pw})

	case Range:
		list, err := src.GenerateMultiple(mode.Start, mode.End, cfg.Seed)
		if err != nil {
			return report.Report{}, err
		}
		logger.Debug("Passwords generated.", "start", mode.Start, "end", mode.End, "count", len(list))
		return report.RenderRange(cfg.ReportOptions(), list)

	default:
		// Resolve always sets a mode; a hand-built RunConfig might not.
		return report.Report{}, apperr.New(apperr.ErrUsage, "no mode selected")
	}
}

///////////////////////////////////////////////////////////////////////////////
// Top-level runner
///////////////////////////////////////////////////////////////////////////////

// Run is the main entry point for this package. It:
//
//  1. Checks the configuration for values Resolve would never leave empty.
//  2. Builds the report (DES key, one password or a range of them).
//  3. Emits it to stdout or the output file.
//
// Run does not depend on kong or any CLI library; it only uses RunConfig and
// Deps.
func Run(cfg *RunConfig, deps *Deps) error {
	if cfg.Seed == "" {
		return apperr.New(apperr.ErrUsage, "seed must not be empty")
	}
	if cfg.Mode == nil {
		return apperr.New(apperr.ErrUsage, "no mode selected")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("Run started.", "mode", fmt.Sprintf("%T", cfg.Mode), "format", cfg.Format, "destination", cfg.Destination)

	rep, err := BuildReport(cfg, deps.Source, logger)
	if err != nil {
		return err
	}

	if err := sink.Emit(rep, cfg.Destination, cfg.Verbose, deps.Console); err != nil {
		return err
	}
	logger.Debug("Report written.", "destination", cfg.Destination, "bytes", len(rep.Body)+1)
	return nil
}
