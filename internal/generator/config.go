package generator

import (
	"fmt"
	"path/filepath"
	"time"

	"potd/internal/apperr"
	"potd/internal/dates"
	"potd/internal/potd"
	"potd/internal/report"
	"potd/internal/sink"
)

///////////////////////////////////////////////////////////////////////////////
// Modes
///////////////////////////////////////////////////////////////////////////////

// Mode is what a run produces. It is exactly one of SingleDate, Range or
// DESDump, chosen once by Resolve.
type Mode interface {
	isMode()
}

// SingleDate asks for the password of one day.
type SingleDate struct {
	Date dates.CalendarDate
}

// Range asks for one password per day from Start to End inclusive.
type Range struct {
	Start dates.CalendarDate
	End   dates.CalendarDate
}

// DESDump asks for the seed's DES key instead of any password.
type DESDump struct{}

func (SingleDate) isMode() {}
func (Range) isMode() {}
func (DESDump) isMode() {}

///////////////////////////////////////////////////////////////////////////////
// Configuration types
///////////////////////////////////////////////////////////////////////////////

// RunConfig is a fully resolved invocation. It is independent of the CLI
// library so it can be built directly in tests or by other callers.
type RunConfig struct {
	Seed        string           // Seed keys the algorithm, 4-8 characters
	Mode        Mode             // Mode selects single date, range or DES dump
	Format      report.Format    // Format is the report representation
	DateFormat  string           // DateFormat is a strftime pattern; empty means YYYY-MM-DD
	Destination sink.Destination // Destination is stdout or an absolute file path
	Verbose     bool             // Verbose echoes file output to the console
	SuffixDN    string           // SuffixDN closes every DN in LDIF output
}

// NewRunConfig returns a RunConfig with the defaults of a bare invocation,
// except for the date, which needs a clock and is filled in by Resolve.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		Seed:        potd.DefaultSeed,
		Format:      report.Text,
		Destination: sink.Stdout,
		SuffixDN:    report.DefaultSuffixDN,
	}
}

// ReportOptions returns the rendering options carried by c.
func (c *RunConfig) ReportOptions() report.Options {
	return report.Options{
		Format:     c.Format,
		DateFormat: c.DateFormat,
		SuffixDN:   c.SuffixDN,
	}
}

// Input holds raw, unvalidated values as they arrive from the command line,
// environment or config file. Empty strings mean "not given".
type Input struct {
	Seed       string
	Date       string
	Range      []string // Range holds START and END when given
	DES        bool
	Format     string
	DateFormat string
	Output     string
	Verbose    bool
	SuffixDN   string
}

///////////////////////////////////////////////////////////////////////////////
// Resolution
///////////////////////////////////////////////////////////////////////////////

// Resolve validates in and turns it into a RunConfig. now supplies "today"
// when no date is given and anchors the relative date keywords.
//
// Mode precedence is: DES dump, then range, then date, then today. Seed
// length is not checked here; the generation library owns that rule.
func Resolve(in Input, now time.Time) (*RunConfig, error) {
	cfg := NewRunConfig()

	if in.Seed != "" {
		cfg.Seed = in.Seed
	}

	// The CLI rejects this combination before we get here; keep the rule for
	// callers that build an Input by hand.
	if in.Date != "" && len(in.Range) > 0 {
		return nil, apperr.New(apperr.ErrUsage, "--date and --range can't be used together")
	}

	mode, err := resolveMode(in, now)
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	if cfg.Format, err = report.ParseFormat(in.Format); err != nil {
		return nil, err
	}
	cfg.DateFormat = in.DateFormat

	if in.Output != "" {
		abs, err := filepath.Abs(in.Output)
		if err != nil {
			return nil, apperr.New(apperr.ErrSink, "failed to resolve output path %q: %w", in.Output, err)
		}
		cfg.Destination = sink.File(abs)
	}
	cfg.Verbose = in.Verbose

	if in.SuffixDN != "" {
		cfg.SuffixDN = in.SuffixDN
	}

	return cfg, nil
}

func resolveMode(in Input, now time.Time) (Mode, error) {
	switch {
	case in.DES:
		return DESDump{}, nil
	case len(in.Range) > 0:
		if len(in.Range) != 2 {
			return nil, apperr.New(apperr.ErrInvalidRange, "range needs exactly two dates (START END), got %d", len(in.Range))
		}
		start, err := dates.ParseArg(in.Range[0], now)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrInvalidRange, fmt.Errorf("range start: %w", err))
		}
		end, err := dates.ParseArg(in.Range[1], now)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrInvalidRange, fmt.Errorf("range end: %w", err))
		}
		return Range{Start: start, End: end}, nil
	case in.Date != "":
		d, err := dates.ParseArg(in.Date, now)
		if err != nil {
			return nil, err
		}
		return SingleDate{Date: d}, nil
	default:
		return SingleDate{Date: dates.FromTime(now)}, nil
	}
}
