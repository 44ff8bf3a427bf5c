package generator

import (
	"errors"

	"potd/internal/apperr"
	"potd/internal/dates"
	"potd/internal/potd"
	"potd/internal/report"
)

// Source is the password algorithm as the pipeline sees it. Implementations
// must be deterministic: the same inputs always give the same output.
type Source interface {
	// Generate returns the password for one date.
	Generate(date dates.CalendarDate, seed string) (string, error)
	// GenerateMultiple returns one password per date from start to end
	// inclusive, in ascending order. It fails if start is after end.
	GenerateMultiple(start, end dates.CalendarDate, seed string) ([]report.DatedPassword, error)
	// SeedToDES returns a diagnostic representation of the seed.
	SeedToDES(seed string) (string, error)
}

// potdSource adapts package potd to Source.
type potdSource struct{}

// NewPOTDSource returns the Source backed by the ARRIS algorithm.
func NewPOTDSource() Source {
	return potdSource{}
}

func (potdSource) Generate(date dates.CalendarDate, seed string) (string, error) {
	pw, err := potd.Generate(date.Time(), seed)
	if err != nil {
		return "", classify(err)
	}
	return pw, nil
}

func (potdSource) GenerateMultiple(start, end dates.CalendarDate, seed string) ([]report.DatedPassword, error) {
	days, err := potd.GenerateMultiple(start.Time(), end.Time(), seed)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]report.DatedPassword, len(days))
	for i, d := range days {
		out[i] = report.DatedPassword{Date: dates.FromTime(d.Date), Password: d.Password}
	}
	return out, nil
}

func (potdSource) SeedToDES(seed string) (string, error) {
	des, err := potd.SeedToDES(seed)
	if err != nil {
		return "", classify(err)
	}
	return des, nil
}

// classify tags a library error with its kind without touching its message.
// Every result also matches apperr.ErrGeneration.
func classify(err error) error {
	err = apperr.Wrap(apperr.ErrGeneration, err)
	switch {
	case errors.Is(err, potd.ErrSeedLength), errors.Is(err, potd.ErrSeedCharset):
		return apperr.Wrap(apperr.ErrInvalidSeed, err)
	case errors.Is(err, potd.ErrDateOrder):
		return apperr.Wrap(apperr.ErrInvalidRange, err)
	default:
		return err
	}
}
