package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"potd/internal/apperr"
	"potd/internal/potd"
	"potd/internal/report"
	"potd/internal/sink"
)

var now = time.Date(2025, time.March, 1, 15, 30, 0, 0, time.UTC)

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Input{}, now)

	require.NoError(t, err)
	require.Equal(t, potd.DefaultSeed, cfg.Seed)
	require.Equal(t, SingleDate{Date: mustDate(t, "2025-03-01")}, cfg.Mode)
	require.Equal(t, report.Text, cfg.Format)
	require.Empty(t, cfg.DateFormat)
	require.Equal(t, sink.Stdout, cfg.Destination)
	require.False(t, cfg.Verbose)
	require.Equal(t, report.DefaultSuffixDN, cfg.SuffixDN)
}

func TestResolve_ModePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
		want Mode
	}{
		{
			name: "explicit date",
			in:   Input{Date: "2024-01-01"},
			want: SingleDate{Date: mustDate(t, "2024-01-01")},
		},
		{
			name: "relative date",
			in:   Input{Date: "yesterday"},
			want: SingleDate{Date: mustDate(t, "2025-02-28")},
		},
		{
			name: "range",
			in:   Input{Range: []string{"2024-01-01", "2024-01-31"}},
			want: Range{Start: mustDate(t, "2024-01-01"), End: mustDate(t, "2024-01-31")},
		},
		{
			name: "des beats range",
			in:   Input{DES: true, Range: []string{"2024-01-01", "2024-01-31"}},
			want: DESDump{},
		},
		{
			name: "des beats date",
			in:   Input{DES: true, Date: "2024-01-01"},
			want: DESDump{},
		},
		{
			name: "des ignores unparsable date",
			in:   Input{DES: true, Date: "not-a-date"},
			want: DESDump{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.in, now)
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
		kind error
	}{
		{"bad date", Input{Date: "2024-02-30"}, apperr.ErrInvalidDate},
		{"bad range start", Input{Range: []string{"2024-13-01", "2024-12-01"}}, apperr.ErrInvalidRange},
		{"bad range end", Input{Range: []string{"2024-01-01", "soon"}}, apperr.ErrInvalidRange},
		{"one range value", Input{Range: []string{"2024-01-01"}}, apperr.ErrInvalidRange},
		{"date and range", Input{Date: "2024-01-01", Range: []string{"2024-01-01", "2024-01-02"}}, apperr.ErrUsage},
		{"unknown format", Input{Format: "csv"}, apperr.ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.in, now)
			require.ErrorIs(t, err, tt.kind)
			require.Nil(t, cfg)
		})
	}
}

func TestResolve_RangeEndpointIsAlsoInvalidDate(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Input{Range: []string{"2024-01-01", "2024-02-30"}}, now)

	require.ErrorIs(t, err, apperr.ErrInvalidRange)
	require.ErrorIs(t, err, apperr.ErrInvalidDate)
	require.Contains(t, err.Error(), "range end")
}

func TestResolve_SeedIsVerbatim(t *testing.T) {
	t.Parallel()

	// Length is the library's concern; Resolve passes anything through.
	cfg, err := Resolve(Input{Seed: "x", DES: true}, now)
	require.NoError(t, err)
	require.Equal(t, "x", cfg.Seed)
}

func TestResolve_OutputIsAbsolute(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg, err := Resolve(Input{Output: "reports/potd.txt", Verbose: true}, now)
	require.NoError(t, err)
	require.Equal(t, sink.File(filepath.Join(wd, "reports", "potd.txt")), cfg.Destination)
	require.True(t, cfg.Verbose)
}

func TestResolve_FormatsAndSuffix(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Input{Format: "ldif", DateFormat: "%d.%m.%Y", SuffixDN: "ou=cm,o=example"}, now)

	require.NoError(t, err)
	require.Equal(t, report.LDIF, cfg.Format)
	require.Equal(t, "%d.%m.%Y", cfg.DateFormat)
	require.Equal(t, "ou=cm,o=example", cfg.SuffixDN)
	require.Equal(t, report.Options{Format: report.LDIF, DateFormat: "%d.%m.%Y", SuffixDN: "ou=cm,o=example"}, cfg.ReportOptions())
}

func TestResolveAndRun_DESWithInvalidSeed(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := Input{DES: true, Seed: "abc", Range: []string{"2024-01-05", "2024-01-01"}}
	deps, out := testDeps(NewPOTDSource())

	// --- Act ---
	cfg, err := Resolve(in, now)
	require.NoError(t, err)
	err = Run(cfg, deps)

	// --- Assert ---
	require.ErrorIs(t, err, apperr.ErrInvalidSeed)
	require.NotErrorIs(t, err, apperr.ErrInvalidRange, "range values are ignored in DES mode")
	require.Empty(t, out.String())
}
