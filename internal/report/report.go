// Package report renders generated passwords as text, JSON, YAML or LDIF.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"potd/internal/apperr"
	"potd/internal/dates"
)

// Format selects the report representation.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
	LDIF Format = "ldif"
)

// Formats lists every supported format, default first.
var Formats = []Format{Text, JSON, YAML, LDIF}

// DefaultSuffixDN is appended to each LDIF entry's DN when none is configured.
const DefaultSuffixDN = "ou=potd,o=arris"

// ParseFormat maps a format name to a Format. The empty string is Text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Text, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", apperr.New(apperr.ErrUsage, "unknown output format %q: use text, json, yaml or ldif", s)
	}
	return f, nil
}

// DatedPassword is a generated password and the day it belongs to.
type DatedPassword struct {
	Date     dates.CalendarDate
	Password string
}

// Options controls rendering.
type Options struct {
	Format     Format
	DateFormat string // strftime pattern for displayed dates; empty means ISO
	SuffixDN   string // LDIF only
}

// Report is rendered output without a trailing newline.
type Report struct {
	Format Format
	Body   string
}

// line is one date/password pair with the date already rendered for display.
type line struct {
	date     dates.CalendarDate
	display  string
	password string
}

// RenderSingle renders the password for one date.
func RenderSingle(opts Options, entry DatedPassword) (Report, error) {
	lines, err := displayLines(opts, []DatedPassword{entry})
	if err != nil {
		return Report{}, err
	}
	if opts.Format == Text || opts.Format == "" {
		l := lines[0]
		return Report{Format: Text, Body: l.display + ": \t" + l.password}, nil
	}
	return renderKeyed(opts, lines)
}

// RenderRange renders passwords for several dates in ascending date order,
// whatever order entries arrive in.
func RenderRange(opts Options, entries []DatedPassword) (Report, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b DatedPassword) int {
		return a.Date.Compare(b.Date)
	})
	lines, err := displayLines(opts, sorted)
	if err != nil {
		return Report{}, err
	}
	if opts.Format == Text || opts.Format == "" {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = l.display + ":\t" + l.password
		}
		return Report{Format: Text, Body: strings.Join(out, "\n")}, nil
	}
	return renderKeyed(opts, lines)
}

func displayLines(opts Options, entries []DatedPassword) ([]line, error) {
	lines := make([]line, len(entries))
	for i, e := range entries {
		display, err := dates.Format(opts.DateFormat, e.Date)
		if err != nil {
			return nil, err
		}
		lines[i] = line{date: e.Date, display: display, password: e.Password}
	}
	return lines, nil
}

// renderKeyed renders formats where the displayed date is a key. Two dates
// sharing a key would make one of them disappear, so that is an error.
func renderKeyed(opts Options, lines []line) (Report, error) {
	seen := make(map[string]dates.CalendarDate, len(lines))
	for _, l := range lines {
		if prev, ok := seen[l.display]; ok {
			return Report{}, apperr.New(apperr.ErrDateFormat,
				"date format %q renders %s and %s as the same key %q", opts.DateFormat, prev, l.date, l.display)
		}
		seen[l.display] = l.date
	}

	var (
		body string
		err  error
	)
	switch opts.Format {
	case JSON:
		body, err = renderJSON(lines)
	case YAML:
		body, err = renderYAML(lines)
	case LDIF:
		body, err = renderLDIF(opts.SuffixDN, lines)
	default:
		return Report{}, apperr.New(apperr.ErrUsage, "unknown output format %q", opts.Format)
	}
	if err != nil {
		return Report{}, apperr.Wrap(apperr.ErrSerialization, err)
	}
	return Report{Format: opts.Format, Body: body}, nil
}

// renderJSON writes an object whose keys keep the order of lines. The
// standard encoder sorts map keys lexically, which breaks chronological order
// as soon as the display pattern does not start with the year.
func renderJSON(lines []line) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, l := range lines {
		key, err := jsonString(l.display)
		if err != nil {
			return "", fmt.Errorf("failed to encode date %s: %w", l.date, err)
		}
		val, err := jsonString(l.password)
		if err != nil {
			return "", fmt.Errorf("failed to encode password for %s: %w", l.date, err)
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(val)
	}
	if len(lines) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.String(), nil
}

// jsonString encodes s as a JSON string literal. <, > and & are kept as is.
func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
