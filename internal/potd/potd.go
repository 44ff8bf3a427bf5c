// Package potd implements the ARRIS DOCSIS "password of the day" algorithm.
//
// A password is a pure function of a calendar date and a seed string: the
// same inputs always produce the same ten characters from 0-9A-Z.
package potd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"time"
)

const (
	// DefaultSeed is the seed modems ship with when none is configured. It is
	// longer than MaxSeedLength and is the only seed allowed to be.
	DefaultSeed = "MPSJKMDHAI"

	MinSeedLength = 4
	MaxSeedLength = 8

	// PasswordLength is the number of characters in every generated password.
	PasswordLength = 10
)

var (
	ErrSeedLength  = errors.New("seed must be between 4 and 8 characters")
	ErrSeedCharset = errors.New("seed must contain only printable ASCII characters")
	ErrDateOrder   = errors.New("start date must not be after end date")
)

const alphanum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// table1 is indexed by weekday, Monday first.
var table1 = [7][5]int{
	{15, 15, 24, 20, 24},
	{13, 14, 27, 32, 10},
	{29, 14, 32, 29, 24},
	{23, 32, 24, 29, 29},
	{14, 29, 10, 21, 29},
	{34, 27, 16, 23, 30},
	{14, 22, 24, 17, 13},
}

var table2 = [6][10]int{
	{0, 1, 2, 9, 3, 4, 5, 6, 7, 8},
	{1, 4, 3, 9, 0, 7, 8, 2, 5, 6},
	{7, 2, 8, 9, 4, 1, 6, 0, 3, 5},
	{6, 3, 5, 9, 1, 8, 2, 7, 4, 0},
	{4, 7, 0, 9, 5, 2, 3, 1, 8, 6},
	{5, 6, 1, 9, 8, 0, 4, 3, 2, 7},
}

// DayPassword is one generated password and the day it is valid for.
type DayPassword struct {
	Date     time.Time
	Password string
}

// ValidateSeed reports whether seed can key the algorithm.
func ValidateSeed(seed string) error {
	if seed == DefaultSeed {
		return nil
	}
	if n := len(seed); n < MinSeedLength || n > MaxSeedLength {
		return fmt.Errorf("%w, got %d", ErrSeedLength, n)
	}
	for i := 0; i < len(seed); i++ {
		if c := seed[i]; c < '!' || c > '~' {
			return fmt.Errorf("%w, got %q at position %d", ErrSeedCharset, c, i+1)
		}
	}
	return nil
}

// Generate returns the password for the calendar day of date. Only the
// year, month and day of date are used.
func Generate(date time.Time, seed string) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}
	return generate(date, seed), nil
}

// GenerateMultiple returns one password per day from start to end inclusive,
// in ascending date order.
func GenerateMultiple(start, end time.Time, seed string) ([]DayPassword, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}
	start, end = truncateDay(start), truncateDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrDateOrder, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	var out []DayPassword
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		out = append(out, DayPassword{Date: day, Password: generate(day, seed)})
	}
	return out, nil
}

// SeedToDES returns the DES key derived from seed as upper-case hex. Each
// seed byte occupies the high seven bits of a key byte and the low bit is set
// for odd parity; short seeds are zero padded to eight bytes and only the
// first eight bytes of the default seed are used.
func SeedToDES(seed string) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}
	key := make([]byte, 8)
	copy(key, seed)
	for i, b := range key {
		k := b << 1
		if bits.OnesCount8(k)%2 == 0 {
			k |= 1
		}
		key[i] = k
	}
	return strings.ToUpper(hex.EncodeToString(key)), nil
}

func generate(date time.Time, seed string) string {
	year := date.Year() % 100
	month := int(date.Month())
	day := date.Day()
	weekday := (int(date.Weekday()) + 6) % 7

	var list1 [8]int
	copy(list1[:5], table1[weekday][:])
	list1[5] = day
	list1[6] = mod36(year + month - day)
	list1[7] = ((3 + (year+month)%12) * day % 37) % 36

	var list3 [10]int
	sum := 0
	for i := 0; i < 8; i++ {
		list3[i] = (list1[i] + int(seed[i%len(seed)])%36) % 36
		sum += list3[i]
	}
	list3[8] = sum % 36
	num8 := list3[8] % 6
	list3[9] = num8 * num8

	var sb strings.Builder
	sb.Grow(PasswordLength)
	for i := 0; i < PasswordLength; i++ {
		v := list3[table2[num8][i]]
		sb.WriteByte(alphanum[(int(seed[i%len(seed)])+v)%36])
	}
	return sb.String()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mod36(n int) int {
	return ((n % 36) + 36) % 36
}
