package potd

import (
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seed string
		date time.Time
		want string
	}{
		{DefaultSeed, day(2024, time.January, 1), "SZX3N99ZZL"},
		{DefaultSeed, day(2024, time.February, 29), "31FREXSVSZ"},
		{DefaultSeed, day(2024, time.March, 5), "N6LBP8YU6J"},
		{DefaultSeed, day(2024, time.December, 31), "RL93LOX2T2"},
		{DefaultSeed, day(2025, time.June, 15), "HRVBXEV29K"},
		{"MPSJKMDH", day(2024, time.January, 1), "SZX3N99ZBS"},
		{"MPSJKMDH", day(2024, time.February, 29), "31FREXSV46"},
		{"MPSJKMDH", day(2024, time.March, 5), "N6LBP8YUIQ"},
		{"ABCD", day(2024, time.January, 1), "OD4L42CCCU"},
		{"ABCD", day(2024, time.March, 5), "1XNXZKWISB"},
		{"ABCD", day(2025, time.June, 15), "908X0S2F25"},
	}

	for _, tt := range tests {
		t.Run(tt.seed+"/"+tt.date.Format(time.DateOnly), func(t *testing.T) {
			got, err := Generate(tt.date, tt.seed)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	morning, err := Generate(time.Date(2024, time.March, 5, 0, 0, 1, 0, time.UTC), DefaultSeed)
	require.NoError(t, err)
	evening, err := Generate(time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC), DefaultSeed)
	require.NoError(t, err)
	require.Equal(t, morning, evening)
}

func TestGenerate_RandomInputsAreWellFormed(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		seed := faker.LetterN(uint(faker.IntRange(MinSeedLength, MaxSeedLength)))
		date := faker.DateRange(day(1990, time.January, 1), day(2089, time.December, 31))

		got, err := Generate(date, seed)
		require.NoError(t, err, "seed %q date %s", seed, date)
		require.Len(t, got, PasswordLength)
		for _, c := range got {
			require.True(t, strings.ContainsRune(alphanum, c), "unexpected character %q in %q", c, got)
		}

		again, err := Generate(date, seed)
		require.NoError(t, err)
		require.Equal(t, got, again, "generation must be deterministic")
	}
}

func TestValidateSeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seed    string
		wantErr error
	}{
		{"minimum length", "ABCD", nil},
		{"maximum length", "ABCDEFGH", nil},
		{"default is exempt from the length limit", DefaultSeed, nil},
		{"default prefix", "MPSJKMDHA", ErrSeedLength},
		{"punctuation", "a!b~", nil},
		{"empty", "", ErrSeedLength},
		{"too short", "ABC", ErrSeedLength},
		{"too long", "ABCDEFGHI", ErrSeedLength},
		{"space", "AB CD", ErrSeedCharset},
		{"non ascii", "ABCDé", ErrSeedCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.seed)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerate_InvalidSeed(t *testing.T) {
	t.Parallel()

	_, err := Generate(day(2024, time.January, 1), "ABC")
	require.ErrorIs(t, err, ErrSeedLength)
	require.EqualError(t, err, "seed must be between 4 and 8 characters, got 3")
}

func TestGenerateMultiple_InclusiveAscending(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	start := day(2024, time.February, 27)
	end := day(2024, time.March, 2)

	// --- Act ---
	got, err := GenerateMultiple(start, end, DefaultSeed)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, got, 5, "2024 is a leap year so Feb 29 is included")
	for i, dp := range got {
		require.Equal(t, start.AddDate(0, 0, i), dp.Date)
		single, err := Generate(dp.Date, DefaultSeed)
		require.NoError(t, err)
		require.Equal(t, single, dp.Password)
	}
	require.Equal(t, "31FREXSVSZ", got[2].Password)
}

func TestGenerateMultiple_SingleDay(t *testing.T) {
	t.Parallel()

	d := day(2024, time.January, 1)
	got, err := GenerateMultiple(d, d, DefaultSeed)
	require.NoError(t, err)
	require.Equal(t, []DayPassword{{Date: d, Password: "SZX3N99ZZL"}}, got)
}

func TestGenerateMultiple_Errors(t *testing.T) {
	t.Parallel()

	_, err := GenerateMultiple(day(2024, time.March, 2), day(2024, time.March, 1), DefaultSeed)
	require.ErrorIs(t, err, ErrDateOrder)
	require.Contains(t, err.Error(), "2024-03-02 is after 2024-03-01")

	_, err = GenerateMultiple(day(2024, time.March, 1), day(2024, time.March, 2), "toolongseed")
	require.ErrorIs(t, err, ErrSeedLength)
}

func TestSeedToDES(t *testing.T) {
	t.Parallel()

	got, err := SeedToDES(DefaultSeed)
	require.NoError(t, err)
	require.Equal(t, "9BA1A794979B8991", got)

	got, err = SeedToDES("MPSJKMDH")
	require.NoError(t, err)
	require.Equal(t, "9BA1A794979B8991", got, "the default seed is keyed by its first eight bytes")

	got, err = SeedToDES("ABCD")
	require.NoError(t, err)
	require.Equal(t, "8385868901010101", got, "short seeds are zero padded")

	_, err = SeedToDES("AB")
	require.ErrorIs(t, err, ErrSeedLength)
}
