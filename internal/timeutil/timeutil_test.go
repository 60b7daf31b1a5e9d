package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\t\n"} {
		got, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}
		if got != nil {
			t.Errorf("Normalize(%q) = %v, want nil", input, got)
		}
	}
}

func TestNormalize_ZuluEqualsExplicitOffset(t *testing.T) {
	t.Parallel()

	zulu, err := Normalize("2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("Normalize zulu: %v", err)
	}

	explicit, err := Normalize("2024-01-01T00:00:00+00:00")
	if err != nil {
		t.Fatalf("Normalize explicit: %v", err)
	}

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !zulu.Equal(want) {
		t.Errorf("zulu = %v, want %v", zulu, want)
	}
	if !zulu.Equal(*explicit) {
		t.Errorf("zulu %v != explicit %v", zulu, explicit)
	}
}

func TestNormalize_AwareOffsetConvertsToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01T12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T12:00:00-05:00", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00:00.500000Z", time.Date(2024, 3, 1, 10, 0, 0, 500000000, time.UTC)},
		{"2024-01-01 12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("Normalize(%q) location = %v, want UTC", tt.input, got.Location())
		}
	}
}

func TestNormalize_NaiveInterpretedAsLocal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		local time.Time
	}{
		{"2024-06-15T08:30:00", time.Date(2024, 6, 15, 8, 30, 0, 0, time.Local)},
		{"2024-06-15 08:30:00", time.Date(2024, 6, 15, 8, 30, 0, 0, time.Local)},
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.local.UTC()) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.local.UTC())
		}
	}
}

func TestNormalize_MinutePrecision(t *testing.T) {
	t.Parallel()

	aware := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-01T10:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01T12:00+02:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01 12:00+02:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range aware {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	// Minute-precision naive input follows the same local-time rule as full
	// precision.
	local := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	got, err := Normalize("2024-03-01T10:00")
	if err != nil {
		t.Fatalf("Normalize minute-precision naive: %v", err)
	}
	if !got.Equal(local.UTC()) {
		t.Errorf("Normalize(%q) = %v, want %v", "2024-03-01T10:00", got, local.UTC())
	}
}

func TestNormalize_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"not-a-date", "2024-13-40T99:00:00Z", "123456", "tomorrow"} {
		_, err := Normalize(input)
		if err == nil {
			t.Errorf("Normalize(%q) should fail", input)
			continue
		}
		if !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidTimestamp", input, err)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2024-03-01T10:00:00Z",
		"2024-01-01T12:00:00.250000+02:00",
		"2024-06-15T08:30:00",
	}

	for _, input := range inputs {
		once, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}

		twice, err := Normalize(FormatZ(*once))
		if err != nil {
			t.Fatalf("Normalize(FormatZ(%q)) error: %v", input, err)
		}

		if !once.Equal(*twice) {
			t.Errorf("normalize not idempotent for %q: %v != %v", input, once, twice)
		}
	}
}

func TestFormatZ(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "2024-03-01T10:00:00.000000Z"},
		{time.Date(2024, 3, 1, 10, 0, 0, 500000000, time.UTC), "2024-03-01T10:00:00.500000Z"},
		// A non-UTC instant is converted, not reinterpreted.
		{time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600)), "2024-03-01T10:00:00.000000Z"},
	}

	for _, tt := range tests {
		if got := FormatZ(tt.in); got != tt.want {
			t.Errorf("FormatZ(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNow_IsUTCMicrosecond(t *testing.T) {
	t.Parallel()

	now := Now()
	if now.Location() != time.UTC {
		t.Errorf("Now() location = %v, want UTC", now.Location())
	}
	if now.Nanosecond()%1000 != 0 {
		t.Errorf("Now() = %v, want microsecond precision", now)
	}
}
