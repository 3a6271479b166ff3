package valuetype

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coerce(t *testing.T, vt domain.ValueType, raw string, opts Options) Result {
	t.Helper()
	res, err := Coerce(context.Background(), vt, raw, opts)
	require.NoError(t, err)
	return res
}

func TestCoerce_Boolean(t *testing.T) {
	for _, in := range []string{"TRUE", "true", "True", "1"} {
		res := coerce(t, domain.TypeBoolean, in, Options{})
		assert.Equal(t, OutcomeValid, res.Outcome, in)
		assert.Equal(t, "True", res.Value, in)
	}
	for _, in := range []string{"FALSE", "false", "0"} {
		res := coerce(t, domain.TypeBoolean, in, Options{})
		assert.Equal(t, "False", res.Value, in)
	}

	res := coerce(t, domain.TypeBoolean, "maybe", Options{})
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Empty(t, res.Value)
	assert.Error(t, res.Reason)
}

func TestCoerce_Boolean_NoTrimming(t *testing.T) {
	res := coerce(t, domain.TypeBoolean, " true", Options{})
	assert.Equal(t, OutcomeInvalid, res.Outcome)
}

func TestCoerce_Date(t *testing.T) {
	opts := Options{DateFormat: "%d/%m/%Y"}

	res := coerce(t, domain.TypeDate, "31/12/2023", opts)
	assert.Equal(t, OutcomeValid, res.Outcome)
	assert.Equal(t, "2023-12-31", res.Value)

	res = coerce(t, domain.TypeDate, "2023-12-31", opts)
	assert.Equal(t, OutcomeValid, res.Outcome)
	assert.Equal(t, "2023-12-31", res.Value)

	res = coerce(t, domain.TypeDate, "not-a-date", opts)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Empty(t, res.Value)
}

func TestCoerce_Date_USFormat(t *testing.T) {
	res := coerce(t, domain.TypeDate, "12/31/2023", Options{DateFormat: "%m/%d/%Y"})
	assert.Equal(t, "2023-12-31", res.Value)

	// Day-first input does not parse as month-first and is not ISO either.
	res = coerce(t, domain.TypeDate, "31/12/2023", Options{DateFormat: "%m/%d/%Y"})
	assert.Equal(t, OutcomeInvalid, res.Outcome)
}

func TestCoerce_Date_NoUserFormatFallsBackToISO(t *testing.T) {
	res := coerce(t, domain.TypeDate, "2024-02-29", Options{})
	assert.Equal(t, "2024-02-29", res.Value)

	res = coerce(t, domain.TypeDate, "2023-02-29", Options{})
	assert.Equal(t, OutcomeInvalid, res.Outcome, "not a leap year")
}

func TestCoerce_Date_UnpaddedDayAndMonth(t *testing.T) {
	res := coerce(t, domain.TypeDate, "1/2/2023", Options{DateFormat: "%d/%m/%Y"})
	assert.Equal(t, OutcomeValid, res.Outcome)
	assert.Equal(t, "2023-02-01", res.Value)

	res = coerce(t, domain.TypeDate, "2023-1-5", Options{DateFormat: "%d/%m/%Y"})
	assert.Equal(t, OutcomeValid, res.Outcome, "ISO fallback")
	assert.Equal(t, "2023-01-05", res.Value)

	res = coerce(t, domain.TypeDate, "5.1.2024", Options{DateFormat: "%d.%m.%Y"})
	assert.Equal(t, "2024-01-05", res.Value)

	res = coerce(t, domain.TypeDate, "1/32/2023", Options{DateFormat: "%m/%d/%Y"})
	assert.Equal(t, OutcomeInvalid, res.Outcome)
}

func TestUnpadDayMonth(t *testing.T) {
	tests := map[string]string{
		"02/01/2006": "2/1/2006",
		"2006-01-02": "2006-1-2",
		"02.01.2006": "2.1.2006",
		"20060102":   "2006012",
		"2006-002":   "2006-002",
	}
	for layout, want := range tests {
		assert.Equal(t, want, unpadDayMonth(layout), layout)
	}
}

func TestCoerce_Float(t *testing.T) {
	cases := map[string]string{
		"3.7":     "3.7",
		"1":       "1.0",
		"-2":      "-2.0",
		" 0.5 ":   "0.5",
		"1e16":    "1e+16",
		"0.00001": "1e-05",
		"0.0001":  "0.0001",
		"1_000.5": "1000.5",
		"inf":     "inf",
		"1e400":   "inf",
	}
	for in, want := range cases {
		res := coerce(t, domain.TypeFloat, in, Options{})
		assert.Equal(t, OutcomeValid, res.Outcome, in)
		assert.Equal(t, want, res.Value, in)
	}

	for _, in := range []string{"abc", "0x10", "1__0", "_1", "1,5"} {
		res := coerce(t, domain.TypeFloat, in, Options{})
		assert.Equal(t, OutcomeInvalid, res.Outcome, in)
		assert.Empty(t, res.Value, in)
	}
}

func TestCoerce_Integer(t *testing.T) {
	cases := map[string]string{
		"3.7":  "4",
		"3.2":  "3",
		"-3.7": "-4",
		"2.5":  "2",
		"3.5":  "4",
		"42":   "42",
		"1e20": "100000000000000000000",
	}
	for in, want := range cases {
		res := coerce(t, domain.TypeInteger, in, Options{})
		assert.Equal(t, OutcomeValid, res.Outcome, in)
		assert.Equal(t, want, res.Value, in)
	}

	for _, in := range []string{"abc", "nan", "inf"} {
		res := coerce(t, domain.TypeInteger, in, Options{})
		assert.Equal(t, OutcomeInvalid, res.Outcome, in)
		assert.Empty(t, res.Value, in)
	}
}

func TestCoerce_JSON(t *testing.T) {
	res := coerce(t, domain.TypeJSON, `{"a":1}`, Options{})
	assert.Equal(t, OutcomeValid, res.Outcome)
	assert.Equal(t, `{"a":1}`, res.Value)

	spaced := "{ \"a\" : [1, 2] }"
	res = coerce(t, domain.TypeJSON, spaced, Options{})
	assert.Equal(t, spaced, res.Value, "kept verbatim")

	res = coerce(t, domain.TypeJSON, `{bad json}`, Options{})
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Empty(t, res.Value)
}

func TestCoerce_JSON_NonFiniteNumbers(t *testing.T) {
	for _, in := range []string{"NaN", "Infinity", "-Infinity", `{"rate": NaN, "cap": [Infinity, -Infinity]}`} {
		res := coerce(t, domain.TypeJSON, in, Options{})
		assert.Equal(t, OutcomeValid, res.Outcome, in)
		assert.Equal(t, in, res.Value, in)
	}

	for _, in := range []string{"nan", "+Infinity", "NaNNaN", `{NaN: 1}`} {
		res := coerce(t, domain.TypeJSON, in, Options{})
		assert.Equal(t, OutcomeInvalid, res.Outcome, in)
	}

	res := coerce(t, domain.TypeJSON, `{"note": "NaN \" Infinity"}`, Options{})
	assert.Equal(t, OutcomeValid, res.Outcome, "literals inside strings are untouched")
}

func TestCoerce_StringPassesThrough(t *testing.T) {
	res := coerce(t, domain.TypeString, "  anything at all ", Options{})
	assert.Equal(t, OutcomeValid, res.Outcome)
	assert.Equal(t, "  anything at all ", res.Value)
}

func TestCoerce_EmptyInputIsNotCoerced(t *testing.T) {
	for _, vt := range domain.ValueTypes {
		res := coerce(t, vt, "", Options{})
		assert.Equal(t, OutcomeEmpty, res.Outcome, vt)
		assert.Empty(t, res.Value, vt)
	}
}

func TestCoerce_UnregisteredType(t *testing.T) {
	_, err := Coerce(context.Background(), "reference", "x", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnregisteredType)
}

func TestCoerce_LogsFailuresAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	coerce(t, domain.TypeInteger, "abc", Options{Logger: logger})

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "value coercion failed")
	assert.Contains(t, out, "value_type=integer")
}

func TestCoerce_ValidInputIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	coerce(t, domain.TypeInteger, "7", Options{Logger: logger})

	assert.Empty(t, buf.String())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "valid", OutcomeValid.String())
	assert.Equal(t, "invalid", OutcomeInvalid.String())
}
