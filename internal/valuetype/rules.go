package valuetype

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Boolean accepts "true"/"1" and "false"/"0" in any case.
func Boolean(raw string) Result {
	switch strings.ToLower(raw) {
	case "true", "1":
		return valid("True")
	case "false", "0":
		return valid("False")
	default:
		return invalid(fmt.Errorf("%q is not a boolean", raw))
	}
}

// Date parses raw with the user's strftime format, then with ISO, and
// renders the ISO date.
func Date(raw, userFormat string) Result {
	var errs []error
	for _, format := range []string{userFormat, ISODateFormat} {
		if format == "" {
			continue
		}
		t, err := ParseDate(format, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return valid(t.Format(ISODate))
	}
	return invalid(fmt.Errorf("parsing date %q: %w", raw, errors.Join(errs...)))
}

// ParseDate parses value according to a strftime pattern.
func ParseDate(format, value string) (time.Time, error) {
	layout, err := strftime.Layout(format)
	if err != nil {
		return time.Time{}, fmt.Errorf("converting date format %q: %w", format, err)
	}
	t, err := time.Parse(unpadDayMonth(layout), value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// unpadDayMonth swaps the zero-padded day and month layout elements for
// their unpadded forms, which parse one or two digits. Elements glued to
// another digit (day of year "002", compact "0102") are left alone where
// the swap would make the layout ambiguous.
func unpadDayMonth(layout string) string {
	var b strings.Builder
	b.Grow(len(layout))
	for i := 0; i < len(layout); i++ {
		if i+1 < len(layout) && layout[i] == '0' && (layout[i+1] == '1' || layout[i+1] == '2') {
			prevZero := i > 0 && layout[i-1] == '0'
			nextDigit := i+2 < len(layout) && isDigit(layout[i+2])
			if !prevZero && !nextDigit {
				b.WriteByte(layout[i+1])
				i++
				continue
			}
		}
		b.WriteByte(layout[i])
	}
	return b.String()
}

// FormatDate renders t with a strftime pattern.
func FormatDate(format string, t time.Time) string {
	return strftime.Format(format, t)
}

// Float parses raw as a float and renders its shortest round-trip form.
func Float(raw string) Result {
	f, err := parseFloat(raw)
	if err != nil {
		return invalid(err)
	}
	return valid(formatFloat(f))
}

// Integer parses raw as a float and rounds half to even.
func Integer(raw string) Result {
	f, err := parseFloat(raw)
	if err != nil {
		return invalid(err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return invalid(fmt.Errorf("cannot convert %s to integer", formatFloat(f)))
	}
	r := math.RoundToEven(f)
	if r >= math.MinInt64 && r < math.MaxInt64 {
		return valid(strconv.FormatInt(int64(r), 10))
	}
	n, _ := big.NewFloat(r).Int(nil)
	return valid(n.String())
}

// JSON checks raw is well-formed JSON and keeps it verbatim. The non-finite
// number literals NaN, Infinity and -Infinity are accepted as values.
func JSON(raw string) Result {
	checked := []byte(replaceNonFinite(raw))
	if !json.Valid(checked) {
		var v any
		err := json.Unmarshal(checked, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return invalid(fmt.Errorf("parsing json: %w", err))
	}
	return valid(raw)
}

// replaceNonFinite rewrites NaN and Infinity outside string literals as 0
// so the result can be checked by a strict JSON parser. Misplaced literals
// still leave the document invalid.
func replaceNonFinite(raw string) string {
	if !strings.Contains(raw, "NaN") && !strings.Contains(raw, "Infinity") {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	inString, escaped := false, false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case strings.HasPrefix(raw[i:], "NaN"):
			b.WriteByte('0')
			i += len("NaN") - 1
			continue
		case strings.HasPrefix(raw[i:], "Infinity"):
			b.WriteByte('0')
			i += len("Infinity") - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// parseFloat is lenient in the same places a decimal literal reader usually
// is: surrounding whitespace and digit-group underscores. Hex literals are
// rejected and overflow saturates to infinity.
func parseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, fmt.Errorf("could not convert string to float: %q", raw)
	}
	if strings.Contains(s, "_") {
		cleaned, ok := stripDigitUnderscores(s)
		if !ok {
			return 0, fmt.Errorf("could not convert string to float: %q", raw)
		}
		s = cleaned
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, fmt.Errorf("could not convert string to float: %q", raw)
	}
	return f, nil
}

func stripDigitUnderscores(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// formatFloat renders the shortest representation that round-trips, using
// positional notation for exponents in [-4, 16) with at least one decimal
// digit, and scientific notation otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
