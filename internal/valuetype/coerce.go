// Package valuetype converts user-entered text into the canonical string
// form stored on time parameter versions, and decodes canonical values back
// into Go values.
//
// Coercion never fails loudly: invalid input yields an empty value with
// OutcomeInvalid and a Reason, and is logged at debug level. The only error
// returned is ErrUnregisteredType, which signals a configuration defect.
package valuetype

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/basekit/internal/domain"
)

// ErrUnregisteredType is returned when no coercion exists for a value type.
var ErrUnregisteredType = errors.New("no coercion registered for value type")

// ISODate is the canonical layout for date values.
const ISODate = "2006-01-02"

// ISODateFormat is ISODate as a strftime pattern.
const ISODateFormat = "%Y-%m-%d"

type Outcome int

const (
	// OutcomeEmpty means there was no input to coerce.
	OutcomeEmpty Outcome = iota
	OutcomeValid
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of coercing one raw value. Value is the string to
// store: the canonical form when valid, empty otherwise.
type Result struct {
	Value   string
	Outcome Outcome
	Reason  error
}

func (r Result) Valid() bool { return r.Outcome == OutcomeValid }

func valid(v string) Result { return Result{Value: v, Outcome: OutcomeValid} }

func invalid(reason error) Result { return Result{Outcome: OutcomeInvalid, Reason: reason} }

// Options carries the context a coercion may need.
type Options struct {
	// DateFormat is the editing user's date format as a strftime pattern.
	DateFormat string
	Logger     *slog.Logger
}

// Func coerces raw, non-empty input.
type Func func(raw string, opts Options) Result

// Lookup returns the coercion for t.
func Lookup(t domain.ValueType) (Func, error) {
	switch t {
	case domain.TypeString:
		return func(raw string, _ Options) Result { return valid(raw) }, nil
	case domain.TypeBoolean:
		return func(raw string, _ Options) Result { return Boolean(raw) }, nil
	case domain.TypeDate:
		return func(raw string, opts Options) Result { return Date(raw, opts.DateFormat) }, nil
	case domain.TypeFloat:
		return func(raw string, _ Options) Result { return Float(raw) }, nil
	case domain.TypeInteger:
		return func(raw string, _ Options) Result { return Integer(raw) }, nil
	case domain.TypeJSON:
		return func(raw string, _ Options) Result { return JSON(raw) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredType, t)
	}
}

// Coerce applies the coercion registered for t to raw. Empty input is left
// alone and reported as OutcomeEmpty.
func Coerce(ctx context.Context, t domain.ValueType, raw string, opts Options) (Result, error) {
	fn, err := Lookup(t)
	if err != nil {
		return Result{}, err
	}
	if raw == "" {
		return Result{Outcome: OutcomeEmpty}, nil
	}
	res := fn(raw, opts)
	if res.Outcome == OutcomeInvalid {
		logger := opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.DebugContext(ctx, "value coercion failed",
			slog.String("value_type", string(t)),
			slog.Any("error", res.Reason),
		)
	}
	return res, nil
}
