package valuetype

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
)

// Decode converts a canonical stored value into its Go representation:
// time.Time for dates, int64 or *big.Int for integers, float64, bool,
// json.RawMessage, or string. Values that are not in canonical form are
// rejected.
func Decode(t domain.ValueType, canonical string) (any, error) {
	switch t {
	case domain.TypeString:
		return canonical, nil
	case domain.TypeBoolean:
		switch canonical {
		case "True":
			return true, nil
		case "False":
			return false, nil
		}
		return nil, fmt.Errorf("boolean value must be True or False, got %q", canonical)
	case domain.TypeDate:
		d, err := time.Parse(ISODate, canonical)
		if err != nil {
			return nil, fmt.Errorf("date value must be YYYY-MM-DD, got %q", canonical)
		}
		return d, nil
	case domain.TypeInteger:
		n, ok := new(big.Int).SetString(canonical, 10)
		if !ok {
			return nil, fmt.Errorf("integer value must be a whole number, got %q", canonical)
		}
		if n.IsInt64() {
			return n.Int64(), nil
		}
		return n, nil
	case domain.TypeFloat:
		f, err := parseFloat(canonical)
		if err != nil {
			return nil, fmt.Errorf("float value: %w", err)
		}
		return f, nil
	case domain.TypeJSON:
		if !json.Valid([]byte(replaceNonFinite(canonical))) {
			return nil, fmt.Errorf("json value is not valid JSON")
		}
		return json.RawMessage(canonical), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredType, t)
	}
}
