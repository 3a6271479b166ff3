package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	if len(schema.Parameters) == 0 {
		return []error{fmt.Errorf("parameters: at least one parameter is required")}
	}

	var errs []error
	scopes := make(map[string]int)
	for i, p := range schema.Parameters {
		prefix := fmt.Sprintf("parameters[%d]", i)
		errs = append(errs, validateParameter(prefix, &p)...)

		key := scopeKey(&p)
		if first, ok := scopes[key]; ok {
			errs = append(errs, fmt.Errorf("%s.code: %q duplicates parameters[%d] in the same country and company", prefix, p.Code, first))
		} else {
			scopes[key] = i
		}
	}
	return errs
}

func validateParameter(prefix string, p *ParameterImport) []error {
	var errs []error

	if strings.TrimSpace(p.Code) == "" {
		errs = append(errs, fmt.Errorf("%s.code is required", prefix))
	}
	if p.Type == "" {
		errs = append(errs, fmt.Errorf("%s.type is required", prefix))
	} else if !domain.ValueType(p.Type).Valid() {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, p.Type))
	}
	if p.Country != nil && !isCountryCode(*p.Country) {
		errs = append(errs, fmt.Errorf("%s.country: %q is not a two-letter country code", prefix, *p.Country))
	}
	if p.JSONSchema != "" {
		if p.Type != string(domain.TypeJSON) {
			errs = append(errs, fmt.Errorf("%s.json_schema: only json parameters take a schema", prefix))
		} else if !json.Valid([]byte(p.JSONSchema)) {
			errs = append(errs, fmt.Errorf("%s.json_schema: not valid JSON", prefix))
		}
	}

	seen := make(map[string]bool, len(p.Versions))
	for j, v := range p.Versions {
		vprefix := fmt.Sprintf("%s.versions[%d]", prefix, j)
		if v.EffectiveDate == "" {
			errs = append(errs, fmt.Errorf("%s.effective_date is required", vprefix))
			continue
		}
		if _, err := time.Parse("2006-01-02", v.EffectiveDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.effective_date: invalid date format %q (expected YYYY-MM-DD)", vprefix, v.EffectiveDate))
			continue
		}
		if seen[v.EffectiveDate] {
			errs = append(errs, fmt.Errorf("%s.effective_date %s: %s", vprefix, v.EffectiveDate, domain.DuplicateVersionMessage))
		}
		seen[v.EffectiveDate] = true
	}

	return errs
}

func isCountryCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func scopeKey(p *ParameterImport) string {
	return strings.TrimSpace(p.Code) + "\x00" +
		strings.ToUpper(strings.TrimSpace(domain.StrOrEmpty(p.Country))) + "\x00" +
		strings.TrimSpace(domain.StrOrEmpty(p.Company))
}
