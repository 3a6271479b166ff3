package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/google/uuid"
)

// GeneratedParameter is a converted parameter and its versions. CompanyRef
// is the file's company reference, left for the caller to resolve; once it
// has, versions must be re-related to pick up the company.
type GeneratedParameter struct {
	Parameter  *domain.TimeParameter
	CompanyRef string
	Versions   []*domain.TimeParameterVersion
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
// Values are carried over exactly as written in the file.
func Convert(schema *ImportSchema) ([]*GeneratedParameter, error) {
	now := time.Now().UTC()

	out := make([]*GeneratedParameter, 0, len(schema.Parameters))
	for _, pi := range schema.Parameters {
		code := strings.TrimSpace(pi.Code)
		p := &domain.TimeParameter{
			ID:          uuid.New().String(),
			Code:        code,
			Name:        domain.CoalesceStr(strings.TrimSpace(pi.Name), code),
			Description: pi.Description,
			Type:        domain.ValueType(pi.Type),
			Country:     pi.Country,
			JSONSchema:  string(pi.JSONSchema),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		p.Normalize()

		gen := &GeneratedParameter{
			Parameter:  p,
			CompanyRef: strings.TrimSpace(domain.StrOrEmpty(pi.Company)),
			Versions:   make([]*domain.TimeParameterVersion, 0, len(pi.Versions)),
		}
		for _, vi := range pi.Versions {
			effective, err := time.Parse("2006-01-02", vi.EffectiveDate)
			if err != nil {
				return nil, fmt.Errorf("parsing effective_date of %s: %w", code, err)
			}
			v := &domain.TimeParameterVersion{
				ID:            uuid.New().String(),
				EffectiveDate: effective,
				Value:         string(vi.Value),
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			v.Relate(p)
			gen.Versions = append(gen.Versions, v)
		}
		out = append(out, gen)
	}
	return out, nil
}
