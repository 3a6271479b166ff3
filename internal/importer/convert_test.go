package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Minimal(t *testing.T) {
	gen, err := Convert(validMinimalSchema())
	require.NoError(t, err)
	require.Len(t, gen, 1)

	p := gen[0].Parameter
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "payroll.min_wage", p.Code)
	assert.Equal(t, "Minimum wage", p.Name)
	assert.Equal(t, domain.TypeFloat, p.Type)
	assert.Nil(t, p.Country)
	assert.Empty(t, gen[0].CompanyRef)

	require.Len(t, gen[0].Versions, 2)
	v := gen[0].Versions[0]
	assert.Equal(t, p.ID, v.ParameterID)
	assert.Equal(t, p.Code, v.Code)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), v.EffectiveDate)
	assert.Equal(t, "11.65", v.Value)
	assert.NotEqual(t, v.ID, gen[0].Versions[1].ID)
}

func TestConvert_Defaults(t *testing.T) {
	s := &ImportSchema{Parameters: []ParameterImport{{
		Code:    "  hr.notice_days ",
		Type:    "integer",
		Country: ptrStr("de"),
		Company: ptrStr(" Acme "),
	}}}
	gen, err := Convert(s)
	require.NoError(t, err)

	p := gen[0].Parameter
	assert.Equal(t, "hr.notice_days", p.Code)
	assert.Equal(t, "hr.notice_days", p.Name, "name defaults to code")
	require.NotNil(t, p.Country)
	assert.Equal(t, "DE", *p.Country)
	assert.Equal(t, "Acme", gen[0].CompanyRef)
	assert.Empty(t, gen[0].Versions)
}

func TestConvert_ValuesKeptAsWritten(t *testing.T) {
	s := &ImportSchema{Parameters: []ParameterImport{{
		Code: "flags.enabled",
		Type: "boolean",
		Versions: []VersionImport{
			{EffectiveDate: "2024-01-01", Value: "yes"},
		},
	}}}
	gen, err := Convert(s)
	require.NoError(t, err)
	assert.Equal(t, "yes", gen[0].Versions[0].Value)
}
