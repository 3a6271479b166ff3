package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeParameter_Normalize(t *testing.T) {
	lower := " fr "
	p := &TimeParameter{Code: " SMIC ", Country: &lower}
	p.Normalize()
	assert.Equal(t, "SMIC", p.Code)
	require.NotNil(t, p.Country)
	assert.Equal(t, "FR", *p.Country)

	blank := "  "
	p = &TimeParameter{Code: "X", Country: &blank}
	p.Normalize()
	assert.Nil(t, p.Country)
}

func TestTimeParameterVersion_Relate(t *testing.T) {
	company := "c1"
	be := "BE"
	p := &TimeParameter{ID: "p1", Code: "VAT", Type: TypeFloat, Country: &be, CompanyID: &company}
	v := &TimeParameterVersion{}
	v.Relate(p)

	assert.Equal(t, "p1", v.ParameterID)
	assert.Equal(t, "VAT", v.Code)
	assert.Equal(t, TypeFloat, v.Type)
	assert.Equal(t, &company, v.CompanyID)
	assert.Equal(t, &be, v.Country)
}

func TestTimeParameterVersion_EffectiveOn(t *testing.T) {
	v := &TimeParameterVersion{EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, v.EffectiveOn(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, v.EffectiveOn(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.EffectiveOn(time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)))
}
