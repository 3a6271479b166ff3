package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TimeParameter(t *testing.T) {
	fr := "FR"
	p := &TimeParameter{Code: "SMIC", Name: "Minimum wage", Type: TypeFloat, Country: &fr}
	assert.NoError(t, Validate(p))
}

func TestValidate_TimeParameterFieldErrors(t *testing.T) {
	bad := "XX1"
	p := &TimeParameter{Type: "reference", Country: &bad, JSONSchema: "{nope"}

	err := Validate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "code")
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "country")
	assert.Contains(t, verr.Fields, "json_schema")
}

func TestValidate_CardChecksEmbeddedKanban(t *testing.T) {
	c := &Card{Model: "project.task", Name: "Write docs", Kanban: NewKanban()}
	require.NoError(t, Validate(c))

	c.Status = "stuck"
	err := Validate(c)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "json_schema", fieldKey("JSONSchema"))
	assert.Equal(t, "effective_date", fieldKey("EffectiveDate"))
	assert.Equal(t, "parameter_id", fieldKey("ParameterID"))
	assert.Equal(t, "name", fieldKey("Name"))
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "is required", "code": "is required"}}
	assert.Equal(t, "validation error: code: is required; name: is required", err.Error())
}
