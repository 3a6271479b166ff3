package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadImportSchema_JSON(t *testing.T) {
	path := writeFile(t, "params.json", `{
  "parameters": [
    {
      "code": "tax.rates",
      "type": "json",
      "country": "FR",
      "json_schema": {"type": "object"},
      "versions": [
        {"effective_date": "2024-01-01", "value": {"standard": 20}},
        {"effective_date": "2025-01-01", "value": 12.5},
        {"effective_date": "2026-01-01", "value": "text"},
        {"effective_date": "2027-01-01", "value": null}
      ]
    }
  ]
}`)

	s, err := LoadImportSchema(path)
	require.NoError(t, err)
	require.Len(t, s.Parameters, 1)
	p := s.Parameters[0]
	assert.Equal(t, "tax.rates", p.Code)
	require.NotNil(t, p.Country)
	assert.Equal(t, "FR", *p.Country)
	assert.Equal(t, RawValue(`{"type": "object"}`), p.JSONSchema)
	require.Len(t, p.Versions, 4)
	assert.Equal(t, RawValue(`{"standard": 20}`), p.Versions[0].Value)
	assert.Equal(t, RawValue("12.5"), p.Versions[1].Value)
	assert.Equal(t, RawValue("text"), p.Versions[2].Value)
	assert.Equal(t, RawValue(""), p.Versions[3].Value)
}

func TestLoadImportSchema_YAML(t *testing.T) {
	path := writeFile(t, "params.yaml", `
parameters:
  - code: payroll.min_wage
    name: Minimum wage
    type: float
    company: Acme
    versions:
      - effective_date: "2024-01-01"
        value: 11.65
      - effective_date: "2025-01-01"
        value: ~
  - code: tax.rates
    type: json
    versions:
      - effective_date: "2024-01-01"
        value:
          standard: 20
          reduced: [5.5, 10]
`)

	s, err := LoadImportSchema(path)
	require.NoError(t, err)
	require.Len(t, s.Parameters, 2)

	wage := s.Parameters[0]
	require.NotNil(t, wage.Company)
	assert.Equal(t, "Acme", *wage.Company)
	assert.Equal(t, RawValue("11.65"), wage.Versions[0].Value)
	assert.Equal(t, RawValue(""), wage.Versions[1].Value)

	rates := s.Parameters[1]
	assert.JSONEq(t, `{"standard":20,"reduced":[5.5,10]}`, string(rates.Versions[0].Value))
	assert.Empty(t, ValidateImportSchema(s))
}

func TestLoadImportSchema_Errors(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := writeFile(t, "broken.json", `{"parameters": [`)
	_, err = LoadImportSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("b.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("b.json"))
	assert.Equal(t, FormatJSON, FormatForPath("b"))
}
