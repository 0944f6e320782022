package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decode(t *testing.T, content string) interface{} {
	t.Helper()
	var doc interface{}
	require.NoError(t, yaml.Unmarshal([]byte(content), &doc))
	return doc
}

func TestValidateDocument_ValidProjects(t *testing.T) {
	doc := decode(t, `
projects:
  - id: p1
    project_de: Migration
    period_from: 06.2017
    period_to: heute
    tools_libraries: [Go, 3]
    include_in_cv: true
  - id: p2
    project_de: Entwurf
`)
	assert.NoError(t, ValidateDocument(Projects, doc))
}

func TestValidateDocument_IncludeFlagMustBeBoolean(t *testing.T) {
	doc := decode(t, `
projects:
  - id: p1
    include_in_cv: "maybe"
`)
	err := ValidateDocument(Projects, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, Projects, validationErr.Schema)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "include_in_cv")
	assert.Contains(t, err.Error(), "projects validation failed")
}

func TestValidateDocument_WrongShape(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		content string
	}{
		{"employment list instead of mapping", Employment, "- position: Berater"},
		{"skills not a list", Skills, "skills: Go"},
		{"nested personal data", PersonalData, "persoenliche_daten:\n  name:\n    first: Max"},
		{"education entry scalar", PersonalData, "bildungsweg:\n  - Abitur"},
		{"mission statement mapping", MissionStatement, "statement: Daten"},
		{"languages not a list", DisplayConfig, "languages: Deutsch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.schema, decode(t, tt.content))
			require.Error(t, err)
			_, ok := err.(*ValidationError)
			assert.True(t, ok, "error should be ValidationError type, got %T", err)
		})
	}
}

func TestValidateDocument_LocalizedValues(t *testing.T) {
	doc := decode(t, `
profile_data:
  name:
    de: Max Mustermann
  title: Berater
  available_from:
    de: sofort
    en: immediately
`)
	assert.NoError(t, ValidateDocument(ProfileData, doc))

	statements := decode(t, `
- Daten zuerst
- de: Einfachheit
  en: Simplicity
`)
	assert.NoError(t, ValidateDocument(MissionStatement, statements))
}

func TestValidateDocument_NilDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(PersonalData, nil))
}

func TestValidateDocument_NonStringKeys(t *testing.T) {
	err := ValidateDocument(Skills, decode(t, "1: eins\n2: zwei"))
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("unknown", map[string]interface{}{})
	require.Error(t, err)

	loadErr, ok := err.(*SchemaLoadError)
	require.True(t, ok, "error should be SchemaLoadError type")
	assert.Equal(t, "unknown.schema.json", loadErr.Path)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "Go"}`))

	err := ValidateJSONString(schema, `{"other": 1}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{ invalid json }`, `{}`)
	require.Error(t, err)
	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok)
}
