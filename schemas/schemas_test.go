package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/pixcel-cv/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

var documentSchemas = []string{
	"certifications.schema.json",
	"display_config.schema.json",
	"employment.schema.json",
	"mission_statement.schema.json",
	"personal_data.schema.json",
	"profile_data.schema.json",
	"projects.schema.json",
	"skills.schema.json",
}

func TestNames_ListsEverySchema(t *testing.T) {
	assert.Equal(t, documentSchemas, schemas.Names())
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range documentSchemas {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestAllSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range documentSchemas {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := schemas.Read(schemaFile)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile: %s", schemaFile)
		})
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := schemas.Read("unknown.schema.json")
	assert.Error(t, err)
}
