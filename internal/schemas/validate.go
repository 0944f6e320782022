// Package schemas checks decoded source documents against the embedded JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"

	schemafiles "github.com/jonathan/pixcel-cv/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Schema names, one per source document
const (
	PersonalData     = "personal_data"
	Employment       = "employment"
	ProfileData      = "profile_data"
	MissionStatement = "mission_statement"
	Skills           = "skills"
	Projects         = "projects"
	Certifications   = "certifications"
	DisplayConfig    = "display_config"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateDocument validates a decoded YAML document (maps, slices and
// scalars as produced by yaml.Unmarshal into an interface{}) against the
// named embedded schema. A nil document is valid.
func ValidateDocument(schemaName string, doc interface{}) error {
	if doc == nil {
		return nil
	}

	schemaContent, err := schemafiles.Read(schemaName + schemafiles.Suffix)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName + schemafiles.Suffix,
			Message: "schema not found",
			Cause:   err,
		}
	}

	jsonContent, err := json.Marshal(doc)
	if err != nil {
		// e.g. mappings with non-string keys
		return &ValidationError{
			Schema: schemaName,
			Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("document has no JSON form: %v", err)}},
		}
	}

	err = ValidateJSONString(string(schemaContent), string(jsonContent))
	if validationErr, ok := err.(*ValidationError); ok {
		validationErr.Schema = schemaName
		return validationErr
	}
	if loadErr, ok := err.(*SchemaLoadError); ok {
		loadErr.Path = schemaName + schemafiles.Suffix
		return loadErr
	}
	return err
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
