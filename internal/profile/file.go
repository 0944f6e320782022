package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/pixcel-cv/internal/types"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a CV previously written by SaveFile. Section bodies are
// taken as already escaped.
func LoadFile(path string) (*types.CurriculumVitae, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingSourceError{Document: name, Path: path}
		}
		return nil, &MalformedSourceError{Document: name, Path: path, Message: "failed to read file", Cause: err}
	}

	var cv types.CurriculumVitae
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cv); err != nil && !errors.Is(err, io.EOF) {
		return nil, &MalformedSourceError{Document: name, Path: path, Message: "invalid YAML", Cause: err}
	}

	if err := cv.Validate(); err != nil {
		return nil, &ValidationError{Document: name, Fields: fieldErrors("", err)}
	}
	return &cv, nil
}

// SaveFile writes cv as YAML, creating parent directories as needed
func SaveFile(cv *types.CurriculumVitae, path string) error {
	if cv == nil {
		return fmt.Errorf("no CV to save")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cv); err != nil {
		return fmt.Errorf("failed to encode CV: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode CV: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
