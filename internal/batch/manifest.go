// Package batch builds several CVs from a YAML manifest, running the
// single-CV pipeline concurrently.
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest lists the CVs to build
type Manifest struct {
	Parallel int   `yaml:"parallel,omitempty" validate:"gte=0"`
	Jobs     []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

// Job describes one CV build. Paths are relative to the manifest file.
type Job struct {
	Name         string `yaml:"name,omitempty"`
	Input        string `yaml:"input,omitempty"`
	YAMLFolder   string `yaml:"yaml_folder,omitempty"`
	ConfigFolder string `yaml:"config_folder,omitempty"`
	Picture      string `yaml:"picture,omitempty"`
	Template     string `yaml:"template,omitempty"`
	OutputPDF    string `yaml:"pdf,omitempty"`
	OutputLaTeX  string `yaml:"latex,omitempty"`
	Engine       string `yaml:"engine,omitempty" validate:"omitempty,oneof=pdflatex xelatex lualatex"`
	MaxPages     int    `yaml:"max_pages,omitempty" validate:"gte=0"`
}

// ManifestError reports an unreadable or invalid manifest
type ManifestError struct {
	Path     string
	Problems []string
	Cause    error
}

func (e *ManifestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("invalid manifest %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// LoadManifest reads, normalizes and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Cause: err}
	}

	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ManifestError{Path: path, Cause: err}
	}

	m.resolvePaths(filepath.Dir(path))
	if problems := m.Validate(); len(problems) > 0 {
		return nil, &ManifestError{Path: path, Problems: problems}
	}
	return &m, nil
}

// resolvePaths makes relative paths absolute against base and fills in
// default job names
func (m *Manifest) resolvePaths(base string) {
	for i := range m.Jobs {
		job := &m.Jobs[i]
		for _, p := range []*string{
			&job.Input, &job.YAMLFolder, &job.ConfigFolder, &job.Picture,
			&job.Template, &job.OutputPDF, &job.OutputLaTeX,
		} {
			if *p != "" && !filepath.IsAbs(*p) {
				*p = filepath.Join(base, *p)
			}
		}
		if job.Name == "" {
			job.Name = defaultName(*job)
		}
	}
}

func defaultName(job Job) string {
	if job.YAMLFolder != "" {
		return filepath.Base(job.YAMLFolder)
	}
	if job.Input != "" {
		return strings.TrimSuffix(filepath.Base(job.Input), filepath.Ext(job.Input))
	}
	return ""
}

// Validate returns every problem found in the manifest
func (m *Manifest) Validate() []string {
	var problems []string

	if err := newValidator().Struct(m); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return []string{err.Error()}
		}
		for _, fe := range validationErrs {
			problems = append(problems, describe(fe))
		}
	}

	seen := make(map[string]int, len(m.Jobs))
	for i, job := range m.Jobs {
		label := fmt.Sprintf("jobs[%d]", i)
		switch {
		case job.Input != "" && job.YAMLFolder != "":
			problems = append(problems, label+": input and yaml_folder are mutually exclusive")
		case job.Input == "" && job.YAMLFolder == "":
			problems = append(problems, label+": one of input or yaml_folder is required")
		}
		if job.OutputPDF == "" && job.OutputLaTeX == "" {
			problems = append(problems, label+": one of pdf or latex is required")
		}
		if job.Name == "" {
			continue
		}
		if first, dup := seen[job.Name]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate job name %q (also jobs[%d])", label, job.Name, first))
			continue
		}
		seen[job.Name] = i
	}
	return problems
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	})
	return validate
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s: at least one entry is required", field)
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of %s", field, fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be non-negative", field)
	default:
		return fmt.Sprintf("%s: failed the %q check", field, fe.Tag())
	}
}
