package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jonathan/pixcel-cv/internal/types"
)

// Template actions are written as <VAR>.Contact.Name</VAR> so that LaTeX
// braces never need quoting inside templates.
const (
	VariableStart = "<VAR>"
	VariableEnd   = "</VAR>"
)

// DefaultTemplateName names the embedded German CV template
const DefaultTemplateName = "german_cv.tex"

//go:embed templates/german_cv.tex
var defaultTemplate string

// DefaultTemplate returns the embedded template source
func DefaultTemplate() string {
	return defaultTemplate
}

// RenderLaTeX renders cv into a LaTeX document. An empty templatePath selects
// the embedded default template.
//
// Contact data, summary, skills, languages and certifications are escaped by
// the template; section bodies are already escaped and are emitted verbatim.
func RenderLaTeX(cv *types.CurriculumVitae, templatePath string) (string, error) {
	if cv == nil {
		return "", &RenderError{Message: "no CV to render"}
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, cv); err != nil {
		return "", &TemplateError{
			Template: tmpl.Name(),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}

	return result.String(), nil
}

// ParseTemplate parses LaTeX template source using the <VAR> delimiters and
// the escaping helpers.
func ParseTemplate(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).
		Delims(VariableStart, VariableEnd).
		Funcs(templateFuncs()).
		Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Template: name,
			Message:  "failed to parse template",
			Cause:    err,
		}
	}
	return tmpl, nil
}

// parseTemplate reads and parses a template file, or the embedded default
func parseTemplate(templatePath string) (*template.Template, error) {
	if templatePath == "" {
		return ParseTemplate(DefaultTemplateName, defaultTemplate)
	}

	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Template: templatePath,
				Message:  fmt.Sprintf("template file not found: %s", templatePath),
				Cause:    err,
			}
		}
		return nil, &TemplateError{
			Template: templatePath,
			Message:  fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:    err,
		}
	}

	return ParseTemplate(filepath.Base(templatePath), string(content))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"escape":      EscapeLaTeX,
		"escapeLines": EscapeLaTeXLines,
		"escapeJoin":  EscapeJoin,
		"texPath":     filepath.ToSlash,
	}
}
