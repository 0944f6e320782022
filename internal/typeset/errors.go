package typeset

import (
	"fmt"
	"strings"
)

// UnsupportedEngineError is returned for engines other than pdflatex, xelatex and lualatex
type UnsupportedEngineError struct {
	Engine string
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("unsupported LaTeX engine %q (supported: %s)", e.Engine, strings.Join(supportedEngines, ", "))
}

// EngineNotFoundError is returned when the engine binary is not on PATH
type EngineNotFoundError struct {
	Engine string
	Cause  error
}

func (e *EngineNotFoundError) Error() string {
	return fmt.Sprintf("LaTeX engine %q not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", e.Engine)
}

func (e *EngineNotFoundError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a LaTeX compilation failure
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// PageCountError is returned when the pages of a PDF cannot be counted
type PageCountError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PageCountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to count pages of %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to count pages of %s: %s", e.Path, e.Message)
}

func (e *PageCountError) Unwrap() error {
	return e.Cause
}
