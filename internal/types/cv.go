// Package types provides type definitions for structured data used throughout the pixcel-cv system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultSkillCategory is used for skills that do not name a category
const DefaultSkillCategory = "Sonstige"

// CurriculumVitae is the unified, validated profile handed to the renderer.
// Sections holds pre-escaped LaTeX; everything else is raw text.
type CurriculumVitae struct {
	Contact        ContactInfo     `yaml:"contact"`
	Summary        string          `yaml:"summary,omitempty"`
	Skills         []Skill         `yaml:"skills,omitempty" validate:"dive"`
	Languages      []Language      `yaml:"languages,omitempty" validate:"dive"`
	Certifications []Certification `yaml:"certifications,omitempty" validate:"dive"`
	Sections       Sections        `yaml:"sections,omitempty"`
}

// ContactInfo identifies the person the CV belongs to
type ContactInfo struct {
	Name         string `yaml:"name" validate:"required"`
	Email        string `yaml:"email" validate:"required,email"`
	Title        string `yaml:"title,omitempty"`
	Phone        string `yaml:"phone,omitempty"`
	Location     string `yaml:"location,omitempty"`
	Website      string `yaml:"website,omitempty"`
	LinkedIn     string `yaml:"linkedin,omitempty"`
	GitHub       string `yaml:"github,omitempty"`
	PortraitPath string `yaml:"portrait_path,omitempty"`
}

// Skill is a single skill; slice order is display order
type Skill struct {
	Name        string `yaml:"name" validate:"required"`
	Category    string `yaml:"category" validate:"required"`
	Proficiency string `yaml:"proficiency,omitempty"`
}

// Language is a spoken language and its level (e.g. "Muttersprache", "Fließend")
type Language struct {
	Name  string `yaml:"name" validate:"required"`
	Level string `yaml:"level"`
}

// Certification is a certificate or achievement. Date is kept exactly as written.
type Certification struct {
	Title         string `yaml:"title" validate:"required"`
	Issuer        string `yaml:"issuer"`
	Date          string `yaml:"date,omitempty"`
	CredentialID  string `yaml:"credential_id,omitempty"`
	CredentialURL string `yaml:"credential_url,omitempty" validate:"omitempty,url"`
}

// SkillGroup is a category with the names of its skills
type SkillGroup struct {
	Category string
	Items    []string
}

// SkillGroups groups skills by category. Categories appear in the order of
// their first skill and items keep their relative order.
func (cv *CurriculumVitae) SkillGroups() []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	for _, s := range cv.Skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Items = append(groups[i].Items, s.Name)
	}
	return groups
}

// Validate validates the whole CV
func (cv *CurriculumVitae) Validate() error {
	return newValidator().Struct(cv)
}

// Validate validates the contact block
func (c ContactInfo) Validate() error {
	return newValidator().Struct(c)
}

// Validate validates a single skill
func (s Skill) Validate() error {
	return newValidator().Struct(s)
}

// Validate validates a single certification
func (c Certification) Validate() error {
	return newValidator().Struct(c)
}

// newValidator returns a validator that reports fields by their YAML names
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
