// Package profile loads the YAML source documents of a CV and merges them
// into a validated CurriculumVitae.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/pixcel-cv/internal/schemas"
	"github.com/jonathan/pixcel-cv/internal/sections"
	"github.com/jonathan/pixcel-cv/internal/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Source document file names
const (
	PersonalDataFile     = "cv_basis.yaml"
	EmploymentFile       = "berufliche_stationen.yaml"
	ProfileDataFile      = "basedata.yaml"
	MissionStatementFile = "missionstatement.yaml"
	SkillsFile           = "skills.yaml"
	ProjectsFile         = "projekt_historie.yaml"
	CertificationsFile   = "certifications.yaml"
	DisplayConfigFile    = "cv_config.yaml"
)

// Option configures Load
type Option func(*options)

type options struct {
	logger       *zap.Logger
	portrait     string
	schemaChecks bool
}

// WithLogger sets the logger used while loading
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPortrait overrides the portrait path of cv_config.yaml
func WithPortrait(path string) Option {
	return func(o *options) {
		o.portrait = path
	}
}

// WithSchemaChecks turns the JSON Schema check of every document on or off.
// Checks are on by default.
func WithSchemaChecks(enabled bool) Option {
	return func(o *options) {
		o.schemaChecks = enabled
	}
}

// documents holds the decoded source documents of one load
type documents struct {
	basis          types.PersonalDataDocument
	employment     types.EmploymentDocument
	profile        types.ProfileDataDocument
	mission        types.MissionStatementDocument
	skills         types.SkillsDocument
	projects       types.ProjectsDocument
	certifications types.CertificationsDocument
	display        types.DisplayConfig
}

// Load reads the source documents from primary and merges them into a CV.
// cv_config.yaml is read from secondary when it is set, every other document
// from primary. Missing optional documents count as empty; a missing
// cv_basis.yaml fails with a *MissingSourceError.
//
// Either a complete, validated CV or an error is returned.
func Load(primary, secondary string, opts ...Option) (*types.CurriculumVitae, error) {
	o := options{logger: zap.NewNop(), schemaChecks: true}
	for _, opt := range opts {
		opt(&o)
	}

	configDir := primary
	if secondary != "" {
		configDir = secondary
		if info, err := os.Stat(secondary); err != nil || !info.IsDir() {
			return nil, &MissingSourceError{Document: "config folder", Path: secondary}
		}
	}

	log := o.logger.With(zap.String("primary", primary), zap.String("config", configDir))
	r := reader{log: log, schemaChecks: o.schemaChecks}

	docs, err := r.readAll(primary, configDir)
	if err != nil {
		return nil, err
	}

	cv, err := assemble(docs, configDir, o.portrait)
	if err != nil {
		return nil, err
	}

	log.Info("profile loaded",
		zap.String("name", cv.Contact.Name),
		zap.Int("skills", len(cv.Skills)),
		zap.Int("certifications", len(cv.Certifications)),
		zap.Strings("sections", cv.Sections.Names()),
	)
	return cv, nil
}

type reader struct {
	log          *zap.Logger
	schemaChecks bool
}

func (r reader) readAll(primary, configDir string) (*documents, error) {
	var docs documents

	found, err := r.read(primary, PersonalDataFile, schemas.PersonalData, &docs.basis)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &MissingSourceError{Document: PersonalDataFile, Path: filepath.Join(primary, PersonalDataFile)}
	}

	optional := []struct {
		dir    string
		file   string
		schema string
		out    interface{}
	}{
		{primary, EmploymentFile, schemas.Employment, &docs.employment},
		{primary, ProfileDataFile, schemas.ProfileData, &docs.profile},
		{primary, MissionStatementFile, schemas.MissionStatement, &docs.mission},
		{primary, SkillsFile, schemas.Skills, &docs.skills},
		{primary, ProjectsFile, schemas.Projects, &docs.projects},
		{primary, CertificationsFile, schemas.Certifications, &docs.certifications},
		{configDir, DisplayConfigFile, schemas.DisplayConfig, &docs.display},
	}
	for _, doc := range optional {
		if _, err := r.read(doc.dir, doc.file, doc.schema, doc.out); err != nil {
			return nil, err
		}
	}

	docs.display = docs.display.WithDefaults()
	return &docs, nil
}

// read decodes dir/name into out. It reports false without error when the
// file does not exist. Empty files leave out untouched.
func (r reader) read(dir, name, schema string, out interface{}) (bool, error) {
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Debug("document not found, using defaults", zap.String("document", name))
			return false, nil
		}
		return false, &MalformedSourceError{Document: name, Path: path, Message: "failed to read file", Cause: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.log.Debug("document is empty", zap.String("document", name))
		return true, nil
	}

	if r.schemaChecks {
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return false, &MalformedSourceError{Document: name, Path: path, Message: "invalid YAML", Cause: err}
		}
		if err := schemas.ValidateDocument(schema, generic); err != nil {
			return false, &MalformedSourceError{Document: name, Path: path, Message: "unexpected structure", Cause: err}
		}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, &MalformedSourceError{Document: name, Path: path, Message: "invalid YAML", Cause: err}
	}

	r.log.Debug("document loaded", zap.String("document", name), zap.Int("bytes", len(data)))
	return true, nil
}

// assemble merges decoded documents into a validated CV
func assemble(docs *documents, configDir, portrait string) (*types.CurriculumVitae, error) {
	lang := docs.display.Language

	contact, contactDoc := buildContact(docs, lang)
	contact.PortraitPath = resolvePortrait(portrait, docs.display.PortraitPath, configDir)
	if err := contact.Validate(); err != nil {
		return nil, &ValidationError{Document: contactDoc, Fields: fieldErrors("contact", err)}
	}

	skills, err := buildSkills(docs.skills.Skills)
	if err != nil {
		return nil, err
	}

	certifications, err := buildCertifications(docs.certifications.Certifications)
	if err != nil {
		return nil, err
	}

	var languageErrors []FieldError
	for i, language := range docs.display.Languages {
		if strings.TrimSpace(language.Name) == "" {
			languageErrors = append(languageErrors, FieldError{
				Field:   fmt.Sprintf("languages[%d].name", i),
				Message: "is required",
			})
		}
	}
	if len(languageErrors) > 0 {
		return nil, &ValidationError{Document: DisplayConfigFile, Fields: languageErrors}
	}

	cvSections, err := buildSections(docs, lang)
	if err != nil {
		return nil, err
	}

	return &types.CurriculumVitae{
		Contact:        contact,
		Summary:        strings.TrimSpace(docs.basis.Sections.ProfessionalProfile.In(lang)),
		Skills:         skills,
		Languages:      docs.display.Languages,
		Certifications: certifications,
		Sections:       cvSections,
	}, nil
}

// buildContact takes identity from cv_basis.yaml and falls back to the
// profile_data of basedata.yaml when persoenliche_daten is absent. It returns
// the contact and the document its identity came from.
func buildContact(docs *documents, lang string) (types.ContactInfo, string) {
	profile := docs.profile.Profile
	personal := docs.basis.PersonalData
	source := PersonalDataFile

	if personal.IsEmpty() {
		personal = &types.PersonalData{
			Name:    profile.Name.In(lang),
			Email:   profile.Email,
			Phone:   profile.Phone,
			Address: profile.Location.In(lang),
		}
		source = ProfileDataFile
	}

	return types.ContactInfo{
		Name:     strings.TrimSpace(personal.Name),
		Email:    strings.TrimSpace(personal.Email),
		Title:    firstNonEmpty(personal.Title, profile.Title.In(lang)),
		Phone:    strings.TrimSpace(personal.Phone),
		Location: strings.Trim(personal.Address+", "+personal.PostalCity, ", "),
		Website:  strings.TrimSpace(profile.Website),
		LinkedIn: firstNonEmpty(personal.LinkedIn, profile.LinkedIn),
		GitHub:   firstNonEmpty(personal.GitHub, profile.GitHub),
	}, source
}

// resolvePortrait prefers the explicit override. A relative path from
// cv_config.yaml is taken relative to the folder holding that file and made
// absolute, since the engine runs in a temporary directory.
func resolvePortrait(override, configured, configDir string) string {
	if override != "" {
		return override
	}
	configured = strings.TrimSpace(configured)
	if configured == "" || filepath.IsAbs(configured) {
		return configured
	}
	joined := filepath.Join(configDir, configured)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}

func buildSkills(entries []types.SkillEntry) ([]types.Skill, error) {
	var (
		skills []types.Skill
		errs   []FieldError
	)
	for i, entry := range entries {
		category := strings.TrimSpace(entry.Category)
		if category == "" {
			category = types.DefaultSkillCategory
		}
		skill := types.Skill{
			Name:        strings.TrimSpace(entry.Title),
			Category:    category,
			Proficiency: strings.TrimSpace(entry.Level),
		}
		if err := skill.Validate(); err != nil {
			errs = append(errs, fieldErrors(fmt.Sprintf("skills[%d]", i), err)...)
			continue
		}
		skills = append(skills, skill)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Document: SkillsFile, Fields: errs}
	}
	return skills, nil
}

func buildCertifications(entries []types.Certification) ([]types.Certification, error) {
	var (
		certifications []types.Certification
		errs           []FieldError
	)
	for i, cert := range entries {
		cert.Title = strings.TrimSpace(cert.Title)
		if err := cert.Validate(); err != nil {
			errs = append(errs, fieldErrors(fmt.Sprintf("certifications[%d]", i), err)...)
			continue
		}
		certifications = append(certifications, cert)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Document: CertificationsFile, Fields: errs}
	}
	return certifications, nil
}

// buildSections formats the transient entries into escaped blocks. Empty
// blocks and sections switched off in cv_config.yaml are left out.
func buildSections(docs *documents, lang string) (types.Sections, error) {
	blocks := []struct {
		name string
		body string
	}{
		{sections.WorkHistory, sections.FormatEmployment(docs.employment.Stations)},
		{sections.Education, sections.FormatEducation(docs.basis.Education)},
		{sections.Availability, sections.FormatAvailability(docs.profile.Profile, lang)},
		{sections.Projects, sections.FormatProjects(docs.projects.Projects)},
		{sections.MissionStatement, sections.FormatMissionStatement(docs.mission, lang)},
	}

	builder := types.NewSectionsBuilder()
	for _, block := range blocks {
		if block.body == "" || docs.display.Omits(block.name) {
			continue
		}
		if err := builder.Add(block.name, block.body); err != nil {
			return types.Sections{}, err
		}
	}
	return builder.Build(), nil
}

// fieldErrors converts validator errors into FieldErrors named after their
// YAML paths, prefixed with prefix when it is set
func fieldErrors(prefix string, err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: prefix, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		// Namespace starts with the struct type name
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if prefix != "" {
			field = prefix + "." + field
		}
		out = append(out, FieldError{Field: field, Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
