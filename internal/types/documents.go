package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the language key used for localized values
const DefaultLanguage = "de"

// LocalizedText is a value that is either a plain scalar or a mapping of
// language code to text, e.g. `title: {de: Berater, en: Consultant}`.
type LocalizedText struct {
	plain  string
	byLang map[string]string
}

// Text builds a LocalizedText holding a single plain value
func Text(s string) LocalizedText {
	return LocalizedText{plain: s}
}

// In returns the text for lang. Plain scalars are returned for any language;
// mappings without a value for lang fall back to DefaultLanguage.
func (t LocalizedText) In(lang string) string {
	if t.byLang == nil {
		return t.plain
	}
	if text := t.byLang[lang]; text != "" {
		return text
	}
	return t.byLang[DefaultLanguage]
}

// UnmarshalYAML accepts a scalar or a mapping of scalars
func (t *LocalizedText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = LocalizedText{}
			return nil
		}
		*t = LocalizedText{plain: node.Value}
		return nil
	case yaml.MappingNode:
		values := make(map[string]string)
		if err := node.Decode(&values); err != nil {
			return err
		}
		*t = LocalizedText{byLang: values}
		return nil
	default:
		return fmt.Errorf("line %d: expected text or a language mapping", node.Line)
	}
}

// PersonalDataDocument is cv_basis.yaml: identity, summary and education
type PersonalDataDocument struct {
	PersonalData *PersonalData    `yaml:"persoenliche_daten"`
	Sections     BasisSections    `yaml:"sections"`
	Education    []EducationEntry `yaml:"bildungsweg"`
}

// PersonalData is the persoenliche_daten block
type PersonalData struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"telefon"`
	Address    string `yaml:"adresse"`
	PostalCity string `yaml:"plz_ort"`
	Title      string `yaml:"titel"`
	LinkedIn   string `yaml:"linkedin"`
	GitHub     string `yaml:"github"`
}

// IsEmpty reports whether no identity field is set
func (p *PersonalData) IsEmpty() bool {
	return p == nil || *p == (PersonalData{})
}

// BasisSections holds free-text blocks of cv_basis.yaml
type BasisSections struct {
	ProfessionalProfile LocalizedText `yaml:"berufliches_profil"`
}

// EducationEntry is one bildungsweg item
type EducationEntry struct {
	Institution string   `yaml:"institution"`
	Degree      string   `yaml:"abschluss"`
	Year        string   `yaml:"jahr"`
	Location    string   `yaml:"ort"`
	Focus       []string `yaml:"schwerpunkte"`
	Grade       string   `yaml:"gesamtnote"`
}

// EmploymentDocument is berufliche_stationen.yaml
type EmploymentDocument struct {
	Stations []EmploymentEntry `yaml:"berufliche_stationen"`
}

// EmploymentEntry is one job. Start and End are literal strings such as
// "06.2017" or "heute" and are never parsed.
type EmploymentEntry struct {
	Position     string   `yaml:"position"`
	Company      string   `yaml:"unternehmen"`
	Location     string   `yaml:"ort"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"bis"`
	Focus        []string `yaml:"schwerpunkte"`
	Tasks        []string `yaml:"aufgaben"`
	Activity     string   `yaml:"tätigkeit"`
	MainProject  string   `yaml:"hauptprojekt"`
	ProjectTasks []string `yaml:"projektaufgaben"`
}

// ProfileDataDocument is basedata.yaml (legacy profile and availability data)
type ProfileDataDocument struct {
	Profile ProfileData `yaml:"profile_data"`
}

// ProfileData is the profile_data block
type ProfileData struct {
	Name             LocalizedText `yaml:"name"`
	Email            string        `yaml:"email"`
	Phone            string        `yaml:"phone"`
	Location         LocalizedText `yaml:"location"`
	Title            LocalizedText `yaml:"title"`
	Website          string        `yaml:"website"`
	LinkedIn         string        `yaml:"linkedin"`
	GitHub           string        `yaml:"github"`
	AvailableFrom    LocalizedText `yaml:"available_from"`
	NoticePeriod     LocalizedText `yaml:"availability_notice_period"`
	WillingToTravel  LocalizedText `yaml:"willing_to_travel"`
	EmploymentStatus LocalizedText `yaml:"employment_status"`
}

// SkillsDocument is skills.yaml
type SkillsDocument struct {
	Skills []SkillEntry `yaml:"skills"`
}

// SkillEntry is one raw skill
type SkillEntry struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Level    string `yaml:"level"`
}

// ProjectsDocument is projekt_historie.yaml
type ProjectsDocument struct {
	Projects []Project `yaml:"projects"`
}

// Project is one reference project. Only projects with IncludeInCV set to
// true are shown; a missing flag means false.
type Project struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"project_de"`
	PeriodFrom  string   `yaml:"period_from"`
	PeriodTo    string   `yaml:"period_to"`
	Description string   `yaml:"description_de"`
	Tools       []string `yaml:"tools_libraries"`
	IncludeInCV bool     `yaml:"include_in_cv"`
}

// CertificationsDocument is certifications.yaml
type CertificationsDocument struct {
	Certifications []Certification `yaml:"certifications"`
}

// MissionStatementDocument is missionstatement.yaml, a list of statements
type MissionStatementDocument []LocalizedText

// DisplayConfig is cv_config.yaml
type DisplayConfig struct {
	PortraitPath string     `yaml:"portrait_path"`
	Language     string     `yaml:"language"`
	Languages    []Language `yaml:"languages"`
	OmitSections []string   `yaml:"omit_sections"`
}

// WithDefaults fills unset fields with the built-in defaults
func (c DisplayConfig) WithDefaults() DisplayConfig {
	if strings.TrimSpace(c.Language) == "" {
		c.Language = DefaultLanguage
	}
	if len(c.Languages) == 0 {
		c.Languages = []Language{
			{Name: "Deutsch", Level: "Muttersprache"},
			{Name: "Englisch", Level: "Fließend"},
		}
	}
	return c
}

// Omits reports whether the named section is switched off
func (c DisplayConfig) Omits(section string) bool {
	for _, name := range c.OmitSections {
		if strings.EqualFold(strings.TrimSpace(name), section) {
			return true
		}
	}
	return false
}
