// Package sections formats transient source entries into the pre-escaped
// LaTeX blocks stored in a CV's Sections.
package sections

import (
	"fmt"
	"strings"

	"github.com/jonathan/pixcel-cv/internal/rendering"
	"github.com/jonathan/pixcel-cv/internal/types"
)

// Section names used by the loader and the default template
const (
	WorkHistory      = "Beruflicher Werdegang"
	Education        = "Bildungsweg"
	Availability     = "Verfügbarkeit"
	Projects         = "Referenzprojekte"
	MissionStatement = "Leitbild"
)

// FormatEmployment renders employment entries in the order given. Start and
// end dates are escaped but otherwise passed through as written.
func FormatEmployment(entries []types.EmploymentEntry) string {
	var sb strings.Builder

	for _, e := range entries {
		if e.Position != "" {
			sb.WriteString(fmt.Sprintf("\\textbf{%s} \\\\\n", rendering.EscapeLaTeX(e.Position)))
		}
		sb.WriteString(rendering.EscapeLaTeX(e.Company))
		if e.Location != "" {
			sb.WriteString(", " + rendering.EscapeLaTeX(e.Location))
		}
		if dates := dateRange(e.Start, e.End); dates != "" {
			sb.WriteString(" (" + dates + ")")
		}
		sb.WriteString("\n\n")

		if list := itemize(e.Focus); list != "" {
			sb.WriteString("\\textit{Schwerpunkte:}\n")
			sb.WriteString(list)
		}
		if list := itemize(e.Tasks); list != "" {
			sb.WriteString("\\textit{Aufgaben:}\n")
			sb.WriteString(list)
		} else if e.Activity != "" {
			// Simple entries describe the job in a single sentence
			sb.WriteString(rendering.EscapeLaTeX(e.Activity) + "\n")
		}
		if e.MainProject != "" {
			sb.WriteString(fmt.Sprintf("\\textit{Hauptprojekt:} %s\n", rendering.EscapeLaTeX(e.MainProject)))
		}
		sb.WriteString(itemize(e.ProjectTasks))

		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}

// FormatEducation renders education entries in the order given
func FormatEducation(entries []types.EducationEntry) string {
	var sb strings.Builder

	for _, e := range entries {
		if e.Degree != "" {
			sb.WriteString(fmt.Sprintf("\\textbf{%s} \\\\\n", rendering.EscapeLaTeX(e.Degree)))
		}
		sb.WriteString(rendering.EscapeLaTeX(e.Institution))
		if e.Location != "" {
			sb.WriteString(", " + rendering.EscapeLaTeX(e.Location))
		}
		if e.Year != "" {
			sb.WriteString(" (" + rendering.EscapeLaTeX(e.Year) + ")")
		}
		sb.WriteString("\n")

		if focus := rendering.EscapeJoin(e.Focus, ", "); focus != "" {
			sb.WriteString("\\textit{Schwerpunkte:} " + focus + "\n")
		}
		if e.Grade != "" {
			sb.WriteString(fmt.Sprintf("\\textit{Gesamtnote:} %s\n", rendering.EscapeLaTeX(e.Grade)))
		}

		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}

// FilterProjects returns the projects marked include_in_cv, keeping their
// relative order. Projects without the flag are dropped.
func FilterProjects(projects []types.Project) []types.Project {
	var kept []types.Project
	for _, p := range projects {
		if p.IncludeInCV {
			kept = append(kept, p)
		}
	}
	return kept
}

// FormatProjects filters projects and renders the remaining ones. Projects
// without a title are skipped.
func FormatProjects(projects []types.Project) string {
	var sb strings.Builder

	for _, p := range FilterProjects(projects) {
		if p.Title == "" {
			continue
		}

		sb.WriteString(fmt.Sprintf("\\textbf{%s}", rendering.EscapeLaTeX(p.Title)))
		if dates := dateRange(p.PeriodFrom, p.PeriodTo); dates != "" {
			sb.WriteString(" (" + dates + ")")
		}
		sb.WriteString("\n\n")

		if description := BulletsToItemize(p.Description); description != "" {
			sb.WriteString(description + "\n\n")
		}
		if tools := rendering.EscapeJoin(p.Tools, ", "); tools != "" {
			sb.WriteString(fmt.Sprintf("\\textit{Technologien: %s}\n\n", tools))
		}
	}

	return strings.TrimSpace(sb.String())
}

// FormatAvailability renders the availability facts of a profile in lang
func FormatAvailability(profile types.ProfileData, lang string) string {
	facts := []struct {
		label string
		value types.LocalizedText
	}{
		{"Verfügbar ab", profile.AvailableFrom},
		{"Kündigungsfrist", profile.NoticePeriod},
		{"Bereitschaft zu Reisen", profile.WillingToTravel},
		{"Beschäftigungsart", profile.EmploymentStatus},
	}

	var lines []string
	for _, f := range facts {
		value := strings.TrimSpace(f.value.In(lang))
		if value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("\\textbf{%s:} %s", f.label, rendering.EscapeLaTeX(value)))
	}

	return strings.Join(lines, ` \newline `)
}

// FormatMissionStatement renders mission statements in lang as a list
func FormatMissionStatement(statements []types.LocalizedText, lang string) string {
	items := make([]string, 0, len(statements))
	for _, s := range statements {
		items = append(items, strings.TrimSpace(s.In(lang)))
	}
	return strings.TrimSpace(itemize(items))
}

// BulletsToItemize escapes free text and turns runs of "- " lines into
// itemize lists. Other lines are joined with LaTeX line breaks; blocks are
// separated by blank lines.
func BulletsToItemize(text string) string {
	var (
		parts   []string
		bullets []string
		lines   []string
	)

	flushLines := func() {
		if len(lines) > 0 {
			parts = append(parts, rendering.EscapeLaTeXLines(strings.Join(lines, "\n")))
			lines = nil
		}
	}
	flushBullets := func() {
		if len(bullets) > 0 {
			parts = append(parts, strings.TrimSuffix(itemize(bullets), "\n"))
			bullets = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "- ") {
			flushLines()
			bullets = append(bullets, strings.TrimSpace(stripped[2:]))
			continue
		}
		flushBullets()
		if stripped != "" {
			lines = append(lines, stripped)
		}
	}
	flushBullets()
	flushLines()

	return strings.Join(parts, "\n\n")
}

// itemize escapes items into an itemize environment ending in a newline.
// Blank items are skipped; no items yields "".
func itemize(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("  \\item %s\n", rendering.EscapeLaTeX(item)))
	}
	if sb.Len() == 0 {
		return ""
	}
	return "\\begin{itemize}\n" + sb.String() + "\\end{itemize}\n"
}

// dateRange joins start and end with an en dash. Either side may be empty.
func dateRange(start, end string) string {
	start = rendering.EscapeLaTeX(strings.TrimSpace(start))
	end = rendering.EscapeLaTeX(strings.TrimSpace(end))

	switch {
	case start != "" && end != "":
		return start + " -- " + end
	case start != "":
		return start
	default:
		return end
	}
}
