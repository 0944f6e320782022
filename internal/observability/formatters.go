// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/pixcel-cv/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCV outputs a human-readable summary of the assembled CV record.
func (p *Printer) PrintCV(cv *types.CurriculumVitae) {
	if cv == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", cv.Contact.Name))
	if cv.Contact.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", cv.Contact.Title))
	}
	sb.WriteString(fmt.Sprintf("Email:    %s\n", cv.Contact.Email))
	if cv.Contact.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", cv.Contact.Location))
	}
	if cv.Contact.PortraitPath != "" {
		sb.WriteString(fmt.Sprintf("Portrait: %s\n", cv.Contact.PortraitPath))
	}
	sb.WriteString("\n")

	if groups := cv.SkillGroups(); len(groups) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(cv.Skills)))
		count := min(len(groups), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", groups[i].Category, strings.Join(groups[i].Items, ", ")))
		}
		if len(groups) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more categories\n", len(groups)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(cv.Languages) > 0 {
		names := make([]string, 0, len(cv.Languages))
		for _, lang := range cv.Languages {
			if lang.Level != "" {
				names = append(names, fmt.Sprintf("%s (%s)", lang.Name, lang.Level))
			} else {
				names = append(names, lang.Name)
			}
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(names, ", ")))
	}

	if len(cv.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(cv.Certifications)))
	}

	if names := cv.Sections.Names(); len(names) > 0 {
		sb.WriteString("\nSections:\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
	}

	p.printBox("LOADED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLaTeXPreview outputs the first lines of the rendered document.
func (p *Printer) PrintLaTeXPreview(latex string, lines int) {
	if latex == "" || lines <= 0 {
		return
	}

	all := strings.Split(strings.TrimRight(latex, "\n"), "\n")
	count := min(len(all), lines)
	content := strings.Join(all[:count], "\n")
	if len(all) > lines {
		content += fmt.Sprintf("\n... (%d more lines)", len(all)-lines)
	}

	p.printBox("LATEX PREVIEW", content)
}

// BuildSummary describes one finished (or failed) CV build.
type BuildSummary struct {
	Name     string
	PDFPath  string
	Pages    int
	Duration time.Duration
	Err      error
}

// PrintBuildSummaries outputs one line per build followed by the totals.
func (p *Printer) PrintBuildSummaries(summaries []BuildSummary) {
	if len(summaries) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, s := range summaries {
		if s.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s: %v\n", s.Name, s.Err))
			continue
		}
		line := fmt.Sprintf("✓ %s", s.Name)
		if s.PDFPath != "" {
			line += fmt.Sprintf(" → %s", s.PDFPath)
		}
		if s.Pages > 0 {
			line += fmt.Sprintf(" (%d pages)", s.Pages)
		}
		sb.WriteString(line + fmt.Sprintf(" [%s]\n", s.Duration.Round(time.Millisecond)))
	}
	sb.WriteString(fmt.Sprintf("\n%d built, %d failed", len(summaries)-failed, failed))

	p.printBox("BATCH RESULTS", sb.String())
}
