package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/pixcel-cv/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCV(t *testing.T) *types.CurriculumVitae {
	t.Helper()
	b := types.NewSectionsBuilder()
	require.NoError(t, b.Add("Beruflicher Werdegang", "body"))
	require.NoError(t, b.Add("Bildungsweg", "body"))

	return &types.CurriculumVitae{
		Contact: types.ContactInfo{
			Name:     "Max Mustermann",
			Email:    "max@example.de",
			Title:    "Data Engineer",
			Location: "Berlin",
		},
		Skills: []types.Skill{
			{Name: "Go", Category: "Programmiersprachen"},
			{Name: "Azure", Category: "Cloud"},
			{Name: "Python", Category: "Programmiersprachen"},
		},
		Languages: []types.Language{
			{Name: "Deutsch", Level: "Muttersprache"},
			{Name: "Englisch"},
		},
		Certifications: []types.Certification{{Title: "AZ-900", Issuer: "Microsoft"}},
		Sections:       b.Build(),
	}
}

func TestPrintCV(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCV(sampleCV(t))
	output := buf.String()

	assert.Contains(t, output, "LOADED CV")
	assert.Contains(t, output, "Max Mustermann")
	assert.Contains(t, output, "Data Engineer")
	assert.Contains(t, output, "Programmiersprachen: Go, Python")
	assert.Contains(t, output, "Cloud: Azure")
	assert.Contains(t, output, "Deutsch (Muttersprache), Englisch")
	assert.Contains(t, output, "Certifications: 1")
	assert.Less(t, strings.Index(output, "Beruflicher Werdegang"), strings.Index(output, "Bildungsweg"))
	assert.NotContains(t, output, "Portrait:")
}

func TestPrintCV_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCV(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCV_ManySkillCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	cv := sampleCV(t)
	cv.Skills = nil
	for _, category := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		cv.Skills = append(cv.Skills, types.Skill{Name: "x", Category: category})
	}

	p.PrintCV(cv)

	assert.Contains(t, buf.String(), "... and 2 more categories")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "kurz\n"+strings.Repeat("ä", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, lines[4], "...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Bildungsweg", 20, "Bildungsweg"},
		{"exact", "abc", 3, "abc"},
		{"cut", "Verfügbarkeit", 8, "Verfü..."},
		{"tiny width", "Verfügbarkeit", 2, "Ve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.width))
		})
	}
}

func TestPrintLaTeXPreview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLaTeXPreview("line1\nline2\nline3\nline4\n", 2)
	output := buf.String()

	assert.Contains(t, output, "LATEX PREVIEW")
	assert.Contains(t, output, "line2")
	assert.NotContains(t, output, "line3")
	assert.Contains(t, output, "(2 more lines)")
}

func TestPrintLaTeXPreview_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLaTeXPreview("", 10)

	assert.Empty(t, buf.String())
}

func TestPrintBuildSummaries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBuildSummaries([]BuildSummary{
		{Name: "de", PDFPath: "out/de.pdf", Pages: 2, Duration: 1500 * time.Millisecond},
		{Name: "en", Err: errors.New("boom")},
	})
	output := buf.String()

	assert.Contains(t, output, "BATCH RESULTS")
	assert.Contains(t, output, "✓ de → out/de.pdf (2 pages) [1.5s]")
	assert.Contains(t, output, "✗ en: boom")
	assert.Contains(t, output, "1 built, 1 failed")
}

func TestPrintBuildSummaries_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBuildSummaries(nil)

	assert.Empty(t, buf.String())
}
