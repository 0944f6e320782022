package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX_EmptyString(t *testing.T) {
	result := EscapeLaTeX("")
	assert.Equal(t, "", result)
}

func TestEscapeLaTeX_NoSpecialCharacters(t *testing.T) {
	text := "Berater für Datenplattformen (Azure, Databricks) seit 2017."
	result := EscapeLaTeX(text)
	assert.Equal(t, text, result)
}

func TestEscapeLaTeX_EachCharacter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test\\backslash", `test\textbackslash{}backslash`},
		{"text{with}braces", `text\{with\}braces`},
		{"kostet $100", `kostet \$100`},
		{"A & B", `A \& B`},
		{"100% fertig", `100\% fertig`},
		{"issue #123", `issue \#123`},
		{"variable_name", `variable\_name`},
		{"x^2", `x\textasciicircum{}2`},
		{"~ungefähr", `\textasciitilde{}ungefähr`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeX_BackslashHandledBeforeBraces(t *testing.T) {
	// The braces introduced by \textbackslash{} must not be escaped again.
	assert.Equal(t, `\textbackslash{}\{\}`, EscapeLaTeX(`\{}`))
}

func TestEscapeLaTeX_MultipleSpecialCharacters(t *testing.T) {
	result := EscapeLaTeX("test${}~&%#^_\\")
	expected := `test\$\{\}\textasciitilde{}\&\%\#\textasciicircum{}\_\textbackslash{}`
	assert.Equal(t, expected, result)
}

func TestEscapeLaTeX_NoUnescapedSpecialsRemain(t *testing.T) {
	inputs := []string{
		"R&D für 50% der Kunden #1",
		"path\\to\\file_name.txt",
		"{json: $value} ~ ^",
		"$$$&&&%%%",
	}

	for _, in := range inputs {
		out := EscapeLaTeX(in)
		// Drop every known escape sequence; nothing special may be left over.
		stripped := out
		for _, seq := range []string{`\textbackslash{}`, `\textasciicircum{}`, `\textasciitilde{}`, `\{`, `\}`, `\$`, `\&`, `\%`, `\#`, `\_`} {
			stripped = strings.ReplaceAll(stripped, seq, "")
		}
		assert.NotContains(t, stripped, "&", "input %q", in)
		assert.NotContains(t, stripped, "%", "input %q", in)
		assert.NotContains(t, stripped, "$", "input %q", in)
		assert.NotContains(t, stripped, "#", "input %q", in)
		assert.NotContains(t, stripped, "_", "input %q", in)
		assert.NotContains(t, stripped, "{", "input %q", in)
		assert.NotContains(t, stripped, "}", "input %q", in)
		assert.NotContains(t, stripped, "\\", "input %q", in)
		assert.NotContains(t, stripped, "^", "input %q", in)
		assert.NotContains(t, stripped, "~", "input %q", in)
	}
}

func TestEscapeLaTeX_UnicodeCharacters(t *testing.T) {
	text := "Müller – Straße: α β γ"
	assert.Equal(t, text, EscapeLaTeX(text))
}

func TestEscapeLaTeX_DoubleApplicationDoubleEscapes(t *testing.T) {
	once := EscapeLaTeX("R&D")
	twice := EscapeLaTeX(once)

	assert.Equal(t, `R\&D`, once)
	assert.Equal(t, `R\textbackslash{}\&D`, twice)
	assert.NotEqual(t, once, twice)
}

func TestEscapeLaTeXLines(t *testing.T) {
	text := "  Erste Zeile & mehr \n\n   zweite_zeile\n"
	assert.Equal(t, `Erste Zeile \& mehr \\ zweite\_zeile`, EscapeLaTeXLines(text))
	assert.Equal(t, "", EscapeLaTeXLines(""))
	assert.Equal(t, "", EscapeLaTeXLines("\n  \n"))
}

func TestEscapeJoin(t *testing.T) {
	assert.Equal(t, `C\#, F\#, Go`, EscapeJoin([]string{"C#", "F#", "", "Go"}, ", "))
	assert.Equal(t, "", EscapeJoin(nil, ", "))
}
