// Package rendering turns a CurriculumVitae into LaTeX source.
package rendering

import "strings"

// latexReplacements maps every LaTeX-significant character to a sequence
// that typesets as the literal character.
var latexReplacements = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'_':  `\_`,
	'^':  `\textasciicircum{}`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes special LaTeX characters in text: \ { } $ & % # _ ^ ~
//
// The input is scanned once, so replacement text is never escaped again
// within a call. Calling it on already escaped text escapes it a second time.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		if repl, ok := latexReplacements[r]; ok {
			result.WriteString(repl)
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// EscapeLaTeXLines escapes each non-blank line of text and joins the lines
// with a LaTeX line break. Surrounding whitespace of each line is dropped.
func EscapeLaTeXLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, EscapeLaTeX(line))
	}
	return strings.Join(lines, ` \\ `)
}

// EscapeJoin escapes every item and joins them with sep. sep is not escaped.
func EscapeJoin(items []string, sep string) string {
	escaped := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		escaped = append(escaped, EscapeLaTeX(item))
	}
	return strings.Join(escaped, sep)
}
