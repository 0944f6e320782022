package typeset

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CountPDFPages counts the pages of a PDF file.
// It tries pdfinfo first, then falls back to ghostscript.
func CountPDFPages(pdfPath string) (int, error) {
	if count, err := countPagesWithPdfinfo(pdfPath); err == nil {
		return count, nil
	}

	count, err := countPagesWithGhostscript(pdfPath)
	if err == nil {
		return count, nil
	}

	return 0, &PageCountError{
		Path:    pdfPath,
		Message: "neither pdfinfo nor ghostscript could read the file. Please install poppler-utils (pdfinfo) or ghostscript",
		Cause:   err,
	}
}

func countPagesWithPdfinfo(pdfPath string) (int, error) {
	output, err := exec.Command("pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}
	return parsePdfinfoPages(string(output))
}

// parsePdfinfoPages reads the "Pages: N" line of pdfinfo output
func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// psStringEscaper quotes the characters that end or escape a PostScript string
var psStringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// ghostscriptArgs runs in SAFER mode with read access to pdfPath only
func ghostscriptArgs(pdfPath string) []string {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", psStringEscaper.Replace(pdfPath))
	return []string{"-q", "-dNODISPLAY", "--permit-file-read=" + pdfPath, "-c", script}
}

func countPagesWithGhostscript(pdfPath string) (int, error) {
	output, err := exec.Command("gs", ghostscriptArgs(pdfPath)...).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}
	return count, nil
}
