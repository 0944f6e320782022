package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest_ResolvesPathsAndNames(t *testing.T) {
	path := writeManifest(t, `parallel: 2
jobs:
  - yaml_folder: data/de
    config_folder: config
    pdf: out/cv_de.pdf
  - name: english
    input: export/cv_en.yaml
    latex: /tmp/cv_en.tex
    engine: xelatex
`)
	base := filepath.Dir(path)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, 2, m.Parallel)
	require.Len(t, m.Jobs, 2)

	assert.Equal(t, "de", m.Jobs[0].Name)
	assert.Equal(t, filepath.Join(base, "data", "de"), m.Jobs[0].YAMLFolder)
	assert.Equal(t, filepath.Join(base, "config"), m.Jobs[0].ConfigFolder)
	assert.Equal(t, filepath.Join(base, "out", "cv_de.pdf"), m.Jobs[0].OutputPDF)

	assert.Equal(t, "english", m.Jobs[1].Name)
	assert.Equal(t, filepath.Join(base, "export", "cv_en.yaml"), m.Jobs[1].Input)
	assert.Equal(t, "/tmp/cv_en.tex", m.Jobs[1].OutputLaTeX)
	assert.Equal(t, "xelatex", m.Jobs[1].Engine)
}

func TestLoadManifest_DefaultNameFromInput(t *testing.T) {
	path := writeManifest(t, `jobs:
  - input: cv_en.yaml
    pdf: cv_en.pdf
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "cv_en", m.Jobs[0].Name)
}

func TestLoadManifest_Problems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "empty",
			content: "",
			want:    []string{"jobs: at least one entry is required"},
		},
		{
			name: "both sources",
			content: `jobs:
  - yaml_folder: de
    input: cv.yaml
    pdf: cv.pdf
`,
			want: []string{"jobs[0]: input and yaml_folder are mutually exclusive"},
		},
		{
			name: "no source no output",
			content: `jobs:
  - name: x
`,
			want: []string{
				"jobs[0]: one of input or yaml_folder is required",
				"jobs[0]: one of pdf or latex is required",
			},
		},
		{
			name: "duplicate names",
			content: `jobs:
  - yaml_folder: a/cv
    pdf: a.pdf
  - yaml_folder: b/cv
    pdf: b.pdf
`,
			want: []string{`jobs[1]: duplicate job name "cv" (also jobs[0])`},
		},
		{
			name: "bad engine and negative values",
			content: `parallel: -1
jobs:
  - yaml_folder: de
    pdf: cv.pdf
    engine: context
    max_pages: -2
`,
			want: []string{
				"parallel: must be non-negative",
				`jobs[0].engine: "context" is not one of pdflatex xelatex lualatex`,
				"jobs[0].max_pages: must be non-negative",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tt.content))
			require.Error(t, err)

			var manifestErr *ManifestError
			require.ErrorAs(t, err, &manifestErr)
			assert.ElementsMatch(t, tt.want, manifestErr.Problems)
		})
	}
}

func TestLoadManifest_UnknownField(t *testing.T) {
	_, err := LoadManifest(writeManifest(t, `jobs:
  - yaml_folder: de
    pdf: cv.pdf
    colour: blue
`))
	require.Error(t, err)

	var manifestErr *ManifestError
	require.ErrorAs(t, err, &manifestErr)
	assert.NotNil(t, manifestErr.Cause)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadManifest_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid manifest "+path))
}
