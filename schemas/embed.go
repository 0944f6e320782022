// Package schemas holds the JSON Schemas of the YAML source documents.
package schemas

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed *.schema.json
var files embed.FS

// Suffix is the file name suffix of every schema
const Suffix = ".schema.json"

// Read returns the schema with the given file name, e.g. "skills.schema.json"
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema file names in lexical order
func Names() []string {
	matches, err := fs.Glob(files, "*"+Suffix)
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}
