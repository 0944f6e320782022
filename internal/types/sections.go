package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is a named block of already-escaped LaTeX
type Section struct {
	Name string
	Body string
}

// Sections is an ordered, read-only mapping from section name to escaped body.
// It is built once through a SectionsBuilder and never modified afterwards.
type Sections struct {
	entries []Section
}

// Get returns the body for name, or "" when there is no such section
func (s Sections) Get(name string) string {
	for _, e := range s.entries {
		if e.Name == name {
			return e.Body
		}
	}
	return ""
}

// Has reports whether a section with the given name exists
func (s Sections) Has(name string) bool {
	for _, e := range s.entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Names returns section names in insertion order
func (s Sections) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// All returns a copy of the sections in insertion order
func (s Sections) All() []Section {
	out := make([]Section, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of sections
func (s Sections) Len() int {
	return len(s.entries)
}

// IsZero lets yaml omitempty drop an empty mapping
func (s Sections) IsZero() bool {
	return len(s.entries) == 0
}

// Equal reports whether both mappings hold the same sections in the same order
func (s Sections) Equal(other Sections) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i := range s.entries {
		if s.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// MarshalYAML encodes the sections as a mapping that keeps insertion order
func (s Sections) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range s.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Body},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping of name to escaped body. Bodies are taken
// as-is: they must already be escaped.
func (s *Sections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sections must be a mapping", node.Line)
	}
	b := NewSectionsBuilder()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name, body string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&body); err != nil {
			return err
		}
		if err := b.Add(name, body); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
	}
	*s = b.Build()
	return nil
}

// SectionsBuilder collects sections before they are frozen into a Sections value
type SectionsBuilder struct {
	entries []Section
	seen    map[string]struct{}
}

// NewSectionsBuilder returns an empty builder
func NewSectionsBuilder() *SectionsBuilder {
	return &SectionsBuilder{seen: make(map[string]struct{})}
}

// Add appends a section. Names must be non-empty and unique.
func (b *SectionsBuilder) Add(name, body string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("section name is empty")
	}
	if _, exists := b.seen[name]; exists {
		return fmt.Errorf("duplicate section %q", name)
	}
	b.seen[name] = struct{}{}
	b.entries = append(b.entries, Section{Name: name, Body: body})
	return nil
}

// Build returns the collected sections. Later calls to Add do not affect
// values already returned.
func (b *SectionsBuilder) Build() Sections {
	entries := make([]Section, len(b.entries))
	copy(entries, b.entries)
	return Sections{entries: entries}
}
