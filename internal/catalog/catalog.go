// Package catalog reads the YAML files used to seed the book catalog.
//
// A catalog file lists titles explicitly, generates numbered ones, or both:
//
//	books:
//	  - Dune
//	  - Emma
//	generate:
//	  prefix: Great Book Title
//	  start: 0
//	  count: 100
//
// Generated titles are "<prefix> <n>" for n in [start, start+count).
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxGenerated caps generate.count so a typo cannot create millions of rows.
const MaxGenerated = 100000

// File is the on-disk shape of a catalog file.
type File struct {
	Books    []string  `yaml:"books"`
	Generate *Generate `yaml:"generate,omitempty"`
}

// Generate describes a run of numbered titles.
type Generate struct {
	Prefix string `yaml:"prefix"`
	Start  int    `yaml:"start"`
	Count  int    `yaml:"count"`
}

// Load opens path and returns its titles.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening %s: %w", path, err)
	}
	defer f.Close()

	titles, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return titles, nil
}

// Parse decodes a catalog document and expands it into a flat title list,
// explicit books first. Unknown keys are rejected.
func Parse(r io.Reader) ([]string, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return file.Titles()
}

// Titles expands the file into the titles it describes.
func (f File) Titles() ([]string, error) {
	titles := make([]string, 0, len(f.Books))
	for i, b := range f.Books {
		b = strings.TrimSpace(b)
		if b == "" {
			return nil, fmt.Errorf("books[%d] is blank", i)
		}
		titles = append(titles, b)
	}

	if g := f.Generate; g != nil {
		prefix := strings.TrimSpace(g.Prefix)
		switch {
		case prefix == "":
			return nil, errors.New("generate.prefix is required")
		case g.Count < 0 || g.Count > MaxGenerated:
			return nil, fmt.Errorf("generate.count must be between 0 and %d", MaxGenerated)
		case g.Start < 0:
			return nil, errors.New("generate.start must not be negative")
		}
		for n := g.Start; n < g.Start+g.Count; n++ {
			titles = append(titles, fmt.Sprintf("%s %d", prefix, n))
		}
	}

	return titles, nil
}
