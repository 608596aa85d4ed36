package db

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by ImportYAML:
//
//	templates:
//	  - id: pLac
//	    name: lac promoter
//	    category: promoter
//	    length: 40
type SeedFile struct {
	Templates []Template `yaml:"templates"`
}

// ImportYAML loads a seed file into the catalog and returns how many
// templates were stored. Nothing is stored when any template is invalid.
func (c *Catalog) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}
	if err := c.PutAll(ctx, seed.Templates); err != nil {
		return 0, err
	}
	return len(seed.Templates), nil
}

// ImportFASTA stores one template per FASTA record, all in category. The
// first word of the header is the id, the rest (or the id) the name.
func (c *Catalog) ImportFASTA(ctx context.Context, r io.Reader, category string) (int, error) {
	templates, err := ReadFASTA(r, category)
	if err != nil {
		return 0, err
	}
	if err := c.PutAll(ctx, templates); err != nil {
		return 0, err
	}
	return len(templates), nil
}

// ReadFASTA parses FASTA records into templates of the given category.
func ReadFASTA(r io.Reader, category string) ([]Template, error) {
	var (
		templates []Template
		current   *Template
		body      strings.Builder
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Sequence = body.String()
		current.Length = len(current.Sequence)
		templates = append(templates, *current)
		body.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "" || strings.HasPrefix(text, ";"):
			continue
		case strings.HasPrefix(text, ">"):
			flush()
			header := strings.TrimSpace(text[1:])
			id, name, _ := strings.Cut(header, " ")
			if id == "" {
				return nil, fmt.Errorf("line %d: FASTA header without id", line)
			}
			if name = strings.TrimSpace(name); name == "" {
				name = id
			}
			current = &Template{ID: id, Name: name, Category: category}
		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: sequence before first FASTA header", line)
			}
			body.WriteString(text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return templates, nil
}
