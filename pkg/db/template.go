package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/seq"
)

var ErrTemplateNotFound = errors.New("template not found")

// Template describes a part the user can drag into a design: its category,
// the name shown in the palette and a default length. Sequence is optional;
// parts made from a template without one are filled with N.
type Template struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Length   int    `json:"length" yaml:"length"`
	Sequence string `json:"sequence,omitempty" yaml:"sequence,omitempty"`
}

// TemplateLookup is the read side of the catalog.
type TemplateLookup interface {
	Template(ctx context.Context, id string) (Template, error)
	Templates(ctx context.Context, category string) ([]Template, error)
}

// normalize fills Length from Sequence and strips whitespace from the
// sequence text.
func (t Template) normalize() Template {
	t.ID = strings.TrimSpace(t.ID)
	t.Category = strings.ToLower(strings.TrimSpace(t.Category))
	if t.Sequence != "" {
		t.Sequence = seq.Parse(t.Sequence).String()
		if t.Length == 0 {
			t.Length = len(t.Sequence)
		}
	}
	return t
}

// Validate reports every problem with t at once.
func (t Template) Validate() error {
	var errs error
	if t.ID == "" {
		errs = multierr.Append(errs, errors.New("template id is empty"))
	}
	if t.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("template %q: name is empty", t.ID))
	}
	if t.Category == "" {
		errs = multierr.Append(errs, fmt.Errorf("template %q: category is empty", t.ID))
	}
	if t.Length <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("template %q: length must be positive, got %d", t.ID, t.Length))
	}
	if t.Sequence != "" && len(t.Sequence) != t.Length {
		errs = multierr.Append(errs, fmt.Errorf("template %q: sequence has %d bp but length is %d", t.ID, len(t.Sequence), t.Length))
	}
	return errs
}

// NewPart makes a fresh floating part from t with a generated id.
func NewPart(t Template) compose.Part {
	var symbols seq.Sequence
	if t.Sequence != "" {
		symbols = seq.Parse(t.Sequence)
	} else {
		symbols = seq.Repeat(seq.N, t.Length)
	}
	return compose.Part{
		ID:       uuid.NewString(),
		Name:     t.Name,
		Category: t.Category,
		Sequence: symbols,
	}
}
