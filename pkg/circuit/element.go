// Package circuit finds operons in an ordered list of placed parts and
// checks them for common design mistakes.
package circuit

import (
	"sort"
	"strings"

	"github.com/yumyai/genecanvas/pkg/compose"
)

type Kind int

const (
	KindOther Kind = iota
	KindPromoter
	KindRBS
	KindGene
	KindTerminator
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindPromoter:
		return "promoter"
	case KindRBS:
		return "rbs"
	case KindGene:
		return "gene"
	case KindTerminator:
		return "terminator"
	case KindOperator:
		return "operator"
	default:
		return "other"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify maps a free-form category tag onto a Kind. Unknown tags are
// KindOther.
func Classify(category string) Kind {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "promoter":
		return KindPromoter
	case "rbs", "ribosome binding site", "ribosome_binding_site", "ribosome-binding-site":
		return KindRBS
	case "gene", "cds", "coding":
		return KindGene
	case "terminator":
		return KindTerminator
	case "operator":
		return KindOperator
	default:
		return KindOther
	}
}

// Element is a placed part as seen by the analysis, in composed coordinates.
type Element struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Start int    `json:"start_bp"`
	End   int    `json:"end_bp"`
	Name  string `json:"name"`
}

// SortElements orders elements by start. Ties keep their input order.
func SortElements(elements []Element) {
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].Start < elements[j].Start })
}

// ElementsFromLayout classifies every placed part, using the span the layout
// gave it. Floating parts are skipped.
func ElementsFromLayout(parts []compose.Part, layout *compose.Layout) []Element {
	elements := make([]Element, 0, len(parts))
	for _, p := range parts {
		if !p.Placed {
			continue
		}
		span, ok := layout.SpanOf(p.ID)
		if !ok {
			span = p.Span()
		}
		elements = append(elements, Element{
			ID:    p.ID,
			Kind:  Classify(p.Category),
			Start: span.Start,
			End:   span.End,
			Name:  p.Name,
		})
	}
	SortElements(elements)
	return elements
}
