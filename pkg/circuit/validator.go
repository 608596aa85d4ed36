package circuit

import (
	"fmt"

	"github.com/yumyai/genecanvas/pkg/compose"
)

// MaxGapBp is the largest spacing between consecutive operon elements that
// does not produce a warning.
const MaxGapBp = 100

// Validate returns a copy of o with Warnings and Valid filled in. The input
// is not modified.
func Validate(o Operon) Operon {
	var warnings []string

	if o.Terminator == nil {
		warnings = append(warnings, fmt.Sprintf("Operon '%s' missing terminator", o.Promoter.Name))
	}
	if len(o.Pairs) == 0 {
		warnings = append(warnings, fmt.Sprintf("Operon '%s' has no genes", o.Promoter.Name))
	}

	flat := o.Flatten()
	for i := 0; i+1 < len(flat); i++ {
		curr, next := flat[i], flat[i+1]
		gap := next.Start - curr.End
		switch {
		case gap > MaxGapBp:
			warnings = append(warnings, fmt.Sprintf("Large gap (%dbp) between %s and %s", gap, curr.Name, next.Name))
		case gap < 0:
			warnings = append(warnings, fmt.Sprintf("Overlapping elements: %s and %s", curr.Name, next.Name))
		}
	}

	out := o
	out.Pairs = append([]RBSGenePair(nil), o.Pairs...)
	out.Warnings = warnings
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	out.Valid = len(warnings) == 0
	return out
}

// Analyze detects and validates operons in elements sorted by start.
func Analyze(elements []Element) []Operon {
	operons := NewDetector().Detect(elements)
	for i := range operons {
		operons[i] = Validate(operons[i])
	}
	return operons
}

// AnalyzeLayout classifies the placed parts of a layout and analyzes them.
func AnalyzeLayout(parts []compose.Part, layout *compose.Layout) []Operon {
	return Analyze(ElementsFromLayout(parts, layout))
}

// Summary holds the counts shown next to the analysis panel.
type Summary struct {
	Operons  int `json:"operons"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Genes    int `json:"genes"`
	Warnings int `json:"warnings"`
}

func Summarize(operons []Operon) Summary {
	var s Summary
	for _, o := range operons {
		s.Operons++
		if o.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
		s.Genes += len(o.Pairs)
		s.Warnings += len(o.Warnings)
	}
	return s
}
