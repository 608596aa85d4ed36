package handler

import (
	"time"

	"github.com/yumyai/genecanvas/pkg/circuit"
	"github.com/yumyai/genecanvas/pkg/compose"
)

type PartView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
	Placed   bool   `json:"placed"`
	Start    *int   `json:"start,omitempty"`
	End      *int   `json:"end,omitempty"`
	Length   int    `json:"length"`
	Sequence string `json:"sequence"`
}

type DesignView struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Background       string     `json:"background"`
	BackgroundLength int        `json:"background_length"`
	ComposedLength   int        `json:"composed_length"`
	Parts            []PartView `json:"parts"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type AnalysisView struct {
	DesignID    string               `json:"design_id"`
	Elements    []circuit.Element    `json:"elements"`
	Operons     []circuit.Operon     `json:"operons"`
	Transcripts []circuit.Transcript `json:"transcripts"`
	Summary     circuit.Summary      `json:"summary"`
}

// EditResponse is returned by every edit: the design afterwards plus whatever
// the edit produced.
type EditResponse struct {
	Design    DesignView         `json:"design"`
	PartID    string             `json:"part_id,omitempty"`
	Placement *compose.Placement `json:"placement,omitempty"`
	Sequence  *string            `json:"sequence,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (d *Design) view() DesignView {
	layout := d.editor.Layout()
	parts := d.editor.Parts()

	views := make([]PartView, 0, len(parts))
	for _, p := range parts {
		pv := PartView{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Kind:     circuit.Classify(p.Category).String(),
			Placed:   p.Placed,
			Length:   p.Len(),
			Sequence: p.Sequence.String(),
		}
		if p.Placed {
			span, ok := layout.SpanOf(p.ID)
			if !ok {
				span = p.Span()
			}
			start, end := span.Start, span.End
			pv.Start, pv.End = &start, &end
		}
		views = append(views, pv)
	}

	return DesignView{
		ID:               d.ID,
		Name:             d.Name,
		Background:       d.editor.Background().String(),
		BackgroundLength: layout.BackgroundLength,
		ComposedLength:   layout.Len(),
		Parts:            views,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// Analyze runs the full circuit analysis over an editor's current layout.
func Analyze(designID string, editor *compose.Editor) AnalysisView {
	elements := circuit.ElementsFromLayout(editor.Parts(), editor.Layout())
	operons := circuit.Analyze(elements)
	return AnalysisView{
		DesignID:    designID,
		Elements:    elements,
		Operons:     operons,
		Transcripts: circuit.Transcripts(operons),
		Summary:     circuit.Summarize(operons),
	}
}
