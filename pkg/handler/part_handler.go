package handler

import (
	"net/http"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/handler/request"
)

// InsertPart adds a part to a design. With a boundary it is placed (and
// possibly snapped); without one it is added floating.
func (dctx *DesignContext) InsertPart(w http.ResponseWriter, r *http.Request) {
	var spec request.PartSpec
	if err := decodeBody(w, r, &spec); err != nil {
		dctx.writeError(w, r, err)
		return
	}
	part, err := BuildPart(r.Context(), dctx.Catalog, spec)
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}

	var (
		partID    string
		placement *compose.Placement
	)
	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		if spec.Boundary == nil {
			id, err := e.AddFloating(part)
			partID = id
			return err
		}
		id, p, err := e.InsertPart(part, *spec.Boundary)
		partID, placement = id, &p
		return err
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, EditResponse{Design: view, PartID: partID, Placement: placement})
}

func (dctx *DesignContext) DeletePart(w http.ResponseWriter, r *http.Request) {
	partID := r.PathValue("part_id")
	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		return e.DeletePart(partID)
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Design: view, PartID: partID})
}

// MovePart repositions a placed part, or places a floating one.
func (dctx *DesignContext) MovePart(w http.ResponseWriter, r *http.Request) {
	var req request.MovePartRequest
	if err := decodeBody(w, r, &req); err != nil {
		dctx.writeError(w, r, err)
		return
	}

	partID := r.PathValue("part_id")
	var placement compose.Placement
	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		p, err := e.MovePart(partID, req.Boundary)
		placement = p
		return err
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Design: view, PartID: partID, Placement: &placement})
}
