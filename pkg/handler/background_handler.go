package handler

import (
	"fmt"
	"net/http"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/handler/request"
	"github.com/yumyai/genecanvas/pkg/seq"
)

// EditSelection handles /background/{op} for copy, cut and delete.
func (dctx *DesignContext) EditSelection(w http.ResponseWriter, r *http.Request) {
	op := request.NewSelectionOp(r.PathValue("op"))
	if op == request.SelectionUnknown {
		dctx.writeError(w, r, fmt.Errorf("%w: unknown selection edit %q", ErrBadRequest, r.PathValue("op")))
		return
	}

	var req request.SelectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		dctx.writeError(w, r, err)
		return
	}

	var selected *string
	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		var (
			symbols seq.Sequence
			err     error
		)
		switch op {
		case request.SelectionCopy:
			symbols, err = e.CopySelection(req.Start, req.End)
		case request.SelectionCut:
			symbols, err = e.CutSelection(req.Start, req.End)
		case request.SelectionDelete:
			return e.DeleteSelection(req.Start, req.End)
		}
		if err == nil {
			text := symbols.String()
			selected = &text
		}
		return err
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Design: view, Sequence: selected})
}

func (dctx *DesignContext) Paste(w http.ResponseWriter, r *http.Request) {
	var req request.PasteRequest
	if err := decodeBody(w, r, &req); err != nil {
		dctx.writeError(w, r, err)
		return
	}

	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		return e.Paste(req.Boundary, seq.Parse(req.Sequence))
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Design: view})
}

func (dctx *DesignContext) SetOrigin(w http.ResponseWriter, r *http.Request) {
	var req request.OriginRequest
	if err := decodeBody(w, r, &req); err != nil {
		dctx.writeError(w, r, err)
		return
	}

	view, err := dctx.Designs.Edit(r.PathValue("design_id"), func(e *compose.Editor) error {
		return e.SetOrigin(req.Origin)
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{Design: view})
}
