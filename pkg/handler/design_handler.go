package handler

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/handler/request"
)

func (dctx *DesignContext) CreateDesign(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDesignRequest
	if err := decodeBody(w, r, &req); err != nil {
		dctx.writeError(w, r, err)
		return
	}

	d, err := dctx.Designs.Create(req.Name, func(opts ...compose.Option) (*compose.Editor, error) {
		return RestoreDesign(r.Context(), dctx.Catalog, req, opts...)
	})
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}

	view, err := dctx.Designs.View(d.ID)
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	dctx.logger(r).Debug("Design created",
		zap.String("design_id", d.ID),
		zap.Int("background_length", view.BackgroundLength),
		zap.Int("parts", len(view.Parts)),
	)
	w.Header().Set("Location", fmt.Sprintf("/api/v1/designs/%s", d.ID))
	writeJSON(w, http.StatusCreated, view)
}

func (dctx *DesignContext) ListDesigns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dctx.Designs.List())
}

func (dctx *DesignContext) GetDesign(w http.ResponseWriter, r *http.Request) {
	view, err := dctx.Designs.View(r.PathValue("design_id"))
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (dctx *DesignContext) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("design_id")
	if !dctx.Designs.Remove(id) {
		dctx.writeError(w, r, fmt.Errorf("%w: %q", ErrDesignNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
