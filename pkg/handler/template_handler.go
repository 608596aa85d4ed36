package handler

import (
	"fmt"
	"net/http"

	"github.com/yumyai/genecanvas/pkg/db"
)

// ListTemplates serves the part palette, optionally narrowed by ?category=.
func (dctx *DesignContext) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if dctx.Catalog == nil {
		writeJSON(w, http.StatusOK, []db.Template{})
		return
	}

	templates, err := dctx.Catalog.Templates(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (dctx *DesignContext) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("template_id")
	if dctx.Catalog == nil {
		dctx.writeError(w, r, fmt.Errorf("%w: %q", db.ErrTemplateNotFound, id))
		return
	}

	t, err := dctx.Catalog.Template(r.Context(), id)
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
