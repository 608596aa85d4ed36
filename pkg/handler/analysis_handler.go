package handler

import (
	"net/http"
)

// GetOperons returns the elements, operons (with warnings) and summary for a
// design.
func (dctx *DesignContext) GetOperons(w http.ResponseWriter, r *http.Request) {
	analysis, err := dctx.Designs.Analysis(r.PathValue("design_id"))
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetTranscripts returns only the transcript projection of the operons.
func (dctx *DesignContext) GetTranscripts(w http.ResponseWriter, r *http.Request) {
	analysis, err := dctx.Designs.Analysis(r.PathValue("design_id"))
	if err != nil {
		dctx.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis.Transcripts)
}
