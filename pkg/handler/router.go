package handler

import (
	"net/http"
)

func NewRouter(dctx *DesignContext) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", HealthCheck)

	// Catalog
	mux.HandleFunc("GET /api/v1/templates", dctx.ListTemplates)
	mux.HandleFunc("GET /api/v1/templates/{template_id}", dctx.GetTemplate)

	// Designs
	mux.HandleFunc("POST /api/v1/designs", dctx.CreateDesign)
	mux.HandleFunc("GET /api/v1/designs", dctx.ListDesigns)
	mux.HandleFunc("GET /api/v1/designs/{design_id}", dctx.GetDesign)
	mux.HandleFunc("DELETE /api/v1/designs/{design_id}", dctx.DeleteDesign)

	// Part edits
	mux.HandleFunc("POST /api/v1/designs/{design_id}/parts", dctx.InsertPart)
	mux.HandleFunc("DELETE /api/v1/designs/{design_id}/parts/{part_id}", dctx.DeletePart)
	mux.HandleFunc("POST /api/v1/designs/{design_id}/parts/{part_id}/move", dctx.MovePart)

	// Background edits
	mux.HandleFunc("POST /api/v1/designs/{design_id}/background/paste", dctx.Paste)
	mux.HandleFunc("POST /api/v1/designs/{design_id}/background/{op}", dctx.EditSelection)
	mux.HandleFunc("POST /api/v1/designs/{design_id}/origin", dctx.SetOrigin)

	// Analysis
	mux.HandleFunc("GET /api/v1/designs/{design_id}/operons", dctx.GetOperons)
	mux.HandleFunc("GET /api/v1/designs/{design_id}/transcripts", dctx.GetTranscripts)

	return mux
}
