package handler

// DI for all handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/db"
	"github.com/yumyai/genecanvas/pkg/middle"
)

const maxBodyBytes = 8 << 20

type DesignContext struct {
	Catalog db.TemplateLookup
	Designs *DesignManager
	Log     *zap.Logger
}

func (dctx *DesignContext) logger(r *http.Request) *zap.Logger {
	return middle.LoggerFrom(r.Context(), dctx.Log)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrDesignNotFound),
		errors.Is(err, compose.ErrUnknownPart),
		errors.Is(err, db.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, compose.ErrDuplicatePart):
		return http.StatusConflict
	case errors.Is(err, compose.ErrUnsupportedEdit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, compose.ErrInvalidRange),
		errors.Is(err, compose.ErrIntegrity),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (dctx *DesignContext) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		dctx.logger(r).Error("Request failed", zap.Error(err))
		writeJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}
	dctx.logger(r).Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// decodeBody reads a JSON body into v. Unknown fields are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty request body", ErrBadRequest)
		}
		return fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err)
	}
	return nil
}
