package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/db"
)

type stubCatalog map[string]db.Template

func (c stubCatalog) Template(_ context.Context, id string) (db.Template, error) {
	t, ok := c[id]
	if !ok {
		return db.Template{}, fmt.Errorf("%w: %q", db.ErrTemplateNotFound, id)
	}
	return t, nil
}

func (c stubCatalog) Templates(_ context.Context, category string) ([]db.Template, error) {
	out := []db.Template{}
	for _, id := range []string{"pLac", "B0034", "gfp", "B0015"} {
		if t, ok := c[id]; ok && (category == "" || t.Category == category) {
			out = append(out, t)
		}
	}
	return out, nil
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"pLac":  {ID: "pLac", Name: "lac promoter", Category: "promoter", Length: 40},
		"B0034": {ID: "B0034", Name: "B0034", Category: "rbs", Length: 12, Sequence: "AAAGAGGAGAAA"},
		"gfp":   {ID: "gfp", Name: "GFP", Category: "gene", Length: 720},
		"B0015": {ID: "B0015", Name: "B0015", Category: "terminator", Length: 129},
	}
}

func newTestServer() http.Handler {
	dctx := &DesignContext{
		Catalog: testCatalog(),
		Designs: NewDesignManager(zap.NewNop(), false),
		Log:     zap.NewNop(),
	}
	return NewRouter(dctx)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createDesign(t *testing.T, h http.Handler, background string) DesignView {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/v1/designs", map[string]any{"name": "test", "background": background})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[DesignView](t, rr)
}

func insert(t *testing.T, h http.Handler, designID string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, http.MethodPost, "/api/v1/designs/"+designID+"/parts", body)
}

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestServer(), http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rr).Health)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestListTemplates(t *testing.T) {
	h := newTestServer()

	all := decode[[]db.Template](t, do(t, h, http.MethodGet, "/api/v1/templates", nil))
	assert.Len(t, all, 4)

	genes := decode[[]db.Template](t, do(t, h, http.MethodGet, "/api/v1/templates?category=gene", nil))
	require.Len(t, genes, 1)
	assert.Equal(t, "gfp", genes[0].ID)

	rr := do(t, h, http.MethodGet, "/api/v1/templates/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuildOperonThroughAPI(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, strings.Repeat("A", 2000))
	assert.Equal(t, 2000, d.ComposedLength)

	for _, step := range []struct {
		template string
		boundary int
	}{
		{"pLac", 10},
		{"B0034", 50},
		{"gfp", 62},
		{"B0015", 782},
	} {
		rr := insert(t, h, d.ID, map[string]any{"template_id": step.template, "boundary": step.boundary})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		resp := decode[EditResponse](t, rr)
		require.NotNil(t, resp.Placement)
		assert.Equal(t, step.boundary, resp.Placement.Boundary, step.template)
		assert.False(t, resp.Placement.Snapped, step.template)
	}

	view := decode[DesignView](t, do(t, h, http.MethodGet, "/api/v1/designs/"+d.ID, nil))
	assert.Equal(t, 2000+40+12+720+129, view.ComposedLength)
	assert.Equal(t, 2000, view.BackgroundLength)
	require.Len(t, view.Parts, 4)
	assert.Equal(t, "promoter", view.Parts[0].Kind)

	rr := do(t, h, http.MethodGet, "/api/v1/designs/"+d.ID+"/operons", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	analysis := decode[AnalysisView](t, rr)
	require.Len(t, analysis.Operons, 1)
	assert.True(t, analysis.Operons[0].Valid)
	assert.Empty(t, analysis.Operons[0].Warnings)
	assert.Equal(t, 1, analysis.Summary.Valid)
	assert.Equal(t, 1, analysis.Summary.Genes)
	assert.Len(t, analysis.Elements, 4)

	rr = do(t, h, http.MethodGet, "/api/v1/designs/"+d.ID+"/transcripts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"promoterName":"lac promoter"`)
	assert.Contains(t, rr.Body.String(), `"geneName":"GFP"`)
}

func TestInsertSnapsAndFloats(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, strings.Repeat("A", 200))

	require.Equal(t, http.StatusCreated, insert(t, h, d.ID, map[string]any{"template_id": "pLac", "boundary": 10}).Code)

	rr := insert(t, h, d.ID, map[string]any{"category": "operator", "name": "lacO", "sequence": "AATTGTGAGC", "boundary": 20})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	resp := decode[EditResponse](t, rr)
	require.NotNil(t, resp.Placement)
	assert.Equal(t, 0, resp.Placement.Boundary)
	assert.True(t, resp.Placement.Snapped)

	rr = insert(t, h, d.ID, map[string]any{"category": "gene", "length": 30})
	require.Equal(t, http.StatusCreated, rr.Code)
	floating := decode[EditResponse](t, rr)
	assert.Nil(t, floating.Placement)
	var found bool
	for _, p := range floating.Design.Parts {
		if p.ID == floating.PartID {
			found = true
			assert.False(t, p.Placed)
			assert.Nil(t, p.Start)
		}
	}
	assert.True(t, found)
	assert.Equal(t, 250, floating.Design.ComposedLength)
}

func TestMoveAndDeletePart(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, strings.Repeat("A", 200))
	rr := insert(t, h, d.ID, map[string]any{"id": "p1", "template_id": "pLac", "boundary": 10})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/designs/"+d.ID+"/parts/p1/move", map[string]any{"boundary": 100})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	moved := decode[EditResponse](t, rr)
	assert.Equal(t, 60, moved.Placement.Boundary)
	require.Len(t, moved.Design.Parts, 1)
	assert.Equal(t, 60, *moved.Design.Parts[0].Start)
	assert.Equal(t, 100, *moved.Design.Parts[0].End)

	rr = do(t, h, http.MethodDelete, "/api/v1/designs/"+d.ID+"/parts/p1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[EditResponse](t, rr).Design.Parts)

	rr = do(t, h, http.MethodDelete, "/api/v1/designs/"+d.ID+"/parts/p1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBackgroundEdits(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, strings.Repeat("ACGT", 50))
	require.Equal(t, http.StatusCreated, insert(t, h, d.ID, map[string]any{"template_id": "pLac", "boundary": 100}).Code)

	rr := do(t, h, http.MethodPost, "/api/v1/designs/"+d.ID+"/background/copy", map[string]any{"start": 0, "end": 8})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	copied := decode[EditResponse](t, rr)
	require.NotNil(t, copied.Sequence)
	assert.Equal(t, "ACGTACGT", *copied.Sequence)

	rr = do(t, h, http.MethodPost, "/api/v1/designs/"+d.ID+"/background/cut", map[string]any{"start": 0, "end": 4})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cut := decode[EditResponse](t, rr)
	assert.Equal(t, "ACGT", *cut.Sequence)
	assert.Equal(t, 196, cut.Design.BackgroundLength)
	assert.Equal(t, 96, *cut.Design.Parts[0].Start)

	rr = do(t, h, http.MethodPost, "/api/v1/designs/"+d.ID+"/background/paste", map[string]any{"boundary": 0, "sequence": "ggg"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	pasted := decode[EditResponse](t, rr)
	assert.True(t, strings.HasPrefix(pasted.Design.Background, "GGGACGT"))
	assert.Equal(t, 99, *pasted.Design.Parts[0].Start)

	rr = do(t, h, http.MethodPost, "/api/v1/designs/"+d.ID+"/background/delete", map[string]any{"start": 0, "end": 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Nil(t, decode[EditResponse](t, rr).Sequence)
}

func TestErrorMapping(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, strings.Repeat("A", 200))
	require.Equal(t, http.StatusCreated, insert(t, h, d.ID, map[string]any{"id": "p1", "template_id": "pLac", "boundary": 10}).Code)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown design", http.MethodGet, "/api/v1/designs/missing", nil, http.StatusNotFound},
		{"unknown template", http.MethodPost, "/api/v1/designs/" + d.ID + "/parts", map[string]any{"template_id": "nope", "boundary": 0}, http.StatusNotFound},
		{"duplicate part", http.MethodPost, "/api/v1/designs/" + d.ID + "/parts", map[string]any{"id": "p1", "category": "gene", "length": 5, "boundary": 0}, http.StatusConflict},
		{"part without category", http.MethodPost, "/api/v1/designs/" + d.ID + "/parts", map[string]any{"length": 5}, http.StatusBadRequest},
		{"paste inside part", http.MethodPost, "/api/v1/designs/" + d.ID + "/background/paste", map[string]any{"boundary": 20, "sequence": "A"}, http.StatusBadRequest},
		{"origin inside part", http.MethodPost, "/api/v1/designs/" + d.ID + "/origin", map[string]any{"origin": 20}, http.StatusUnprocessableEntity},
		{"selection over part", http.MethodPost, "/api/v1/designs/" + d.ID + "/background/copy", map[string]any{"start": 5, "end": 60}, http.StatusUnprocessableEntity},
		{"unknown selection op", http.MethodPost, "/api/v1/designs/" + d.ID + "/background/smash", map[string]any{"start": 0, "end": 1}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/designs/" + d.ID + "/origin", "{", http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/v1/designs/" + d.ID + "/origin", map[string]any{"origni": 5}, http.StatusBadRequest},
		{"move unknown part", http.MethodPost, "/api/v1/designs/" + d.ID + "/parts/nope/move", map[string]any{"boundary": 0}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, rr).Error)
		})
	}
}

func TestRestoreDesign(t *testing.T) {
	h := newTestServer()

	rr := do(t, h, http.MethodPost, "/api/v1/designs", map[string]any{
		"name":       "saved",
		"background": strings.Repeat("A", 100),
		"parts": []map[string]any{
			{"id": "p", "template_id": "pLac", "boundary": 0},
			{"id": "r", "template_id": "B0034", "boundary": 40},
			{"id": "loose", "category": "gene", "length": 9},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	view := decode[DesignView](t, rr)
	assert.Equal(t, "saved", view.Name)
	assert.Equal(t, 152, view.ComposedLength)
	require.Len(t, view.Parts, 3)
	assert.False(t, view.Parts[2].Placed)

	rr = do(t, h, http.MethodPost, "/api/v1/designs", map[string]any{
		"background": strings.Repeat("A", 100),
		"parts": []map[string]any{
			{"id": "p", "template_id": "pLac", "boundary": 0},
			{"id": "q", "template_id": "pLac", "boundary": 20},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
}

func TestDeleteDesign(t *testing.T) {
	h := newTestServer()
	d := createDesign(t, h, "ACGT")

	listed := decode[[]DesignView](t, do(t, h, http.MethodGet, "/api/v1/designs", nil))
	require.Len(t, listed, 1)
	assert.Equal(t, d.ID, listed[0].ID)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/designs/"+d.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/designs/"+d.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/designs/"+d.ID, nil).Code)
}
