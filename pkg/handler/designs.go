package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/db"
	"github.com/yumyai/genecanvas/pkg/handler/request"
	"github.com/yumyai/genecanvas/pkg/seq"
)

var (
	ErrDesignNotFound = errors.New("design not found")
	ErrBadRequest     = errors.New("bad request")
)

// Design is one editing session. The editor is only touched with mu held.
type Design struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu     sync.Mutex
	editor *compose.Editor
}

// DesignManager keeps the open designs indexed by id.
type DesignManager struct {
	mu      sync.RWMutex
	designs map[string]*Design
	log     *zap.Logger
	strict  bool
}

// NewDesignManager constructs a manager with no designs. strict is passed on
// to every editor it creates.
func NewDesignManager(log *zap.Logger, strict bool) *DesignManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &DesignManager{
		designs: make(map[string]*Design),
		log:     log,
		strict:  strict,
	}
}

// Create registers a new design whose editor is made by build. build gets the
// editor options for the design (its logger and integrity mode).
func (m *DesignManager) Create(name string, build func(opts ...compose.Option) (*compose.Editor, error)) (*Design, error) {
	id := uuid.NewString()
	editor, err := build(
		compose.WithLogger(m.log.With(zap.String("design_id", id))),
		compose.WithStrictIntegrity(m.strict),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Design{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		editor:    editor,
	}

	m.mu.Lock()
	m.designs[id] = d
	m.mu.Unlock()

	m.log.Info("Design created", zap.String("design_id", id), zap.String("name", name))
	return d, nil
}

func (m *DesignManager) Get(id string) (*Design, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.designs[id]
	return d, ok
}

func (m *DesignManager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.designs[id]; !ok {
		return false
	}
	delete(m.designs, id)
	m.log.Info("Design removed", zap.String("design_id", id))
	return true
}

// List returns a view of every design, oldest first.
func (m *DesignManager) List() []DesignView {
	m.mu.RLock()
	designs := make([]*Design, 0, len(m.designs))
	for _, d := range m.designs {
		designs = append(designs, d)
	}
	m.mu.RUnlock()

	sort.Slice(designs, func(i, j int) bool {
		if designs[i].CreatedAt.Equal(designs[j].CreatedAt) {
			return designs[i].ID < designs[j].ID
		}
		return designs[i].CreatedAt.Before(designs[j].CreatedAt)
	})

	views := make([]DesignView, 0, len(designs))
	for _, d := range designs {
		d.mu.Lock()
		views = append(views, d.view())
		d.mu.Unlock()
	}
	return views
}

// Edit runs edit on the design's editor with the design locked and returns the
// design as it is afterwards. A failed edit leaves UpdatedAt alone.
func (m *DesignManager) Edit(id string, edit func(*compose.Editor) error) (DesignView, error) {
	d, ok := m.Get(id)
	if !ok {
		return DesignView{}, fmt.Errorf("%w: %q", ErrDesignNotFound, id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := edit(d.editor); err != nil {
		return d.view(), err
	}
	d.UpdatedAt = time.Now()
	return d.view(), nil
}

// View returns the current state of a design.
func (m *DesignManager) View(id string) (DesignView, error) {
	d, ok := m.Get(id)
	if !ok {
		return DesignView{}, fmt.Errorf("%w: %q", ErrDesignNotFound, id)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view(), nil
}

// Analysis runs the circuit analysis on the current state of a design.
func (m *DesignManager) Analysis(id string) (AnalysisView, error) {
	d, ok := m.Get(id)
	if !ok {
		return AnalysisView{}, fmt.Errorf("%w: %q", ErrDesignNotFound, id)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return Analyze(d.ID, d.editor), nil
}

// BuildPart turns a part description into a floating part. Parts named by
// template are looked up in the catalog; inline fields win over the
// template's.
func BuildPart(ctx context.Context, lookup db.TemplateLookup, spec request.PartSpec) (compose.Part, error) {
	t := db.Template{
		Name:     spec.Name,
		Category: spec.Category,
		Length:   spec.Length,
		Sequence: spec.Sequence,
	}

	if spec.TemplateID != "" {
		if lookup == nil {
			return compose.Part{}, fmt.Errorf("%w: %q (no catalog configured)", db.ErrTemplateNotFound, spec.TemplateID)
		}
		base, err := lookup.Template(ctx, spec.TemplateID)
		if err != nil {
			return compose.Part{}, err
		}
		if t.Name == "" {
			t.Name = base.Name
		}
		if t.Category == "" {
			t.Category = base.Category
		}
		if t.Sequence == "" && t.Length == 0 {
			t.Sequence, t.Length = base.Sequence, base.Length
		}
	}

	if t.Category == "" {
		return compose.Part{}, fmt.Errorf("%w: part needs a category or a template_id", ErrBadRequest)
	}
	if t.Sequence == "" && t.Length <= 0 {
		return compose.Part{}, fmt.Errorf("%w: part %q needs a sequence or a positive length", ErrBadRequest, t.Name)
	}
	if t.Name == "" {
		t.Name = t.Category
	}

	p := db.NewPart(t)
	if spec.ID != "" {
		p.ID = spec.ID
	}
	return p, nil
}

// RestoreDesign builds an editor from a saved design: parts with a boundary
// are placed exactly there, the rest are floating.
func RestoreDesign(ctx context.Context, lookup db.TemplateLookup, req request.CreateDesignRequest, opts ...compose.Option) (*compose.Editor, error) {
	parts := make([]compose.Part, 0, len(req.Parts))
	for i, spec := range req.Parts {
		p, err := BuildPart(ctx, lookup, spec)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		if spec.Boundary != nil {
			p.Boundary, p.Placed = *spec.Boundary, true
		}
		parts = append(parts, p)
	}
	return compose.Restore(seq.Parse(req.Background), parts, opts...)
}
