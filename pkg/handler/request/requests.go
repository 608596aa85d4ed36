package request

// Bodies accepted by the design endpoints. Positions are composed-space
// boundaries.

// PartSpec describes a part either by catalog template or inline. Inline
// fields override the template's.
type PartSpec struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	TemplateID string `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Sequence   string `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Length     int    `json:"length,omitempty" yaml:"length,omitempty"`
	// Boundary is where the part goes: the desired boundary on insert, the
	// saved one on restore. Nil leaves the part floating.
	Boundary *int `json:"boundary,omitempty" yaml:"boundary,omitempty"`
}

// CreateDesignRequest starts a design from a background and, optionally, a
// saved arrangement of parts.
type CreateDesignRequest struct {
	Name       string     `json:"name" yaml:"name"`
	Background string     `json:"background" yaml:"background"`
	Parts      []PartSpec `json:"parts,omitempty" yaml:"parts,omitempty"`
}

type MovePartRequest struct {
	Boundary int `json:"boundary"`
}

type SelectionRequest struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type PasteRequest struct {
	Boundary int    `json:"boundary"`
	Sequence string `json:"sequence"`
}

type OriginRequest struct {
	Origin int `json:"origin"`
}
