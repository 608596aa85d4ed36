package circuit

// Strengths given to every transcript until parts carry their own.
const (
	DefaultPromoterStrength = 1.0
	DefaultRBSStrength      = 1.0
)

// Transcript is an operon in the shape the simulation backend takes: one
// promoter driving a list of cistrons. Activator and inhibitor are left unset
// since operators are not part of an operon.
type Transcript struct {
	ID               string    `json:"id"`
	PromoterName     string    `json:"promoterName"`
	PromoterStrength float64   `json:"promoterStrength"`
	Leak             float64   `json:"leak"`
	ActivatorName    *string   `json:"activatorName,omitempty"`
	InhibitorName    *string   `json:"inhibitorName,omitempty"`
	TerminatorName   *string   `json:"terminatorName"`
	Cistrons         []Cistron `json:"cistrons"`
}

type Cistron struct {
	ID          string  `json:"id"`
	GeneName    string  `json:"geneName"`
	RBSName     *string `json:"rbsName"`
	RBSStrength float64 `json:"rbsStrength"`
}

// Transcripts projects operons onto transcripts. Operons without genes have
// nothing to express and are left out.
func Transcripts(operons []Operon) []Transcript {
	out := make([]Transcript, 0, len(operons))
	for _, o := range operons {
		if len(o.Pairs) == 0 {
			continue
		}
		tx := Transcript{
			ID:               o.ID,
			PromoterName:     o.Promoter.Name,
			PromoterStrength: DefaultPromoterStrength,
			Cistrons:         make([]Cistron, 0, len(o.Pairs)),
		}
		if o.Terminator != nil {
			name := o.Terminator.Name
			tx.TerminatorName = &name
		}
		for _, p := range o.Pairs {
			rbs := p.RBS.Name
			tx.Cistrons = append(tx.Cistrons, Cistron{
				ID:          p.Gene.ID,
				GeneName:    p.Gene.Name,
				RBSName:     &rbs,
				RBSStrength: DefaultRBSStrength,
			})
		}
		out = append(out, tx)
	}
	return out
}
