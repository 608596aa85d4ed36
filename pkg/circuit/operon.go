package circuit

// RBSGenePair is one cistron: a ribosome binding site and the gene it drives.
type RBSGenePair struct {
	RBS  Element `json:"rbs"`
	Gene Element `json:"gene"`
}

// Operon is a promoter-led transcriptional unit.
type Operon struct {
	ID         string        `json:"id"`
	Promoter   Element       `json:"promoter"`
	Pairs      []RBSGenePair `json:"rbs_gene_pairs"`
	Terminator *Element      `json:"terminator,omitempty"`
	Start      int           `json:"start_bp"`
	End        int           `json:"end_bp"`
	Valid      bool          `json:"is_valid"`
	Warnings   []string      `json:"warnings"`
}

// Flatten lists the operon's elements in transcription order:
// promoter, rbs1, gene1, ..., terminator.
func (o Operon) Flatten() []Element {
	out := make([]Element, 0, 2+2*len(o.Pairs))
	out = append(out, o.Promoter)
	for _, p := range o.Pairs {
		out = append(out, p.RBS, p.Gene)
	}
	if o.Terminator != nil {
		out = append(out, *o.Terminator)
	}
	return out
}

func (o Operon) Genes() []Element {
	out := make([]Element, 0, len(o.Pairs))
	for _, p := range o.Pairs {
		out = append(out, p.Gene)
	}
	return out
}
