package circuit

import (
	"strconv"
)

type state int

const (
	searching state = iota
	afterPromoter
	afterRBS
	afterGene
)

// Detector groups an ordered element list into operons. Operon ids count up
// across calls to Detect on the same Detector.
type Detector struct {
	counter int
}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect scans elements sorted by start and returns the operons found, not
// yet validated.
//
// A promoter opens an operon, rbs/gene pairs extend it and a terminator
// closes it. Anything else closes or abandons the open operon depending on
// the state. At end of input an open operon is kept only if it has at least
// one rbs/gene pair; mid-stream closes keep it even without genes.
func (d *Detector) Detect(elements []Element) []Operon {
	var (
		operons    []Operon
		st         = searching
		current    *Operon
		pendingRBS Element
	)

	finalize := func() {
		if current != nil {
			operons = append(operons, d.finish(*current))
		}
		current = nil
		st = searching
	}
	terminate := func(t Element) {
		current.Terminator = &t
		finalize()
	}
	open := func(promoter Element) {
		current = &Operon{Promoter: promoter}
		st = afterPromoter
	}

	for _, el := range elements {
		switch st {
		case searching:
			if el.Kind == KindPromoter {
				open(el)
			}

		case afterPromoter:
			switch el.Kind {
			case KindRBS:
				pendingRBS = el
				st = afterRBS
			case KindPromoter:
				finalize()
				open(el)
			case KindTerminator:
				terminate(el)
			}

		case afterRBS:
			switch el.Kind {
			case KindGene:
				current.Pairs = append(current.Pairs, RBSGenePair{RBS: pendingRBS, Gene: el})
				st = afterGene
			case KindTerminator:
				terminate(el)
			case KindPromoter:
				finalize()
				open(el)
			default:
				finalize()
			}

		case afterGene:
			switch el.Kind {
			case KindRBS:
				pendingRBS = el
				st = afterRBS
			case KindTerminator:
				terminate(el)
			case KindPromoter:
				finalize()
				open(el)
			default:
				if len(current.Pairs) > 0 {
					finalize()
				} else {
					current, st = nil, searching
				}
			}
		}
	}

	if current != nil && len(current.Pairs) > 0 {
		finalize()
	}
	return operons
}

func (d *Detector) finish(o Operon) Operon {
	d.counter++
	o.ID = "operon-" + strconv.Itoa(d.counter)
	o.Start = o.Promoter.Start
	switch {
	case o.Terminator != nil:
		o.End = o.Terminator.End
	case len(o.Pairs) > 0:
		o.End = o.Pairs[len(o.Pairs)-1].Gene.End
	default:
		o.End = o.Promoter.End
	}
	return o
}
