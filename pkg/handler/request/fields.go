package request

// SelectionOp names a background selection edit in the URL
// (/background/{op}).
type SelectionOp int

const (
	SelectionCopy SelectionOp = iota
	SelectionCut
	SelectionDelete
	SelectionUnknown
)

func (s SelectionOp) String() string {
	switch s {
	case SelectionCopy:
		return "copy"
	case SelectionCut:
		return "cut"
	case SelectionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

func NewSelectionOp(op string) SelectionOp {
	switch op {
	case "copy":
		return SelectionCopy
	case "cut":
		return SelectionCut
	case "delete":
		return SelectionDelete
	default:
		return SelectionUnknown
	}
}
