// Symbols of the background strand and of part sequences

package seq

// Symbol is a single base. N is the wildcard for anything unknown.
type Symbol byte

const (
	A Symbol = 'A'
	C Symbol = 'C'
	G Symbol = 'G'
	T Symbol = 'T'
	N Symbol = 'N'
)

var complement [256]Symbol

func init() {
	for i := range complement {
		complement[i] = N
	}
	complement[A] = T
	complement[C] = G
	complement[G] = C
	complement[T] = A
}

// ParseSymbol maps a letter (either case) onto the alphabet. Anything that is
// not a canonical base becomes N.
func ParseSymbol(b byte) Symbol {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't':
		return T
	default:
		return N
	}
}

func (s Symbol) Complement() Symbol {
	return complement[s]
}

func (s Symbol) IsCanonical() bool {
	return s == A || s == C || s == G || s == T
}

func (s Symbol) String() string {
	return string(byte(s))
}
