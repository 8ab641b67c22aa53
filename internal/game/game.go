package game

// Action is a single move in the iterated prisoner's dilemma.
type Action int

const (
	Cooperate Action = iota
	Defect
)

func (a Action) String() string {
	if a == Cooperate {
		return "C"
	}
	return "D"
}

// Flip returns the opposite action.
func (a Action) Flip() Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

// Game holds the payoff parameters for a single turn. The defaults are the
// conventional prisoner's dilemma values R=3, P=1, S=0, T=5.
type Game struct {
	r float64
	p float64
	s float64
	t float64
}

func New() Game {
	return NewWithPayoffs(3, 1, 0, 5)
}

func NewWithPayoffs(r, p, s, t float64) Game {
	return Game{r: r, p: p, s: s, t: t}
}

// RPST returns the payoff parameters in (R, P, S, T) order.
func (g Game) RPST() (float64, float64, float64, float64) {
	return g.r, g.p, g.s, g.t
}

// Score returns the per-turn payoffs for the first and second player.
func (g Game) Score(first, second Action) (float64, float64) {
	switch {
	case first == Cooperate && second == Cooperate:
		return g.r, g.r
	case first == Defect && second == Defect:
		return g.p, g.p
	case first == Cooperate && second == Defect:
		return g.s, g.t
	default:
		return g.t, g.s
	}
}
