package scoring

import (
	"agon/internal/game"
	"agon/internal/match"
)

// Pair identifies a matchup by player index, with First <= Second. Equal
// indices denote self-play against a clone.
type Pair struct {
	First  int
	Second int
}

// InteractionSet holds one full round robin's interaction traces.
type InteractionSet map[Pair][]match.Turn

// PayoffMatrix reduces one interaction set to an n by n matrix where cell
// (i, j) is the total score player i earned against player j.
func PayoffMatrix(interactions InteractionSet, g game.Game, n int) [][]float64 {
	payoff := newMatrix(n)
	for pair, trace := range interactions {
		var first, second float64
		for _, turn := range trace {
			s1, s2 := g.Score(turn.First, turn.Second)
			first += s1
			second += s2
		}
		payoff[pair.First][pair.Second] = first
		payoff[pair.Second][pair.First] = second
	}
	return payoff
}

// CooperationMatrix reduces one interaction set to an n by n matrix where
// cell (i, j) counts player i's cooperations against player j.
func CooperationMatrix(interactions InteractionSet, n int) [][]float64 {
	cooperation := newMatrix(n)
	for pair, trace := range interactions {
		var first, second float64
		for _, turn := range trace {
			if turn.First == game.Cooperate {
				first++
			}
			if turn.Second == game.Cooperate {
				second++
			}
		}
		cooperation[pair.First][pair.Second] = first
		cooperation[pair.Second][pair.First] = second
	}
	return cooperation
}

func newMatrix(n int) [][]float64 {
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	return matrix
}
