package results

import (
	"errors"
	"fmt"
	"sort"

	"agon/internal/tournament"
)

// Morality holds the cooperation-derived ratings, indexed by player.
type Morality struct {
	CooperationRatings []float64
	GoodPartnerRatings []float64
}

// ResultSet reduces an aggregated tournament outcome into per-player
// statistics and a ranking. Self-interactions are excluded from scores,
// matching the convention that a player does not score against itself.
type ResultSet struct {
	Names       []string
	Turns       int
	Repetitions int

	Scores           [][]float64 // [player][repetition], self-play excluded
	NormalizedScores [][]float64
	MedianScores     []float64 // median normalized score per player
	Ranking          []int     // player indices, best first
	RankedNames      []string
	Wins             []int // pairwise wins summed across repetitions
	CooperationRates []float64
	Morality         *Morality
}

func New(outcome tournament.Outcome, withMorality bool) (*ResultSet, error) {
	n := len(outcome.PlayerNames)
	if n == 0 {
		return nil, errors.New("outcome has no players")
	}
	if len(outcome.Payoffs) != outcome.Repetitions || len(outcome.Cooperations) != outcome.Repetitions {
		return nil, fmt.Errorf("outcome is incomplete: payoffs=%d cooperations=%d want=%d",
			len(outcome.Payoffs), len(outcome.Cooperations), outcome.Repetitions)
	}

	rs := &ResultSet{
		Names:       append([]string(nil), outcome.PlayerNames...),
		Turns:       outcome.Turns,
		Repetitions: outcome.Repetitions,
	}

	rs.Scores = scores(outcome.Payoffs, n)
	rs.NormalizedScores = normalize(rs.Scores, outcome.Turns, n)
	rs.MedianScores = medians(rs.NormalizedScores)
	rs.Ranking = ranking(rs.MedianScores)
	rs.RankedNames = make([]string, n)
	for rank, idx := range rs.Ranking {
		rs.RankedNames[rank] = rs.Names[idx]
	}
	rs.Wins = wins(outcome.Payoffs, n)
	rs.CooperationRates = cooperationRates(outcome.Cooperations, outcome.Turns, n)
	if withMorality {
		rs.Morality = &Morality{
			CooperationRatings: cooperationRatings(outcome.Cooperations, outcome.Turns, n),
			GoodPartnerRatings: goodPartnerRatings(outcome.Cooperations, n),
		}
	}
	return rs, nil
}

// scores sums each payoff row per repetition, skipping the self-play cell.
func scores(payoffs [][][]float64, n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, len(payoffs))
	}
	for rep, payoff := range payoffs {
		for i := 0; i < n; i++ {
			total := 0.0
			for j := 0; j < n; j++ {
				if i != j {
					total += payoff[i][j]
				}
			}
			out[i][rep] = total
		}
	}
	return out
}

func normalize(scores [][]float64, turns, n int) [][]float64 {
	// A player faces n-1 opponents for `turns` turns per repetition.
	divisor := float64(turns * (n - 1))
	out := make([][]float64, len(scores))
	for i, row := range scores {
		out[i] = make([]float64, len(row))
		for rep, value := range row {
			if divisor > 0 {
				out[i][rep] = value / divisor
			}
		}
	}
	return out
}

func medians(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = median(row)
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func ranking(medianScores []float64) []int {
	order := make([]int, len(medianScores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return medianScores[order[a]] > medianScores[order[b]]
	})
	return order
}

// wins counts, per player, the pairwise matchups across all repetitions in
// which the player outscored its opponent.
func wins(payoffs [][][]float64, n int) []int {
	out := make([]int, n)
	for _, payoff := range payoffs {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				switch {
				case payoff[i][j] > payoff[j][i]:
					out[i]++
				case payoff[j][i] > payoff[i][j]:
					out[j]++
				}
			}
		}
	}
	return out
}

// cooperationRates averages each player's cooperation frequency against all
// opponents, self-play excluded.
func cooperationRates(cooperations [][][]float64, turns, n int) []float64 {
	out := make([]float64, n)
	divisor := float64(turns * (n - 1) * len(cooperations))
	if divisor == 0 {
		return out
	}
	for _, cooperation := range cooperations {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					out[i] += cooperation[i][j]
				}
			}
		}
	}
	for i := range out {
		out[i] /= divisor
	}
	return out
}

// cooperationRatings include the self-play diagonal: willingness to
// cooperate even against oneself counts toward the rating.
func cooperationRatings(cooperations [][][]float64, turns, n int) []float64 {
	out := make([]float64, n)
	divisor := float64(turns * n * len(cooperations))
	if divisor == 0 {
		return out
	}
	for _, cooperation := range cooperations {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i] += cooperation[i][j]
			}
		}
	}
	for i := range out {
		out[i] /= divisor
	}
	return out
}

// goodPartnerRatings measure how often a player cooperated at least as much
// as its opponent did in the same matchup.
func goodPartnerRatings(cooperations [][][]float64, n int) []float64 {
	out := make([]float64, n)
	if n < 2 || len(cooperations) == 0 {
		return out
	}
	divisor := float64((n - 1) * len(cooperations))
	for _, cooperation := range cooperations {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j && cooperation[i][j] >= cooperation[j][i] {
					out[i]++
				}
			}
		}
	}
	for i := range out {
		out[i] /= divisor
	}
	return out
}
