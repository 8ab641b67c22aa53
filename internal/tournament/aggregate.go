package tournament

// RepetitionOutcome is one repetition's pair of n by n matrices.
type RepetitionOutcome struct {
	Payoff      [][]float64 `json:"payoff"`
	Cooperation [][]float64 `json:"cooperation"`
}

// Outcome is the aggregate of all repetitions, packaged with the run
// configuration for downstream summarization. No numeric reduction happens
// here; repetition order carries no meaning.
type Outcome struct {
	PlayerNames  []string      `json:"player_names"`
	Turns        int           `json:"turns"`
	Repetitions  int           `json:"repetitions"`
	Noise        float64       `json:"noise"`
	Payoffs      [][][]float64 `json:"payoffs"`
	Cooperations [][][]float64 `json:"cooperations"`
}

// aggregator accumulates repetition outcomes. The payoff and cooperation
// collections grow in lockstep: one add appends to both, never to one.
type aggregator struct {
	payoffs      [][][]float64
	cooperations [][][]float64
}

func newAggregator(repetitions int) *aggregator {
	return &aggregator{
		payoffs:      make([][][]float64, 0, repetitions),
		cooperations: make([][][]float64, 0, repetitions),
	}
}

func (a *aggregator) add(outcome RepetitionOutcome) {
	a.payoffs = append(a.payoffs, outcome.Payoff)
	a.cooperations = append(a.cooperations, outcome.Cooperation)
}

func (a *aggregator) len() int {
	return len(a.payoffs)
}

func (a *aggregator) finalize(cfg Config) Outcome {
	names := make([]string, len(cfg.Players))
	for i, player := range cfg.Players {
		names[i] = player.Name()
	}
	return Outcome{
		PlayerNames:  names,
		Turns:        cfg.Turns,
		Repetitions:  cfg.Repetitions,
		Noise:        cfg.Noise,
		Payoffs:      a.payoffs,
		Cooperations: a.cooperations,
	}
}
