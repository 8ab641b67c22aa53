package strategy

import (
	"math/rand"

	"agon/internal/game"
)

func init() {
	mustRegister("cooperator", func(int64) Player { return NewCooperator() })
	mustRegister("defector", func(int64) Player { return NewDefector() })
	mustRegister("titfortat", func(int64) Player { return NewTitForTat() })
	mustRegister("titfortwotats", func(int64) Player { return NewTitForTwoTats() })
	mustRegister("grudger", func(int64) Player { return NewGrudger() })
	mustRegister("alternator", func(int64) Player { return NewAlternator() })
	mustRegister("random", NewRandom)
}

// base carries the shared name, attribute binding and classifier state.
type base struct {
	name       string
	attrs      Attributes
	stochastic bool
}

func (b *base) Name() string { return b.name }

func (b *base) SetMatchAttributes(attrs Attributes) { b.attrs = attrs }

func (b *base) Stochastic() bool { return b.stochastic }

// Cooperator always cooperates.
type Cooperator struct{ base }

func NewCooperator() *Cooperator {
	return &Cooperator{base{name: "cooperator"}}
}

func (p *Cooperator) Play(_, _ []game.Action) game.Action { return game.Cooperate }

func (p *Cooperator) Clone() Player {
	clone := *p
	return &clone
}

// Defector always defects.
type Defector struct{ base }

func NewDefector() *Defector {
	return &Defector{base{name: "defector"}}
}

func (p *Defector) Play(_, _ []game.Action) game.Action { return game.Defect }

func (p *Defector) Clone() Player {
	clone := *p
	return &clone
}

// TitForTat cooperates first, then mirrors the opponent's last action.
type TitForTat struct{ base }

func NewTitForTat() *TitForTat {
	return &TitForTat{base{name: "titfortat"}}
}

func (p *TitForTat) Play(_, opp []game.Action) game.Action {
	if len(opp) == 0 {
		return game.Cooperate
	}
	return opp[len(opp)-1]
}

func (p *TitForTat) Clone() Player {
	clone := *p
	return &clone
}

// TitForTwoTats defects only after two consecutive opponent defections.
type TitForTwoTats struct{ base }

func NewTitForTwoTats() *TitForTwoTats {
	return &TitForTwoTats{base{name: "titfortwotats"}}
}

func (p *TitForTwoTats) Play(_, opp []game.Action) game.Action {
	if len(opp) < 2 {
		return game.Cooperate
	}
	if opp[len(opp)-1] == game.Defect && opp[len(opp)-2] == game.Defect {
		return game.Defect
	}
	return game.Cooperate
}

func (p *TitForTwoTats) Clone() Player {
	clone := *p
	return &clone
}

// Grudger cooperates until the opponent defects once, then defects for the
// rest of the match. The grudge is derived from the opponent history so the
// same instance can be reused across pairings and repetitions.
type Grudger struct{ base }

func NewGrudger() *Grudger {
	return &Grudger{base{name: "grudger"}}
}

func (p *Grudger) Play(_, opp []game.Action) game.Action {
	for _, action := range opp {
		if action == game.Defect {
			return game.Defect
		}
	}
	return game.Cooperate
}

func (p *Grudger) Clone() Player {
	clone := *p
	return &clone
}

// Alternator starts with cooperation and alternates every turn.
type Alternator struct{ base }

func NewAlternator() *Alternator {
	return &Alternator{base{name: "alternator"}}
}

func (p *Alternator) Play(own, _ []game.Action) game.Action {
	if len(own) == 0 {
		return game.Cooperate
	}
	return own[len(own)-1].Flip()
}

func (p *Alternator) Clone() Player {
	clone := *p
	return &clone
}

// Random cooperates with probability 1/2 on every turn, driven by a seeded
// source so tournaments stay reproducible.
type Random struct {
	base
	seed int64
	rng  *rand.Rand
}

func NewRandom(seed int64) Player {
	return &Random{
		base: base{name: "random", stochastic: true},
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (p *Random) Play(_, _ []game.Action) game.Action {
	if p.rng.Float64() < 0.5 {
		return game.Cooperate
	}
	return game.Defect
}

func (p *Random) Clone() Player {
	return &Random{
		base: base{name: p.name, attrs: p.attrs, stochastic: true},
		seed: p.seed,
		rng:  rand.New(rand.NewSource(p.seed)),
	}
}
