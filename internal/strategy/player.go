package strategy

import "agon/internal/game"

// Attributes are the tournament-wide settings bound onto every player once,
// before any match is played.
type Attributes struct {
	Turns int
	Game  game.Game
	Noise float64
}

// Player is a single tournament participant. Play receives the full move
// history of both sides and returns the next intended action; noise is
// applied by the match, not the player. Clone returns an independent copy
// with identical configured behavior, used for self-play pairings.
type Player interface {
	Name() string
	Play(own, opp []game.Action) game.Action
	Clone() Player
	SetMatchAttributes(attrs Attributes)
	Stochastic() bool
}
