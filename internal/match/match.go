package match

import (
	"errors"
	"math/rand"

	"agon/internal/game"
	"agon/internal/strategy"
)

// Config describes a single match between two already-bound players.
type Config struct {
	First        strategy.Player
	Second       strategy.Player
	Turns        int
	Cache        *DeterministicCache
	CacheMutable bool
	Noise        float64
	Rand         *rand.Rand
}

// Match plays one repeated game between two players. The trace it returns
// records the realized actions of both sides, noise included.
type Match struct {
	cfg       Config
	cacheable bool
}

func New(cfg Config) (*Match, error) {
	if cfg.First == nil || cfg.Second == nil {
		return nil, errors.New("both players are required")
	}
	if cfg.Turns <= 0 {
		return nil, errors.New("turns must be > 0")
	}
	if cfg.Noise < 0 || cfg.Noise > 1 {
		return nil, errors.New("noise must be in [0, 1]")
	}
	if cfg.Noise > 0 && cfg.Rand == nil {
		return nil, errors.New("noise requires a random source")
	}

	// A matchup is cacheable only when the whole interaction is
	// deterministic: zero noise and neither player stochastic.
	cacheable := cfg.Noise == 0 &&
		!cfg.First.Stochastic() &&
		!cfg.Second.Stochastic()

	return &Match{cfg: cfg, cacheable: cacheable}, nil
}

func (m *Match) key() CacheKey {
	return CacheKey{
		First:  m.cfg.First.Name(),
		Second: m.cfg.Second.Name(),
		Turns:  m.cfg.Turns,
	}
}

// Play runs the match. Cache hits return the memoized trace; misses simulate
// the match and, when the cache is mutable, memoize the result.
func (m *Match) Play() []Turn {
	if m.cacheable && m.cfg.Cache != nil {
		if trace, ok := m.cfg.Cache.Get(m.key()); ok {
			return trace
		}
	}

	trace := m.simulate()

	if m.cacheable && m.cfg.Cache != nil && m.cfg.CacheMutable {
		m.cfg.Cache.Put(m.key(), trace)
	}
	return trace
}

func (m *Match) simulate() []Turn {
	firstHistory := make([]game.Action, 0, m.cfg.Turns)
	secondHistory := make([]game.Action, 0, m.cfg.Turns)
	trace := make([]Turn, 0, m.cfg.Turns)

	for turn := 0; turn < m.cfg.Turns; turn++ {
		first := m.perturb(m.cfg.First.Play(firstHistory, secondHistory))
		second := m.perturb(m.cfg.Second.Play(secondHistory, firstHistory))
		firstHistory = append(firstHistory, first)
		secondHistory = append(secondHistory, second)
		trace = append(trace, Turn{First: first, Second: second})
	}
	return trace
}

func (m *Match) perturb(action game.Action) game.Action {
	if m.cfg.Noise <= 0 {
		return action
	}
	if m.cfg.Rand.Float64() < m.cfg.Noise {
		return action.Flip()
	}
	return action
}
