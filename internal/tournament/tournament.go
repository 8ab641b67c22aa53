package tournament

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"agon/internal/game"
	"agon/internal/match"
	"agon/internal/scoring"
	"agon/internal/strategy"
)

// ErrAlreadyPlayed is returned when Play is invoked a second time on the
// same tournament. Cache and aggregator state are not reset between runs,
// so a fresh instance is required per run.
var ErrAlreadyPlayed = errors.New("tournament has already been played")

// Config describes one tournament run. It is immutable once Play starts.
type Config struct {
	Players       []strategy.Player
	Turns         int
	Repetitions   int
	Noise         float64
	Workers       int // 0 requests serial execution
	Seed          int64
	Cache         *match.DeterministicCache // optional externally built cache
	PrebuiltCache bool
	Game          game.Game
}

// Tournament schedules repeated round-robin play among a fixed set of
// players and aggregates per-repetition payoff and cooperation matrices.
type Tournament struct {
	cfg   Config
	game  game.Game
	cache *match.DeterministicCache
	rng   *rand.Rand

	mu     sync.Mutex
	primed bool
	played bool
}

// New validates the configuration and binds every player to the tournament's
// turns, game and noise before any match is run.
func New(cfg Config) (*Tournament, error) {
	if len(cfg.Players) == 0 {
		return nil, errors.New("at least one player is required")
	}
	for i, player := range cfg.Players {
		if player == nil {
			return nil, fmt.Errorf("player is nil at index %d", i)
		}
	}
	if cfg.Turns <= 0 {
		return nil, errors.New("turns must be > 0")
	}
	if cfg.Repetitions <= 0 {
		return nil, errors.New("repetitions must be > 0")
	}
	if cfg.Noise < 0 || cfg.Noise > 1 {
		return nil, errors.New("noise must be in [0, 1]")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers must be >= 0")
	}

	g := cfg.Game
	if g == (game.Game{}) {
		g = game.New()
	}

	cache := cfg.Cache
	if cache == nil {
		cache = match.NewDeterministicCache()
	}

	attrs := strategy.Attributes{Turns: cfg.Turns, Game: g, Noise: cfg.Noise}
	for _, player := range cfg.Players {
		player.SetMatchAttributes(attrs)
	}

	return &Tournament{
		cfg:   cfg,
		game:  g,
		cache: cache,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Play runs the full tournament and returns the aggregated outcome. It is
// callable once per instance.
func (t *Tournament) Play(ctx context.Context) (Outcome, error) {
	t.mu.Lock()
	if t.played {
		t.mu.Unlock()
		return Outcome{}, ErrAlreadyPlayed
	}
	t.played = true
	t.mu.Unlock()

	agg := newAggregator(t.cfg.Repetitions)
	remaining := t.cfg.Repetitions

	if t.cfg.Workers == 0 {
		for rep := 0; rep < remaining; rep++ {
			if err := ctx.Err(); err != nil {
				return Outcome{}, err
			}
			outcome, err := t.playRoundRobin(t.cfg.Players, t.cache, true, t.rng)
			if err != nil {
				return Outcome{}, err
			}
			agg.add(outcome)
		}
		return agg.finalize(t.cfg), nil
	}

	if t.requiresPriming() {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		outcome, err := t.playRoundRobin(t.cfg.Players, t.cache, true, t.rng)
		if err != nil {
			return Outcome{}, err
		}
		agg.add(outcome)
		t.mu.Lock()
		t.primed = true
		t.mu.Unlock()
		remaining--
	}

	if err := t.runParallel(ctx, remaining, agg); err != nil {
		return Outcome{}, err
	}
	return agg.finalize(t.cfg), nil
}

// RequiresPriming reports whether a serial cache-building repetition must run
// before parallel dispatch: only meaningful at zero noise, and only when the
// cache is empty or was not supplied prebuilt.
func RequiresPriming(noise float64, cacheLen int, prebuilt bool) bool {
	return noise == 0 && (cacheLen == 0 || !prebuilt)
}

func (t *Tournament) requiresPriming() bool {
	t.mu.Lock()
	primed := t.primed
	t.mu.Unlock()
	if primed {
		return false
	}
	return RequiresPriming(t.cfg.Noise, t.cache.Len(), t.cfg.PrebuiltCache)
}

// roundRobinPairs enumerates all n(n+1)/2 unique pairings including
// self-play. Consumers must not rely on the enumeration order.
func roundRobinPairs(n int) []scoring.Pair {
	pairs := make([]scoring.Pair, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			pairs = append(pairs, scoring.Pair{First: i, Second: j})
		}
	}
	return pairs
}

func (t *Tournament) playRoundRobin(players []strategy.Player, cache *match.DeterministicCache, cacheMutable bool, rng *rand.Rand) (RepetitionOutcome, error) {
	n := len(players)
	interactions := make(scoring.InteractionSet, n*(n+1)/2)

	for _, pair := range roundRobinPairs(n) {
		first := players[pair.First]
		second := players[pair.Second]
		if pair.First == pair.Second {
			// Self-play is always against an independent clone so the
			// two participants never share mutable state.
			second = first.Clone()
		}

		m, err := match.New(match.Config{
			First:        first,
			Second:       second,
			Turns:        t.cfg.Turns,
			Cache:        cache,
			CacheMutable: cacheMutable,
			Noise:        t.cfg.Noise,
			Rand:         rng,
		})
		if err != nil {
			return RepetitionOutcome{}, fmt.Errorf("match %s vs %s: %w", first.Name(), second.Name(), err)
		}
		interactions[pair] = m.Play()
	}

	return RepetitionOutcome{
		Payoff:      scoring.PayoffMatrix(interactions, t.game, n),
		Cooperation: scoring.CooperationMatrix(interactions, n),
	}, nil
}
