package strategy

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrStrategyExists   = errors.New("strategy already registered")
	ErrStrategyNotFound = errors.New("strategy not found")
)

// Factory builds a fresh player instance. Deterministic strategies ignore
// the seed; stochastic ones use it so runs are reproducible.
type Factory func(seed int64) Player

var strategyRegistry = struct {
	mu sync.RWMutex
	m  map[string]Factory
}{
	m: make(map[string]Factory),
}

func Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("strategy name is required")
	}
	if factory == nil {
		return errors.New("strategy factory is required")
	}

	strategyRegistry.mu.Lock()
	defer strategyRegistry.mu.Unlock()
	if _, exists := strategyRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrStrategyExists, name)
	}
	strategyRegistry.m[name] = factory
	return nil
}

func New(name string, seed int64) (Player, error) {
	strategyRegistry.mu.RLock()
	factory, ok := strategyRegistry.m[name]
	strategyRegistry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStrategyNotFound, name)
	}
	return factory(seed), nil
}

func Names() []string {
	strategyRegistry.mu.RLock()
	defer strategyRegistry.mu.RUnlock()

	names := make([]string, 0, len(strategyRegistry.m))
	for name := range strategyRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}
