package strategy

import (
	"testing"

	"agon/internal/game"
)

func playSequence(p Player, opp []game.Action) []game.Action {
	own := make([]game.Action, 0, len(opp)+1)
	for i := 0; i <= len(opp); i++ {
		own = append(own, p.Play(own, opp[:i]))
	}
	return own
}

func TestTitForTatMirrorsOpponent(t *testing.T) {
	p := NewTitForTat()
	opp := []game.Action{game.Defect, game.Cooperate, game.Defect}
	got := playSequence(p, opp)
	want := []game.Action{game.Cooperate, game.Defect, game.Cooperate, game.Defect}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestTitForTwoTatsNeedsTwoDefections(t *testing.T) {
	p := NewTitForTwoTats()
	if p.Play(nil, []game.Action{game.Defect}) != game.Cooperate {
		t.Fatal("expected cooperation after a single defection")
	}
	if p.Play(nil, []game.Action{game.Defect, game.Defect}) != game.Defect {
		t.Fatal("expected defection after two consecutive defections")
	}
	if p.Play(nil, []game.Action{game.Defect, game.Cooperate}) != game.Cooperate {
		t.Fatal("expected cooperation after a broken defection streak")
	}
}

func TestGrudgerHoldsGrudge(t *testing.T) {
	p := NewGrudger()
	if p.Play(nil, []game.Action{game.Cooperate, game.Cooperate}) != game.Cooperate {
		t.Fatal("expected cooperation against a cooperative history")
	}
	if p.Play(nil, []game.Action{game.Defect, game.Cooperate, game.Cooperate}) != game.Defect {
		t.Fatal("expected permanent defection after any opponent defection")
	}
}

func TestAlternatorAlternates(t *testing.T) {
	p := NewAlternator()
	got := playSequence(p, []game.Action{game.Cooperate, game.Cooperate, game.Cooperate})
	want := []game.Action{game.Cooperate, game.Defect, game.Cooperate, game.Defect}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn %d: got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestRandomIsSeededAndStochastic(t *testing.T) {
	first := NewRandom(42)
	second := NewRandom(42)
	if !first.Stochastic() {
		t.Fatal("expected random strategy to report stochastic")
	}
	for i := 0; i < 20; i++ {
		if first.Play(nil, nil) != second.Play(nil, nil) {
			t.Fatalf("expected identical seeded sequences, diverged at turn %d", i)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewTitForTat()
	p.SetMatchAttributes(Attributes{Turns: 10, Game: game.New(), Noise: 0.1})
	clone := p.Clone()
	if clone == Player(p) {
		t.Fatal("expected clone to be a distinct instance")
	}
	if clone.Name() != p.Name() {
		t.Fatalf("clone name mismatch: got=%s want=%s", clone.Name(), p.Name())
	}
	clone.SetMatchAttributes(Attributes{Turns: 99})
	if p.attrs.Turns != 10 {
		t.Fatalf("mutating clone attributes leaked into original: turns=%d", p.attrs.Turns)
	}
}

func TestRandomCloneReplaysSameSequence(t *testing.T) {
	original := NewRandom(7)
	for i := 0; i < 5; i++ {
		original.Play(nil, nil)
	}
	clone := original.Clone()
	fresh := NewRandom(7)
	for i := 0; i < 10; i++ {
		if clone.Play(nil, nil) != fresh.Play(nil, nil) {
			t.Fatalf("expected clone to restart its seeded sequence, diverged at turn %d", i)
		}
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	want := []string{"alternator", "cooperator", "defector", "grudger", "random", "titfortat", "titfortwotats"}
	if len(names) != len(want) {
		t.Fatalf("unexpected registry size: got=%d want=%d (%v)", len(names), len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("registry order mismatch at %d: got=%s want=%s", i, names[i], name)
		}
	}

	p, err := New("titfortat", 0)
	if err != nil {
		t.Fatalf("build registered strategy: %v", err)
	}
	if p.Name() != "titfortat" {
		t.Fatalf("unexpected player name: %s", p.Name())
	}

	if _, err := New("unknown", 0); err == nil {
		t.Fatal("expected unknown strategy to fail")
	}

	if err := Register("titfortat", func(int64) Player { return NewTitForTat() }); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}
