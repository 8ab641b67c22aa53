package game

import "testing"

func TestDefaultPayoffs(t *testing.T) {
	g := New()
	r, p, s, tt := g.RPST()
	if r != 3 || p != 1 || s != 0 || tt != 5 {
		t.Fatalf("unexpected default payoffs: r=%v p=%v s=%v t=%v", r, p, s, tt)
	}
}

func TestScore(t *testing.T) {
	g := New()
	cases := []struct {
		name   string
		first  Action
		second Action
		want1  float64
		want2  float64
	}{
		{name: "mutual cooperation", first: Cooperate, second: Cooperate, want1: 3, want2: 3},
		{name: "mutual defection", first: Defect, second: Defect, want1: 1, want2: 1},
		{name: "sucker", first: Cooperate, second: Defect, want1: 0, want2: 5},
		{name: "temptation", first: Defect, second: Cooperate, want1: 5, want2: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got1, got2 := g.Score(tc.first, tc.second)
			if got1 != tc.want1 || got2 != tc.want2 {
				t.Fatalf("score mismatch: got=(%v,%v) want=(%v,%v)", got1, got2, tc.want1, tc.want2)
			}
		})
	}
}

func TestCustomPayoffs(t *testing.T) {
	g := NewWithPayoffs(4, 2, -1, 6)
	got1, got2 := g.Score(Defect, Cooperate)
	if got1 != 6 || got2 != -1 {
		t.Fatalf("custom payoff mismatch: got=(%v,%v) want=(6,-1)", got1, got2)
	}
}

func TestActionFlip(t *testing.T) {
	if Cooperate.Flip() != Defect || Defect.Flip() != Cooperate {
		t.Fatal("expected flip to invert actions")
	}
	if Cooperate.String() != "C" || Defect.String() != "D" {
		t.Fatalf("unexpected action strings: %s %s", Cooperate, Defect)
	}
}
