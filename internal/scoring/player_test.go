package scoring

import (
	"testing"
)

func TestNewPlayer_TotalAndWinner(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		total     int
		threshold int
		winner    bool
	}{
		{"no scores", nil, 0, 8000, false},
		{"hundreds below threshold", []int{100, 200}, 300, 8000, false},
		{"hundreds at threshold", []int{5000, 3000}, 8000, 8000, true},
		{"points above threshold", []int{50, 40}, 90, 80, true},
		{"points at threshold", []int{40, 40}, 80, 80, true},
		{"points below threshold", []int{30, 40}, 70, 80, false},
		{"one stray score switches units", []int{7900, 50}, 7950, 80, true},
		{"zero score is a hundred multiple", []int{0}, 0, 8000, false},
		{"negative points", []int{-50, 100}, 50, 80, false},
	}

	for _, tt := range tests {
		p := NewPlayer("A", tt.scores...)
		if p.Total() != tt.total {
			t.Errorf("%s: expected total %d, got %d", tt.name, tt.total, p.Total())
		}
		if got := WinningThreshold(tt.scores); got != tt.threshold {
			t.Errorf("%s: expected threshold %d, got %d", tt.name, tt.threshold, got)
		}
		if p.IsWinner() != tt.winner {
			t.Errorf("%s: expected winner %v, got %v", tt.name, tt.winner, p.IsWinner())
		}
	}
}

func TestPlayer_Immutable(t *testing.T) {
	scores := []int{10, 20}
	p := NewPlayer("A", scores...)

	// Mutating the caller's slice must not leak in.
	scores[0] = 999
	if got, _ := p.Score(0); got != 10 {
		t.Errorf("Expected score 10 after caller mutation, got %d", got)
	}

	// Mutating the returned slice must not leak in either.
	out := p.Scores()
	out[1] = 999
	if got, _ := p.Score(1); got != 20 {
		t.Errorf("Expected score 20 after result mutation, got %d", got)
	}

	renamed := p.WithName("B")
	if renamed.ID() != p.ID() {
		t.Error("WithName should keep the slot ID")
	}
	if p.Name() != "A" || renamed.Name() != "B" {
		t.Errorf("Unexpected names: original %q, renamed %q", p.Name(), renamed.Name())
	}
	if renamed.Total() != 30 {
		t.Errorf("Renamed player should keep total 30, got %d", renamed.Total())
	}

	rescored := p.WithScores([]int{50, 40})
	if rescored.ID() != p.ID() {
		t.Error("WithScores should keep the slot ID")
	}
	if !rescored.IsWinner() {
		t.Error("Rescored player should be a winner")
	}
	if p.IsWinner() || p.Total() != 30 {
		t.Error("Original player changed after WithScores")
	}
}

func TestNewPlayer_DistinctIDs(t *testing.T) {
	a := NewPlayer("")
	b := NewPlayer("")
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("Expected distinct non-empty IDs, got %q and %q", a.ID(), b.ID())
	}
}

func TestPlayer_Score(t *testing.T) {
	p := NewPlayer("A", 10)
	if _, ok := p.Score(1); ok {
		t.Error("Score(1) should not exist on a single-score player")
	}
	if _, ok := p.Score(-1); ok {
		t.Error("Score(-1) should not exist")
	}
	if p.ScoreCount() != 1 || !p.HasScores() {
		t.Errorf("Expected one score, got %d", p.ScoreCount())
	}
}

func TestLeader(t *testing.T) {
	if _, ok := Leader(nil); ok {
		t.Error("Empty sheet should have no leader")
	}

	tied := []Player{NewPlayer("A", 10), NewPlayer("B", 10)}
	if _, ok := Leader(tied); ok {
		t.Error("Full tie should have no leader")
	}

	players := []Player{NewPlayer("A", 10), NewPlayer("B", 30), NewPlayer("C", 30)}
	best, ok := Leader(players)
	if !ok || best != 30 {
		t.Errorf("Expected leader total 30, got %d (%v)", best, ok)
	}
}
