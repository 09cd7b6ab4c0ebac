package scoring

import (
	"github.com/google/uuid"
)

const (
	// Threshold when every score is written in hundreds.
	hundredsThreshold = 8000
	// Threshold when at least one score is written in single points.
	pointsThreshold = 80
)

// Player is an immutable score-sheet row: a name and the round scores in the
// order they were entered. Every change produces a new Player that keeps the
// same ID, so callers can find "the same slot" in a rebuilt roster.
type Player struct {
	id       string
	name     string
	scores   []int
	total    int
	isWinner bool
}

// NewPlayer creates a player with a fresh slot ID. Empty names and empty
// score lists are allowed.
func NewPlayer(name string, scores ...int) Player {
	return newPlayer(uuid.NewString(), name, scores)
}

func newPlayer(id, name string, scores []int) Player {
	p := Player{
		id:     id,
		name:   name,
		scores: append([]int(nil), scores...),
	}
	for _, s := range p.scores {
		p.total += s
	}
	p.isWinner = p.total >= WinningThreshold(p.scores)
	return p
}

// WinningThreshold returns the total a player needs to win. Score sheets kept
// in hundreds play to 8000; as soon as one score is not a multiple of 100 the
// sheet is in single points and plays to 80.
func WinningThreshold(scores []int) int {
	for _, s := range scores {
		if s%100 != 0 {
			return pointsThreshold
		}
	}
	return hundredsThreshold
}

// WithName returns a copy of the player with another name.
func (p Player) WithName(name string) Player {
	return newPlayer(p.id, name, p.scores)
}

// WithScores returns a copy of the player with another score list.
func (p Player) WithScores(scores []int) Player {
	return newPlayer(p.id, p.name, scores)
}

func (p Player) ID() string      { return p.id }
func (p Player) Name() string    { return p.name }
func (p Player) Total() int      { return p.total }
func (p Player) IsWinner() bool  { return p.isWinner }
func (p Player) ScoreCount() int { return len(p.scores) }
func (p Player) HasScores() bool { return len(p.scores) > 0 }

// Scores returns a copy of the round scores.
func (p Player) Scores() []int {
	return append([]int(nil), p.scores...)
}

// Score returns the score of round i and whether that round exists.
func (p Player) Score(i int) (int, bool) {
	if i < 0 || i >= len(p.scores) {
		return 0, false
	}
	return p.scores[i], true
}

// Leader returns the highest total on the sheet. It reports false when every
// player shares that total, including the empty sheet, since nobody leads.
func Leader(players []Player) (int, bool) {
	if len(players) == 0 {
		return 0, false
	}
	best := players[0].total
	allSame := true
	for _, p := range players[1:] {
		if p.total != best {
			allSame = false
		}
		if p.total > best {
			best = p.total
		}
	}
	if allSame {
		return 0, false
	}
	return best, true
}
