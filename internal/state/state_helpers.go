package state

import (
	"go-tally/internal/scoring"
)

// Cursor is the active cell on the board. Score may equal the player's score
// count, which is the new-slot row below the last score.
type Cursor struct {
	Player int
	Score  int
	set    bool
}

// NoCursor is the cursor before the first key press.
var NoCursor = Cursor{}

// At returns a cursor on the given cell.
func At(player, score int) Cursor {
	return Cursor{Player: player, Score: score, set: true}
}

func (c Cursor) IsSet() bool { return c.set }

// Is reports whether the cursor sits on the given cell.
func (c Cursor) Is(player, score int) bool {
	return c.set && c.Player == player && c.Score == score
}

// clampCell pulls a cell back inside the board: the player into range and
// the score into [0, score count]. It reports false on an empty board.
func clampCell(players []scoring.Player, player, score int) (Cursor, bool) {
	if len(players) == 0 {
		return NoCursor, false
	}
	player = clamp(player, 0, len(players)-1)
	score = clamp(score, 0, players[player].ScoreCount())
	return At(player, score), true
}

// exactCell is the cell at (player, score) if it is on the board, the
// new-slot row included.
func exactCell(players []scoring.Player, player, score int) (Cursor, bool) {
	if player < 0 || player >= len(players) {
		return NoCursor, false
	}
	if score < 0 || score > players[player].ScoreCount() {
		return NoCursor, false
	}
	return At(player, score), true
}

// seedCell picks the first active cell for a directional key.
func seedCell(players []scoring.Player, k Key) Cursor {
	switch k {
	case KeyUp:
		return At(0, players[0].ScoreCount())
	case KeyLeft:
		return At(len(players)-1, 0)
	default:
		return At(0, 0)
	}
}

// step moves a set cursor one cell in the direction of k.
func step(c Cursor, k Key) Cursor {
	switch k {
	case KeyUp:
		c.Score--
	case KeyDown:
		c.Score++
	case KeyLeft:
		c.Player--
	case KeyRight:
		c.Player++
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indexOf(players []scoring.Player, id string) int {
	for i, p := range players {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func removeAt(scores []int, i int) []int {
	out := make([]int, 0, len(scores))
	out = append(out, scores[:i]...)
	return append(out, scores[i+1:]...)
}
