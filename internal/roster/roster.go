// Package roster validates and trims the list of players typed in on the
// setup screen.
package roster

import (
	"go-tally/internal/scoring"
)

// MaxPlayers is the largest roster a game supports.
const MaxPlayers = 6

// Mode selects which trailing entries LastNonEmptyIndex treats as empty.
type Mode int

const (
	// ByNameOnly skips unnamed entries even when they hold scores.
	ByNameOnly Mode = iota
	// ByNameAndScores skips only unnamed entries without scores.
	ByNameAndScores
)

// LastNonEmptyIndex scans from the end of the roster and returns the index of
// the last entry that is not empty under mode, or -1.
func LastNonEmptyIndex(players []scoring.Player, mode Mode) int {
	i := len(players) - 1
	for i >= 0 && isEmpty(players[i], mode) {
		i--
	}
	return i
}

func isEmpty(p scoring.Player, mode Mode) bool {
	if p.Name() != "" {
		return false
	}
	return mode == ByNameOnly || !p.HasScores()
}

// TrimTrailing drops abandoned scaffold rows after the last entry that still
// has a name or scores. An unnamed row holding scores is never dropped.
func TrimTrailing(players []scoring.Player) []scoring.Player {
	last := LastNonEmptyIndex(players, ByNameAndScores)
	if last < len(players)-1 {
		return players[:last+1]
	}
	return players
}

// UpdatePlayer renames the entry with slot's ID, appending slot first when it
// is the scaffold row, and trims the result. The input is left untouched.
func UpdatePlayer(players []scoring.Player, slot scoring.Player, name string) []scoring.Player {
	out := make([]scoring.Player, 0, len(players)+1)
	found := false
	for _, p := range players {
		if p.ID() == slot.ID() {
			p = p.WithName(name)
			found = true
		}
		out = append(out, p)
	}
	if !found {
		if len(out) >= MaxPlayers {
			return TrimTrailing(out)
		}
		out = append(out, slot.WithName(name))
	}
	return TrimTrailing(out)
}

// ValidPlayers returns the roster a game can start with: everything up to the
// last named entry, provided there are at least two entries and all of them
// have names.
func ValidPlayers(players []scoring.Player) ([]scoring.Player, bool) {
	valid := players[:LastNonEmptyIndex(players, ByNameOnly)+1]
	if len(valid) < 2 {
		return nil, false
	}
	for _, p := range valid {
		if p.Name() == "" {
			return nil, false
		}
	}
	return append([]scoring.Player(nil), valid...), true
}

// Displayed returns the rows the setup screen shows: the roster plus one blank
// scaffold row to type into, unless the roster is full.
func Displayed(players []scoring.Player) []scoring.Player {
	rows := append([]scoring.Player(nil), players...)
	if len(rows) < MaxPlayers {
		rows = append(rows, scoring.NewPlayer(""))
	}
	return rows
}

// HasScores reports whether any entry already holds scores.
func HasScores(players []scoring.Player) bool {
	for _, p := range players {
		if p.HasScores() {
			return true
		}
	}
	return false
}

// ClearScores keeps every slot and name but drops all scores.
func ClearScores(players []scoring.Player) []scoring.Player {
	out := make([]scoring.Player, len(players))
	for i, p := range players {
		out[i] = p.WithScores(nil)
	}
	return out
}
