package game

import (
	"go-tally/internal/scoring"
	"go-tally/internal/state"

	"github.com/rs/zerolog"
)

// Game is one score board in play, independent of the UI.
type Game struct {
	Navigator   *state.Navigator
	players     []scoring.Player
	unsubscribe func()
}

// NewGame starts a board over players.
func NewGame(players []scoring.Player, log zerolog.Logger) *Game {
	g := &Game{
		Navigator: state.NewNavigator(players, log),
		players:   append([]scoring.Player(nil), players...),
	}
	g.unsubscribe = g.Navigator.Subscribe(g.sync)
	return g
}

func (g *Game) sync(c state.Change) {
	if c.Players != nil {
		g.players = c.Players
	}
}

// HandleKeyPress feeds one key press to the board.
func (g *Game) HandleKeyPress(k state.Key, repeat bool) {
	ev := state.KeyPress(k)
	ev.Repeat = repeat
	g.Navigator.Dispatch(ev)
}

// HandleEvent feeds any other board event.
func (g *Game) HandleEvent(ev state.Event) {
	g.Navigator.Dispatch(ev)
}

// Players returns the board's players with their current scores.
func (g *Game) Players() []scoring.Player {
	return append([]scoring.Player(nil), g.players...)
}

// Leader returns the highest total, if someone leads.
func (g *Game) Leader() (int, bool) {
	return scoring.Leader(g.players)
}

// Winners returns the indexes of players over their winning threshold.
func (g *Game) Winners() []int {
	var out []int
	for i, p := range g.players {
		if p.IsWinner() {
			out = append(out, i)
		}
	}
	return out
}

// Reset replaces the board's players, dropping any open dialog.
func (g *Game) Reset(players []scoring.Player) {
	g.Navigator.Reset(players)
}

// Close detaches the game from its navigator.
func (g *Game) Close() {
	g.unsubscribe()
	g.Navigator.Close()
}
