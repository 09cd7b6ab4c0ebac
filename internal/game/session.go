package game

import (
	"go-tally/internal/roster"
	"go-tally/internal/scoring"

	"github.com/rs/zerolog"
)

type Step int

const (
	StepSetup Step = iota
	StepPlay
)

func (s Step) String() string {
	if s == StepPlay {
		return "play"
	}
	return "setup"
}

// Session walks one sitting at the table: typing in the roster, playing on
// the board, and going back to setup to fix names or start over.
type Session struct {
	Step        Step
	CurrentGame *Game

	roster []scoring.Player
	log    zerolog.Logger
}

// NewSession starts in setup with one roster row per name. Names past
// roster.MaxPlayers are dropped.
func NewSession(names []string, log zerolog.Logger) *Session {
	s := &Session{log: log}
	for _, name := range names {
		if len(s.roster) >= roster.MaxPlayers {
			s.log.Warn().Str("name", name).Int("max", roster.MaxPlayers).Msg("roster full, dropping name")
			continue
		}
		rows := roster.Displayed(s.roster)
		s.roster = roster.UpdatePlayer(s.roster, rows[len(rows)-1], name)
	}
	return s
}

// Rows returns the setup rows: the roster plus a blank row to type into.
func (s *Session) Rows() []scoring.Player {
	return roster.Displayed(s.roster)
}

// Rename sets the name on setup row i. The last row may be the blank one.
func (s *Session) Rename(i int, name string) {
	rows := s.Rows()
	if i < 0 || i >= len(rows) {
		return
	}
	s.roster = roster.UpdatePlayer(s.roster, rows[i], name)
}

// Ready returns the roster the game would start with.
func (s *Session) Ready() ([]scoring.Player, bool) {
	return roster.ValidPlayers(s.roster)
}

// HasScores reports whether the roster carries scores from an earlier board.
func (s *Session) HasScores() bool {
	return roster.HasScores(s.roster)
}

// Start moves to the board keeping any scores. It does nothing and returns
// false while the roster is not ready.
func (s *Session) Start() bool {
	players, ok := s.Ready()
	if !ok {
		return false
	}
	s.play(players)
	return true
}

// NewGame moves to the board with every score cleared.
func (s *Session) NewGame() bool {
	players, ok := s.Ready()
	if !ok {
		return false
	}
	s.play(roster.ClearScores(players))
	return true
}

func (s *Session) play(players []scoring.Player) {
	s.roster = players
	if s.CurrentGame == nil {
		s.CurrentGame = NewGame(players, s.log)
	} else {
		s.CurrentGame.Reset(players)
	}
	s.Step = StepPlay
	s.log.Info().Int("players", len(players)).Msg("game started")
}

// BackToSetup leaves the board. The roster keeps the board's scores, so the
// setup screen can go back to the same game.
func (s *Session) BackToSetup() {
	if s.Step != StepPlay {
		return
	}
	s.roster = s.CurrentGame.Players()
	s.CurrentGame.Reset(s.roster)
	s.Step = StepSetup
}

// Players returns the board's players while playing and the roster otherwise.
func (s *Session) Players() []scoring.Player {
	if s.Step == StepPlay && s.CurrentGame != nil {
		return s.CurrentGame.Players()
	}
	return append([]scoring.Player(nil), s.roster...)
}

// Close releases the current game.
func (s *Session) Close() {
	if s.CurrentGame != nil {
		s.CurrentGame.Close()
	}
}
