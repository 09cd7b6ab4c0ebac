package game

import (
	"testing"

	"go-tally/internal/roster"
	"go-tally/internal/state"

	"github.com/rs/zerolog"
)

func TestSession_Init(t *testing.T) {
	sess := NewSession([]string{"A", "B"}, zerolog.Nop())

	if sess.Step != StepSetup {
		t.Errorf("Should start in setup, got %s", sess.Step)
	}
	rows := sess.Rows()
	if len(rows) != 3 || rows[0].Name() != "A" || rows[1].Name() != "B" || rows[2].Name() != "" {
		t.Errorf("Expected rows [A B _], got %d rows", len(rows))
	}
	if _, ok := sess.Ready(); !ok {
		t.Error("Two named players should be ready")
	}
	if sess.HasScores() {
		t.Error("Fresh roster should have no scores")
	}
}

func TestSession_MaxPlayers(t *testing.T) {
	names := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	sess := NewSession(names, zerolog.Nop())

	rows := sess.Rows()
	if len(rows) != roster.MaxPlayers {
		t.Errorf("Expected %d rows with no scaffold, got %d", roster.MaxPlayers, len(rows))
	}
	if rows[len(rows)-1].Name() != "6" {
		t.Errorf("Expected last row 6, got %q", rows[len(rows)-1].Name())
	}
}

func TestSession_RenameAndStart(t *testing.T) {
	sess := NewSession(nil, zerolog.Nop())

	if sess.Start() {
		t.Fatal("Empty roster should not start")
	}

	sess.Rename(0, "Dana")
	if sess.Start() {
		t.Fatal("One player should not start")
	}
	sess.Rename(1, "Eli")
	sess.Rename(2, "Noa")
	sess.Rename(2, "")

	if len(sess.Rows()) != 3 {
		t.Errorf("Cleared last row should be trimmed, got %d rows", len(sess.Rows()))
	}

	// Out of range rows are ignored.
	sess.Rename(9, "Ghost")

	if !sess.Start() {
		t.Fatal("Dana and Eli should start")
	}
	if sess.Step != StepPlay {
		t.Errorf("Expected play, got %s", sess.Step)
	}
	if n := len(sess.Players()); n != 2 {
		t.Errorf("Expected 2 players on the board, got %d", n)
	}
}

func TestSession_BackToGameKeepsScores(t *testing.T) {
	sess := NewSession([]string{"A", "B"}, zerolog.Nop())
	sess.Start()

	g := sess.CurrentGame
	g.HandleKeyPress(state.KeyDown, false)
	g.HandleKeyPress(state.KeyEnter, false)
	g.HandleEvent(state.EditorInput("40"))
	g.HandleKeyPress(state.KeyEnter, false)
	// Leave a dialog open; going back must drop it.
	g.HandleKeyPress(state.KeyEnter, false)

	sess.BackToSetup()
	if sess.Step != StepSetup {
		t.Fatalf("Expected setup, got %s", sess.Step)
	}
	if !sess.HasScores() {
		t.Fatal("Roster should keep board scores")
	}
	if g.Navigator.State() != state.StateIdle {
		t.Errorf("Board should be reset, got %s", g.Navigator.State())
	}

	// Renaming keeps the scores on the same slot.
	sess.Rename(0, "Alex")
	if p := sess.Players()[0]; p.Name() != "Alex" || p.Total() != 40 {
		t.Errorf("Expected Alex with 40, got %q with %d", p.Name(), p.Total())
	}

	sess.Start()
	if p := sess.Players()[0]; p.Total() != 40 {
		t.Errorf("Back to game should keep scores, got %d", p.Total())
	}
	if sess.CurrentGame != g {
		t.Error("Back to game should reuse the board")
	}
}

func TestSession_NewGameClearsScores(t *testing.T) {
	sess := NewSession([]string{"A", "B"}, zerolog.Nop())
	sess.Start()
	sess.CurrentGame.HandleEvent(state.CellActivated(1, 0))
	sess.CurrentGame.HandleEvent(state.EditorInput("300"))
	sess.CurrentGame.HandleEvent(state.EditorSubmit())
	sess.BackToSetup()

	if !sess.NewGame() {
		t.Fatal("NewGame should start")
	}
	for _, p := range sess.Players() {
		if p.HasScores() {
			t.Errorf("New game should clear scores, %s has %v", p.Name(), p.Scores())
		}
	}
	if sess.Players()[1].Name() != "B" {
		t.Error("New game should keep names")
	}
}

func TestSession_UnnamedScoredRowBlocksStart(t *testing.T) {
	sess := NewSession([]string{"A", "B", "C"}, zerolog.Nop())
	sess.Start()
	sess.CurrentGame.HandleEvent(state.CellActivated(1, 0))
	sess.CurrentGame.HandleEvent(state.EditorInput("10"))
	sess.CurrentGame.HandleEvent(state.EditorSubmit())
	sess.BackToSetup()

	sess.Rename(1, "")
	if len(sess.Rows()) != 4 {
		t.Errorf("Scored row should survive losing its name, got %d rows", len(sess.Rows()))
	}
	if sess.Start() {
		t.Error("An unnamed row between named players should block the start")
	}
	if sess.Step != StepSetup {
		t.Errorf("Failed start should stay in setup, got %s", sess.Step)
	}
}
