// Package state holds the board's navigation state machine: the active cell,
// the numeric entry dialog it opens, and the single event queue that drives
// both.
package state

import (
	"context"

	"go-tally/internal/entry"
	"go-tally/internal/scoring"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

const (
	StateIdle    = "idle"
	StateActive  = "active"
	StateEditing = "editing"
)

const (
	eventSeed  = "seed"
	eventOpen  = "open"
	eventClose = "close"
	eventReset = "reset"
)

// Change is what subscribers see after an event changed the board.
type Change struct {
	State  string
	Cursor Cursor
	// Editor is nil while the dialog is closed.
	Editor *entry.View
	// Players is set only when a score list was rewritten.
	Players []scoring.Player
}

type subscriber struct {
	id int
	fn func(Change)
}

// Navigator tracks the active cell on the score board and the dialog opened
// on it. It is not safe for concurrent use.
type Navigator struct {
	FSM     *fsm.FSM
	players []scoring.Player
	cursor  Cursor
	editor  *entry.Session
	// guard is armed while a dialog opened from the keyboard is up. The held
	// key that opened it auto-repeats into the dialog and must not submit.
	guard bool

	queue    []Event
	draining bool
	dirty    bool
	scored   bool

	subs   []subscriber
	nextID int
	log    zerolog.Logger
}

// NewNavigator starts an idle navigator over players.
func NewNavigator(players []scoring.Player, log zerolog.Logger) *Navigator {
	n := &Navigator{
		players: append([]scoring.Player(nil), players...),
		log:     log.With().Str("component", "navigator").Logger(),
	}
	n.FSM = fsm.NewFSM(
		StateIdle,
		getStateTransitions(),
		getStateCallbacks(n),
	)
	return n
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: eventSeed, Src: []string{StateIdle}, Dst: StateActive},
		{Name: eventOpen, Src: []string{StateActive}, Dst: StateEditing},
		{Name: eventClose, Src: []string{StateEditing}, Dst: StateActive},
		{Name: eventReset, Src: []string{StateActive, StateEditing}, Dst: StateIdle},
	}
}

func getStateCallbacks(n *Navigator) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			n.dirty = true
			n.log.Info().
				Str("event", e.Event).
				Str("from", e.Src).
				Str("to", e.Dst).
				Msg("transition")
		},
		"leave_" + StateEditing: func(_ context.Context, e *fsm.Event) {
			if n.editor != nil && n.editor.Status() == entry.Open {
				// Every way out of editing closes the dialog first.
				n.log.Error().Str("event", e.Event).Msg("leaving editing with an open dialog")
				e.Cancel()
			}
		},
	}
}

// State returns the current state name.
func (n *Navigator) State() string { return n.FSM.Current() }

func (n *Navigator) Cursor() Cursor { return n.cursor }

// Players returns the current player list.
func (n *Navigator) Players() []scoring.Player {
	return append([]scoring.Player(nil), n.players...)
}

// Editor returns the open dialog, if any.
func (n *Navigator) Editor() (entry.View, bool) {
	if n.editor == nil {
		return entry.View{}, false
	}
	return n.editor.View(), true
}

// Subscribe registers fn for every change. The returned func removes it.
func (n *Navigator) Subscribe(fn func(Change)) (unsubscribe func()) {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch queues events and works through the queue in order. Events
// dispatched while the queue is being drained, from a subscriber for
// example, run after the current event has been fully handled.
func (n *Navigator) Dispatch(events ...Event) {
	n.queue = append(n.queue, events...)
	if n.draining {
		return
	}
	n.draining = true
	defer func() { n.draining = false }()

	for len(n.queue) > 0 {
		ev := n.queue[0]
		n.queue = n.queue[1:]
		n.handle(ev)
	}
}

// Reset swaps in a new player list, dropping the cursor and any open dialog
// without calling back. Queued events belonged to the old board and are
// dropped too.
func (n *Navigator) Reset(players []scoring.Player) {
	if n.editor != nil {
		n.editor.Discard()
		n.editor = nil
	}
	n.guard = false
	n.queue = nil
	n.players = append([]scoring.Player(nil), players...)
	n.cursor = NoCursor
	n.scored = true
	if !n.FSM.Is(StateIdle) {
		n.fire(eventReset)
	}
	n.log.Info().Int("players", len(players)).Msg("reset")
	n.notify()
}

// Close discards any open dialog, returns to idle and drops all subscribers.
func (n *Navigator) Close() {
	if n.editor != nil {
		n.editor.Discard()
		n.editor = nil
	}
	n.guard = false
	n.queue = nil
	n.subs = nil
	n.cursor = NoCursor
	if !n.FSM.Is(StateIdle) {
		n.fire(eventReset)
	}
}

func (n *Navigator) handle(ev Event) {
	n.log.Debug().
		Str("event", ev.String()).
		Str("state", n.FSM.Current()).
		Msg("handling event")

	switch ev.Kind {
	case KindKey:
		n.handleKey(ev)
	case KindCellActivated:
		if n.FSM.Is(StateEditing) {
			return
		}
		if c, ok := exactCell(n.players, ev.Player, ev.Score); ok {
			n.moveTo(c)
			n.openEditor(false)
		}
	case KindCellDeleteRequested:
		if !n.FSM.Is(StateEditing) {
			n.deleteScore(ev.Player, ev.Score)
		}
	case KindEditorInput:
		if n.editor != nil {
			n.editor.SetText(ev.Text)
			n.dirty = true
		}
	case KindEditorSubmit:
		n.submit()
	case KindEditorCancel:
		n.cancel()
	}

	if n.dirty {
		n.notify()
	}
}

func (n *Navigator) handleKey(ev Event) {
	if n.FSM.Is(StateEditing) {
		switch ev.Key {
		case KeyEnter:
			if ev.Repeat && n.guard {
				return
			}
			n.submit()
		case KeyEscape:
			n.cancel()
		}
		return
	}

	switch {
	case ev.Key.IsDirectional():
		n.move(ev.Key)
	case ev.Key.IsActivation():
		// Only a fresh press opens the dialog.
		if !ev.Repeat && n.FSM.Is(StateActive) {
			n.openEditor(true)
		}
	case ev.Key == KeyDelete:
		if n.FSM.Is(StateActive) {
			n.deleteScore(n.cursor.Player, n.cursor.Score)
		}
	}
}

func (n *Navigator) move(k Key) {
	if len(n.players) == 0 {
		return
	}
	if !n.cursor.IsSet() {
		n.moveTo(seedCell(n.players, k))
		return
	}
	next := step(n.cursor, k)
	c, _ := clampCell(n.players, next.Player, next.Score)
	n.moveTo(c)
}

func (n *Navigator) moveTo(c Cursor) {
	if c != n.cursor {
		n.cursor = c
		n.dirty = true
	}
	if n.FSM.Is(StateIdle) {
		n.fire(eventSeed)
	}
}

func (n *Navigator) openEditor(fromKey bool) {
	p := n.players[n.cursor.Player]
	n.editor = entry.NewSession(entry.Target{
		PlayerID:    p.ID(),
		PlayerName:  p.Name(),
		PlayerIndex: n.cursor.Player,
		ScoreIndex:  n.cursor.Score,
		Scores:      p.Scores(),
	}, n.editorClosed)
	n.guard = fromKey
	n.fire(eventOpen)
}

// submit commits the dialog. A buffer the dialog refuses (zero on the
// new-slot row) closes it without a commit.
func (n *Navigator) submit() {
	if n.editor == nil {
		return
	}
	if !n.editor.Submit() {
		n.editor.Cancel()
	}
}

func (n *Navigator) cancel() {
	if n.editor != nil {
		n.editor.Cancel()
	}
}

func (n *Navigator) editorClosed(res entry.Result) {
	if res.Status == entry.Committed {
		n.replaceScores(res.PlayerID, res.Scores)
	}
	n.log.Debug().Str("status", res.Status.String()).Msg("dialog closed")
	n.editor = nil
	n.fire(eventClose)
	n.guard = false
}

func (n *Navigator) deleteScore(player, score int) {
	if player < 0 || player >= len(n.players) {
		return
	}
	p := n.players[player]
	if score < 0 || score >= p.ScoreCount() {
		return
	}
	n.replaceScores(p.ID(), removeAt(p.Scores(), score))
}

func (n *Navigator) replaceScores(id string, scores []int) {
	i := indexOf(n.players, id)
	if i < 0 {
		n.log.Warn().Str("player", id).Msg("dropping scores for a player no longer on the board")
		return
	}
	players := append([]scoring.Player(nil), n.players...)
	players[i] = players[i].WithScores(scores)
	n.players = players
	n.scored = true
	n.dirty = true

	if n.cursor.IsSet() {
		// The cursor stays put unless its row no longer exists.
		c, _ := clampCell(n.players, n.cursor.Player, n.cursor.Score)
		n.cursor = c
	}
}

func (n *Navigator) fire(event string) {
	if !n.FSM.Can(event) {
		n.log.Error().Str("event", event).Str("state", n.FSM.Current()).Msg("event not allowed")
		return
	}
	if err := n.FSM.Event(context.Background(), event); err != nil {
		n.log.Error().Err(err).Str("event", event).Msg("transition failed")
	}
}

func (n *Navigator) notify() {
	ch := Change{State: n.FSM.Current(), Cursor: n.cursor}
	if v, ok := n.Editor(); ok {
		ch.Editor = &v
	}
	if n.scored {
		ch.Players = n.Players()
	}
	n.dirty = false
	n.scored = false

	for _, s := range append([]subscriber(nil), n.subs...) {
		s.fn(ch)
	}
}
