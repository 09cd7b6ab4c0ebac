package state

import "fmt"

// Key is the logical name of a key the board reacts to.
type Key string

const (
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyEnter  Key = "Enter"
	KeySpace  Key = "Space"
	KeyDelete Key = "Delete"
	KeyEscape Key = "Escape"
)

func (k Key) IsDirectional() bool {
	return k == KeyUp || k == KeyDown || k == KeyLeft || k == KeyRight
}

func (k Key) IsActivation() bool {
	return k == KeyEnter || k == KeySpace
}

// Kind tells the navigator how to read an Event.
type Kind int

const (
	KindKey Kind = iota
	KindCellActivated
	KindCellDeleteRequested
	KindEditorInput
	KindEditorSubmit
	KindEditorCancel
)

// Event is one input for the navigator's queue.
type Event struct {
	Kind Kind
	Key  Key
	// Repeat marks an auto-repeated press of a held key.
	Repeat bool
	Player int
	Score  int
	Text   string
}

func KeyPress(k Key) Event  { return Event{Kind: KindKey, Key: k} }
func KeyRepeat(k Key) Event { return Event{Kind: KindKey, Key: k, Repeat: true} }

// CellActivated is a pointer click on a score cell.
func CellActivated(player, score int) Event {
	return Event{Kind: KindCellActivated, Player: player, Score: score}
}

// CellDeleteRequested is a pointer request to remove the score in a cell.
func CellDeleteRequested(player, score int) Event {
	return Event{Kind: KindCellDeleteRequested, Player: player, Score: score}
}

// EditorInput carries the dialog's text buffer after an edit.
func EditorInput(text string) Event { return Event{Kind: KindEditorInput, Text: text} }

func EditorSubmit() Event { return Event{Kind: KindEditorSubmit} }
func EditorCancel() Event { return Event{Kind: KindEditorCancel} }

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		if e.Repeat {
			return string(e.Key) + "(repeat)"
		}
		return string(e.Key)
	case KindCellActivated:
		return fmt.Sprintf("activate(%d,%d)", e.Player, e.Score)
	case KindCellDeleteRequested:
		return fmt.Sprintf("delete(%d,%d)", e.Player, e.Score)
	case KindEditorInput:
		return fmt.Sprintf("input(%q)", e.Text)
	case KindEditorSubmit:
		return "submit"
	case KindEditorCancel:
		return "cancel"
	}
	return "unknown"
}
