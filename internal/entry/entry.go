// Package entry implements the numeric entry dialog used to add, update or
// delete a single score.
package entry

import (
	"strconv"
	"strings"
)

// Status is where a session is in its life.
type Status int

const (
	Open Status = iota
	Committed
	Cancelled
	// Discarded sessions were dropped by an external reset and never call back.
	Discarded
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	case Discarded:
		return "discarded"
	}
	return "unknown"
}

// Action is what submitting the current buffer would do.
type Action int

const (
	ActionAdd Action = iota
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "Add"
	case ActionUpdate:
		return "Update"
	case ActionDelete:
		return "Delete"
	}
	return ""
}

// Target identifies the cell being edited.
type Target struct {
	PlayerID    string
	PlayerName  string
	PlayerIndex int
	ScoreIndex  int
	// Scores is the player's score list when the dialog opened.
	Scores []int
}

// HasOriginal reports whether the target is an existing score rather than
// the new-slot row.
func (t Target) HasOriginal() bool {
	return t.ScoreIndex >= 0 && t.ScoreIndex < len(t.Scores)
}

// Result is passed to the close callback exactly once.
type Result struct {
	Status   Status
	PlayerID string
	// Scores is the rewritten score list, set only when Status is Committed.
	Scores []int
}

// View is a read-only snapshot for rendering the dialog.
type View struct {
	Target   Target
	Original int
	Text     string
	Value    int
	Action   Action
	Enabled  bool
	Status   Status
}

// Session is one opening of the dialog.
type Session struct {
	target   Target
	original int
	text     string
	status   Status
	onClose  func(Result)
}

// NewSession opens a dialog on target. The buffer starts with the existing
// score, or empty for the new-slot row. onClose may be nil.
func NewSession(target Target, onClose func(Result)) *Session {
	target.Scores = append([]int(nil), target.Scores...)
	s := &Session{target: target, onClose: onClose}
	if target.HasOriginal() {
		s.original = target.Scores[target.ScoreIndex]
		s.text = strconv.Itoa(s.original)
	}
	return s
}

func (s *Session) Target() Target { return s.target }
func (s *Session) Text() string   { return s.text }
func (s *Session) Status() Status { return s.status }

// SetText replaces the buffer. Closed sessions ignore it.
func (s *Session) SetText(text string) {
	if s.status != Open {
		return
	}
	s.text = text
}

// Value parses the buffer. Anything that is not an integer counts as zero.
func (s *Session) Value() int {
	return parse(s.text)
}

func parse(text string) int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return v
}

// Enabled reports whether Submit would do anything: the buffer holds a
// non-zero value, or there is an existing score that zero would delete.
func (s *Session) Enabled() bool {
	return s.status == Open && (s.Value() != 0 || s.target.HasOriginal())
}

// Action reports what Submit would do with the current buffer.
func (s *Session) Action() Action {
	switch {
	case !s.target.HasOriginal():
		return ActionAdd
	case s.Value() == 0:
		return ActionDelete
	default:
		return ActionUpdate
	}
}

// Submit commits the buffer. It returns false, leaving the session open,
// when the buffer is zero on the new-slot row.
func (s *Session) Submit() bool {
	if !s.Enabled() {
		return false
	}
	scores, ok := Apply(s.target.Scores, s.target.ScoreIndex, s.Value(), s.target.HasOriginal())
	if !ok {
		return false
	}
	s.finish(Result{Status: Committed, PlayerID: s.target.PlayerID, Scores: scores})
	return true
}

// Cancel closes the dialog without touching the scores.
func (s *Session) Cancel() {
	if s.status != Open {
		return
	}
	s.finish(Result{Status: Cancelled, PlayerID: s.target.PlayerID})
}

// Discard closes the dialog without calling back. Used when the roster the
// dialog was opened on no longer exists.
func (s *Session) Discard() {
	if s.status != Open {
		return
	}
	s.status = Discarded
	s.onClose = nil
}

func (s *Session) finish(r Result) {
	s.status = r.Status
	cb := s.onClose
	s.onClose = nil
	if cb != nil {
		cb(r)
	}
}

// View returns a snapshot of the dialog.
func (s *Session) View() View {
	t := s.target
	t.Scores = append([]int(nil), t.Scores...)
	return View{
		Target:   t,
		Original: s.original,
		Text:     s.text,
		Value:    s.Value(),
		Action:   s.Action(),
		Enabled:  s.Enabled(),
		Status:   s.status,
	}
}

// Apply rewrites scores for a submitted value at index. A non-zero value
// replaces an existing score or is appended on the new-slot row. Zero deletes
// an existing score and is rejected on the new-slot row.
func Apply(scores []int, index, value int, hasOriginal bool) ([]int, bool) {
	if hasOriginal && (index < 0 || index >= len(scores)) {
		return nil, false
	}
	switch {
	case value != 0 && hasOriginal:
		out := append([]int(nil), scores...)
		out[index] = value
		return out, true
	case value != 0:
		return append(append([]int(nil), scores...), value), true
	case hasOriginal:
		out := make([]int, 0, len(scores)-1)
		out = append(out, scores[:index]...)
		return append(out, scores[index+1:]...), true
	}
	return nil, false
}
