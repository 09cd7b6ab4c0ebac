package entry

import (
	"slices"
	"testing"
)

func target(scoreIndex int, scores ...int) Target {
	return Target{PlayerID: "p1", PlayerName: "A", ScoreIndex: scoreIndex, Scores: scores}
}

type recorder struct {
	results []Result
}

func (r *recorder) close(res Result) {
	r.results = append(r.results, res)
}

func TestNewSession_SeedsBuffer(t *testing.T) {
	s := NewSession(target(1, 10, 50), nil)
	if s.Text() != "50" {
		t.Errorf("Expected buffer '50', got '%s'", s.Text())
	}
	if s.Action() != ActionUpdate {
		t.Errorf("Expected Update, got %s", s.Action())
	}

	s = NewSession(target(2, 10, 50), nil)
	if s.Text() != "" {
		t.Errorf("Expected empty buffer on new slot, got '%s'", s.Text())
	}
	if s.Action() != ActionAdd {
		t.Errorf("Expected Add, got %s", s.Action())
	}
	if s.Enabled() {
		t.Error("Empty new-slot buffer should not be submittable")
	}
}

func TestSession_Value(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"50", 50},
		{" 40 ", 40},
		{"-30", -30},
		{"", 0},
		{"abc", 0},
		{"5.5", 0},
		{"0", 0},
	}
	s := NewSession(target(0), nil)
	for _, tt := range tests {
		s.SetText(tt.text)
		if got := s.Value(); got != tt.want {
			t.Errorf("Value(%q) = %d, expected %d", tt.text, got, tt.want)
		}
	}
}

func TestSession_SubmitUpdate(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(0, 10, 20), rec.close)
	s.SetText("15")

	if !s.Submit() {
		t.Fatal("Submit should succeed")
	}
	if s.Status() != Committed {
		t.Errorf("Expected committed, got %s", s.Status())
	}
	if len(rec.results) != 1 {
		t.Fatalf("Expected one callback, got %d", len(rec.results))
	}
	if !slices.Equal(rec.results[0].Scores, []int{15, 20}) {
		t.Errorf("Expected [15 20], got %v", rec.results[0].Scores)
	}
	if rec.results[0].PlayerID != "p1" {
		t.Errorf("Expected player p1, got %s", rec.results[0].PlayerID)
	}
}

func TestSession_SubmitAppend(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(2, 10, 20), rec.close)
	s.SetText("30")
	s.Submit()
	if len(rec.results) != 1 || !slices.Equal(rec.results[0].Scores, []int{10, 20, 30}) {
		t.Errorf("Expected [10 20 30], got %+v", rec.results)
	}
}

func TestSession_ClearDeletes(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(0, 50), rec.close)
	s.SetText("0")
	if s.Action() != ActionDelete {
		t.Errorf("Expected Delete, got %s", s.Action())
	}
	if !s.Enabled() {
		t.Fatal("Clearing an existing score should be submittable")
	}
	s.Submit()
	if len(rec.results) != 1 || len(rec.results[0].Scores) != 0 {
		t.Errorf("Expected the score removed, got %+v", rec.results)
	}

	// Garbage in the buffer counts as zero.
	rec = &recorder{}
	s = NewSession(target(1, 10, 20, 30), rec.close)
	s.SetText("oops")
	s.Submit()
	if len(rec.results) != 1 || !slices.Equal(rec.results[0].Scores, []int{10, 30}) {
		t.Errorf("Expected [10 30], got %+v", rec.results)
	}
}

func TestSession_ZeroOnNewSlotIsDisabled(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(1, 50), rec.close)
	s.SetText("0")

	if s.Submit() {
		t.Error("Submit of zero on the new slot should be rejected")
	}
	if s.Status() != Open {
		t.Errorf("Session should stay open, got %s", s.Status())
	}
	if len(rec.results) != 0 {
		t.Errorf("Expected no callback, got %+v", rec.results)
	}
}

func TestSession_CancelOnce(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(0, 50), rec.close)
	s.SetText("70")
	s.Cancel()
	s.Cancel()
	if s.Submit() {
		t.Error("Submit after cancel should be rejected")
	}

	if len(rec.results) != 1 || rec.results[0].Status != Cancelled {
		t.Fatalf("Expected a single cancel callback, got %+v", rec.results)
	}
	if rec.results[0].Scores != nil {
		t.Errorf("Cancel should carry no scores, got %v", rec.results[0].Scores)
	}

	s.SetText("80")
	if s.Text() != "70" {
		t.Errorf("Closed session should ignore SetText, got '%s'", s.Text())
	}
}

func TestSession_Discard(t *testing.T) {
	rec := &recorder{}
	s := NewSession(target(0, 50), rec.close)
	s.Discard()
	s.Cancel()
	s.Submit()

	if s.Status() != Discarded {
		t.Errorf("Expected discarded, got %s", s.Status())
	}
	if len(rec.results) != 0 {
		t.Errorf("Discarded session should never call back, got %+v", rec.results)
	}
}

func TestSession_TargetIsCopied(t *testing.T) {
	scores := []int{10, 20}
	s := NewSession(target(0, scores...), nil)
	scores[0] = 999
	if s.Text() != "10" || s.Target().Scores[0] != 10 {
		t.Error("Session should keep its own copy of the scores")
	}
	v := s.View()
	v.Target.Scores[1] = 999
	if s.Target().Scores[1] != 20 {
		t.Error("View should not expose the session's scores")
	}
}

func TestApply(t *testing.T) {
	if _, ok := Apply([]int{10}, 5, 0, true); ok {
		t.Error("Apply with an out-of-range original should be rejected")
	}
	if _, ok := Apply(nil, 0, 0, false); ok {
		t.Error("Apply of zero on the new slot should be rejected")
	}
	in := []int{10, 20}
	out, _ := Apply(in, 0, 0, true)
	if !slices.Equal(in, []int{10, 20}) || !slices.Equal(out, []int{20}) {
		t.Errorf("Apply should not modify its input: in %v, out %v", in, out)
	}
}
