package guest

import (
	"testing"
	"time"

	"mockmate/internal/model"
	"mockmate/internal/transcript"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	source, err := transcript.NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	return NewManager(NewMemoryStore(time.Hour), source)
}

func TestManagerRestoresSessionFromStorage(t *testing.T) {
	source, err := transcript.NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	store := NewMemoryStore(time.Hour)

	first := NewManager(store, source).Get("token-1")
	first.SetCategory("Backend Developer")
	first.SetQuestion("How do you design an API?")
	first.SetAnswer("Start from the resources and their lifecycles.")
	first.SetFeedback(model.Feedback{Text: "Good structure."})

	// A new manager over the same store simulates a page reload.
	restored := NewManager(store, source).Get("token-1").Snapshot()
	if restored.Question == nil || *restored.Question != "How do you design an API?" {
		t.Errorf("Question = %v, want restored", restored.Question)
	}
	if restored.Answer != "Start from the resources and their lifecycles." {
		t.Errorf("Answer = %q, want restored", restored.Answer)
	}
	if restored.Feedback == nil || restored.Feedback.Text != "Good structure." {
		t.Errorf("Feedback = %v, want restored", restored.Feedback)
	}
	if restored.Category == nil || *restored.Category != "Backend Developer" {
		t.Errorf("Category = %v, want restored", restored.Category)
	}
}

func TestNewQuestionClearsAnswerAndFeedback(t *testing.T) {
	s := newTestManager(t).Get("token-1")
	s.SetQuestion("First question?")
	s.SetAnswer("first answer")
	s.SetFeedback(model.Feedback{Text: "fine"})

	s.SetQuestion("Second question?")

	snap := s.Snapshot()
	if *snap.Question != "Second question?" {
		t.Errorf("Question = %q", *snap.Question)
	}
	if snap.Answer != "" {
		t.Errorf("Answer = %q, want cleared by the new question", snap.Answer)
	}
	if snap.Feedback != nil {
		t.Errorf("Feedback = %v, want cleared by the new question", snap.Feedback)
	}
}

func TestNewQuestionStopsActiveCapture(t *testing.T) {
	s := newTestManager(t).Get("token-1")
	s.SetQuestion("First question?")
	if err := s.StartRecording(); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	s.IngestSegment(transcript.Segment{Text: "old pass", Final: true})

	s.SetQuestion("Second question?")

	if err := s.IngestSegment(transcript.Segment{Text: "stale", Final: true}); err == nil {
		t.Error("segments from the old pass must not land on the new question")
	}
	if got := s.Snapshot().Answer; got != "" {
		t.Errorf("Answer = %q, want empty for the new question", got)
	}
}

func TestRecordedFinalsBecomeTheAnswer(t *testing.T) {
	s := newTestManager(t).Get("token-1")
	s.SetQuestion("Describe your debugging process.")
	if err := s.StartRecording(); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}

	s.IngestSegment(transcript.Segment{Text: "first I reproduce", Final: true})
	s.IngestSegment(transcript.Segment{Text: "then I bis", Final: false})
	s.IngestSegment(transcript.Segment{Text: "then I bisect", Final: true})
	s.StopRecording()

	if got, want := s.Snapshot().Answer, "first I reproduce then I bisect"; got != want {
		t.Errorf("Answer = %q, want %q", got, want)
	}
}

func TestResetClearsEverythingAtOnce(t *testing.T) {
	source, err := transcript.NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	store := NewMemoryStore(time.Hour)
	s := NewManager(store, source).Get("token-1")

	s.SetCategory("Frontend Developer")
	s.SetQuestion("A question?")
	s.StartRecording()
	s.SetFeedback(model.Feedback{Text: "fb"})

	s.Reset()

	snap := s.Snapshot()
	if snap.Question != nil || snap.Answer != "" || snap.Feedback != nil || snap.Category != nil {
		t.Errorf("snapshot after reset = %+v, want all fields cleared", snap)
	}
	if s.Recorder().Recording() {
		t.Error("reset must stop the active capture")
	}
	if _, ok := NewSerializer(store, "token-1").Load(); ok {
		t.Error("reset must remove the storage slot")
	}

	// Nothing survives into a fresh manager either.
	if snap := NewManager(store, source).Get("token-1").Snapshot(); !snap.Empty() {
		t.Errorf("restored after reset = %+v, want empty", snap)
	}
}
