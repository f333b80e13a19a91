package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockmate/internal/model"
	"mockmate/internal/transcript"
)

var (
	// ErrUnknownQuestion is returned for question ids outside the session.
	ErrUnknownQuestion = errors.New("question does not belong to this session")

	// ErrRecordingActive is returned when a manual edit targets the
	// question currently being recorded. Edits and transcription are
	// temporally exclusive by policy, not merged.
	ErrRecordingActive = errors.New("manual editing is disabled while recording")

	// ErrSaveInFlight is returned when a save is requested for a question
	// that already has one pending.
	ErrSaveInFlight = errors.New("a save is already in progress for this question")
)

// IncompleteError rejects a submit attempt while answers are missing.
type IncompleteError struct {
	Saved int
	Total int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("please answer and save all questions before submitting (%d of %d saved)", e.Saved, e.Total)
}

// Session is one authenticated multi-question interview. It owns the
// answer store, the single shared recognition accumulator, and the
// submission gate. The question sequence is fixed for the session's
// lifetime.
type Session struct {
	ID        string
	UserID    string
	Category  string
	Questions []model.Question
	Answers   *AnswerStore
	CreatedAt time.Time

	recorder *transcript.Accumulator

	mu          sync.Mutex
	activeID    string
	recordingID string // question the current pass is bound to, "" when none
	saving      map[string]bool
}

// New creates a session over a fixed question sequence. The first
// question starts active.
func New(userID, category string, questions []model.Question, source transcript.Source) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Questions: questions,
		Answers:   NewAnswerStore(questions),
		CreatedAt: time.Now(),
		recorder:  transcript.NewAccumulator(source),
		saving:    make(map[string]bool),
	}
	if len(questions) > 0 {
		s.activeID = questions[0].ID
	}
	return s
}

// Question looks up a question of this session by id.
func (s *Session) Question(questionID string) (model.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return model.Question{}, false
}

// ActiveQuestion returns the id of the question currently displayed.
func (s *Session) ActiveQuestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Activate switches the active question. Capture is stopped first so no
// further finals can land on the question being left; answer records are
// never mutated by switching.
func (s *Session) Activate(questionID string) error {
	if _, ok := s.Question(questionID); !ok {
		return ErrUnknownQuestion
	}

	s.recorder.Stop()

	s.mu.Lock()
	s.activeID = questionID
	s.recordingID = ""
	s.mu.Unlock()
	return nil
}

// StartRecording begins a recording pass bound to the active question.
// Starting while already recording restarts the pass and discards the
// transcript accumulated so far ("record again").
func (s *Session) StartRecording() error {
	s.mu.Lock()
	questionID := s.activeID
	s.mu.Unlock()

	if questionID == "" {
		return ErrUnknownQuestion
	}

	// The binding is captured here: finals from this pass only ever
	// upsert this question's draft, no matter what becomes active later.
	err := s.recorder.Start(func(full string) {
		s.Answers.SetDraft(questionID, full)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.recordingID = questionID
	s.mu.Unlock()

	log.Printf("[Session %s] Recording started for question %s", s.ID, questionID)
	return nil
}

// StopRecording ends the current recording pass.
func (s *Session) StopRecording() {
	s.recorder.Stop()
	s.mu.Lock()
	s.recordingID = ""
	s.mu.Unlock()
}

// IngestSegment applies one recognition segment to the current pass.
func (s *Session) IngestSegment(seg transcript.Segment) error {
	return s.recorder.Ingest(seg)
}

// Recorder exposes the accumulator for read access (transcript, interim,
// state).
func (s *Session) Recorder() *transcript.Accumulator {
	return s.recorder
}

// SetDraft applies a manual edit. Rejected for the question currently
// being recorded; otherwise last writer wins.
func (s *Session) SetDraft(questionID, text string) error {
	if _, ok := s.Question(questionID); !ok {
		return ErrUnknownQuestion
	}

	s.mu.Lock()
	recording := s.recordingID == questionID && s.recorder.Recording()
	s.mu.Unlock()
	if recording {
		return ErrRecordingActive
	}

	s.Answers.SetDraft(questionID, text)
	return nil
}

// BeginSave marks a save in flight for a question. Only one save may be
// pending per question at a time.
func (s *Session) BeginSave(questionID string) error {
	if _, ok := s.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving[questionID] {
		return ErrSaveInFlight
	}
	s.saving[questionID] = true
	return nil
}

// EndSave clears the in-flight marker for a question.
func (s *Session) EndSave(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saving, questionID)
}

// Ready reports whether the submission gate is in its ready state, i.e.
// every question has a saved answer.
func (s *Session) Ready() bool {
	return s.Answers.IsComplete()
}

// Submit authorizes the transition to the feedback stage. Invoked while
// incomplete it returns an IncompleteError with the saved counts, never a
// silent no-op.
func (s *Session) Submit() (string, error) {
	if !s.Ready() {
		return "", &IncompleteError{
			Saved: s.Answers.SavedCount(),
			Total: s.Answers.Len(),
		}
	}
	s.recorder.Stop()
	return fmt.Sprintf("/interviews/%s/feedback", s.ID), nil
}
