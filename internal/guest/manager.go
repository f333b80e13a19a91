package guest

import (
	"log"
	"sync"

	"mockmate/internal/model"
	"mockmate/internal/transcript"
)

// Session is one single-question guest interview. Every state change is
// snapshotted through the serializer so the flow survives reloads without
// a backend record.
type Session struct {
	Token string

	mu       sync.Mutex
	snap     model.GuestSnapshot
	recorder *transcript.Accumulator
	ser      *Serializer
}

// Manager hands out guest sessions keyed by token, restoring state from
// ephemeral storage when a token returns after a reload.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    Store
	source   transcript.Source
}

// NewManager creates a guest session manager over an ephemeral store.
func NewManager(store Store, source transcript.Source) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		source:   source,
	}
}

// Get returns the live session for a token, creating it first if needed.
// A prior snapshot in storage is restored atomically into the new
// session.
func (m *Manager) Get(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[token]; ok {
		return s
	}

	s := &Session{
		Token:    token,
		recorder: transcript.NewAccumulator(m.source),
		ser:      NewSerializer(m.store, token),
	}
	if snap, ok := s.ser.Load(); ok {
		s.snap = snap
		log.Printf("[Guest %s] Session restored from storage", token)
	}
	m.sessions[token] = s
	return s
}

// Snapshot returns a copy of the session's current state.
func (s *Session) Snapshot() model.GuestSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// SetCategory records the chosen interview category.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Category = &category
	s.persistLocked()
}

// SetQuestion installs a newly generated question, clearing the previous
// answer and feedback. Any active capture is stopped first so a stale
// pass cannot write into the new question.
func (s *Session) SetQuestion(question string) {
	s.recorder.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Question = &question
	s.snap.Answer = ""
	s.snap.Feedback = nil
	s.persistLocked()
}

// SetAnswer applies a typed answer edit (last write wins).
func (s *Session) SetAnswer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Answer = text
	s.persistLocked()
}

// SetFeedback stores generated feedback.
func (s *Session) SetFeedback(fb model.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Feedback = &fb
	s.persistLocked()
}

// StartRecording begins a capture pass; finals replace the running
// answer with the accumulated transcript.
func (s *Session) StartRecording() error {
	return s.recorder.Start(func(full string) {
		s.SetAnswer(full)
	})
}

// StopRecording ends the capture pass.
func (s *Session) StopRecording() {
	s.recorder.Stop()
}

// IngestSegment applies one recognition segment.
func (s *Session) IngestSegment(seg transcript.Segment) error {
	return s.recorder.Ingest(seg)
}

// Recorder exposes the accumulator for read access.
func (s *Session) Recorder() *transcript.Accumulator {
	return s.recorder
}

// Reset clears all four session fields and the storage slot together,
// and stops any active capture so no further segments leak into the
// cleared session.
func (s *Session) Reset() {
	s.recorder.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = model.GuestSnapshot{}
	s.ser.Reset()
}

// persistLocked snapshots the full session state; callers hold s.mu.
func (s *Session) persistLocked() {
	if err := s.ser.Save(s.snap); err != nil {
		log.Printf("[Guest %s] Failed to persist session snapshot: %v", s.Token, err)
	}
}
