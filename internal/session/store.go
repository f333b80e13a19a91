package session

import (
	"sync"

	"mockmate/internal/model"
)

// AnswerStore is the single source of truth for per-question answer state
// in one interview session. Every write path (manual edits, transcript
// finals, save completion) goes through here so the saved-flag invariant
// is enforced in one place.
type AnswerStore struct {
	mu      sync.Mutex
	records map[string]*model.AnswerRecord
	order   []string
}

// NewAnswerStore creates a store with one empty, unsaved record per
// question, in question order.
func NewAnswerStore(questions []model.Question) *AnswerStore {
	s := &AnswerStore{
		records: make(map[string]*model.AnswerRecord, len(questions)),
		order:   make([]string, 0, len(questions)),
	}
	for _, q := range questions {
		s.records[q.ID] = &model.AnswerRecord{}
		s.order = append(s.order, q.ID)
	}
	return s
}

// SetDraft overwrites the draft text for a question and clears its saved
// flag. Empty text is a valid draft (it just blocks save later).
// Unknown question ids are ignored.
func (s *AnswerStore) SetDraft(questionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[questionID]
	if !ok {
		return
	}
	rec.Text = text
	rec.Saved = false
}

// MarkSaved flips the saved flag without touching the text. Only the save
// path calls this, after a confirmed persistence outcome.
func (s *AnswerStore) MarkSaved(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[questionID]; ok {
		rec.Saved = true
	}
}

// MarkSavedIf flips the saved flag only when the current draft still
// equals the text captured at save-request time. A draft edited while the
// save was in flight stays unsaved. Reports whether the flag was set.
func (s *AnswerStore) MarkSavedIf(questionID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[questionID]
	if !ok || rec.Text != text {
		return false
	}
	rec.Saved = true
	return true
}

// Record returns a copy of one question's answer state.
func (s *AnswerStore) Record(questionID string) (model.AnswerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[questionID]
	if !ok {
		return model.AnswerRecord{}, false
	}
	return *rec, true
}

// Records returns copies of all answer states keyed by question id.
func (s *AnswerStore) Records() map[string]model.AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.AnswerRecord, len(s.records))
	for id, rec := range s.records {
		out[id] = *rec
	}
	return out
}

// IsComplete reports whether every known question has a saved answer.
// It is computed from current state on every call, never cached.
func (s *AnswerStore) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if !rec.Saved {
			return false
		}
	}
	return len(s.records) > 0
}

// SavedCount returns how many questions currently have a saved answer.
func (s *AnswerStore) SavedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.records {
		if rec.Saved {
			n++
		}
	}
	return n
}

// Len returns the number of known questions.
func (s *AnswerStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
