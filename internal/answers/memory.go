package answers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockmate/internal/model"
)

// memoryRepository keeps persisted answers in process memory. It enforces
// the same (owner, question, session) uniqueness as the document store,
// so the save gate behaves identically in storeless runs and tests.
type memoryRepository struct {
	mu      sync.Mutex
	answers []model.UserAnswer
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) FindByOwnerAndQuestion(ctx context.Context, ownerID, questionID string) (*model.UserAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.answers {
		if r.answers[i].UserID == ownerID && r.answers[i].QuestionID == questionID {
			found := r.answers[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryRepository) ListBySession(ctx context.Context, ownerID, sessionRef string) ([]model.UserAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserAnswer
	for _, a := range r.answers {
		if a.UserID == ownerID && a.SessionRef == sessionRef {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryRepository) Insert(ctx context.Context, answer *model.UserAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.UserID == answer.UserID && a.QuestionID == answer.QuestionID && a.SessionRef == answer.SessionRef {
			return ErrDuplicate
		}
	}
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	answer.CreatedAt = time.Now()
	r.answers = append(r.answers, *answer)
	return nil
}
