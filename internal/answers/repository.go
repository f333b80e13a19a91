package answers

import (
	"context"
	"errors"

	"mockmate/internal/model"
)

// ErrDuplicate is returned by Insert when the store already holds an
// answer for the same (owner, question, session) triple. The save gate
// treats it as the "already saved" outcome, not a failure.
var ErrDuplicate = errors.New("answer already persisted for this question")

// Repository defines the interface for persisted answer data access.
// The save gate is its sole caller.
type Repository interface {
	// FindByOwnerAndQuestion returns the persisted answer for one owner
	// and question, or nil when none exists.
	FindByOwnerAndQuestion(ctx context.Context, ownerID, questionID string) (*model.UserAnswer, error)

	// ListBySession returns all persisted answers for one owner and
	// interview session, in insertion order.
	ListBySession(ctx context.Context, ownerID, sessionRef string) ([]model.UserAnswer, error)

	// Insert persists a new answer record. The store assigns CreatedAt.
	// Returns ErrDuplicate on a uniqueness violation.
	Insert(ctx context.Context, answer *model.UserAnswer) error
}
