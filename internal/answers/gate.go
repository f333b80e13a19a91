package answers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mockmate/internal/model"
)

// ErrEmptyAnswer rejects a save attempt with no answer text. No store or
// network interaction happens for this case.
var ErrEmptyAnswer = errors.New("please type or record your answer before saving")

// Outcome is the result of a save gate run.
type Outcome string

const (
	// OutcomeSaved means a new record was persisted.
	OutcomeSaved Outcome = "saved"

	// OutcomeAlreadySaved means a record already existed; duplicate
	// retries and double clicks are absorbed here, not treated as errors.
	OutcomeAlreadySaved Outcome = "already_saved"
)

// SaveRequest is one explicit save action for one question.
type SaveRequest struct {
	OwnerID    string
	SessionRef string
	Question   model.Question
	Text       string
}

// Gate is the idempotent persistence boundary between in-memory answer
// state and the document store. It never mutates answer state itself; it
// reports outcomes and the session applies them.
type Gate struct {
	repo Repository
}

// NewGate creates a save gate over a repository.
func NewGate(repo Repository) *Gate {
	return &Gate{repo: repo}
}

// Save runs the duplicate-checked persistence for one answer:
// validate, query for an existing record, short-circuit when found,
// otherwise insert. A uniqueness violation on insert also resolves to
// the already-saved outcome, so two racing saves can never create a
// second row. Store failures return a retryable error and persist
// nothing.
func (g *Gate) Save(ctx context.Context, req SaveRequest) (Outcome, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", ErrEmptyAnswer
	}

	existing, err := g.repo.FindByOwnerAndQuestion(ctx, req.OwnerID, req.Question.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check for existing answer: %w", err)
	}
	if existing != nil {
		log.Printf("[SaveGate] Answer already saved (owner: %s, question: %s)", req.OwnerID, req.Question.ID)
		return OutcomeAlreadySaved, nil
	}

	answer := &model.UserAnswer{
		UserID:          req.OwnerID,
		QuestionID:      req.Question.ID,
		Question:        req.Question.Question,
		ReferenceAnswer: req.Question.Answer,
		UserAnswer:      req.Text,
		SessionRef:      req.SessionRef,
	}

	if err := g.repo.Insert(ctx, answer); err != nil {
		if errors.Is(err, ErrDuplicate) {
			log.Printf("[SaveGate] Concurrent save detected, treating as already saved (question: %s)", req.Question.ID)
			return OutcomeAlreadySaved, nil
		}
		return "", fmt.Errorf("failed to save answer: %w", err)
	}

	log.Printf("[SaveGate] Answer saved (owner: %s, question: %s, session: %s)", req.OwnerID, req.Question.ID, req.SessionRef)
	return OutcomeSaved, nil
}
