package answers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"

	"mockmate/internal/model"
)

const userAnswersTable = "user_answers"

// postgrestRepository stores answers in a Supabase/PostgREST document
// store. The user_answers table carries a unique index on
// (user_id, question_id, session_ref); a duplicate-key insert is mapped
// to ErrDuplicate so racing saves collapse into the already-saved
// outcome instead of a second row.
type postgrestRepository struct {
	client *postgrest.Client
}

// NewPostgrestRepository creates a repository against a PostgREST
// endpoint (e.g. a Supabase project's /rest/v1).
func NewPostgrestRepository(baseURL, apiKey string) (Repository, error) {
	client := postgrest.NewClient(baseURL+"/rest/v1", "", map[string]string{
		"apikey":        apiKey,
		"Authorization": fmt.Sprintf("Bearer %s", apiKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize PostgREST client: %w", client.ClientError)
	}

	log.Printf("[Answers] PostgREST repository initialized: %s", baseURL)
	return &postgrestRepository{client: client}, nil
}

func (r *postgrestRepository) FindByOwnerAndQuestion(ctx context.Context, ownerID, questionID string) (*model.UserAnswer, error) {
	var results []model.UserAnswer
	_, err := r.client.From(userAnswersTable).
		Select("*", "", false).
		Eq("user_id", ownerID).
		Eq("question_id", questionID).
		ExecuteTo(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to query user answers: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *postgrestRepository) ListBySession(ctx context.Context, ownerID, sessionRef string) ([]model.UserAnswer, error) {
	var results []model.UserAnswer
	_, err := r.client.From(userAnswersTable).
		Select("*", "", false).
		Eq("user_id", ownerID).
		Eq("session_ref", sessionRef).
		Order("created_at", nil).
		ExecuteTo(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list session answers: %w", err)
	}
	return results, nil
}

func (r *postgrestRepository) Insert(ctx context.Context, answer *model.UserAnswer) error {
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}

	// created_at stays unset here: the store assigns it on insert.
	record := map[string]interface{}{
		"id":               answer.ID.String(),
		"user_id":          answer.UserID,
		"question_id":      answer.QuestionID,
		"question":         answer.Question,
		"reference_answer": answer.ReferenceAnswer,
		"user_answer":      answer.UserAnswer,
		"session_ref":      answer.SessionRef,
	}

	var results []model.UserAnswer
	_, err := r.client.From(userAnswersTable).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&results)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user answer: %w", err)
	}

	if len(results) > 0 {
		answer.CreatedAt = results[0].CreatedAt
	}
	return nil
}

// isDuplicateKey detects a Postgres unique violation surfaced through
// PostgREST (SQLSTATE 23505).
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
