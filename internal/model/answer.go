package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is the in-memory state of one question's answer.
// Saved is true only while Text equals the last value successfully
// persisted for that question; any edit flips it back to false before the
// new text is visible to the caller.
type AnswerRecord struct {
	Text  string `json:"text"`
	Saved bool   `json:"saved"`
}

// UserAnswer is the persisted answer record in the document store.
// CreatedAt is assigned by the store; it is omitted on insert.
type UserAnswer struct {
	ID              uuid.UUID `json:"id,omitempty"`
	UserID          string    `json:"user_id"`
	QuestionID      string    `json:"question_id"`
	Question        string    `json:"question"`
	ReferenceAnswer string    `json:"reference_answer"`
	UserAnswer      string    `json:"user_answer"`
	SessionRef      string    `json:"session_ref"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
