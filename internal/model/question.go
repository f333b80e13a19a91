package model

// Question is one interview question with its reference answer.
// The ID is assigned when the question set is generated and is the only
// key answers are tracked under; the literal question text is carried for
// display and for the persisted record, never used as a key.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
