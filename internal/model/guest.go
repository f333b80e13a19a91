package model

// Feedback is the AI feedback returned for a guest answer.
type Feedback struct {
	Text string `json:"text"`
}

// GuestSnapshot is the whole serialized state of a guest session.
// All fields are nullable/empty until populated; the snapshot is written
// as a single blob and restored all-or-nothing.
type GuestSnapshot struct {
	Question *string   `json:"question"`
	Answer   string    `json:"answer"`
	Feedback *Feedback `json:"feedback"`
	Category *string   `json:"category"`
}

// Empty reports whether the snapshot holds nothing worth persisting.
func (s GuestSnapshot) Empty() bool {
	return s.Question == nil && s.Answer == "" && s.Feedback == nil && s.Category == nil
}
