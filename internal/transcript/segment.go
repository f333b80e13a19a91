package transcript

// Segment is one unit emitted by the speech-recognition capability.
// Final segments are durable and appended to the running transcript;
// interim segments are provisional and superseded by the next segment.
// Segments carry no question reference; binding to a question is the
// caller's job at recording start.
type Segment struct {
	Text       string  `json:"text"`
	Final      bool    `json:"final"`
	Confidence float64 `json:"confidence,omitempty"`
}
