package transcript

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// State is the accumulator lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStopped   State = "stopped"
)

// Accumulator turns an ordered stream of recognition segments into one
// running transcript for the currently active recording pass.
//
// Final segments are concatenated in emission order; interim segments are
// exposed separately as a live preview and never enter the transcript.
// Starting while already recording stops, clears, and starts fresh; that
// is the explicit "record again" behavior. Every accepted final segment
// fires the callback bound at Start with the full transcript so far.
type Accumulator struct {
	mu      sync.Mutex
	source  Source
	state   State
	finals  []string
	interim string
	onFinal func(transcript string)
}

// NewAccumulator creates an accumulator backed by the given source.
func NewAccumulator(source Source) *Accumulator {
	return &Accumulator{
		source: source,
		state:  StateIdle,
	}
}

// Start begins a recording pass. The callback receives the full
// transcript after each final segment; it may be nil.
// Returns ErrNotSupported when the platform has no recognition capability.
func (a *Accumulator) Start(onFinal func(transcript string)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.source.Available() {
		return ErrNotSupported
	}

	if a.state == StateRecording {
		// Restart discards everything accumulated in the current pass.
		log.Printf("[Accumulator] Restart while recording, clearing transcript")
	}

	a.finals = nil
	a.interim = ""
	a.onFinal = onFinal
	a.state = StateRecording
	return nil
}

// Stop ends the current recording pass. The accumulated transcript stays
// readable until the next Start. Stopping when not recording is a no-op.
func (a *Accumulator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateRecording {
		return
	}
	a.interim = ""
	a.state = StateStopped
}

// Ingest applies one recognition segment. Segments arriving outside a
// recording pass are rejected so a stopped pass can never leak text into
// whatever the caller switched to next.
func (a *Accumulator) Ingest(seg Segment) error {
	a.mu.Lock()

	if a.state != StateRecording {
		a.mu.Unlock()
		return fmt.Errorf("segment rejected: accumulator is %s, not recording", a.state)
	}

	if !seg.Final {
		// Interims supersede, they never append.
		a.interim = seg.Text
		a.mu.Unlock()
		return nil
	}

	a.finals = append(a.finals, seg.Text)
	a.interim = ""
	full := strings.Join(a.finals, " ")
	callback := a.onFinal
	a.mu.Unlock()

	if callback != nil {
		callback(full)
	}
	return nil
}

// Transcript returns the concatenation of all final segments received
// since the last Start.
func (a *Accumulator) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return strings.Join(a.finals, " ")
}

// Interim returns the live preview of the segment currently being spoken.
func (a *Accumulator) Interim() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interim
}

// State returns the current lifecycle state.
func (a *Accumulator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Recording reports whether a recording pass is active.
func (a *Accumulator) Recording() bool {
	return a.State() == StateRecording
}
