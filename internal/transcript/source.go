package transcript

import "errors"

// ErrNotSupported is returned when no speech-recognition capability is
// available. Callers report it once and degrade to text-only input.
var ErrNotSupported = errors.New("speech recognition is not supported")

// Source describes where recognition segments come from
type Source interface {
	// Available reports whether the capability can deliver segments
	Available() bool

	// Name returns the source name (e.g., "client", "none")
	Name() string
}

// clientSource is the default capability: the browser runs recognition
// and pushes interim/final segments to the engine over HTTP.
type clientSource struct{}

func (clientSource) Available() bool { return true }
func (clientSource) Name() string    { return "client" }

// noSource models a platform without speech recognition.
type noSource struct{}

func (noSource) Available() bool { return false }
func (noSource) Name() string    { return "none" }
