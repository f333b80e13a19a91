package transcript

import "testing"

func TestAccumulatorConcatenatesFinalsInOrder(t *testing.T) {
	a := NewAccumulator(clientSource{})
	if err := a.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	segs := []Segment{
		{Text: "my name", Final: true},
		{Text: "is", Final: true},
		{Text: "on the tip of my", Final: false},
		{Text: "Alex", Final: true},
	}
	for _, s := range segs {
		if err := a.Ingest(s); err != nil {
			t.Fatalf("Ingest(%+v): %v", s, err)
		}
	}

	if got, want := a.Transcript(), "my name is Alex"; got != want {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
	if a.Interim() != "" {
		t.Errorf("Interim() = %q, want cleared after final", a.Interim())
	}
}

func TestAccumulatorInterimSupersedesNotAppends(t *testing.T) {
	a := NewAccumulator(clientSource{})
	if err := a.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	a.Ingest(Segment{Text: "hel", Final: false})
	a.Ingest(Segment{Text: "hello wor", Final: false})

	if got, want := a.Interim(), "hello wor"; got != want {
		t.Errorf("Interim() = %q, want %q", got, want)
	}
	if a.Transcript() != "" {
		t.Errorf("Transcript() = %q, interims must never enter the transcript", a.Transcript())
	}
}

func TestAccumulatorRestartDiscardsTranscript(t *testing.T) {
	a := NewAccumulator(clientSource{})
	if err := a.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	a.Ingest(Segment{Text: "first pass", Final: true})

	// Start again without an intervening Stop: the record-again path.
	if err := a.Start(nil); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if a.Transcript() != "" {
		t.Errorf("Transcript() = %q after restart, want empty", a.Transcript())
	}

	a.Ingest(Segment{Text: "second pass", Final: true})
	if got, want := a.Transcript(), "second pass"; got != want {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
}

func TestAccumulatorFiresCallbackPerFinal(t *testing.T) {
	a := NewAccumulator(clientSource{})
	var calls []string
	if err := a.Start(func(full string) { calls = append(calls, full) }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	a.Ingest(Segment{Text: "closures capture", Final: true})
	a.Ingest(Segment{Text: "preview", Final: false})
	a.Ingest(Segment{Text: "variables", Final: true})

	want := []string{"closures capture", "closures capture variables"}
	if len(calls) != len(want) {
		t.Fatalf("callback fired %d times, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestAccumulatorRejectsSegmentsWhenNotRecording(t *testing.T) {
	a := NewAccumulator(clientSource{})

	if err := a.Ingest(Segment{Text: "early", Final: true}); err == nil {
		t.Error("Ingest before Start should fail")
	}

	a.Start(nil)
	a.Ingest(Segment{Text: "kept", Final: true})
	a.Stop()

	if err := a.Ingest(Segment{Text: "late", Final: true}); err == nil {
		t.Error("Ingest after Stop should fail")
	}
	if got, want := a.Transcript(), "kept"; got != want {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
}

func TestAccumulatorUnsupportedSource(t *testing.T) {
	a := NewAccumulator(noSource{})
	if err := a.Start(nil); err != ErrNotSupported {
		t.Errorf("Start with no capability = %v, want ErrNotSupported", err)
	}
	if a.State() != StateIdle {
		t.Errorf("State() = %s, want idle after failed start", a.State())
	}
}

func TestAccumulatorStopClearsInterim(t *testing.T) {
	a := NewAccumulator(clientSource{})
	a.Start(nil)
	a.Ingest(Segment{Text: "done part", Final: true})
	a.Ingest(Segment{Text: "half a wor", Final: false})
	a.Stop()

	if a.Interim() != "" {
		t.Errorf("Interim() = %q after Stop, want empty", a.Interim())
	}
	if got, want := a.Transcript(), "done part"; got != want {
		t.Errorf("Transcript() = %q, want %q (finals stay readable)", got, want)
	}
}
