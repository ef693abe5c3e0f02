package entradas

// Phase is the registration modal's lifecycle state.
type Phase int

const (
	PhaseClosed  Phase = iota // not rendered
	PhaseOpen                 // rendered, accepting input
	PhaseClosing              // exit animation playing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	}
	return "unknown"
}

// Modal separates "the user asked to close" from "safe to stop rendering":
// a close request only starts the exit animation, and the modal is gone once
// the animation-finished signal arrives.
type Modal struct {
	phase Phase
}

// Phase returns the current phase.
func (m Modal) Phase() Phase {
	return m.phase
}

// Visible reports whether the modal should be drawn (open or closing).
func (m Modal) Visible() bool {
	return m.phase != PhaseClosed
}

// Open moves Closed → Open. It reports whether a transition happened.
func (m *Modal) Open() bool {
	if m.phase != PhaseClosed {
		return false
	}
	m.phase = PhaseOpen
	return true
}

// RequestClose moves Open → Closing.
func (m *Modal) RequestClose() bool {
	if m.phase != PhaseOpen {
		return false
	}
	m.phase = PhaseClosing
	return true
}

// AnimationFinished moves Closing → Closed. Stale or duplicate signals, which
// arrive in any other phase, are ignored.
func (m *Modal) AnimationFinished() bool {
	if m.phase != PhaseClosing {
		return false
	}
	m.phase = PhaseClosed
	return true
}
