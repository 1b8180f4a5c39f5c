package phase

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is the light currently shown by a traffic light.
type Phase uint8

const (
	// Red stops traffic. It is the phase a light starts in.
	Red Phase = iota
	// Green lets traffic pass.
	Green
)

// ErrUnknownPhase is returned when a string does not name a phase.
var ErrUnknownPhase = errors.New("unknown phase")

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// Toggle returns the phase that follows p.
func (p Phase) Toggle() Phase {
	if p == Green {
		return Red
	}

	return Green
}

// Parse converts a phase name into a Phase. Matching ignores case and surrounding spaces.
func Parse(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	default:
		return Red, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
}
