// Package output turns the active radio index of each channel into line
// states for the fitted switching hardware.
package output

import (
	"radioswitch-go/types"
)

// Encoder drives the switching hardware for both channels.
type Encoder interface {
	// Reset puts every channel in the off state.
	Reset() error
	// Apply connects radio index on ch, or disconnects ch when !enabled or
	// index is outside [0, types.MaxRadios).
	Apply(ch types.Channel, index int, enabled bool) error
}

// Source is the part of the selector the encoder reads.
type Source interface {
	ActiveIndex(ch types.Channel) (int, bool)
}

// ApplyAll re-runs the output sequence for every channel.
func ApplyAll(e Encoder, src Source) error {
	for _, ch := range types.Channels {
		idx, ok := src.ActiveIndex(ch)
		if err := e.Apply(ch, idx, ok); err != nil {
			return err
		}
	}
	return nil
}

func inRange(index int) bool { return index >= 0 && index < types.MaxRadios }
