// Package input turns a polled button line into press/release edges.
package input

import (
	"time"

	"radioswitch-go/hal"
)

const (
	// DefaultSettle is how long a new level must hold before it counts.
	DefaultSettle = 20 * time.Millisecond
	// DefaultCooldown is the pause after an accepted press, so a held
	// button is not read as a second press.
	DefaultCooldown = time.Second
)

type Edge uint8

const (
	EdgeNone Edge = iota
	EdgePress
	EdgeRelease
)

func (e Edge) String() string {
	switch e {
	case EdgePress:
		return "pressed"
	case EdgeRelease:
		return "released"
	default:
		return "none"
	}
}

// Button debounces a logical input. It is polled from the control loop and
// owns no goroutines.
type Button struct {
	in     hal.Level
	Settle time.Duration
	Now    func() time.Time

	stable   bool
	raw      bool
	rawSince time.Time
}

// New samples the current level as the settled state, so a button held at
// power-on does not produce a press edge.
func New(in hal.Level) *Button {
	b := &Button{in: in, Settle: DefaultSettle, Now: time.Now}
	b.stable = in.Active()
	b.raw = b.stable
	b.rawSince = b.Now()
	return b
}

// Pressed reads the line directly, without debouncing.
func (b *Button) Pressed() bool { return b.in.Active() }

// Held reports the debounced state.
func (b *Button) Held() bool { return b.stable }

// Poll samples the line and reports an edge once the new level has been
// stable for Settle.
func (b *Button) Poll() Edge {
	now := b.Now()
	lvl := b.in.Active()
	if lvl != b.raw {
		b.raw = lvl
		b.rawSince = now
	}
	if b.raw == b.stable || now.Sub(b.rawSince) < b.Settle {
		return EdgeNone
	}
	b.stable = b.raw
	if b.stable {
		return EdgePress
	}
	return EdgeRelease
}
