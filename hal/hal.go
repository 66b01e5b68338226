// Package hal is the line driver between logical signals and GPIO pins.
//
// Encoders and buttons deal in logical levels only ("enabled", "pressed").
// Electrical polarity is configured here, per line.
package hal

// ---- GPIO handles ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

// GPIOPin is a raw electrical pin.
type GPIOPin interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// PinFactory supplies GPIO pins by the board's number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Logical lines ----

// Line is a logical output: true means asserted.
type Line interface {
	Set(on bool)
}

// Level is a logical input: true means active.
type Level interface {
	Active() bool
}
