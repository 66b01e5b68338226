package types

// ---- Channels ----

// Channel is one of the two independently switched audio paths.
type Channel uint8

const (
	Mic Channel = iota
	Keyer
)

// Channels lists every channel in display/output order.
var Channels = [...]Channel{Mic, Keyer}

func (c Channel) String() string {
	switch c {
	case Mic:
		return "mic"
	case Keyer:
		return "keyer"
	default:
		return "unknown"
	}
}

// ---- Roster entries ----

// MaxRadios is fixed by the hardware: a 2-bit address per channel, or four
// one-hot bits per channel in the shared shift register.
const MaxRadios = 4

// NoRadio marks a channel with no connected radio.
const NoRadio = -1

// Radio is one configured transceiver. Immutable after boot.
type Radio struct {
	Name  string
	Mic   bool
	Keyer bool
}

// Supports reports whether the radio can be switched onto ch.
func (r Radio) Supports(ch Channel) bool {
	switch ch {
	case Mic:
		return r.Mic
	case Keyer:
		return r.Keyer
	default:
		return false
	}
}

// ---- Selection ----

// Selection holds the active roster index per channel (or NoRadio).
type Selection struct {
	Mic   int
	Keyer int
}

// Index returns the stored index for ch.
func (s Selection) Index(ch Channel) int {
	if ch == Keyer {
		return s.Keyer
	}
	return s.Mic
}

// With returns a copy of s with ch set to idx.
func (s Selection) With(ch Channel, idx int) Selection {
	if ch == Keyer {
		s.Keyer = idx
	} else {
		s.Mic = idx
	}
	return s
}

// ---- Hardware variants ----

// Variant selects the output encoding fitted to the board.
type Variant string

const (
	VariantAddress Variant = "address" // 2 address lines + enable per channel
	VariantShift   Variant = "shift"   // one-hot byte on a 3-wire shift register
)
