// Package setups holds the compiled-in hardware description: which radios
// are wired, how the outputs are encoded and which pins carry what.
//
// One setup is selected at build time by tag; see setup_address.go and
// setup_shift.go.
package setups

import (
	"time"

	"radioswitch-go/errcode"
	"radioswitch-go/hal"
	"radioswitch-go/types"
)

// AddressWiring is one channel's decoder pins.
type AddressWiring struct {
	A, B, Enable hal.OutputParams
}

// ShiftWiring is the shift register interface.
type ShiftWiring struct {
	Data, Clock, Latch hal.OutputParams
	BitDelay           time.Duration
}

type Setup struct {
	Name     string
	Callsign string
	Radios   []types.Radio
	Variant  types.Variant

	MicButton   hal.InputParams
	KeyerButton hal.InputParams

	// VariantAddress
	MicAddr, KeyerAddr AddressWiring
	// VariantShift
	Shift ShiftWiring

	BootSplash time.Duration // header shown alone after power-on
	Poll       time.Duration // control loop period
	Settle     time.Duration // button debounce
	Cooldown   time.Duration // pause after an accepted press
}

// Validate checks what the type system cannot. Roster size and pin clashes
// are reported later by roster.New and hal.Registry.
func (s Setup) Validate() error {
	bad := func(msg string) error {
		return errcode.Wrap(errcode.InvalidParams, "setups.Validate", msg, nil)
	}
	switch s.Variant {
	case types.VariantAddress, types.VariantShift:
	default:
		return bad("unknown variant " + string(s.Variant))
	}
	if s.Poll < 0 || s.Settle < 0 || s.Cooldown < 0 || s.BootSplash < 0 {
		return bad("negative timing")
	}
	return nil
}

// WithDefaults fills zero timings with the firmware defaults.
func (s Setup) WithDefaults() Setup {
	if s.Poll == 0 {
		s.Poll = 5 * time.Millisecond
	}
	if s.Settle == 0 {
		s.Settle = 20 * time.Millisecond
	}
	if s.Cooldown == 0 {
		s.Cooldown = time.Second
	}
	if s.Shift.BitDelay == 0 {
		s.Shift.BitDelay = time.Microsecond
	}
	return s
}

// Station defaults shared by the board setups.
const defaultCallsign = "KB9KLD"

func defaultRadios() []types.Radio {
	return []types.Radio{
		{Name: "IC-756", Mic: true, Keyer: true},
		{Name: "TS-850", Mic: true, Keyer: true},
		{Name: "TS-790", Mic: true, Keyer: true},
		{Name: "K2", Mic: true, Keyer: true},
	}
}

// Buttons pull the line high when pressed.
var (
	micButton   = hal.InputParams{Pin: 16, Pull: hal.PullDown}
	keyerButton = hal.InputParams{Pin: 17, Pull: hal.PullDown}
)
