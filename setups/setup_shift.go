//go:build board_shift

package setups

import (
	"time"

	"radioswitch-go/hal"
	"radioswitch-go/types"
)

// Selected drives a 74HC595 relay board: mic relays on Q7..Q4, keyer relays
// on Q3..Q0.
var Selected = Setup{
	Name:     "pico_shift",
	Callsign: defaultCallsign,
	Radios:   defaultRadios(),
	Variant:  types.VariantShift,

	MicButton:   micButton,
	KeyerButton: keyerButton,

	Shift: ShiftWiring{
		Data:     hal.OutputParams{Pin: 18},
		Clock:    hal.OutputParams{Pin: 19},
		Latch:    hal.OutputParams{Pin: 20, Initial: true},
		BitDelay: time.Microsecond,
	},

	BootSplash: 2 * time.Second,
}
