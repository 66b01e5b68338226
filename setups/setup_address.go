//go:build !board_shift

package setups

import (
	"time"

	"radioswitch-go/hal"
	"radioswitch-go/types"
)

// Selected drives two 2-to-4 decoders with active-low enables. GP4/GP5 are
// left free for the display on i2c0.
var Selected = Setup{
	Name:     "pico_address",
	Callsign: defaultCallsign,
	Radios:   defaultRadios(),
	Variant:  types.VariantAddress,

	MicButton:   micButton,
	KeyerButton: keyerButton,

	MicAddr: AddressWiring{
		A:      hal.OutputParams{Pin: 11},
		B:      hal.OutputParams{Pin: 12},
		Enable: hal.OutputParams{Pin: 10, ActiveLow: true},
	},
	KeyerAddr: AddressWiring{
		A:      hal.OutputParams{Pin: 14},
		B:      hal.OutputParams{Pin: 15},
		Enable: hal.OutputParams{Pin: 13, ActiveLow: true},
	},

	BootSplash: 2 * time.Second,
}
