package output

import (
	"time"

	"radioswitch-go/errcode"
	"radioswitch-go/hal"
	"radioswitch-go/types"
)

// DefaultBitDelay is the settle time around each clock edge.
const DefaultBitDelay = time.Microsecond

// ShiftPins is the 3-wire synchronous interface to the relay register.
type ShiftPins struct {
	Data, Clock, Latch hal.Line
}

// ShiftEncoder drives one 8-bit shift register shared by both channels:
// mic owns bits 7..4, keyer bits 3..0, one bit per radio.
type ShiftEncoder struct {
	pins     ShiftPins
	BitDelay time.Duration
	Sleep    func(time.Duration)

	bytes [len(types.Channels)]uint8
	out   uint8
}

func NewShiftEncoder(p ShiftPins) (*ShiftEncoder, error) {
	if p.Data == nil || p.Clock == nil || p.Latch == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "output.NewShiftEncoder", "missing line", nil)
	}
	return &ShiftEncoder{pins: p, BitDelay: DefaultBitDelay, Sleep: time.Sleep}, nil
}

// OneHot returns the channel's bits for index: 7-index for mic, 3-index for
// keyer. Zero means the channel is off.
func OneHot(ch types.Channel, index int, enabled bool) uint8 {
	if !enabled || !inRange(index) {
		return 0
	}
	switch ch {
	case types.Mic:
		return 1 << (7 - index)
	case types.Keyer:
		return 1 << (3 - index)
	default:
		return 0
	}
}

func (e *ShiftEncoder) Reset() error {
	e.bytes = [len(types.Channels)]uint8{}
	e.shiftOut(0)
	return nil
}

func (e *ShiftEncoder) Apply(ch types.Channel, index int, enabled bool) error {
	if int(ch) >= len(e.bytes) {
		return errcode.Unsupported
	}
	e.bytes[ch] = OneHot(ch, index, enabled)
	e.shiftOut(e.bytes[types.Mic] | e.bytes[types.Keyer])
	return nil
}

// Byte is the value last latched into the register.
func (e *ShiftEncoder) Byte() uint8 { return e.out }

// shiftOut clocks v out MSB first between latch low and latch high.
func (e *ShiftEncoder) shiftOut(v uint8) {
	e.pins.Latch.Set(false)
	for bit := 7; bit >= 0; bit-- {
		e.pins.Data.Set(v&(1<<bit) != 0)
		e.delay()
		e.pins.Clock.Set(true)
		e.delay()
		e.pins.Clock.Set(false)
	}
	e.pins.Latch.Set(true)
	e.out = v
}

func (e *ShiftEncoder) delay() {
	if e.BitDelay > 0 && e.Sleep != nil {
		e.Sleep(e.BitDelay)
	}
}
