package output

import (
	"radioswitch-go/errcode"
	"radioswitch-go/hal"
	"radioswitch-go/types"
)

// AddressPins is one channel's decoder wiring.
type AddressPins struct {
	A, B   hal.Line // address bit 0 and bit 1
	Enable hal.Line // logical: true connects the addressed radio
}

// AddressEncoder drives a 2-to-4 decoder per channel.
type AddressEncoder struct {
	pins [len(types.Channels)]AddressPins
}

func NewAddressEncoder(mic, keyer AddressPins) (*AddressEncoder, error) {
	for _, p := range []AddressPins{mic, keyer} {
		if p.A == nil || p.B == nil || p.Enable == nil {
			return nil, errcode.Wrap(errcode.InvalidParams, "output.NewAddressEncoder", "missing line", nil)
		}
	}
	e := &AddressEncoder{}
	e.pins[types.Mic] = mic
	e.pins[types.Keyer] = keyer
	return e, nil
}

// AddressBits maps an index to the decoder inputs: A is bit 0, B is bit 1.
//
//	0 -> A=0 B=0   1 -> A=1 B=0   2 -> A=0 B=1   3 -> A=1 B=1
func AddressBits(index int) (a, b bool) {
	return index&1 != 0, index>>1&1 != 0
}

func (e *AddressEncoder) Reset() error {
	for _, ch := range types.Channels {
		p := e.pins[ch]
		p.Enable.Set(false)
		p.B.Set(false)
		p.A.Set(false)
	}
	return nil
}

func (e *AddressEncoder) Apply(ch types.Channel, index int, enabled bool) error {
	if int(ch) >= len(e.pins) {
		return errcode.Unsupported
	}
	p := e.pins[ch]
	if !enabled || !inRange(index) {
		p.Enable.Set(false)
		p.B.Set(false)
		p.A.Set(false)
		return nil
	}
	a, b := AddressBits(index)
	p.B.Set(b)
	p.A.Set(a)
	p.Enable.Set(true)
	return nil
}
