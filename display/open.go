package display

import (
	"radioswitch-go/errcode"

	"tinygo.org/x/drivers"
)

const (
	// Address is the SSD1306 I²C address with SA0 low.
	Address = 0x3C
	Width   = 128
	Height  = 64
)

// probe sends "display off" so a missing panel fails before first use.
func probe(bus drivers.I2C) error {
	if bus == nil {
		return errcode.Wrap(errcode.DisplayInit, "display.Open", "no bus", nil)
	}
	if err := bus.Tx(Address, []byte{0x00, 0xAE}, nil); err != nil {
		return errcode.Wrap(errcode.DisplayInit, "display.Open", "no ack at 0x3c", err)
	}
	return nil
}
