//go:build !(rp2040 || rp2350)

package display

import "tinygo.org/x/drivers"

// Open probes the bus and returns an in-memory frame in place of the panel.
func Open(bus drivers.I2C) (Canvas, error) {
	if err := probe(bus); err != nil {
		return nil, err
	}
	return NewFrame(Width, Height), nil
}
