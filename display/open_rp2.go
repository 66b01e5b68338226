//go:build rp2040 || rp2350

package display

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// Open probes the bus and configures the SSD1306 panel.
func Open(bus drivers.I2C) (Canvas, error) {
	if err := probe(bus); err != nil {
		return nil, err
	}
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:    Width,
		Height:   Height,
		Address:  Address,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()
	return dev, nil
}

var _ Canvas = (*ssd1306.Device)(nil)
