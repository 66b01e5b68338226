package main

import (
	"context"
	"time"

	"radioswitch-go/controller"
	"radioswitch-go/display"
	"radioswitch-go/hal/platform"
	"radioswitch-go/setups"
	"radioswitch-go/x/logx"
)

func main() {
	// Allow the debug console to come up before we print.
	time.Sleep(500 * time.Millisecond)
	logx.SetOutput(platform.Console())
	log := logx.Default()
	log.Infof("boot %s", setups.Selected.Name)

	bus, err := platform.DisplayBus()
	var canvas display.Canvas
	if err == nil {
		canvas, err = display.Open(bus)
	}
	if err != nil {
		log.Errorf("display: %v", err)
		halt()
	}
	screen := display.NewFontScreen(canvas)

	c, err := controller.New(controller.Deps{
		Setup:   setups.Selected,
		Pins:    platform.DefaultPinFactory(),
		Storage: platform.DefaultStorage(),
		Screen:  screen,
		Log:     log,
	})
	if err != nil {
		log.Errorf("config: %v", err)
		_ = display.NewRenderer(setups.Selected.Callsign, screen).Fault(err)
		halt()
	}

	ctx := context.Background()
	if err := c.Boot(ctx); err != nil {
		log.Errorf("boot: %v", err)
		c.Fault(err)
		halt()
	}
	if err := c.Run(ctx); err != nil {
		log.Errorf("run: %v", err)
		c.Fault(err)
	}
	halt()
}

// halt parks the device; only a power cycle recovers.
func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
