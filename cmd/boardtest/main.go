// cmd/boardtest
//
// Output bring-up: connects every radio on every channel in turn so the
// decoder or relay wiring can be checked with a meter, without the buttons,
// the display or stored state.
package main

import (
	"time"

	"radioswitch-go/controller"
	"radioswitch-go/hal"
	"radioswitch-go/hal/platform"
	"radioswitch-go/setups"
	"radioswitch-go/types"
	"radioswitch-go/x/logx"
)

// ---------- Configuration ----------

const (
	bootDelay = 1500 * time.Millisecond
	dwell     = 2 * time.Second // per radio
	offDelay  = 300 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

func main() {
	time.Sleep(bootDelay)
	logx.SetOutput(platform.Console())
	log := logx.Default().With("boardtest")

	s := setups.Selected.WithDefaults()
	if err := s.Validate(); err != nil {
		log.Errorf("setup: %v", err)
		return
	}
	enc, err := controller.BuildEncoder(hal.NewRegistry(platform.DefaultPinFactory()), s, time.Sleep)
	if err != nil {
		log.Errorf("outputs: %v", err)
		return
	}
	if err := enc.Reset(); err != nil {
		log.Errorf("reset: %v", err)
		return
	}
	log.Infof("%s: %s variant, %d radios", s.Name, s.Variant, len(s.Radios))

	for cycle := 1; cyclesToRun == 0 || cycle <= cyclesToRun; cycle++ {
		log.Infof("cycle %d", cycle)
		for _, ch := range types.Channels {
			for i, r := range s.Radios {
				if !r.Supports(ch) {
					log.Infof("%s %d (%s): not wired, skipped", ch, i, r.Name)
					continue
				}
				if err := enc.Apply(ch, i, true); err != nil {
					log.Errorf("%s %d: %v", ch, i, err)
					continue
				}
				log.Infof("%s %d (%s): on", ch, i, r.Name)
				time.Sleep(dwell)
			}
			if err := enc.Apply(ch, types.NoRadio, false); err != nil {
				log.Errorf("%s off: %v", ch, err)
			}
			log.Infof("%s: off", ch)
			time.Sleep(offDelay)
		}
	}
}
