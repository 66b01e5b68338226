// Package controller ties the selector, outputs, storage, buttons and screen
// together and runs the single control loop.
//
// Everything here is owned by one Controller built at boot; nothing is
// shared with other goroutines.
package controller

import (
	"context"
	"time"

	"radioswitch-go/display"
	"radioswitch-go/errcode"
	"radioswitch-go/hal"
	"radioswitch-go/input"
	"radioswitch-go/output"
	"radioswitch-go/persist"
	"radioswitch-go/roster"
	"radioswitch-go/selector"
	"radioswitch-go/setups"
	"radioswitch-go/types"
	"radioswitch-go/x/logx"
)

// resetPoll is the wait step while the reset gesture is held.
const resetPoll = 10 * time.Millisecond

// Deps are the collaborators supplied by the platform.
type Deps struct {
	Setup   setups.Setup
	Pins    hal.PinFactory
	Storage persist.Storage
	Screen  display.Screen
	Log     *logx.Logger

	// Optional; default to time.Sleep and time.Now.
	Sleep func(time.Duration)
	Now   func() time.Time
}

type Controller struct {
	setup   setups.Setup
	roster  *roster.Roster
	sel     *selector.Selector
	store   *persist.Adapter
	enc     output.Encoder
	render  *display.Renderer
	buttons [len(types.Channels)]*input.Button
	log     *logx.Logger
	sleep   func(time.Duration)
}

// New validates the setup, claims every pin and builds the encoder for the
// setup's variant. All errors are configuration errors.
func New(d Deps) (*Controller, error) {
	s := d.Setup.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	r, err := roster.New(s.Radios)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		setup:  s,
		roster: r,
		store:  persist.New(d.Storage),
		render: display.NewRenderer(s.Callsign, d.Screen),
		log:    d.Log,
		sleep:  d.Sleep,
	}
	c.sel = selector.New(r, c.store)
	c.sel.SetLogger(d.Log.With("selector"))

	reg := hal.NewRegistry(d.Pins)
	if c.enc, err = BuildEncoder(reg, s, d.Sleep); err != nil {
		return nil, err
	}
	for _, ch := range types.Channels {
		p := s.MicButton
		if ch == types.Keyer {
			p = s.KeyerButton
		}
		in, err := reg.ClaimInput(ch.String()+"_button", p)
		if err != nil {
			return nil, err
		}
		b := input.New(in)
		b.Settle = s.Settle
		b.Now = d.Now
		c.buttons[ch] = b
	}
	return c, nil
}

// BuildEncoder claims the output pins of s and returns the encoder for its
// variant. Address pins are claimed enable-first so each decoder stays off
// while its address lines are configured.
func BuildEncoder(reg *hal.Registry, s setups.Setup, sleep func(time.Duration)) (output.Encoder, error) {
	switch s.Variant {
	case types.VariantShift:
		var p output.ShiftPins
		var err error
		if p.Data, err = reg.ClaimOutput("shift_data", s.Shift.Data); err != nil {
			return nil, err
		}
		if p.Clock, err = reg.ClaimOutput("shift_clock", s.Shift.Clock); err != nil {
			return nil, err
		}
		if p.Latch, err = reg.ClaimOutput("shift_latch", s.Shift.Latch); err != nil {
			return nil, err
		}
		e, err := output.NewShiftEncoder(p)
		if err != nil {
			return nil, err
		}
		e.BitDelay = s.Shift.BitDelay
		e.Sleep = sleep
		return e, nil
	default:
		mic, err := claimAddress(reg, types.Mic, s.MicAddr)
		if err != nil {
			return nil, err
		}
		key, err := claimAddress(reg, types.Keyer, s.KeyerAddr)
		if err != nil {
			return nil, err
		}
		return output.NewAddressEncoder(mic, key)
	}
}

func claimAddress(reg *hal.Registry, ch types.Channel, w setups.AddressWiring) (output.AddressPins, error) {
	var p output.AddressPins
	var err error
	if p.Enable, err = reg.ClaimOutput(ch.String()+"_enable", w.Enable); err != nil {
		return p, err
	}
	if p.A, err = reg.ClaimOutput(ch.String()+"_a", w.A); err != nil {
		return p, err
	}
	if p.B, err = reg.ClaimOutput(ch.String()+"_b", w.B); err != nil {
		return p, err
	}
	return p, nil
}

// Boot puts the outputs in a known state, handles the reset gesture, restores
// or seeds the selection, then drives outputs and screen. An error is fatal.
func (c *Controller) Boot(ctx context.Context) error {
	if err := c.enc.Reset(); err != nil {
		return err
	}
	if c.setup.BootSplash > 0 {
		if err := c.render.Splash(); err != nil {
			c.log.Warnf("splash: %v", err)
		}
		c.sleep(c.setup.BootSplash)
	}

	var restored *types.Selection
	if c.buttons[types.Mic].Pressed() {
		c.log.Infof("Clearing state!")
		if err := c.store.Clear(); err != nil {
			c.log.Errorf("clear: %v", err)
		}
		if err := c.render.Reset(); err != nil {
			c.log.Warnf("render: %v", err)
		}
		for c.buttons[types.Mic].Pressed() {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.sleep(resetPoll)
		}
	} else {
		c.log.Infof("Getting state!")
		sel, ok, err := c.store.Load()
		switch {
		case err != nil:
			c.log.Errorf("load: %v", err)
		case ok:
			c.log.Infof("We have saved state! mic=%d keyer=%d", sel.Mic, sel.Keyer)
			restored = &sel
		default:
			c.log.Infof("No saved state!")
		}
	}

	if err := c.sel.Initialize(restored); err != nil {
		return err
	}
	for _, ch := range types.Channels {
		if !c.roster.ChannelEnabled(ch) {
			c.log.Warnf("%s disabled: no capable radio", ch)
		}
	}
	if err := output.ApplyAll(c.enc, c.sel); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// Step polls both buttons once. Only configuration errors are returned;
// everything else is logged and the loop carries on.
func (c *Controller) Step() error {
	for _, ch := range types.Channels {
		switch c.buttons[ch].Poll() {
		case input.EdgePress:
			if !c.roster.ChannelEnabled(ch) {
				continue
			}
			idx, err := c.sel.Advance(ch)
			if errcode.IsConfig(err) {
				return err
			}
			if err != nil {
				c.log.Errorf("save: %v", err)
			}
			c.log.Infof("%s -> %d", ch, idx)
			c.apply(ch)
			c.refresh()
			c.sleep(c.setup.Cooldown)
		case input.EdgeRelease:
			// Re-assert the line state once the operator lets go.
			if c.roster.ChannelEnabled(ch) {
				c.apply(ch)
			}
		}
	}
	return nil
}

// Run loops until ctx is done or Step reports a fatal error.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.Step(); err != nil {
			return err
		}
		c.sleep(c.setup.Poll)
	}
}

// Fault shows err on the screen.
func (c *Controller) Fault(err error) {
	if rerr := c.render.Fault(err); rerr != nil {
		c.log.Warnf("render: %v", rerr)
	}
}

// Selection exposes the current state for diagnostics.
func (c *Controller) Selection() types.Selection { return c.sel.Selection() }

func (c *Controller) apply(ch types.Channel) {
	idx, ok := c.sel.ActiveIndex(ch)
	if err := c.enc.Apply(ch, idx, ok); err != nil {
		c.log.Errorf("output %s: %v", ch, err)
	}
}

func (c *Controller) refresh() {
	if err := c.render.Status(c.sel); err != nil {
		c.log.Warnf("render: %v", err)
	}
}
