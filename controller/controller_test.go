package controller

import (
	"context"
	"testing"
	"time"

	"radioswitch-go/display"
	"radioswitch-go/errcode"
	"radioswitch-go/hal"
	"radioswitch-go/hal/platform"
	"radioswitch-go/output"
	"radioswitch-go/persist"
	"radioswitch-go/setups"
	"radioswitch-go/types"
)

type screenRec struct{ frames [][]display.Line }

func (s *screenRec) Show(lines ...display.Line) error {
	s.frames = append(s.frames, append([]display.Line(nil), lines...))
	return nil
}

func (s *screenRec) last() []display.Line { return s.frames[len(s.frames)-1] }

type rig struct {
	c      *Controller
	pins   *platform.HostPinFactory
	mem    *persist.Mem
	screen *screenRec
	slept  []time.Duration
	onWait func()
}

func addressSetup(radios ...types.Radio) setups.Setup {
	return setups.Setup{
		Name:        "test_address",
		Callsign:    "KB9KLD",
		Radios:      radios,
		Variant:     types.VariantAddress,
		MicButton:   hal.InputParams{Pin: 16, Pull: hal.PullDown},
		KeyerButton: hal.InputParams{Pin: 17, Pull: hal.PullDown},
		MicAddr: setups.AddressWiring{
			A: hal.OutputParams{Pin: 11}, B: hal.OutputParams{Pin: 12},
			Enable: hal.OutputParams{Pin: 10, ActiveLow: true},
		},
		KeyerAddr: setups.AddressWiring{
			A: hal.OutputParams{Pin: 14}, B: hal.OutputParams{Pin: 15},
			Enable: hal.OutputParams{Pin: 13, ActiveLow: true},
		},
		Settle: time.Nanosecond,
	}
}

func fourRadios() []types.Radio {
	return []types.Radio{
		{Name: "IC-756", Mic: true, Keyer: true},
		{Name: "TS-850", Mic: true, Keyer: true},
		{Name: "TS-790", Mic: true, Keyer: true},
		{Name: "K2", Mic: true, Keyer: true},
	}
}

func newRig(t *testing.T, s setups.Setup, mem *persist.Mem) *rig {
	t.Helper()
	if mem == nil {
		mem = persist.NewMem(persist.RecordSize)
	}
	r := &rig{pins: platform.NewHostPinFactory(28), mem: mem, screen: &screenRec{}}
	now := time.Unix(0, 0)
	c, err := New(Deps{
		Setup:   s,
		Pins:    r.pins,
		Storage: mem,
		Screen:  r.screen,
		Sleep: func(d time.Duration) {
			r.slept = append(r.slept, d)
			if r.onWait != nil {
				r.onWait()
			}
		},
		Now: func() time.Time {
			now = now.Add(time.Millisecond)
			return now
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.c = c
	return r
}

func (r *rig) pin(t *testing.T, n int) *platform.FakePin {
	t.Helper()
	p, ok := r.pins.Get(n)
	if !ok {
		t.Fatalf("pin %d never claimed", n)
	}
	return p
}

// press holds the button long enough to pass debounce, then releases it.
func (r *rig) press(t *testing.T, button int) {
	t.Helper()
	p := r.pin(t, button)
	p.Set(true)
	for i := 0; i < 2; i++ {
		if err := r.c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	p.Set(false)
	for i := 0; i < 2; i++ {
		if err := r.c.Step(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBoot_FirstBootSelectsRadioZero(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := r.c.Selection(); got != (types.Selection{Mic: 0, Keyer: 0}) {
		t.Fatalf("selection %+v", got)
	}
	// Active-low enable: electrically low means connected.
	if r.pin(t, 10).Get() || r.pin(t, 13).Get() {
		t.Fatalf("enables not asserted")
	}
	if r.pin(t, 11).Get() || r.pin(t, 12).Get() {
		t.Fatalf("mic address not 0")
	}
	lines := r.screen.last()
	if lines[0].Text != "KB9KLD" || lines[1].Text != "Mic IC-756" || lines[2].Text != "Key IC-756" {
		t.Fatalf("screen %+v", lines)
	}
}

func TestBoot_OutputsResetBeforeEnable(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Enable pin history: configured inactive (high), reset keeps it high,
	// then asserted (low) once the selection is applied.
	w := r.pin(t, 10).Writes()
	if len(w) < 3 || !w[0] || !w[1] || w[len(w)-1] {
		t.Fatalf("mic enable history %v", w)
	}
}

func TestStep_PressAdvancesPersistsAndRedraws(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.press(t, 16)
	if got := r.c.Selection().Mic; got != 1 {
		t.Fatalf("mic=%d want 1", got)
	}
	if !r.pin(t, 11).Get() || r.pin(t, 12).Get() {
		t.Fatalf("mic address not 1 (A=1,B=0)")
	}
	sel, ok, err := persist.New(r.mem).Load()
	if err != nil || !ok || sel != (types.Selection{Mic: 1, Keyer: 0}) {
		t.Fatalf("stored %+v ok=%v err=%v", sel, ok, err)
	}
	if r.screen.last()[1].Text != "Mic TS-850" {
		t.Fatalf("screen %+v", r.screen.last())
	}
	cooled := false
	for _, d := range r.slept {
		if d == time.Second {
			cooled = true
		}
	}
	if !cooled {
		t.Fatalf("no cooldown after press: %v", r.slept)
	}

	r.press(t, 17)
	r.press(t, 17)
	if got := r.c.Selection(); got != (types.Selection{Mic: 1, Keyer: 2}) {
		t.Fatalf("selection %+v", got)
	}
	if r.pin(t, 14).Get() || !r.pin(t, 15).Get() {
		t.Fatalf("keyer address not 2 (A=0,B=1)")
	}
}

func TestBoot_RestoresSavedState(t *testing.T) {
	mem := persist.NewMem(persist.RecordSize)
	if err := persist.New(mem).Save(types.Selection{Mic: 2, Keyer: 3}); err != nil {
		t.Fatal(err)
	}
	r := newRig(t, addressSetup(fourRadios()...), mem)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := r.c.Selection(); got != (types.Selection{Mic: 2, Keyer: 3}) {
		t.Fatalf("restored %+v", got)
	}
}

func TestBoot_ResetGestureClearsState(t *testing.T) {
	mem := persist.NewMem(persist.RecordSize)
	_ = persist.New(mem).Save(types.Selection{Mic: 3, Keyer: 3})
	r := newRig(t, addressSetup(fourRadios()...), mem)

	btn := r.pin(t, 16)
	btn.Set(true)
	waits := 0
	r.onWait = func() {
		waits++
		if waits == 3 {
			btn.Set(false)
		}
	}
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := persist.New(mem).Load(); ok {
		t.Fatalf("stored state survived reset gesture")
	}
	if got := r.c.Selection(); got != (types.Selection{}) {
		t.Fatalf("selection after reset %+v", got)
	}
	sawReset := false
	for _, f := range r.screen.frames {
		if len(f) == 1 && f[0].Text == display.ResetText {
			sawReset = true
		}
	}
	if !sawReset {
		t.Fatalf("reset confirmation not shown")
	}
	// The release must not count as a press.
	r.onWait = nil
	_ = r.c.Step()
	_ = r.c.Step()
	if r.c.Selection().Mic != 0 {
		t.Fatalf("release after reset advanced mic")
	}
}

func TestBoot_ResetWaitHonoursContext(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	r.pin(t, 16).Set(true)
	ctx, cancel := context.WithCancel(context.Background())
	r.onWait = cancel
	if err := r.c.Boot(ctx); err != context.Canceled {
		t.Fatalf("err=%v", err)
	}
}

func TestDisabledChannel_StaysOff(t *testing.T) {
	r := newRig(t, addressSetup(
		types.Radio{Name: "A", Mic: true},
		types.Radio{Name: "B"},
		types.Radio{Name: "C", Mic: true},
	), nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.press(t, 17)
	if got := r.c.Selection().Keyer; got != types.NoRadio {
		t.Fatalf("keyer=%d", got)
	}
	if !r.pin(t, 13).Get() {
		t.Fatalf("disabled keyer enable asserted")
	}
	if r.screen.last()[2].Text != "Key None" {
		t.Fatalf("screen %+v", r.screen.last())
	}
	r.press(t, 16)
	if got := r.c.Selection().Mic; got != 2 {
		t.Fatalf("mic=%d want 2 (skip B)", got)
	}
}

func TestShiftVariant_BootAndPress(t *testing.T) {
	s := addressSetup(fourRadios()...)
	s.Variant = types.VariantShift
	s.Shift = setups.ShiftWiring{
		Data:  hal.OutputParams{Pin: 18},
		Clock: hal.OutputParams{Pin: 19},
		Latch: hal.OutputParams{Pin: 20, Initial: true},
	}
	r := newRig(t, s, nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	enc, ok := r.c.enc.(*output.ShiftEncoder)
	if !ok {
		t.Fatalf("encoder %T", r.c.enc)
	}
	if enc.Byte() != 0x88 {
		t.Fatalf("boot byte %08b", enc.Byte())
	}
	r.press(t, 16)
	if enc.Byte() != 0x48 {
		t.Fatalf("after mic press %08b", enc.Byte())
	}
	if !r.pin(t, 20).Get() {
		t.Fatalf("latch left low")
	}
	if _, ok := r.pins.Get(10); ok {
		t.Fatalf("address pins claimed in shift variant")
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	pins := platform.NewHostPinFactory(28)
	deps := func(s setups.Setup) Deps {
		return Deps{Setup: s, Pins: pins, Storage: persist.NewMem(persist.RecordSize), Screen: &screenRec{}}
	}

	big := addressSetup(append(fourRadios(), types.Radio{Name: "FT-1000"})...)
	if _, err := New(deps(big)); !errcode.Is(err, errcode.RosterTooLarge) {
		t.Fatalf("5 radios: %v", err)
	}

	clash := addressSetup(fourRadios()...)
	clash.KeyerButton.Pin = clash.MicButton.Pin
	if _, err := New(Deps{Setup: clash, Pins: platform.NewHostPinFactory(28),
		Storage: persist.NewMem(persist.RecordSize), Screen: &screenRec{}}); !errcode.Is(err, errcode.PinInUse) {
		t.Fatalf("pin clash: %v", err)
	}

	missing := addressSetup(fourRadios()...)
	missing.MicAddr.A.Pin = 40
	if _, err := New(Deps{Setup: missing, Pins: platform.NewHostPinFactory(28),
		Storage: persist.NewMem(persist.RecordSize), Screen: &screenRec{}}); !errcode.Is(err, errcode.UnknownPin) {
		t.Fatalf("unknown pin: %v", err)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	if err := r.c.Boot(context.Background()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	polls := 0
	r.onWait = func() {
		polls++
		if polls == 5 {
			cancel()
		}
	}
	if err := r.c.Run(ctx); err != context.Canceled {
		t.Fatalf("Run err=%v", err)
	}
}

func TestFault_ShowsCode(t *testing.T) {
	r := newRig(t, addressSetup(fourRadios()...), nil)
	r.c.Fault(errcode.ChannelUnreachable)
	if got := r.screen.last(); len(got) != 2 || got[1].Text != "channel_unreachable" {
		t.Fatalf("fault frame %+v", got)
	}
}
