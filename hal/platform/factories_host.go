//go:build !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"
	"sync"

	"radioswitch-go/hal"
	"radioswitch-go/persist"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host-side runs. Fail makes every
// transaction return the given error.
type HostI2C struct {
	mu     sync.Mutex
	Fail   error
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return h.Fail
}

// DisplayBus returns an inert host I²C bus.
func DisplayBus() (drivers.I2C, error) { return &HostI2C{}, nil }

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hal.GPIOPin for host-side runs and tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    hal.Pull
	writes  []bool
}

func (p *FakePin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// Pulled inputs idle at the pulled level until driven.
	p.level = pull == hal.PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.writes = append(p.writes, initial)
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	if p.modeOut {
		p.writes = append(p.writes, level)
	}
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Writes returns every electrical level driven since configuration.
func (p *FakePin) Writes() []bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]bool(nil), p.writes...)
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	max  int
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	if n < 0 || (f.max > 0 && n > f.max) {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests (e.g. to press a button).
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// NewHostPinFactory limits pins to [0, max]; max <= 0 means unbounded.
func NewHostPinFactory(max int) *HostPinFactory {
	return &HostPinFactory{max: max, pins: make(map[int]*FakePin)}
}

// DefaultPinFactory provides a host GPIO factory shaped like an RP2 (GP0..GP28).
func DefaultPinFactory() hal.PinFactory { return NewHostPinFactory(28) }

// ----------------------------- storage / console -----------------------------

// DefaultStorage is volatile on the host.
func DefaultStorage() persist.Storage { return persist.NewMem(persist.RecordSize) }

// Console is the debug log sink.
func Console() io.Writer { return os.Stdout }
